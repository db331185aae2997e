package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goldloom/jewelshop_backend/internal/apperrors"
	"github.com/goldloom/jewelshop_backend/internal/core/domain"
	portsrepo "github.com/goldloom/jewelshop_backend/internal/core/ports/repositories"
	"github.com/goldloom/jewelshop_backend/internal/utils/pagination"
)

// PgxCashRepository stores cash entries and payment receipts. Neither carries
// line items, so these are single-row writes.
type PgxCashRepository struct {
	BaseRepository
}

func newPgxCashRepository(pool *pgxpool.Pool) portsrepo.CashRepositoryFacade {
	return &PgxCashRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CashRepositoryFacade = (*PgxCashRepository)(nil)

func (r *PgxCashRepository) SaveCashEntry(ctx context.Context, entry domain.CashEntry) error {
	query := `
		INSERT INTO cash_entries (
			entry_id, entry_no, entry_date, cash_type, transaction_type,
			customer_name, amount, narration,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.EntryID, entry.EntryNo, entry.EntryDate, entry.CashType, entry.TransactionType,
		entry.CustomerName, entry.Amount, entry.Narration,
		entry.CreatedAt, entry.CreatedBy, entry.LastUpdatedAt, entry.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "entry number already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert cash entry "+entry.EntryID, err)
	}
	return nil
}

func (r *PgxCashRepository) FindCashEntryByID(ctx context.Context, entryID string) (*domain.CashEntry, error) {
	query := `
		SELECT entry_id, entry_no, entry_date, cash_type, transaction_type,
		       customer_name, amount, narration,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM cash_entries
		WHERE entry_id = $1;
	`
	var e domain.CashEntry
	err := r.Pool.QueryRow(ctx, query, entryID).Scan(
		&e.EntryID, &e.EntryNo, &e.EntryDate, &e.CashType, &e.TransactionType,
		&e.CustomerName, &e.Amount, &e.Narration,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find cash entry", err)
	}
	return &e, nil
}

func (r *PgxCashRepository) ListCashEntries(ctx context.Context, limit int, nextToken *string) ([]domain.CashEntry, *string, error) {
	query := `
		SELECT entry_id, entry_no, entry_date, cash_type, transaction_type,
		       customer_name, amount, narration,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM cash_entries
	`
	args := []interface{}{}
	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		query += ` WHERE (entry_date, created_at) < ($1, $2)`
		args = append(args, entryDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY entry_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list cash entries", err)
	}
	defer rows.Close()

	var entries []domain.CashEntry
	for rows.Next() {
		var e domain.CashEntry
		if err := rows.Scan(
			&e.EntryID, &e.EntryNo, &e.EntryDate, &e.CashType, &e.TransactionType,
			&e.CustomerName, &e.Amount, &e.Narration,
			&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan cash entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed reading cash entries", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		t := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		token = &t
	}
	return entries, token, nil
}

func (r *PgxCashRepository) SavePaymentReceipt(ctx context.Context, receipt domain.PaymentReceipt) error {
	query := `
		INSERT INTO payment_receipts (
			receipt_id, receipt_no, receipt_date, transaction_type, payment_method,
			party_name, amount, narration,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		receipt.ReceiptID, receipt.ReceiptNo, receipt.ReceiptDate, receipt.TransactionType, receipt.PaymentMethod,
		receipt.PartyName, receipt.Amount, receipt.Narration,
		receipt.CreatedAt, receipt.CreatedBy, receipt.LastUpdatedAt, receipt.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "receipt number already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert payment receipt "+receipt.ReceiptID, err)
	}
	return nil
}

func (r *PgxCashRepository) FindPaymentReceiptByID(ctx context.Context, receiptID string) (*domain.PaymentReceipt, error) {
	query := `
		SELECT receipt_id, receipt_no, receipt_date, transaction_type, payment_method,
		       party_name, amount, narration,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM payment_receipts
		WHERE receipt_id = $1;
	`
	var p domain.PaymentReceipt
	err := r.Pool.QueryRow(ctx, query, receiptID).Scan(
		&p.ReceiptID, &p.ReceiptNo, &p.ReceiptDate, &p.TransactionType, &p.PaymentMethod,
		&p.PartyName, &p.Amount, &p.Narration,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment receipt", err)
	}
	return &p, nil
}

func (r *PgxCashRepository) ListPaymentReceipts(ctx context.Context, limit int, nextToken *string) ([]domain.PaymentReceipt, *string, error) {
	query := `
		SELECT receipt_id, receipt_no, receipt_date, transaction_type, payment_method,
		       party_name, amount, narration,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM payment_receipts
	`
	args := []interface{}{}
	if nextToken != nil && *nextToken != "" {
		receiptDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		query += ` WHERE (receipt_date, created_at) < ($1, $2)`
		args = append(args, receiptDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY receipt_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list payment receipts", err)
	}
	defer rows.Close()

	var receipts []domain.PaymentReceipt
	for rows.Next() {
		var p domain.PaymentReceipt
		if err := rows.Scan(
			&p.ReceiptID, &p.ReceiptNo, &p.ReceiptDate, &p.TransactionType, &p.PaymentMethod,
			&p.PartyName, &p.Amount, &p.Narration,
			&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan payment receipt", err)
		}
		receipts = append(receipts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed reading payment receipts", err)
	}

	var token *string
	if len(receipts) > limit {
		receipts = receipts[:limit]
		last := receipts[limit-1]
		t := pagination.EncodeToken(last.ReceiptDate, last.CreatedAt)
		token = &t
	}
	return receipts, token, nil
}
