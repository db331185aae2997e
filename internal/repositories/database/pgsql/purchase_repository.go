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

// PgxPurchaseRepository stores purchase vouchers with their line items.
type PgxPurchaseRepository struct {
	BaseRepository
}

func newPgxPurchaseRepository(pool *pgxpool.Pool) portsrepo.PurchaseRepositoryFacade {
	return &PgxPurchaseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PurchaseRepositoryFacade = (*PgxPurchaseRepository)(nil)

// SavePurchaseVoucher inserts the voucher and its line items in one
// transaction.
func (r *PgxPurchaseRepository) SavePurchaseVoucher(ctx context.Context, voucher domain.PurchaseVoucher) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO purchase_vouchers (
			voucher_id, voucher_no, voucher_date, supplier_name,
			net_total, gst_amount, cgst_amount, sgst_amount, narration,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, query,
		voucher.VoucherID, voucher.VoucherNo, voucher.VoucherDate, voucher.SupplierName,
		voucher.NetTotal, voucher.GSTAmount, voucher.CGSTAmount, voucher.SGSTAmount, voucher.Narration,
		voucher.CreatedAt, voucher.CreatedBy, voucher.LastUpdatedAt, voucher.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "voucher number already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert purchase voucher "+voucher.VoucherID, err)
	}

	if err := insertLineItems(ctx, tx, "purchase_voucher_items", "voucher_id", voucher.VoucherID, voucher.Items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindPurchaseVoucherByID retrieves a voucher with its line items.
func (r *PgxPurchaseRepository) FindPurchaseVoucherByID(ctx context.Context, voucherID string) (*domain.PurchaseVoucher, error) {
	query := `
		SELECT voucher_id, voucher_no, voucher_date, supplier_name,
		       net_total, gst_amount, cgst_amount, sgst_amount, narration,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM purchase_vouchers
		WHERE voucher_id = $1;
	`
	var v domain.PurchaseVoucher
	err := r.Pool.QueryRow(ctx, query, voucherID).Scan(
		&v.VoucherID, &v.VoucherNo, &v.VoucherDate, &v.SupplierName,
		&v.NetTotal, &v.GSTAmount, &v.CGSTAmount, &v.SGSTAmount, &v.Narration,
		&v.CreatedAt, &v.CreatedBy, &v.LastUpdatedAt, &v.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find purchase voucher", err)
	}

	if v.Items, err = loadLineItems(ctx, r.Pool, "purchase_voucher_items", "voucher_id", voucherID); err != nil {
		return nil, err
	}
	return &v, nil
}

// ListPurchaseVouchers retrieves a token-paginated page, newest first.
func (r *PgxPurchaseRepository) ListPurchaseVouchers(ctx context.Context, limit int, nextToken *string) ([]domain.PurchaseVoucher, *string, error) {
	query := `
		SELECT voucher_id, voucher_no, voucher_date, supplier_name,
		       net_total, gst_amount, cgst_amount, sgst_amount, narration,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM purchase_vouchers
	`
	args := []interface{}{}
	if nextToken != nil && *nextToken != "" {
		voucherDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		query += ` WHERE (voucher_date, created_at) < ($1, $2)`
		args = append(args, voucherDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY voucher_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list purchase vouchers", err)
	}
	defer rows.Close()

	var vouchers []domain.PurchaseVoucher
	for rows.Next() {
		var v domain.PurchaseVoucher
		if err := rows.Scan(
			&v.VoucherID, &v.VoucherNo, &v.VoucherDate, &v.SupplierName,
			&v.NetTotal, &v.GSTAmount, &v.CGSTAmount, &v.SGSTAmount, &v.Narration,
			&v.CreatedAt, &v.CreatedBy, &v.LastUpdatedAt, &v.LastUpdatedBy,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan purchase voucher", err)
		}
		vouchers = append(vouchers, v)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed reading purchase vouchers", err)
	}

	var token *string
	if len(vouchers) > limit {
		vouchers = vouchers[:limit]
		last := vouchers[limit-1]
		t := pagination.EncodeToken(last.VoucherDate, last.CreatedAt)
		token = &t
	}
	return vouchers, token, nil
}
