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

// PgxSalesRepository stores sales bills and returns with their line items.
type PgxSalesRepository struct {
	BaseRepository
}

func newPgxSalesRepository(pool *pgxpool.Pool) portsrepo.SalesRepositoryFacade {
	return &PgxSalesRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SalesRepositoryFacade = (*PgxSalesRepository)(nil)

// SaveSalesBill inserts the bill and its line items in one transaction.
func (r *PgxSalesRepository) SaveSalesBill(ctx context.Context, bill domain.SalesBill) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	billQuery := `
		INSERT INTO sales_bills (
			bill_id, bill_no, bill_date, customer_name,
			net_total, gst_amount, cgst_amount, sgst_amount, narration,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, billQuery,
		bill.BillID, bill.BillNo, bill.BillDate, bill.CustomerName,
		bill.NetTotal, bill.GSTAmount, bill.CGSTAmount, bill.SGSTAmount, bill.Narration,
		bill.CreatedAt, bill.CreatedBy, bill.LastUpdatedAt, bill.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "bill number already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert sales bill "+bill.BillID, err)
	}

	if err := insertLineItems(ctx, tx, "sales_bill_items", "bill_id", bill.BillID, bill.Items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindSalesBillByID retrieves a bill with its line items.
func (r *PgxSalesRepository) FindSalesBillByID(ctx context.Context, billID string) (*domain.SalesBill, error) {
	query := `
		SELECT bill_id, bill_no, bill_date, customer_name,
		       net_total, gst_amount, cgst_amount, sgst_amount, narration,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM sales_bills
		WHERE bill_id = $1;
	`
	var b domain.SalesBill
	err := r.Pool.QueryRow(ctx, query, billID).Scan(
		&b.BillID, &b.BillNo, &b.BillDate, &b.CustomerName,
		&b.NetTotal, &b.GSTAmount, &b.CGSTAmount, &b.SGSTAmount, &b.Narration,
		&b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find sales bill", err)
	}

	if b.Items, err = loadLineItems(ctx, r.Pool, "sales_bill_items", "bill_id", billID); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListSalesBills retrieves a token-paginated page, newest bill first.
func (r *PgxSalesRepository) ListSalesBills(ctx context.Context, limit int, nextToken *string) ([]domain.SalesBill, *string, error) {
	query := `
		SELECT bill_id, bill_no, bill_date, customer_name,
		       net_total, gst_amount, cgst_amount, sgst_amount, narration,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM sales_bills
	`
	args := []interface{}{}
	if nextToken != nil && *nextToken != "" {
		billDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		query += ` WHERE (bill_date, created_at) < ($1, $2)`
		args = append(args, billDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY bill_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list sales bills", err)
	}
	defer rows.Close()

	var bills []domain.SalesBill
	for rows.Next() {
		var b domain.SalesBill
		if err := rows.Scan(
			&b.BillID, &b.BillNo, &b.BillDate, &b.CustomerName,
			&b.NetTotal, &b.GSTAmount, &b.CGSTAmount, &b.SGSTAmount, &b.Narration,
			&b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan sales bill", err)
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed reading sales bills", err)
	}

	var token *string
	if len(bills) > limit {
		bills = bills[:limit]
		last := bills[limit-1]
		t := pagination.EncodeToken(last.BillDate, last.CreatedAt)
		token = &t
	}
	return bills, token, nil
}

// SaveSalesReturn inserts the return and its line items in one transaction.
func (r *PgxSalesRepository) SaveSalesReturn(ctx context.Context, ret domain.SalesReturn) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	retQuery := `
		INSERT INTO sales_returns (
			return_id, return_no, return_date, customer_name,
			net_total, gst_amount, cgst_amount, sgst_amount,
			reason, original_bill_no,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, retQuery,
		ret.ReturnID, ret.ReturnNo, ret.ReturnDate, ret.CustomerName,
		ret.NetTotal, ret.GSTAmount, ret.CGSTAmount, ret.SGSTAmount,
		ret.Reason, ret.OriginalBillNo,
		ret.CreatedAt, ret.CreatedBy, ret.LastUpdatedAt, ret.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "return number already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert sales return "+ret.ReturnID, err)
	}

	if err := insertLineItems(ctx, tx, "sales_return_items", "return_id", ret.ReturnID, ret.Items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindSalesReturnByID retrieves a return with its line items.
func (r *PgxSalesRepository) FindSalesReturnByID(ctx context.Context, returnID string) (*domain.SalesReturn, error) {
	query := `
		SELECT return_id, return_no, return_date, customer_name,
		       net_total, gst_amount, cgst_amount, sgst_amount,
		       reason, original_bill_no,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM sales_returns
		WHERE return_id = $1;
	`
	var ret domain.SalesReturn
	err := r.Pool.QueryRow(ctx, query, returnID).Scan(
		&ret.ReturnID, &ret.ReturnNo, &ret.ReturnDate, &ret.CustomerName,
		&ret.NetTotal, &ret.GSTAmount, &ret.CGSTAmount, &ret.SGSTAmount,
		&ret.Reason, &ret.OriginalBillNo,
		&ret.CreatedAt, &ret.CreatedBy, &ret.LastUpdatedAt, &ret.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find sales return", err)
	}

	if ret.Items, err = loadLineItems(ctx, r.Pool, "sales_return_items", "return_id", returnID); err != nil {
		return nil, err
	}
	return &ret, nil
}

// ListSalesReturns retrieves a token-paginated page, newest return first.
func (r *PgxSalesRepository) ListSalesReturns(ctx context.Context, limit int, nextToken *string) ([]domain.SalesReturn, *string, error) {
	query := `
		SELECT return_id, return_no, return_date, customer_name,
		       net_total, gst_amount, cgst_amount, sgst_amount,
		       reason, original_bill_no,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM sales_returns
	`
	args := []interface{}{}
	if nextToken != nil && *nextToken != "" {
		returnDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		query += ` WHERE (return_date, created_at) < ($1, $2)`
		args = append(args, returnDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY return_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list sales returns", err)
	}
	defer rows.Close()

	var returns []domain.SalesReturn
	for rows.Next() {
		var ret domain.SalesReturn
		if err := rows.Scan(
			&ret.ReturnID, &ret.ReturnNo, &ret.ReturnDate, &ret.CustomerName,
			&ret.NetTotal, &ret.GSTAmount, &ret.CGSTAmount, &ret.SGSTAmount,
			&ret.Reason, &ret.OriginalBillNo,
			&ret.CreatedAt, &ret.CreatedBy, &ret.LastUpdatedAt, &ret.LastUpdatedBy,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan sales return", err)
		}
		returns = append(returns, ret)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed reading sales returns", err)
	}

	var token *string
	if len(returns) > limit {
		returns = returns[:limit]
		last := returns[limit-1]
		t := pagination.EncodeToken(last.ReturnDate, last.CreatedAt)
		token = &t
	}
	return returns, token, nil
}
