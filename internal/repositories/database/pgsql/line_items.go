package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goldloom/jewelshop_backend/internal/apperrors"
	"github.com/goldloom/jewelshop_backend/internal/core/domain"
)

// insertLineItems batch-inserts the line items of a document inside the
// caller's transaction. The three item tables share one column layout, only
// the table name and parent key column differ.
func insertLineItems(ctx context.Context, tx pgx.Tx, table, parentCol, parentID string, items []domain.LineItem) error {
	if len(items) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, position, item_id, name, pcs, quantity, weight, rate, amount, taxable)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`, table, parentCol)

	batch := &pgx.Batch{}
	for i, item := range items {
		batch.Queue(query, parentID, i, item.ItemID, item.Name, item.Pcs, item.Quantity, item.Weight, item.Rate, item.Amount, item.Taxable)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range items {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert line items into "+table, err)
		}
	}
	return nil
}

// loadLineItems reads the line items of a document in stored order.
func loadLineItems(ctx context.Context, pool *pgxpool.Pool, table, parentCol, parentID string) ([]domain.LineItem, error) {
	query := fmt.Sprintf(`
		SELECT item_id, name, pcs, quantity, weight, rate, amount, taxable
		FROM %s
		WHERE %s = $1
		ORDER BY position;
	`, table, parentCol)

	rows, err := pool.Query(ctx, query, parentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load line items from "+table, err)
	}
	defer rows.Close()

	var items []domain.LineItem
	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(&item.ItemID, &item.Name, &item.Pcs, &item.Quantity, &item.Weight, &item.Rate, &item.Amount, &item.Taxable); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading line items", err)
	}
	return items, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
