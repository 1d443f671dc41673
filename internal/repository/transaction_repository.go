package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/saifulohyr/riyadh-coffee-pos/internal/domain"
)

const saleCompletedEventType = "sale.completed"

// CreateTransaction commits one sale as a single all-or-nothing unit: the
// transaction record, every guarded stock decrement, and the outbox event
// share one sql.Tx. A guarded decrement that matches zero rows means the
// stock fell below the requested quantity after validation; the whole unit
// is rolled back and a StockConflictError names the losing product.
//
// The guard also passes rows whose stock is NULL (not stock-tracked), so a
// product flipped to unlimited mid-flight commits instead of conflicting.
func (r *Repository) CreateTransaction(ctx context.Context, t *domain.Transaction, decrements []domain.StockDecrement) error {
	itemsJSON, err := json.Marshal(t.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction items: %w", err)
	}

	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer dbtx.Rollback()

	insert := `INSERT INTO transactions (id, created_at, subtotal, tax_amount, grand_total, amount_received, change_amount, items)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, insertErr := dbtx.ExecContext(ctx, insert,
		t.ID,
		t.CreatedAt,
		t.Subtotal,
		t.TaxAmount,
		t.GrandTotal,
		t.AmountReceived,
		t.ChangeAmount,
		itemsJSON)
	if insertErr != nil {
		var pqErr *pq.Error
		if errors.As(insertErr, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateTransaction
		}
		return fmt.Errorf("insert transaction: %w", insertErr)
	}

	decrement := `UPDATE products SET stock = stock - $1
	              WHERE id = $2 AND (stock IS NULL OR stock >= $1)`

	for _, d := range decrements {
		res, decErr := dbtx.ExecContext(ctx, decrement, d.Quantity, d.ProductID)
		if decErr != nil {
			return fmt.Errorf("decrement stock for product %d: %w", d.ProductID, decErr)
		}
		affected, raErr := res.RowsAffected()
		if raErr != nil {
			return fmt.Errorf("decrement stock for product %d: %w", d.ProductID, raErr)
		}
		if affected == 0 {
			return &StockConflictError{ProductID: d.ProductID}
		}
	}

	outbox := `INSERT INTO sale_events (aggregate_id, event_type, payload)
	           VALUES ($1, $2, $3)`

	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal sale event payload: %w", err)
	}
	if _, obErr := dbtx.ExecContext(ctx, outbox, t.ID.String(), saleCompletedEventType, payload); obErr != nil {
		return fmt.Errorf("insert sale event: %w", obErr)
	}

	if err := dbtx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *Repository) GetTransactionByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT id, created_at, subtotal, tax_amount, grand_total, amount_received, change_amount, items
	          FROM transactions WHERE id = $1`

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query transaction by id: %w", err)
	}
	return t, nil
}

func (r *Repository) ListTransactions(ctx context.Context) ([]*domain.Transaction, error) {
	query := `SELECT id, created_at, subtotal, tax_amount, grand_total, amount_received, change_amount, items
	          FROM transactions ORDER BY created_at DESC`

	return r.queryTransactions(ctx, query)
}

// ListTransactionsByDateRange returns transactions created in [from, to],
// newest first.
func (r *Repository) ListTransactionsByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Transaction, error) {
	query := `SELECT id, created_at, subtotal, tax_amount, grand_total, amount_received, change_amount, items
	          FROM transactions WHERE created_at >= $1 AND created_at <= $2
	          ORDER BY created_at DESC`

	return r.queryTransactions(ctx, query, from, to)
}

// SalesSummary aggregates all transactions in [from, to] into one row.
func (r *Repository) SalesSummary(ctx context.Context, from, to time.Time) (*domain.DailySales, error) {
	query := `SELECT COUNT(*),
	                 COALESCE(SUM(subtotal), 0),
	                 COALESCE(SUM(tax_amount), 0),
	                 COALESCE(SUM(grand_total), 0)
	          FROM transactions WHERE created_at >= $1 AND created_at <= $2`

	var s domain.DailySales
	err := r.db.QueryRowContext(ctx, query, from, to).Scan(
		&s.TotalTransactions,
		&s.TotalSubtotal,
		&s.TotalTax,
		&s.TotalGrandTotal,
	)
	if err != nil {
		return nil, fmt.Errorf("query sales summary: %w", err)
	}
	return &s, nil
}

// SalesByDay aggregates transactions in [from, to] grouped by calendar day,
// newest day first.
func (r *Repository) SalesByDay(ctx context.Context, from, to time.Time) ([]domain.DailySales, error) {
	query := `SELECT DATE(created_at)::text,
	                 COUNT(*),
	                 SUM(subtotal),
	                 SUM(tax_amount),
	                 SUM(grand_total)
	          FROM transactions WHERE created_at >= $1 AND created_at <= $2
	          GROUP BY DATE(created_at)
	          ORDER BY DATE(created_at) DESC`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("query sales by day: %w", err)
	}
	defer rows.Close()

	var report []domain.DailySales
	for rows.Next() {
		var s domain.DailySales
		if err := rows.Scan(&s.Date, &s.TotalTransactions, &s.TotalSubtotal, &s.TotalTax, &s.TotalGrandTotal); err != nil {
			return nil, fmt.Errorf("scan sales row: %w", err)
		}
		report = append(report, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return report, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var t domain.Transaction
	var itemsJSON []byte
	err := row.Scan(
		&t.ID,
		&t.CreatedAt,
		&t.Subtotal,
		&t.TaxAmount,
		&t.GrandTotal,
		&t.AmountReceived,
		&t.ChangeAmount,
		&itemsJSON,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &t.Items); err != nil {
		return nil, fmt.Errorf("unmarshal transaction items: %w", err)
	}
	return &t, nil
}

func (r *Repository) queryTransactions(ctx context.Context, query string, args ...any) ([]*domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return transactions, nil
}
