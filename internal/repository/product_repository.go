package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/saifulohyr/riyadh-coffee-pos/internal/domain"
)

// GetProduct fetches one product by id. Catalog reads never lock rows; the
// race-closing re-check happens inside CreateTransaction.
func (r *Repository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT id, name, category, price, stock, description
	          FROM products WHERE id = $1`

	var p domain.Product
	var stock sql.NullInt64
	var description sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Category,
		&p.Price,
		&stock,
		&description,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product by id: %w", err)
	}

	if stock.Valid {
		p.Stock = &stock.Int64
	}
	p.Description = description.String
	return &p, nil
}

func (r *Repository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	query := `SELECT id, name, category, price, stock, description
	          FROM products ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		var p domain.Product
		var stock sql.NullInt64
		var description sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &stock, &description); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		if stock.Valid {
			p.Stock = &stock.Int64
		}
		p.Description = description.String
		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

// CreateProduct inserts a catalog entry and fills in the generated id.
// Used by seeding; admin edits are not part of this backend.
func (r *Repository) CreateProduct(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (name, category, price, stock, description)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`

	var stock sql.NullInt64
	if p.Stock != nil {
		stock = sql.NullInt64{Int64: *p.Stock, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		p.Name,
		p.Category,
		p.Price,
		stock,
		p.Description,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}
