package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"

	"github.com/hyjain/hyjain-api/internal/model"
)

// ErrProductNotFound is returned when updating a product that does not exist.
var ErrProductNotFound = errors.New("product not found")

// ListProducts returns every product in insertion order.
func (r *Repository) ListProducts(ctx context.Context) ([]*model.Product, error) {
	query := `
		SELECT id, data, created_at, updated_at
		FROM products
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]*model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// CreateProduct stores the fields verbatim under a newly assigned identifier.
func (r *Repository) CreateProduct(ctx context.Context, fields map[string]any) (*model.Product, error) {
	data, err := json.Marshal(model.ProductFields(fields))
	if err != nil {
		return nil, fmt.Errorf("failed to encode product: %w", err)
	}

	query := `
		INSERT INTO products (id, data, created_at, updated_at)
		VALUES ($1, $2::jsonb, $3, $3)
		RETURNING id, data, created_at, updated_at
	`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, ulid.Make().String(), string(data), time.Now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return p, nil
}

// UpdateProduct merges the supplied top-level fields into an existing product.
// Keys not present in fields are left untouched. Returns the merged record.
func (r *Repository) UpdateProduct(ctx context.Context, id string, fields map[string]any) (*model.Product, error) {
	data, err := json.Marshal(model.ProductFields(fields))
	if err != nil {
		return nil, fmt.Errorf("failed to encode product: %w", err)
	}

	query := `
		UPDATE products
		SET data = data || $2::jsonb, updated_at = $3
		WHERE id = $1
		RETURNING id, data, created_at, updated_at
	`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id, string(data), time.Now().UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return p, nil
}

// DeleteProduct removes a product. Deleting a missing id is not an error.
func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		p    model.Product
		data []byte
	)
	if err := row.Scan(&p.ID, &data, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}

	fields, err := decodeFields(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode product %s: %w", p.ID, err)
	}
	p.Fields = fields

	return &p, nil
}

// decodeFields keeps numbers as json.Number so stored values round-trip verbatim.
func decodeFields(data []byte) (map[string]any, error) {
	fields := make(map[string]any)
	if len(data) == 0 {
		return fields, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}
