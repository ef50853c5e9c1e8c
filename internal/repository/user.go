package repository

import (
	"context"
	"fmt"

	"github.com/hyjain/hyjain-api/internal/model"
)

// ListAccounts returns every account in the identity directory.
func (r *Repository) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	query := `
		SELECT id, email, COALESCE(display_name, ''), created_at
		FROM users
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*model.Account, 0)
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Email, &a.DisplayName, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}
