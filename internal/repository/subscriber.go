package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hyjain/hyjain-api/internal/model"
)

// CreateSubscriber records a newsletter signup.
// Repeat signups for the same address are stored as separate records.
func (r *Repository) CreateSubscriber(ctx context.Context, email string) (*model.Subscriber, error) {
	sub := &model.Subscriber{
		ID:           ulid.Make().String(),
		Email:        email,
		SubscribedAt: time.Now().UTC(),
	}

	query := `
		INSERT INTO subscribers (id, email, subscribed_at)
		VALUES ($1, $2, $3)
	`

	if _, err := r.pool.Exec(ctx, query, sub.ID, sub.Email, sub.SubscribedAt); err != nil {
		return nil, fmt.Errorf("failed to create subscriber: %w", err)
	}

	return sub, nil
}
