package model

import "time"

// Subscriber is a newsletter signup. Created once, never mutated.
type Subscriber struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
}
