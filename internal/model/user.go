// Package model defines domain entities for the application.
package model

import (
	"strings"
	"time"
)

// Account is a record in the identity directory.
type Account struct {
	ID          string
	Email       string
	DisplayName string
	CreatedAt   time.Time
}

// User is the read-only projection served by the users listing.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ToUser projects an account, falling back to the email local part for the name.
func (a *Account) ToUser() User {
	name := strings.TrimSpace(a.DisplayName)
	if name == "" {
		name = a.Email
		if at := strings.Index(name, "@"); at >= 0 {
			name = name[:at]
		}
	}
	return User{
		ID:    a.ID,
		Email: a.Email,
		Name:  name,
	}
}
