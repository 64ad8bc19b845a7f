// Package users implements the simulated user table: one record per
// registered account, stored in the key/value layer under "user_<email>"
// keys, the same scheme the original app used for browser storage.
//
// Password hashes never leave this package except through Record, which is
// only handed to the session store (the authentication boundary).
package users

import (
	"context"

	"github.com/avoronov/blogkeeper/internal/models"
)

// Record is a stored account. PasswordHash is a bcrypt hash.
type Record struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash []byte `json:"passwordHash"`
}

// User returns the record as the public user shape, with password
// material stripped.
func (r *Record) User() models.User {
	return models.User{ID: r.ID, Email: r.Email, Name: r.Name}
}

// Repository describes the account operations the session store needs.
type Repository interface {
	// GetByEmail returns the record for email, or common.ErrAccountNotFound.
	GetByEmail(ctx context.Context, email string) (*Record, error)

	// Create stores a new record, or returns common.ErrAccountExists when
	// the email is already taken.
	Create(ctx context.Context, rec *Record) error
}
