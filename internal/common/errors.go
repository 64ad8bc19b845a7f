// Package common defines shared sentinel errors used across the stores,
// repositories, and the CLI. Callers should match them with errors.Is.
package common

import "errors"

var (
	// Auth errors.
	ErrAccountNotFound = errors.New("no account registered under this email")
	ErrWrongPassword   = errors.New("incorrect password")
	ErrAccountExists   = errors.New("an account with this email already exists")

	// Data errors.
	ErrNotFound  = errors.New("not found")
	ErrTransport = errors.New("transport failure")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
