package models

import "time"

// AuthSession binds an opaque bearer token to a user for its lifetime.
type AuthSession struct {
	Token     string    `json:"-"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
