package models

import "time"

// User is an account record in the internal store. PasswordHash is a bcrypt
// hash and never serialized to API responses.
type User struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `json:"modified_at"`
}

// SystemKeyValue is a system-level configuration entry (e.g. API keys set at
// runtime rather than via config file).
type SystemKeyValue struct {
	Key        string    `json:"key"`
	Value      string    `json:"value"`
	ModifiedAt time.Time `json:"modified_at"`
}
