// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record behind every category and list. It is created
// once at signup and only ever read afterwards.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Username     string    // Unique display handle chosen at signup.
	Email        string    // The user's login identifier, unique across accounts.
	PasswordHash string    // Bcrypt hash of the signup password. Never serialized to clients.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this record.
}
