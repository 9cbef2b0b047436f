// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultUnit is the measurement unit assumed when a client submits an item
// without one.
const DefaultUnit = "pcs"

// Category is a named grouping of lists owned by one user. Category names are
// unique per owner, case-insensitively. Deleting a category removes every list
// that references it.
type Category struct {
	ID        uuid.UUID // The unique identifier for the category.
	UserID    uuid.UUID // The owning user. Every read and write is scoped by it.
	Name      string    // Display name, original casing preserved.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// List is a named collection of items. It belongs to exactly one category and
// one user, both set at creation and never reassigned. List names are unique
// per owner (exact match).
type List struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Name       string
	Items      []Item // Embedded; items are not addressable outside their list.
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Item is a single entry embedded in a list. Lowercase-trimmed item names are
// unique within a list regardless of unit; the persistence layer rejects any
// item set violating that.
type Item struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`      // Non-empty; stored with original casing.
	Quantity  float64   `json:"quantity"`  // Positive; defaults to 1.
	Unit      string    `json:"unit"`      // Defaults to DefaultUnit.
	Completed bool      `json:"completed"` // Checked-off flag.
}
