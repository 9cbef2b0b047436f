package model

import (
	"time"

	"github.com/google/uuid"
)

// CategoryModel mirrors the 'categories' table. NameLower backs the case-insensitive
// uniqueness rule so "Groceries" and "groceries" cannot coexist for one user.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_categories_user_name_lower"`
	Name      string    `gorm:"type:varchar(100);not null"`
	NameLower string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_user_name_lower"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// ItemRecord is the JSON shape of a single list item inside the lists.items column.
type ItemRecord struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	Completed bool      `json:"completed"`
}

// ListModel mirrors the 'lists' table. Items live in a single jsonb column so every
// item mutation is one row write and the list document stays internally consistent.
type ListModel struct {
	ID         uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID     uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_lists_user_name"`
	CategoryID uuid.UUID    `gorm:"type:uuid;not null;index"`
	Name       string       `gorm:"type:varchar(100);not null;uniqueIndex:idx_lists_user_name"`
	Items      []ItemRecord `gorm:"serializer:json;type:jsonb;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (ListModel) TableName() string {
	return "lists"
}
