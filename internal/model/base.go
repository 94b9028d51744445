package model

import (
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	// Version is bumped on every successful update so concurrent writers
	// to the same record cannot silently overwrite each other.
	Version int64 `json:"version" db:"version"`
}

// Meta exposes the embedded Base so stores can manage ids, timestamps and
// versions without knowing the concrete record type.
func (b *Base) Meta() *Base { return b }

// Pagination represents common pagination parameters
type Pagination struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"page_size" form:"page_size"`
}
