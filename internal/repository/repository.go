// Package repository defines the persistence contracts used by services.
// Implementations live in subpackages (postgres) and contain no business logic.
// Missing rows are reported as sql.ErrNoRows.
package repository

import "errors"

var (
	// ErrDuplicate is returned when an insert or update violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrInsufficientStock is returned when a stock decrement would go below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrPromotionExhausted is returned when a promotion reached its usage limit.
	ErrPromotionExhausted = errors.New("promotion usage limit reached")
	// ErrReferenced is returned when a delete is blocked by rows that still reference the record.
	ErrReferenced = errors.New("record is still referenced")
	// ErrConflict is returned when a conditional update matched no row because the row changed.
	ErrConflict = errors.New("record was modified concurrently")
)

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}
