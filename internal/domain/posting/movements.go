// Package posting coordinates document posting: movement generation, stock
// control, and register recording inside a single transaction.
package posting

import (
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/entity"
)

// MovementSet collects register movements produced by one posting iteration.
type MovementSet struct {
	Stock []entity.StockMovement
}

// NewMovementSet creates an empty movement set.
func NewMovementSet() *MovementSet {
	return &MovementSet{
		Stock: make([]entity.StockMovement, 0),
	}
}

// AddStock appends a stock register movement.
func (m *MovementSet) AddStock(movement entity.StockMovement) {
	m.Stock = append(m.Stock, movement)
}

// IsEmpty reports whether the set contains no movements.
func (m *MovementSet) IsEmpty() bool {
	return len(m.Stock) == 0
}
