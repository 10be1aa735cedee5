package store

import (
	"context"
	"slices"
	"sync"

	"github.com/jlowell/salesdw/internal/entity"
)

// Memory is an in-process Table for tests and single-node runs. Reads and
// writes copy the backing slice so callers can never alias store state.
type Memory[T any] struct {
	mu   sync.RWMutex
	rows []T
}

// NewMemory returns an empty in-memory table.
func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{}
}

// ReadAll returns a copy of the current snapshot in insertion order.
func (m *Memory[T]) ReadAll(_ context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.rows), nil
}

// ReplaceAll swaps the snapshot for a copy of rows.
func (m *Memory[T]) ReplaceAll(_ context.Context, rows []T) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = slices.Clone(rows)
	return int64(len(rows)), nil
}

// NewMemoryRaw builds a raw layer backed entirely by in-memory tables.
func NewMemoryRaw() Raw {
	return Raw{
		CustomerProfiles: NewMemory[entity.RawCustomerProfile](),
		ProductCatalog:   NewMemory[entity.RawProductCatalog](),
		SalesItems:       NewMemory[entity.RawSalesItem](),
		Demographics:     NewMemory[entity.RawDemographics](),
		Locations:        NewMemory[entity.RawLocation](),
		Categories:       NewMemory[entity.RawCategory](),
	}
}

// NewMemoryCleansed builds a cleansed layer backed by in-memory tables.
func NewMemoryCleansed() Cleansed {
	return Cleansed{
		Customers:    NewMemory[entity.Customer](),
		Products:     NewMemory[entity.Product](),
		SalesItems:   NewMemory[entity.SalesItem](),
		Demographics: NewMemory[entity.Demographics](),
		Locations:    NewMemory[entity.Location](),
		Categories:   NewMemory[entity.Category](),
	}
}

// NewMemoryDimensional builds a dimensional layer backed by in-memory tables.
func NewMemoryDimensional() Dimensional {
	return Dimensional{
		Customers: NewMemory[entity.CustomerDim](),
		Products:  NewMemory[entity.ProductDim](),
		Sales:     NewMemory[entity.SalesFact](),
	}
}
