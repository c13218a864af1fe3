package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/jmehdipour/customers-api/internal/model"
)

// MemoryCustomersRepository keeps customers in an ordered slice.
type MemoryCustomersRepository struct {
	mu        sync.RWMutex
	customers []model.Customer
}

var _ CustomersRepository = (*MemoryCustomersRepository)(nil)

// NewMemoryCustomersRepository returns a store seeded with the fixture customers.
func NewMemoryCustomersRepository() *MemoryCustomersRepository {
	return NewMemoryCustomersRepositoryWith(model.SeedCustomers())
}

// NewMemoryCustomersRepositoryWith returns a store holding copies of seed.
func NewMemoryCustomersRepositoryWith(seed []model.Customer) *MemoryCustomersRepository {
	r := &MemoryCustomersRepository{customers: make([]model.Customer, 0, len(seed))}
	for _, c := range seed {
		r.customers = append(r.customers, c.Clone())
	}
	return r
}

func (r *MemoryCustomersRepository) List(_ context.Context) ([]model.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, c.Clone())
	}
	return out, nil
}

func (r *MemoryCustomersRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	c := r.customers[i].Clone()
	return &c, nil
}

func (r *MemoryCustomersRepository) Add(_ context.Context, c model.Customer) error {
	r.mu.Lock()
	r.customers = append(r.customers, c.Clone())
	r.mu.Unlock()
	return nil
}

func (r *MemoryCustomersRepository) Update(_ context.Context, id uuid.UUID, c model.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		c.ID = id
		r.customers[i] = c.Clone()
	}
	return nil
}

func (r *MemoryCustomersRepository) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		r.customers = slices.Delete(r.customers, i, i+1)
	}
	return nil
}

// indexOf must be called with mu held.
func (r *MemoryCustomersRepository) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(r.customers, func(c model.Customer) bool { return c.ID == id })
}
