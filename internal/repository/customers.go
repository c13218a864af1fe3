package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmehdipour/customers-api/internal/model"
)

// CustomersRepository stores customers with their projects.
//
// GetByID returns (nil, nil) when the id is unknown. Update and DeleteByID of
// an unknown id are no-ops.
type CustomersRepository interface {
	List(ctx context.Context) ([]model.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	Add(ctx context.Context, c model.Customer) error
	Update(ctx context.Context, id uuid.UUID, c model.Customer) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
