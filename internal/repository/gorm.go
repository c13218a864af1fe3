package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmehdipour/customers-api/internal/model"
	"gorm.io/gorm"
)

// GormCustomersRepository stores customers in a relational database through gorm.
// Projects live in their own table keyed by customer_id, so a stored project
// always belongs to the customer it was saved under.
type GormCustomersRepository struct {
	db *gorm.DB
}

var _ CustomersRepository = (*GormCustomersRepository)(nil)

func NewGormCustomersRepository(db *gorm.DB) *GormCustomersRepository {
	return &GormCustomersRepository{db: db}
}

// Migrate creates the customers and projects tables when missing.
func (r *GormCustomersRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&model.Customer{}, &model.Project{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func byPosition(db *gorm.DB) *gorm.DB { return db.Order("position") }

func (r *GormCustomersRepository) List(ctx context.Context) ([]model.Customer, error) {
	var out []model.Customer
	err := r.db.WithContext(ctx).
		Preload("Projects", byPosition).
		Order("created_at, id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	if out == nil {
		out = []model.Customer{}
	}
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out, nil
}

func (r *GormCustomersRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).
		Preload("Projects", byPosition).
		Take(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get customer %s: %w", id, err)
	}
	c = c.Clone()
	return &c, nil
}

func (r *GormCustomersRepository) Add(ctx context.Context, c model.Customer) error {
	c = c.Clone()
	for i := range c.Projects {
		c.Projects[i].Position = i
	}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return fmt.Errorf("insert customer %s: %w", c.ID, err)
	}
	return nil
}

// Update sets the company name and replaces the project rows in one transaction.
func (r *GormCustomersRepository) Update(ctx context.Context, id uuid.UUID, c model.Customer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Customer
		err := tx.Select("id").Take(&existing, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("lookup customer %s: %w", id, err)
		}

		if err := tx.Model(&model.Customer{}).
			Where("id = ?", id).
			Update("company_name", c.CompanyName).Error; err != nil {
			return fmt.Errorf("update customer %s: %w", id, err)
		}

		if err := tx.Where("customer_id = ?", id).Delete(&model.Project{}).Error; err != nil {
			return fmt.Errorf("clear projects of %s: %w", id, err)
		}
		if len(c.Projects) == 0 {
			return nil
		}

		projects, err := ownProjects(tx, id, c.Projects)
		if err != nil {
			return err
		}
		if err := tx.Create(&projects).Error; err != nil {
			return fmt.Errorf("insert projects of %s: %w", id, err)
		}
		return nil
	})
}

func (r *GormCustomersRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&model.Project{}).Error; err != nil {
			return fmt.Errorf("delete projects of %s: %w", id, err)
		}
		if err := tx.Where("id = ?", id).Delete(&model.Customer{}).Error; err != nil {
			return fmt.Errorf("delete customer %s: %w", id, err)
		}
		return nil
	})
}

// ownProjects prepares the replacement rows of customer id. Project ids that
// are repeated in the body or still stored under another customer get a fresh
// id. Must run after the customer's own rows were deleted.
func ownProjects(tx *gorm.DB, id uuid.UUID, in []model.Project) ([]model.Project, error) {
	ids := make([]string, 0, len(in))
	for _, p := range in {
		if p.ID != uuid.Nil {
			ids = append(ids, p.ID.String())
		}
	}

	var taken []string
	if len(ids) > 0 {
		if err := tx.Model(&model.Project{}).Where("id IN ?", ids).Pluck("id", &taken).Error; err != nil {
			return nil, fmt.Errorf("lookup project ids of %s: %w", id, err)
		}
	}
	used := make(map[uuid.UUID]bool, len(in)+len(taken))
	for _, t := range taken {
		if tid, err := uuid.Parse(t); err == nil {
			used[tid] = true
		}
	}

	out := make([]model.Project, len(in))
	for i, p := range in {
		if p.ID == uuid.Nil || used[p.ID] {
			p.ID = uuid.New()
		}
		used[p.ID] = true
		p.CustomerID = id
		p.Position = i
		out[i] = p
	}
	return out, nil
}
