package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jmehdipour/customers-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runContractTests checks the behaviour every backend shares. newRepo must
// return a store holding exactly the fixture customers.
func runContractTests(t *testing.T, newRepo func(t *testing.T) CustomersRepository) {
	ctx := context.Background()

	t.Run("lists fixture customers in order", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, model.FenderID, got[0].ID)
		assert.Equal(t, "Fender", got[0].CompanyName)
		assert.Equal(t, model.GibsonID, got[1].ID)
		assert.Equal(t, "Gibson", got[1].CompanyName)

		require.Len(t, got[0].Projects, 2)
		assert.Equal(t, "Stratocaster", got[0].Projects[0].ProjectName)
		assert.Equal(t, "Telecaster", got[0].Projects[1].ProjectName)
	})

	t.Run("gets by id", func(t *testing.T) {
		repo := newRepo(t)

		c, err := repo.GetByID(ctx, model.GibsonID)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "Gibson", c.CompanyName)
		assert.Equal(t, model.FixtureEmail, c.EmailAddress)
		assert.Len(t, c.Projects, 2)
	})

	t.Run("unknown id returns nil", func(t *testing.T) {
		repo := newRepo(t)

		c, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("adds at the end", func(t *testing.T) {
		repo := newRepo(t)
		added := model.Customer{
			ID:           uuid.New(),
			CompanyName:  "Ibanez",
			EmailAddress: "hello@ibanez.com",
			Projects:     []model.Project{},
		}
		require.NoError(t, repo.Add(ctx, added))

		got, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, added.ID, got[2].ID)

		c, err := repo.GetByID(ctx, added.ID)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "Ibanez", c.CompanyName)
		assert.Equal(t, "hello@ibanez.com", c.EmailAddress)
		assert.NotNil(t, c.Projects)
		assert.Empty(t, c.Projects)
	})

	t.Run("updates name and projects", func(t *testing.T) {
		repo := newRepo(t)
		existing, err := repo.GetByID(ctx, model.FenderID)
		require.NoError(t, err)
		require.NotNil(t, existing)

		updated := existing.WithChanges(model.Customer{
			CompanyName: "Fender Musical",
			Projects: []model.Project{
				{ID: uuid.New(), ProjectName: "Jazzmaster", CustomerID: model.FenderID},
				{ID: uuid.New(), ProjectName: "Jaguar", CustomerID: model.FenderID},
				{ID: uuid.New(), ProjectName: "Mustang", CustomerID: model.FenderID},
			},
		})
		require.NoError(t, repo.Update(ctx, model.FenderID, updated))

		c, err := repo.GetByID(ctx, model.FenderID)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "Fender Musical", c.CompanyName)
		assert.Equal(t, model.FixtureEmail, c.EmailAddress)
		require.Len(t, c.Projects, 3)
		assert.Equal(t, "Jazzmaster", c.Projects[0].ProjectName)
		assert.Equal(t, "Mustang", c.Projects[2].ProjectName)

		got, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, model.FenderID, got[0].ID)
	})

	t.Run("update may reuse projects of another customer", func(t *testing.T) {
		repo := newRepo(t)
		fender, err := repo.GetByID(ctx, model.FenderID)
		require.NoError(t, err)
		require.NotNil(t, fender)
		gibson, err := repo.GetByID(ctx, model.GibsonID)
		require.NoError(t, err)
		require.NotNil(t, gibson)

		require.NoError(t, repo.Update(ctx, model.GibsonID, gibson.WithChanges(model.Customer{
			CompanyName: "Gibson",
			Projects:    fender.Projects,
		})))

		c, err := repo.GetByID(ctx, model.GibsonID)
		require.NoError(t, err)
		require.NotNil(t, c)
		require.Len(t, c.Projects, 2)
		assert.Equal(t, "Stratocaster", c.Projects[0].ProjectName)
		assert.Equal(t, "Telecaster", c.Projects[1].ProjectName)

		f, err := repo.GetByID(ctx, model.FenderID)
		require.NoError(t, err)
		require.NotNil(t, f)
		assert.Equal(t, fender.Projects, f.Projects)
	})

	t.Run("update with repeated project ids", func(t *testing.T) {
		repo := newRepo(t)
		existing, err := repo.GetByID(ctx, model.FenderID)
		require.NoError(t, err)
		require.NotNil(t, existing)

		dup := uuid.New()
		require.NoError(t, repo.Update(ctx, model.FenderID, existing.WithChanges(model.Customer{
			CompanyName: "Fender",
			Projects: []model.Project{
				{ID: dup, ProjectName: "Jaguar"},
				{ID: dup, ProjectName: "Mustang"},
			},
		})))

		c, err := repo.GetByID(ctx, model.FenderID)
		require.NoError(t, err)
		require.NotNil(t, c)
		require.Len(t, c.Projects, 2)
		assert.Equal(t, "Jaguar", c.Projects[0].ProjectName)
		assert.Equal(t, "Mustang", c.Projects[1].ProjectName)
	})

	t.Run("update of unknown id is a no-op", func(t *testing.T) {
		repo := newRepo(t)
		id := uuid.New()

		require.NoError(t, repo.Update(ctx, id, model.Customer{ID: id, CompanyName: "Nobody Inc"}))

		c, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, c)

		got, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("deletes by id", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.DeleteByID(ctx, model.FenderID))

		c, err := repo.GetByID(ctx, model.FenderID)
		require.NoError(t, err)
		assert.Nil(t, c)

		got, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, model.GibsonID, got[0].ID)
	})

	t.Run("delete of unknown id is a no-op", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.DeleteByID(ctx, uuid.New()))

		got, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("returned values are copies", func(t *testing.T) {
		repo := newRepo(t)
		c, err := repo.GetByID(ctx, model.FenderID)
		require.NoError(t, err)
		require.NotNil(t, c)
		c.CompanyName = "Mutated"
		c.Projects[0].ProjectName = "Mutated"

		again, err := repo.GetByID(ctx, model.FenderID)
		require.NoError(t, err)
		assert.Equal(t, "Fender", again.CompanyName)
		assert.Equal(t, "Stratocaster", again.Projects[0].ProjectName)
	})
}

// seed adds the fixture customers through the repository itself.
func seed(t *testing.T, repo CustomersRepository) {
	t.Helper()
	for _, c := range model.SeedCustomers() {
		require.NoError(t, repo.Add(context.Background(), c))
	}
}
