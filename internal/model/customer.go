package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a company account. It owns its projects.
type Customer struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	CompanyName  string    `gorm:"size:200;not null" json:"companyName" validate:"required,min=5"`
	EmailAddress string    `gorm:"size:255" json:"emailAddress"`
	Projects     []Project `gorm:"foreignKey:CustomerID" json:"projects" validate:"dive"`
	CreatedAt    time.Time `json:"-"`
}

// BeforeCreate assigns an id when none was set.
func (c *Customer) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Clone returns a deep copy of c.
func (c Customer) Clone() Customer {
	c.Projects = cloneProjects(c.Projects)
	return c
}

// WithChanges returns a copy of c with the company name and projects taken from
// changes. ID and email address are kept.
func (c Customer) WithChanges(changes Customer) Customer {
	return Customer{
		ID:           c.ID,
		CompanyName:  changes.CompanyName,
		EmailAddress: c.EmailAddress,
		Projects:     cloneProjects(changes.Projects),
		CreatedAt:    c.CreatedAt,
	}
}

// EnsureProjectIDs gives every project without an id a fresh one.
func (c *Customer) EnsureProjectIDs() {
	for i := range c.Projects {
		if c.Projects[i].ID == uuid.Nil {
			c.Projects[i].ID = uuid.New()
		}
	}
}

func cloneProjects(in []Project) []Project {
	if in == nil {
		return []Project{}
	}
	out := make([]Project, len(in))
	copy(out, in)
	return out
}
