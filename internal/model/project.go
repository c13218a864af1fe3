package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is a named item owned by a customer. CustomerID is a back-reference
// and is not checked against existing customers.
type Project struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectName string    `gorm:"size:15" json:"projectName" validate:"max=15"`
	CustomerID  uuid.UUID `gorm:"type:varchar(36);index" json:"customerId"`
	Position    int       `gorm:"not null;default:0" json:"-"` // order within the owner
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
