package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLHealth answers readiness questions for a relational store through the
// raw connection pool, bypassing the ORM.
type SQLHealth struct {
	db *sqlx.DB
}

func NewSQLHealth(db *sqlx.DB) *SQLHealth {
	return &SQLHealth{db: db}
}

// CountCustomers returns the number of stored customers.
func (h *SQLHealth) CountCustomers(ctx context.Context) (int, error) {
	var n int
	if err := h.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM customers`); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

// Check fails when the connection is lost or the schema is missing.
func (h *SQLHealth) Check(ctx context.Context) error {
	_, err := h.CountCustomers(ctx)
	return err
}
