package model

import "github.com/google/uuid"

// Fixture ids, stable across restarts.
var (
	FenderID = uuid.MustParse("8903bfdd-d68f-4e95-8f6f-ee1757d93862")
	GibsonID = uuid.MustParse("58912e6e-d6d1-4bcc-8a68-3a889a1c0f84")
)

const FixtureEmail = "test@test.com"

// SeedCustomers returns the two demo customers a fresh store starts with.
// Project ids are generated on every call.
func SeedCustomers() []Customer {
	return []Customer{
		{
			ID:           FenderID,
			CompanyName:  "Fender",
			EmailAddress: FixtureEmail,
			Projects: []Project{
				{ID: uuid.New(), ProjectName: "Stratocaster", CustomerID: FenderID},
				{ID: uuid.New(), ProjectName: "Telecaster", CustomerID: GibsonID},
			},
		},
		{
			ID:           GibsonID,
			CompanyName:  "Gibson",
			EmailAddress: FixtureEmail,
			Projects: []Project{
				{ID: uuid.New(), ProjectName: "LesPaul", CustomerID: FenderID},
				{ID: uuid.New(), ProjectName: "SG", CustomerID: GibsonID},
			},
		},
	}
}
