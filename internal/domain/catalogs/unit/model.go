// Package unit provides the Unit of Measure catalog.
package unit

import (
	"context"

	"posadmin/internal/core/apperror"
	"posadmin/internal/core/entity"
)

// Unit represents a unit of measure (pcs, kg, box).
type Unit struct {
	entity.Catalog

	// Abbreviation is the short form printed on receipts (e.g. "kg")
	Abbreviation string `db:"abbreviation" json:"abbreviation"`

	// AllowFractions permits non-integer quantities (weighed goods)
	AllowFractions bool `db:"allow_fractions" json:"allowFractions"`
}

// NewUnit creates a new Unit.
func NewUnit(code, name, abbreviation string) *Unit {
	return &Unit{
		Catalog:      entity.NewCatalog(code, name),
		Abbreviation: abbreviation,
	}
}

// Validate implements entity.Validatable interface.
func (u *Unit) Validate(ctx context.Context) error {
	if err := u.Catalog.Validate(ctx); err != nil {
		return err
	}
	if u.Abbreviation == "" {
		return apperror.NewValidation("abbreviation is required").
			WithDetail("field", "abbreviation")
	}
	return nil
}
