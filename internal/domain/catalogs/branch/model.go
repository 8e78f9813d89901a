// Package branch provides the Branch catalog. A branch is a physical
// store location; stock quantities are tracked per (product, branch).
package branch

import (
	"context"

	"posadmin/internal/core/apperror"
	"posadmin/internal/core/entity"
)

// Branch represents one store location.
type Branch struct {
	entity.Catalog

	// Address is the street address shown on receipts
	Address *string `db:"address" json:"address,omitempty"`

	// Phone is the contact number
	Phone *string `db:"phone" json:"phone,omitempty"`

	// IsActive controls whether the branch can take sales and stock
	IsActive bool `db:"is_active" json:"isActive"`

	// IsDefault marks the branch preselected in the UI
	IsDefault bool `db:"is_default" json:"isDefault"`
}

// NewBranch creates a new active Branch.
func NewBranch(code, name string) *Branch {
	return &Branch{
		Catalog:  entity.NewCatalog(code, name),
		IsActive: true,
	}
}

// Validate implements entity.Validatable interface.
func (b *Branch) Validate(ctx context.Context) error {
	if err := b.Catalog.Validate(ctx); err != nil {
		return err
	}
	if b.Phone != nil && len(*b.Phone) > 32 {
		return apperror.NewValidation("phone is too long").
			WithDetail("field", "phone")
	}
	return nil
}
