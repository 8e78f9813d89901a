// Package category provides the product Category catalog.
package category

import (
	"context"

	"posadmin/internal/core/apperror"
	"posadmin/internal/core/entity"
	"posadmin/internal/core/id"
)

// Category groups products for navigation and reporting. Categories form
// a tree via ParentID.
type Category struct {
	entity.Catalog

	// ParentID for hierarchical categories (nullable)
	ParentID *id.ID `db:"parent_id" json:"parentId,omitempty"`

	Description *string `db:"description" json:"description,omitempty"`
}

// NewCategory creates a new Category.
func NewCategory(code, name string) *Category {
	return &Category{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable interface.
func (c *Category) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}
	if c.ParentID != nil && *c.ParentID == c.ID {
		return apperror.NewValidation("category cannot be its own parent").
			WithDetail("field", "parentId")
	}
	return nil
}

// IsRoot returns true if category has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}
