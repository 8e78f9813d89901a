// Package product provides the Product catalog: sellable items with
// pricing, category/unit references and optional variants.
package product

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"posadmin/internal/core/apperror"
	"posadmin/internal/core/entity"
	"posadmin/internal/core/id"
	"posadmin/internal/core/types"
)

// Attributes holds variant axes like size or color, stored as JSONB.
type Attributes map[string]string

// Value implements driver.Valuer.
func (a Attributes) Value() (driver.Value, error) {
	if len(a) == 0 {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *Attributes) Scan(src any) error {
	if src == nil {
		*a = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("unsupported attributes source type %T", src)
	}
}

// Product represents a sellable item. Code carries the SKU and is unique.
// A variant references its parent via ParentID and carries the variant
// axes in VariantAttrs.
type Product struct {
	entity.Catalog

	// Barcode is the scannable code (EAN-13, etc.), unique when set
	Barcode *string `db:"barcode" json:"barcode,omitempty"`

	Description *string `db:"description" json:"description,omitempty"`

	// CategoryID is the reference to the product category
	CategoryID *id.ID `db:"category_id" json:"categoryId,omitempty"`

	// UnitID is the reference to the unit of measure
	UnitID *id.ID `db:"unit_id" json:"unitId,omitempty"`

	// Price is the selling price per unit
	Price types.Money `db:"price" json:"price"`

	// Cost is the purchase cost per unit, used for inventory valuation
	Cost types.Money `db:"cost" json:"cost"`

	// IsActive controls visibility in the back office
	IsActive bool `db:"is_active" json:"isActive"`

	// IsForSale controls visibility at the register
	IsForSale bool `db:"is_for_sale" json:"isForSale"`

	// ParentID links a variant to its parent product (nullable)
	ParentID *id.ID `db:"parent_id" json:"parentId,omitempty"`

	// VariantAttrs are the variant axes (e.g. size=L, color=red)
	VariantAttrs Attributes `db:"variant_attrs" json:"variantAttrs,omitempty"`
}

// NewProduct creates a new active Product. The code is the SKU.
func NewProduct(sku, name string) *Product {
	return &Product{
		Catalog:   entity.NewCatalog(sku, name),
		Price:     types.Money{},
		Cost:      types.Money{},
		IsActive:  true,
		IsForSale: true,
	}
}

// SKU returns the product code under its domain name.
func (p *Product) SKU() string {
	return p.Code
}

// IsVariant returns true if product belongs to a parent product.
func (p *Product) IsVariant() bool {
	return p.ParentID != nil
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}
	if p.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}
	if p.Cost.IsNegative() {
		return apperror.NewValidation("cost cannot be negative").
			WithDetail("field", "cost")
	}
	if p.ParentID != nil && *p.ParentID == p.ID {
		return apperror.NewValidation("product cannot be its own parent").
			WithDetail("field", "parentId")
	}
	if len(p.VariantAttrs) > 0 && p.ParentID == nil {
		return apperror.NewValidation("variant attributes require a parent product").
			WithDetail("field", "variantAttrs")
	}
	return nil
}
