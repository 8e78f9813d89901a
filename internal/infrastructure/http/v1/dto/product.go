package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"posadmin/internal/core/apperror"
	"posadmin/internal/core/id"
	"posadmin/internal/core/types"
	"posadmin/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// StockSeedRequest is one per-branch starting stock line.
type StockSeedRequest struct {
	BranchID        string         `json:"branchId" binding:"required"`
	InitialQuantity types.Quantity `json:"initialQuantity"`
	ReorderLevel    types.Quantity `json:"reorderLevel"`
}

// ReorderLevelRequest is one per-branch reorder level line.
type ReorderLevelRequest struct {
	BranchID     string         `json:"branchId" binding:"required"`
	ReorderLevel types.Quantity `json:"reorderLevel"`
}

// CreateProductRequest is the request body for creating a product.
// InitialStock seeds per-branch quantities at creation time.
type CreateProductRequest struct {
	SKU          string             `json:"sku" binding:"required"`
	Name         string             `json:"name" binding:"required"`
	Barcode      *string            `json:"barcode"`
	Description  *string            `json:"description"`
	CategoryID   *string            `json:"categoryId"`
	UnitID       *string            `json:"unitId"`
	Price        decimal.Decimal    `json:"price"`
	Cost         decimal.Decimal    `json:"cost"`
	IsActive     *bool              `json:"isActive"`
	IsForSale    *bool              `json:"isForSale"`
	ParentID     *string            `json:"parentId"`
	VariantAttrs product.Attributes `json:"variantAttrs"`
	InitialStock []StockSeedRequest `json:"initialStock"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() (*product.Product, error) {
	categoryID, err := optionalID(r.CategoryID)
	if err != nil {
		return nil, apperror.NewValidation("invalid categoryId format")
	}
	unitID, err := optionalID(r.UnitID)
	if err != nil {
		return nil, apperror.NewValidation("invalid unitId format")
	}
	parentID, err := optionalID(r.ParentID)
	if err != nil {
		return nil, apperror.NewValidation("invalid parentId format")
	}

	p := product.NewProduct(r.SKU, r.Name)
	p.Barcode = r.Barcode
	p.Description = r.Description
	p.CategoryID = categoryID
	p.UnitID = unitID
	p.Price = r.Price
	p.Cost = r.Cost
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	if r.IsForSale != nil {
		p.IsForSale = *r.IsForSale
	}
	p.ParentID = parentID
	p.VariantAttrs = r.VariantAttrs
	return p, nil
}

// Seeds converts the initial stock lines to domain seeds.
func (r *CreateProductRequest) Seeds() ([]product.StockSeed, error) {
	seeds := make([]product.StockSeed, 0, len(r.InitialStock))
	for _, line := range r.InitialStock {
		branchID, err := id.Parse(line.BranchID)
		if err != nil {
			return nil, apperror.NewValidation("invalid branchId format").
				WithDetail("branch_id", line.BranchID)
		}
		seeds = append(seeds, product.StockSeed{
			BranchID:        branchID,
			InitialQuantity: line.InitialQuantity,
			ReorderLevel:    line.ReorderLevel,
		})
	}
	return seeds, nil
}

// UpdateProductRequest is the request body for updating a product.
// ReorderLevels upserts per-branch restocking thresholds.
type UpdateProductRequest struct {
	SKU           string                `json:"sku" binding:"required"`
	Name          string                `json:"name" binding:"required"`
	Barcode       *string               `json:"barcode"`
	Description   *string               `json:"description"`
	CategoryID    *string               `json:"categoryId"`
	UnitID        *string               `json:"unitId"`
	Price         decimal.Decimal       `json:"price"`
	Cost          decimal.Decimal       `json:"cost"`
	IsActive      bool                  `json:"isActive"`
	IsForSale     bool                  `json:"isForSale"`
	ParentID      *string               `json:"parentId"`
	VariantAttrs  product.Attributes    `json:"variantAttrs"`
	ReorderLevels []ReorderLevelRequest `json:"reorderLevels"`
	Version       int                   `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) error {
	categoryID, err := optionalID(r.CategoryID)
	if err != nil {
		return apperror.NewValidation("invalid categoryId format")
	}
	unitID, err := optionalID(r.UnitID)
	if err != nil {
		return apperror.NewValidation("invalid unitId format")
	}
	parentID, err := optionalID(r.ParentID)
	if err != nil {
		return apperror.NewValidation("invalid parentId format")
	}

	p.Code = r.SKU
	p.Name = r.Name
	p.Barcode = r.Barcode
	p.Description = r.Description
	p.CategoryID = categoryID
	p.UnitID = unitID
	p.Price = r.Price
	p.Cost = r.Cost
	p.IsActive = r.IsActive
	p.IsForSale = r.IsForSale
	p.ParentID = parentID
	p.VariantAttrs = r.VariantAttrs
	p.Version = r.Version
	return nil
}

// Levels converts the reorder level lines to domain specs.
func (r *UpdateProductRequest) Levels() ([]product.ReorderSpec, error) {
	specs := make([]product.ReorderSpec, 0, len(r.ReorderLevels))
	for _, line := range r.ReorderLevels {
		branchID, err := id.Parse(line.BranchID)
		if err != nil {
			return nil, apperror.NewValidation("invalid branchId format").
				WithDetail("branch_id", line.BranchID)
		}
		specs = append(specs, product.ReorderSpec{
			BranchID:     branchID,
			ReorderLevel: line.ReorderLevel,
		})
	}
	return specs, nil
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	ID           string             `json:"id"`
	SKU          string             `json:"sku"`
	Name         string             `json:"name"`
	Barcode      *string            `json:"barcode,omitempty"`
	Description  *string            `json:"description,omitempty"`
	CategoryID   *string            `json:"categoryId,omitempty"`
	UnitID       *string            `json:"unitId,omitempty"`
	Price        decimal.Decimal    `json:"price"`
	Cost         decimal.Decimal    `json:"cost"`
	IsActive     bool               `json:"isActive"`
	IsForSale    bool               `json:"isForSale"`
	ParentID     *string            `json:"parentId,omitempty"`
	VariantAttrs product.Attributes `json:"variantAttrs,omitempty"`
	DeletionMark bool               `json:"deletionMark"`
	Version      int                `json:"version"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:           p.ID.String(),
		SKU:          p.Code,
		Name:         p.Name,
		Barcode:      p.Barcode,
		Description:  p.Description,
		CategoryID:   idString(p.CategoryID),
		UnitID:       idString(p.UnitID),
		Price:        p.Price,
		Cost:         p.Cost,
		IsActive:     p.IsActive,
		IsForSale:    p.IsForSale,
		ParentID:     idString(p.ParentID),
		VariantAttrs: p.VariantAttrs,
		DeletionMark: p.DeletionMark,
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
