package dto

import (
	"time"

	"posadmin/internal/domain/catalogs/branch"
)

// --- Request DTOs ---

// CreateBranchRequest is the request body for creating a branch.
type CreateBranchRequest struct {
	Code      string  `json:"code" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	IsActive  *bool   `json:"isActive"`
	IsDefault bool    `json:"isDefault"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateBranchRequest) ToEntity() *branch.Branch {
	b := branch.NewBranch(r.Code, r.Name)
	b.Address = r.Address
	b.Phone = r.Phone
	if r.IsActive != nil {
		b.IsActive = *r.IsActive
	}
	b.IsDefault = r.IsDefault
	return b
}

// UpdateBranchRequest is the request body for updating a branch.
type UpdateBranchRequest struct {
	Code      string  `json:"code" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	IsActive  bool    `json:"isActive"`
	IsDefault bool    `json:"isDefault"`
	Version   int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateBranchRequest) ApplyTo(b *branch.Branch) {
	b.Code = r.Code
	b.Name = r.Name
	b.Address = r.Address
	b.Phone = r.Phone
	b.IsActive = r.IsActive
	b.IsDefault = r.IsDefault
	b.Version = r.Version
}

// --- Response DTOs ---

// BranchResponse is the response body for a branch.
type BranchResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Address      *string   `json:"address,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	IsActive     bool      `json:"isActive"`
	IsDefault    bool      `json:"isDefault"`
	DeletionMark bool      `json:"deletionMark"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FromBranch creates response DTO from domain entity.
func FromBranch(b *branch.Branch) *BranchResponse {
	return &BranchResponse{
		ID:           b.ID.String(),
		Code:         b.Code,
		Name:         b.Name,
		Address:      b.Address,
		Phone:        b.Phone,
		IsActive:     b.IsActive,
		IsDefault:    b.IsDefault,
		DeletionMark: b.DeletionMark,
		Version:      b.Version,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
