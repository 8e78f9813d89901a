package dto

import (
	"time"

	"posadmin/internal/core/apperror"
	"posadmin/internal/domain/catalogs/category"
)

// --- Request DTOs ---

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	ParentID    *string `json:"parentId"`
	Description *string `json:"description"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCategoryRequest) ToEntity() (*category.Category, error) {
	parentID, err := optionalID(r.ParentID)
	if err != nil {
		return nil, apperror.NewValidation("invalid parentId format")
	}

	c := category.NewCategory(r.Code, r.Name)
	c.ParentID = parentID
	c.Description = r.Description
	return c, nil
}

// UpdateCategoryRequest is the request body for updating a category.
type UpdateCategoryRequest struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	ParentID    *string `json:"parentId"`
	Description *string `json:"description"`
	Version     int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCategoryRequest) ApplyTo(c *category.Category) error {
	parentID, err := optionalID(r.ParentID)
	if err != nil {
		return apperror.NewValidation("invalid parentId format")
	}

	c.Code = r.Code
	c.Name = r.Name
	c.ParentID = parentID
	c.Description = r.Description
	c.Version = r.Version
	return nil
}

// --- Response DTOs ---

// CategoryResponse is the response body for a category.
type CategoryResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	ParentID     *string   `json:"parentId,omitempty"`
	Description  *string   `json:"description,omitempty"`
	DeletionMark bool      `json:"deletionMark"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FromCategory creates response DTO from domain entity.
func FromCategory(c *category.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:           c.ID.String(),
		Code:         c.Code,
		Name:         c.Name,
		ParentID:     idString(c.ParentID),
		Description:  c.Description,
		DeletionMark: c.DeletionMark,
		Version:      c.Version,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
