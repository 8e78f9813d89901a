package dto

import (
	"time"

	"posadmin/internal/domain/catalogs/unit"
)

// --- Request DTOs ---

// CreateUnitRequest is the request body for creating a unit.
type CreateUnitRequest struct {
	Code           string `json:"code" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Abbreviation   string `json:"abbreviation" binding:"required"`
	AllowFractions bool   `json:"allowFractions"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateUnitRequest) ToEntity() *unit.Unit {
	u := unit.NewUnit(r.Code, r.Name, r.Abbreviation)
	u.AllowFractions = r.AllowFractions
	return u
}

// UpdateUnitRequest is the request body for updating a unit.
type UpdateUnitRequest struct {
	Code           string `json:"code" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Abbreviation   string `json:"abbreviation" binding:"required"`
	AllowFractions bool   `json:"allowFractions"`
	Version        int    `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateUnitRequest) ApplyTo(u *unit.Unit) {
	u.Code = r.Code
	u.Name = r.Name
	u.Abbreviation = r.Abbreviation
	u.AllowFractions = r.AllowFractions
	u.Version = r.Version
}

// --- Response DTOs ---

// UnitResponse is the response body for a unit.
type UnitResponse struct {
	ID             string    `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Abbreviation   string    `json:"abbreviation"`
	AllowFractions bool      `json:"allowFractions"`
	DeletionMark   bool      `json:"deletionMark"`
	Version        int       `json:"version"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FromUnit creates response DTO from domain entity.
func FromUnit(u *unit.Unit) *UnitResponse {
	return &UnitResponse{
		ID:             u.ID.String(),
		Code:           u.Code,
		Name:           u.Name,
		Abbreviation:   u.Abbreviation,
		AllowFractions: u.AllowFractions,
		DeletionMark:   u.DeletionMark,
		Version:        u.Version,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
