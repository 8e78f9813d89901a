package dto

import (
	"time"

	"posadmin/internal/domain/catalogs/paymentmethod"
)

// --- Request DTOs ---

// CreatePaymentMethodRequest is the request body for creating a payment method.
type CreatePaymentMethodRequest struct {
	Code              string                   `json:"code" binding:"required"`
	Name              string                   `json:"name" binding:"required"`
	Type              paymentmethod.MethodType `json:"type" binding:"required"`
	IsActive          *bool                    `json:"isActive"`
	RequiresReference bool                     `json:"requiresReference"`
}

// ToEntity converts DTO to domain entity.
func (r *CreatePaymentMethodRequest) ToEntity() *paymentmethod.PaymentMethod {
	m := paymentmethod.NewPaymentMethod(r.Code, r.Name, r.Type)
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	m.RequiresReference = r.RequiresReference
	return m
}

// UpdatePaymentMethodRequest is the request body for updating a payment method.
type UpdatePaymentMethodRequest struct {
	Code              string                   `json:"code" binding:"required"`
	Name              string                   `json:"name" binding:"required"`
	Type              paymentmethod.MethodType `json:"type" binding:"required"`
	IsActive          bool                     `json:"isActive"`
	RequiresReference bool                     `json:"requiresReference"`
	Version           int                      `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdatePaymentMethodRequest) ApplyTo(m *paymentmethod.PaymentMethod) {
	m.Code = r.Code
	m.Name = r.Name
	m.Type = r.Type
	m.IsActive = r.IsActive
	m.RequiresReference = r.RequiresReference
	m.Version = r.Version
}

// --- Response DTOs ---

// PaymentMethodResponse is the response body for a payment method.
type PaymentMethodResponse struct {
	ID                string                   `json:"id"`
	Code              string                   `json:"code"`
	Name              string                   `json:"name"`
	Type              paymentmethod.MethodType `json:"type"`
	IsActive          bool                     `json:"isActive"`
	RequiresReference bool                     `json:"requiresReference"`
	DeletionMark      bool                     `json:"deletionMark"`
	Version           int                      `json:"version"`
	CreatedAt         time.Time                `json:"createdAt"`
	UpdatedAt         time.Time                `json:"updatedAt"`
}

// FromPaymentMethod creates response DTO from domain entity.
func FromPaymentMethod(m *paymentmethod.PaymentMethod) *PaymentMethodResponse {
	return &PaymentMethodResponse{
		ID:                m.ID.String(),
		Code:              m.Code,
		Name:              m.Name,
		Type:              m.Type,
		IsActive:          m.IsActive,
		RequiresReference: m.RequiresReference,
		DeletionMark:      m.DeletionMark,
		Version:           m.Version,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
