// Package paymentmethod provides the Payment Method catalog.
package paymentmethod

import (
	"context"

	"posadmin/internal/core/apperror"
	"posadmin/internal/core/entity"
)

// MethodType classifies how a payment settles.
type MethodType string

const (
	TypeCash         MethodType = "cash"
	TypeCard         MethodType = "card"
	TypeEWallet      MethodType = "ewallet"
	TypeBankTransfer MethodType = "bank_transfer"
)

// PaymentMethod represents a tender type accepted at the register.
type PaymentMethod struct {
	entity.Catalog

	Type MethodType `db:"type" json:"type"`

	// IsActive controls whether cashiers can select this method
	IsActive bool `db:"is_active" json:"isActive"`

	// RequiresReference forces a transaction reference (card slip, transfer id)
	RequiresReference bool `db:"requires_reference" json:"requiresReference"`
}

// NewPaymentMethod creates a new active PaymentMethod.
func NewPaymentMethod(code, name string, methodType MethodType) *PaymentMethod {
	return &PaymentMethod{
		Catalog:  entity.NewCatalog(code, name),
		Type:     methodType,
		IsActive: true,
	}
}

// Validate implements entity.Validatable interface.
func (m *PaymentMethod) Validate(ctx context.Context) error {
	if err := m.Catalog.Validate(ctx); err != nil {
		return err
	}
	switch m.Type {
	case TypeCash, TypeCard, TypeEWallet, TypeBankTransfer:
	default:
		return apperror.NewValidation("invalid payment method type").
			WithDetail("field", "type").
			WithDetail("value", string(m.Type))
	}
	return nil
}
