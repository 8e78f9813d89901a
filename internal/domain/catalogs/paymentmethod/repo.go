package paymentmethod

import (
	"posadmin/internal/domain"
)

// Repository defines the interface for PaymentMethod persistence.
type Repository interface {
	domain.CatalogRepository[*PaymentMethod]
}
