package paymentmethod

import (
	"posadmin/internal/core/tx"
	"posadmin/internal/domain"
)

// Service provides business logic for the PaymentMethod catalog.
type Service struct {
	*domain.CatalogService[*PaymentMethod]
	repo Repository
}

// NewService creates a new PaymentMethod service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*PaymentMethod]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "payment method",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}
