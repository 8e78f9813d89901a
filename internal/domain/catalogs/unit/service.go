package unit

import (
	"posadmin/internal/core/tx"
	"posadmin/internal/domain"
)

// Service provides business logic for the Unit catalog.
type Service struct {
	*domain.CatalogService[*Unit]
	repo Repository
}

// NewService creates a new Unit service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Unit]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "unit",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}
