package branch

import (
	"context"

	"posadmin/internal/core/tx"
	"posadmin/internal/domain"
)

// Service provides business logic for the Branch catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Branch]
	repo Repository
}

// NewService creates a new Branch service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Branch]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "branch",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.prepareDefault)
	base.Hooks().OnBeforeUpdate(svc.prepareDefault)

	return svc
}

// prepareDefault keeps at most one default branch.
func (s *Service) prepareDefault(ctx context.Context, b *Branch) error {
	if b.IsDefault {
		return s.repo.ClearDefault(ctx)
	}
	return nil
}
