package product

import (
	"context"
	"fmt"

	"posadmin/internal/core/apperror"
	"posadmin/internal/core/id"
	"posadmin/internal/core/tx"
	"posadmin/internal/core/types"
	"posadmin/internal/domain"
	"posadmin/internal/domain/catalog/gateway"
	"posadmin/internal/domain/ledger"
)

// StockLedger is the slice of the ledger service products need for
// seeding initial stock and maintaining reorder levels.
type StockLedger interface {
	InitializeStock(ctx context.Context, productID, branchID id.ID, initialQuantity, reorderLevel types.Quantity) (ledger.StockRecord, error)
	SetReorderLevel(ctx context.Context, productID, branchID id.ID, level types.Quantity) error
}

// StockSeed is the per-branch starting stock supplied at product creation.
type StockSeed struct {
	BranchID        id.ID          `json:"branchId"`
	InitialQuantity types.Quantity `json:"initialQuantity"`
	ReorderLevel    types.Quantity `json:"reorderLevel"`
}

// ReorderSpec is a per-branch reorder level supplied at product update.
type ReorderSpec struct {
	BranchID     id.ID          `json:"branchId"`
	ReorderLevel types.Quantity `json:"reorderLevel"`
}

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo   Repository
	stocks StockLedger
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager, stocks StockLedger) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "product",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
		stocks:         stocks,
	}
}

// CreateWithStock creates the product and seeds its starting stock per
// branch. Seeding runs after the product row commits; each seed is its
// own atomic ledger operation.
func (s *Service) CreateWithStock(ctx context.Context, p *Product, seeds []StockSeed) error {
	if err := validateSeeds(seeds); err != nil {
		return err
	}

	if err := s.Create(ctx, p); err != nil {
		return err
	}

	for _, seed := range seeds {
		if _, err := s.stocks.InitializeStock(ctx, p.ID, seed.BranchID, seed.InitialQuantity, seed.ReorderLevel); err != nil {
			return fmt.Errorf("seed stock for branch %s: %w", seed.BranchID, err)
		}
	}
	return nil
}

// UpdateWithReorderLevels updates the product and upserts per-branch
// reorder levels. Branches without a stock record get one lazily with
// zero quantity.
func (s *Service) UpdateWithReorderLevels(ctx context.Context, p *Product, levels []ReorderSpec) error {
	seen := make(map[id.ID]bool, len(levels))
	for _, spec := range levels {
		if seen[spec.BranchID] {
			return apperror.NewValidation("duplicate branch in reorder levels").
				WithDetail("branch_id", spec.BranchID.String())
		}
		seen[spec.BranchID] = true
	}

	if err := s.Update(ctx, p); err != nil {
		return err
	}

	for _, spec := range levels {
		if err := s.stocks.SetReorderLevel(ctx, p.ID, spec.BranchID, spec.ReorderLevel); err != nil {
			return fmt.Errorf("set reorder level for branch %s: %w", spec.BranchID, err)
		}
	}
	return nil
}

// GetByBarcode retrieves a product by barcode.
func (s *Service) GetByBarcode(ctx context.Context, barcode string) (*Product, error) {
	p, err := s.repo.GetByBarcode(ctx, barcode)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", barcode)
		}
		return nil, err
	}
	return p, nil
}

// ListVariants returns all variants of a parent product.
func (s *Service) ListVariants(ctx context.Context, parentID id.ID) ([]*Product, error) {
	if _, err := s.GetByID(ctx, parentID); err != nil {
		return nil, err
	}
	return s.repo.ListVariants(ctx, parentID)
}

// GetProductInfo implements gateway.ProductReader.
func (s *Service) GetProductInfo(ctx context.Context, productID id.ID) (gateway.ProductInfo, error) {
	p, err := s.GetByID(ctx, productID)
	if err != nil {
		return gateway.ProductInfo{}, err
	}
	return gateway.ProductInfo{
		ID:   p.ID,
		SKU:  p.Code,
		Name: p.Name,
		Cost: p.Cost,
	}, nil
}

func validateSeeds(seeds []StockSeed) error {
	seen := make(map[id.ID]bool, len(seeds))
	for _, seed := range seeds {
		if seen[seed.BranchID] {
			return apperror.NewValidation("duplicate branch in stock seeds").
				WithDetail("branch_id", seed.BranchID.String())
		}
		seen[seed.BranchID] = true
		if seed.InitialQuantity.IsNegative() {
			return apperror.NewValidation("initial quantity must not be negative").
				WithDetail("branch_id", seed.BranchID.String())
		}
		if seed.ReorderLevel.IsNegative() {
			return apperror.NewValidation("reorder level must not be negative").
				WithDetail("branch_id", seed.BranchID.String())
		}
	}
	return nil
}
