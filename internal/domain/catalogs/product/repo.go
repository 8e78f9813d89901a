package product

import (
	"context"

	"posadmin/internal/core/id"
	"posadmin/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// GetByBarcode retrieves a product by its barcode.
	GetByBarcode(ctx context.Context, barcode string) (*Product, error)

	// ListVariants returns all variants of a parent product.
	ListVariants(ctx context.Context, parentID id.ID) ([]*Product, error)
}
