package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"posadmin/internal/core/id"
	"posadmin/internal/domain/catalogs/product"
	"posadmin/internal/infrastructure/storage/postgres"
)

const productTable = "cat_products"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*product.Product](
			txm,
			productTable,
			"product",
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
			true,
		),
	}
}

// GetByBarcode retrieves a product by its barcode.
func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*product.Product, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[product.Product]()...).
		From(productTable).
		Where(squirrel.Eq{"barcode": barcode}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	return r.FindOne(ctx, q)
}

// ListVariants returns all variants of a parent product.
func (r *ProductRepo) ListVariants(ctx context.Context, parentID id.ID) ([]*product.Product, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[product.Product]()...).
		From(productTable).
		Where(squirrel.Eq{"parent_id": parentID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("code ASC")

	return r.FindMany(ctx, q)
}
