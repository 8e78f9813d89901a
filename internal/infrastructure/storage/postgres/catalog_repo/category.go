package catalog_repo

import (
	"posadmin/internal/domain/catalogs/category"
	"posadmin/internal/infrastructure/storage/postgres"
)

const categoryTable = "cat_categories"

// CategoryRepo implements category.Repository.
type CategoryRepo struct {
	*BaseCatalogRepo[*category.Category]
}

// NewCategoryRepo creates a new category repository.
func NewCategoryRepo(txm *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*category.Category](
			txm,
			categoryTable,
			"category",
			postgres.ExtractDBColumns[category.Category](),
			func() *category.Category { return &category.Category{} },
			false,
		),
	}
}
