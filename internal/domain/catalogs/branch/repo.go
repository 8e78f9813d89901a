package branch

import (
	"context"

	"posadmin/internal/domain"
)

// Repository defines the interface for Branch persistence.
type Repository interface {
	domain.CatalogRepository[*Branch]

	// ClearDefault clears the default flag on all branches (before setting new default).
	ClearDefault(ctx context.Context) error
}
