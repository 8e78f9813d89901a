package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"posadmin/internal/domain/catalogs/branch"
	"posadmin/internal/infrastructure/storage/postgres"
)

const branchTable = "cat_branches"

// BranchRepo implements branch.Repository.
type BranchRepo struct {
	*BaseCatalogRepo[*branch.Branch]
}

// NewBranchRepo creates a new branch repository.
func NewBranchRepo(txm *postgres.TxManager) *BranchRepo {
	return &BranchRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*branch.Branch](
			txm,
			branchTable,
			"branch",
			postgres.ExtractDBColumns[branch.Branch](),
			func() *branch.Branch { return &branch.Branch{} },
			true,
		),
	}
}

// ClearDefault clears the default flag on all branches.
func (r *BranchRepo) ClearDefault(ctx context.Context) error {
	q := r.Builder().
		Update(branchTable).
		Set("is_default", false).
		Where(squirrel.Eq{"is_default": true})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("clear default: %w", err)
	}

	return nil
}
