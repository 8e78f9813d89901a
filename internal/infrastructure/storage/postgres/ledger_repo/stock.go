// Package ledger_repo provides the PostgreSQL implementation of the
// stock ledger repository.
package ledger_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"posadmin/internal/core/apperror"
	"posadmin/internal/core/id"
	"posadmin/internal/domain/ledger"
	"posadmin/internal/infrastructure/storage/postgres"
)

const (
	stocksTable      = "stocks"
	adjustmentsTable = "stock_adjustments"
)

var stockCols = []string{
	"id", "product_id", "branch_id",
	"initial_quantity", "quantity", "reorder_level",
	"created_at", "updated_at",
}

var adjustmentCols = []string{
	"id", "product_id", "branch_id", "user_id",
	"quantity_change", "reason", "created_at",
}

// StockRepo implements ledger.Repository.
type StockRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewStockRepo creates a new stock ledger repository.
func NewStockRepo(txm *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// LockOrCreate returns the stock record for the pair with a row lock.
// The upsert-then-lock sequence makes lazy creation race-free: two
// concurrent first adjustments both reach the SELECT ... FOR UPDATE and
// serialize on the same row.
func (r *StockRepo) LockOrCreate(ctx context.Context, productID, branchID id.ID) (ledger.StockRecord, bool, error) {
	querier := r.txm.GetQuerier(ctx)

	fresh := ledger.NewStockRecord(productID, branchID)
	tag, err := querier.Exec(ctx, `
		INSERT INTO stocks (id, product_id, branch_id, initial_quantity, quantity, reorder_level, created_at, updated_at)
		VALUES ($1, $2, $3, 0, 0, 0, $4, $4)
		ON CONFLICT (product_id, branch_id) DO NOTHING
	`, fresh.ID, productID, branchID, fresh.CreatedAt)
	if err != nil {
		return ledger.StockRecord{}, false, fmt.Errorf("upsert stock record: %w", err)
	}
	created := tag.RowsAffected() == 1

	var record ledger.StockRecord
	err = pgxscan.Get(ctx, querier, &record, `
		SELECT id, product_id, branch_id, initial_quantity, quantity, reorder_level, created_at, updated_at
		FROM stocks
		WHERE product_id = $1 AND branch_id = $2
		FOR UPDATE
	`, productID, branchID)
	if err != nil {
		return ledger.StockRecord{}, false, fmt.Errorf("lock stock record: %w", err)
	}

	return record, created, nil
}

// CreateRecord inserts a fully populated record.
func (r *StockRepo) CreateRecord(ctx context.Context, record ledger.StockRecord) error {
	q := r.builder.Insert(stocksTable).
		Columns(stockCols...).
		Values(
			record.ID, record.ProductID, record.BranchID,
			record.InitialQuantity, record.Quantity, record.ReorderLevel,
			record.CreatedAt, record.UpdatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewAlreadyExists("stock record", record.ProductID.String()).
				WithDetail("branch_id", record.BranchID.String()).
				WithCause(err)
		}
		return fmt.Errorf("insert stock record: %w", err)
	}

	return nil
}

// UpdateRecord persists quantity, initial_quantity and reorder_level
// for a locked record.
func (r *StockRepo) UpdateRecord(ctx context.Context, record ledger.StockRecord) error {
	q := r.builder.Update(stocksTable).
		Set("initial_quantity", record.InitialQuantity).
		Set("quantity", record.Quantity).
		Set("reorder_level", record.ReorderLevel).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": record.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update stock record: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("stock record", record.ID.String())
	}

	return nil
}

// AppendAdjustment inserts one immutable audit row.
func (r *StockRepo) AppendAdjustment(ctx context.Context, adj ledger.StockAdjustment) error {
	q := r.builder.Insert(adjustmentsTable).
		Columns(adjustmentCols...).
		Values(
			adj.ID, adj.ProductID, adj.BranchID, adj.UserID,
			adj.QuantityChange, adj.Reason, adj.CreatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}

	return nil
}

// GetRecord returns the record for a pair.
func (r *StockRepo) GetRecord(ctx context.Context, productID, branchID id.ID) (ledger.StockRecord, error) {
	q := r.builder.Select(stockCols...).
		From(stocksTable).
		Where(squirrel.Eq{"product_id": productID, "branch_id": branchID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return ledger.StockRecord{}, fmt.Errorf("build query: %w", err)
	}

	var record ledger.StockRecord
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &record, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return ledger.StockRecord{}, apperror.NewNotFound("stock record", productID.String()).
				WithDetail("branch_id", branchID.String())
		}
		return ledger.StockRecord{}, fmt.Errorf("get stock record: %w", err)
	}

	return record, nil
}

// GetRecordsByProduct returns all branch records for a product.
func (r *StockRepo) GetRecordsByProduct(ctx context.Context, productID id.ID) ([]ledger.StockRecord, error) {
	q := r.builder.Select(stockCols...).
		From(stocksTable).
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("branch_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var records []ledger.StockRecord
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &records, sql, args...); err != nil {
		return nil, fmt.Errorf("select stock records: %w", err)
	}

	return records, nil
}

// GetAdjustments returns the audit trail for a product. UUIDv7 ids break
// ties between rows sharing a created_at timestamp.
func (r *StockRepo) GetAdjustments(ctx context.Context, productID id.ID, filter ledger.AdjustmentFilter) ([]ledger.StockAdjustment, error) {
	q := r.builder.Select(adjustmentCols...).
		From(adjustmentsTable).
		Where(squirrel.Eq{"product_id": productID})

	if filter.BranchID != nil {
		q = q.Where(squirrel.Eq{"branch_id": *filter.BranchID})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *filter.ToDate})
	}

	if filter.Descending {
		q = q.OrderBy("created_at DESC", "id DESC")
	} else {
		q = q.OrderBy("created_at ASC", "id ASC")
	}

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var adjustments []ledger.StockAdjustment
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &adjustments, sql, args...); err != nil {
		return nil, fmt.Errorf("select adjustments: %w", err)
	}

	return adjustments, nil
}

// Ensure interface compliance.
var _ ledger.Repository = (*StockRepo)(nil)
