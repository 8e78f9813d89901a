package ledger

import (
	"context"
	"time"

	"posadmin/internal/core/id"
)

// Repository defines persistence operations for the stock ledger.
// Mutating methods must be called inside a transaction; LockOrCreate takes
// the row lock that serializes concurrent adjustments on the same pair.
type Repository interface {
	// LockOrCreate returns the stock record for the pair with a row lock
	// held until the surrounding transaction ends. When no record exists it
	// inserts one with zero quantities first; created reports whether this
	// call established the record.
	LockOrCreate(ctx context.Context, productID, branchID id.ID) (record StockRecord, created bool, err error)

	// CreateRecord inserts a fully populated record. Returns AlreadyExists
	// when the (product, branch) pair is taken.
	CreateRecord(ctx context.Context, record StockRecord) error

	// UpdateRecord persists quantity, initial_quantity and reorder_level
	// for a locked record.
	UpdateRecord(ctx context.Context, record StockRecord) error

	// AppendAdjustment inserts one immutable audit row.
	AppendAdjustment(ctx context.Context, adj StockAdjustment) error

	// GetRecord returns the record for a pair, NotFound when absent.
	GetRecord(ctx context.Context, productID, branchID id.ID) (StockRecord, error)

	// GetRecordsByProduct returns all branch records for a product.
	GetRecordsByProduct(ctx context.Context, productID id.ID) ([]StockRecord, error)

	// GetAdjustments returns the audit trail for a product in creation order.
	GetAdjustments(ctx context.Context, productID id.ID, filter AdjustmentFilter) ([]StockAdjustment, error)
}

// ExistenceChecker reports whether a referenced catalog entity exists.
// Satisfied by the product and branch repositories.
type ExistenceChecker interface {
	Exists(ctx context.Context, id id.ID) (bool, error)
}

// AdjustmentFilter narrows audit trail queries.
type AdjustmentFilter struct {
	BranchID *id.ID
	FromDate *time.Time
	ToDate   *time.Time

	// Descending returns newest first (for history screens).
	Descending bool

	Limit  int
	Offset int
}
