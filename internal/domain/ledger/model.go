// Package ledger owns per-(product, branch) quantity-on-hand and its
// append-only adjustment trail. All stock mutations in the system go
// through this package.
package ledger

import (
	"time"

	"posadmin/internal/core/id"
	"posadmin/internal/core/types"
)

// StockRecord is the current quantity-on-hand for one (product, branch) pair.
// The pair is unique; quantity never goes below zero.
type StockRecord struct {
	ID       id.ID `db:"id" json:"id"`
	ProductID id.ID `db:"product_id" json:"productId"`
	BranchID  id.ID `db:"branch_id" json:"branchId"`

	// InitialQuantity is a historical snapshot set once when the record is
	// first established, never re-derived afterwards.
	InitialQuantity types.Quantity `db:"initial_quantity" json:"initialQuantity"`

	// Quantity is mutated only through adjustments.
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// ReorderLevel is restocking metadata, editable independently of quantity.
	ReorderLevel types.Quantity `db:"reorder_level" json:"reorderLevel"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewStockRecord creates a record with zero quantities.
func NewStockRecord(productID, branchID id.ID) StockRecord {
	now := time.Now().UTC()
	return StockRecord{
		ID:        id.New(),
		ProductID: productID,
		BranchID:  branchID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// StockAdjustment is one immutable audit row. Rows are never updated or
// deleted by the ledger; they cascade only with their parent product/branch.
type StockAdjustment struct {
	ID        id.ID  `db:"id" json:"id"`
	ProductID id.ID  `db:"product_id" json:"productId"`
	BranchID  id.ID  `db:"branch_id" json:"branchId"`
	UserID    *id.ID `db:"user_id" json:"userId,omitempty"`

	// QuantityChange is the canonical signed delta: positive = increase,
	// negative = decrease. Zero is rejected before a row is ever built.
	QuantityChange types.Quantity `db:"quantity_change" json:"quantityChange"`

	Reason    *string   `db:"reason" json:"reason,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewStockAdjustment creates an adjustment row with a generated UUIDv7 ID,
// so id order matches creation order.
func NewStockAdjustment(productID, branchID id.ID, userID *id.ID, change types.Quantity, reason string) StockAdjustment {
	adj := StockAdjustment{
		ID:             id.New(),
		ProductID:      productID,
		BranchID:       branchID,
		UserID:         userID,
		QuantityChange: change,
		CreatedAt:      time.Now().UTC(),
	}
	if reason != "" {
		adj.Reason = &reason
	}
	return adj
}
