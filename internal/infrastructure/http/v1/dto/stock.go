package dto

import (
	"time"

	"posadmin/internal/core/apperror"
	"posadmin/internal/core/types"
	"posadmin/internal/domain/ledger"
)

// --- Request DTOs ---

// Adjustment directions accepted alongside an unsigned quantity.
const (
	DirectionIncrease = "increase"
	DirectionDecrease = "decrease"
)

// AdjustStockRequest is the request body for a stock adjustment. Clients
// send either a signed Change, or a Direction with an unsigned Quantity;
// both normalize to one signed delta.
type AdjustStockRequest struct {
	ProductID string `json:"productId" binding:"required"`
	BranchID  string `json:"branchId" binding:"required"`

	Change    *types.Quantity `json:"change"`
	Direction string          `json:"direction"`
	Quantity  *types.Quantity `json:"quantity"`

	Reason string `json:"reason"`
}

// SignedChange normalizes the two accepted shapes to a signed delta.
func (r *AdjustStockRequest) SignedChange() (types.Quantity, error) {
	if r.Change != nil {
		if r.Direction != "" || r.Quantity != nil {
			return 0, apperror.NewValidation("send either change or direction+quantity, not both")
		}
		return *r.Change, nil
	}

	if r.Quantity == nil {
		return 0, apperror.NewValidation("either change or direction+quantity is required")
	}
	if !r.Quantity.IsPositive() {
		return 0, apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}

	switch r.Direction {
	case DirectionIncrease:
		return *r.Quantity, nil
	case DirectionDecrease:
		return r.Quantity.Neg(), nil
	default:
		return 0, apperror.NewValidation("direction must be increase or decrease").
			WithDetail("value", r.Direction)
	}
}

// SetReorderLevelRequest is the request body for setting a reorder level.
type SetReorderLevelRequest struct {
	ProductID string         `json:"productId" binding:"required"`
	BranchID  string         `json:"branchId" binding:"required"`
	Level     types.Quantity `json:"level"`
}

// InitializeStockRequest is the request body for one-time stock seeding.
type InitializeStockRequest struct {
	ProductID       string         `json:"productId" binding:"required"`
	BranchID        string         `json:"branchId" binding:"required"`
	InitialQuantity types.Quantity `json:"initialQuantity"`
	ReorderLevel    types.Quantity `json:"reorderLevel"`
}

// --- Response DTOs ---

// AdjustStockResponse is returned after a successful adjustment.
type AdjustStockResponse struct {
	AdjustmentID string         `json:"adjustmentId"`
	NewQuantity  types.Quantity `json:"newQuantity"`
}

// StockRecordResponse is one (product, branch) quantity line.
type StockRecordResponse struct {
	ID              string         `json:"id"`
	ProductID       string         `json:"productId"`
	BranchID        string         `json:"branchId"`
	InitialQuantity types.Quantity `json:"initialQuantity"`
	Quantity        types.Quantity `json:"quantity"`
	ReorderLevel    types.Quantity `json:"reorderLevel"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// FromStockRecord creates response DTO from domain record.
func FromStockRecord(rec ledger.StockRecord) StockRecordResponse {
	return StockRecordResponse{
		ID:              rec.ID.String(),
		ProductID:       rec.ProductID.String(),
		BranchID:        rec.BranchID.String(),
		InitialQuantity: rec.InitialQuantity,
		Quantity:        rec.Quantity,
		ReorderLevel:    rec.ReorderLevel,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
}

// FromStockRecords maps a slice of records.
func FromStockRecords(records []ledger.StockRecord) []StockRecordResponse {
	out := make([]StockRecordResponse, len(records))
	for i, rec := range records {
		out[i] = FromStockRecord(rec)
	}
	return out
}

// AdjustmentResponse is one audit trail row.
type AdjustmentResponse struct {
	ID             string         `json:"id"`
	ProductID      string         `json:"productId"`
	BranchID       string         `json:"branchId"`
	UserID         *string        `json:"userId,omitempty"`
	QuantityChange types.Quantity `json:"quantityChange"`
	Reason         *string        `json:"reason,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// FromAdjustment creates response DTO from domain adjustment.
func FromAdjustment(adj ledger.StockAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:             adj.ID.String(),
		ProductID:      adj.ProductID.String(),
		BranchID:       adj.BranchID.String(),
		UserID:         idString(adj.UserID),
		QuantityChange: adj.QuantityChange,
		Reason:         adj.Reason,
		CreatedAt:      adj.CreatedAt,
	}
}

// FromAdjustments maps a slice of adjustments.
func FromAdjustments(adjustments []ledger.StockAdjustment) []AdjustmentResponse {
	out := make([]AdjustmentResponse, len(adjustments))
	for i, adj := range adjustments {
		out[i] = FromAdjustment(adj)
	}
	return out
}
