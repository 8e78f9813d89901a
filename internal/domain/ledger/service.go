package ledger

import (
	"context"
	"fmt"

	"posadmin/internal/core/apperror"
	"posadmin/internal/core/id"
	"posadmin/internal/core/tx"
	"posadmin/internal/core/types"
	"posadmin/pkg/logger"
)

// maxRetries bounds re-execution of the read-modify-write cycle when the
// storage layer reports a serialization or deadlock failure.
const maxRetries = 3

// maxReasonLen mirrors the VARCHAR(255) reason column.
const maxReasonLen = 255

// Service serializes all mutations to (product, branch) quantities and
// guarantees the non-negativity invariant with an audit trail.
type Service struct {
	repo      Repository
	products  ExistenceChecker
	branches  ExistenceChecker
	txManager tx.Manager
}

// NewService creates the ledger service.
func NewService(repo Repository, products, branches ExistenceChecker, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		branches:  branches,
		txManager: txManager,
	}
}

// AdjustmentResult is returned by Adjust.
type AdjustmentResult struct {
	NewQuantity  types.Quantity `json:"newQuantity"`
	AdjustmentID id.ID          `json:"adjustmentId"`
}

// Adjust applies a signed quantity change to the (product, branch) pair as a
// single atomic unit: lock-or-create the stock record, reject any change that
// would drive quantity below zero, persist the new quantity and append an
// immutable audit row. The record is created lazily on first adjustment, in
// which case the resulting quantity becomes its initial_quantity baseline.
func (s *Service) Adjust(ctx context.Context, productID, branchID id.ID, change types.Quantity, reason string, actorID *id.ID) (AdjustmentResult, error) {
	var result AdjustmentResult

	if change.IsZero() {
		return result, apperror.NewValidation("quantity change must not be zero")
	}
	if len(reason) > maxReasonLen {
		return result, apperror.NewValidation("reason exceeds 255 characters")
	}
	if err := s.checkRefs(ctx, productID, branchID); err != nil {
		return result, err
	}

	err := s.withRetry(ctx, func(ctx context.Context) error {
		record, created, err := s.repo.LockOrCreate(ctx, productID, branchID)
		if err != nil {
			return err
		}

		candidate := record.Quantity + change
		if candidate.IsNegative() {
			return apperror.NewInsufficientStock(
				productID.String(), branchID.String(),
				change.Abs().String(), record.Quantity.String(),
			)
		}

		// A brand-new record's first observed quantity becomes its
		// historical baseline.
		if created {
			record.InitialQuantity = candidate
		}
		record.Quantity = candidate

		if err := s.repo.UpdateRecord(ctx, record); err != nil {
			return fmt.Errorf("update stock record: %w", err)
		}

		adj := NewStockAdjustment(productID, branchID, actorID, change, reason)
		if err := s.repo.AppendAdjustment(ctx, adj); err != nil {
			return fmt.Errorf("append adjustment: %w", err)
		}

		result = AdjustmentResult{NewQuantity: candidate, AdjustmentID: adj.ID}
		return nil
	})
	if err != nil {
		return AdjustmentResult{}, err
	}

	logger.Info(ctx, "stock adjusted",
		"product_id", productID,
		"branch_id", branchID,
		"change", change.String(),
		"new_quantity", result.NewQuantity.String(),
	)

	return result, nil
}

// SetReorderLevel updates restocking metadata for the pair. The record is
// lazily created with zero quantity when absent; no adjustment row is
// emitted because no inventory moved.
func (s *Service) SetReorderLevel(ctx context.Context, productID, branchID id.ID, level types.Quantity) error {
	if level.IsNegative() {
		return apperror.NewValidation("reorder level must not be negative")
	}
	if err := s.checkRefs(ctx, productID, branchID); err != nil {
		return err
	}

	err := s.withRetry(ctx, func(ctx context.Context) error {
		record, _, err := s.repo.LockOrCreate(ctx, productID, branchID)
		if err != nil {
			return err
		}

		record.ReorderLevel = level
		if err := s.repo.UpdateRecord(ctx, record); err != nil {
			return fmt.Errorf("update stock record: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "reorder level set",
		"product_id", productID,
		"branch_id", branchID,
		"level", level.String(),
	)

	return nil
}

// InitializeStock seeds starting stock at product-creation time. It is a
// one-time operation per pair; later changes must go through Adjust or
// SetReorderLevel.
func (s *Service) InitializeStock(ctx context.Context, productID, branchID id.ID, initialQuantity, reorderLevel types.Quantity) (StockRecord, error) {
	if initialQuantity.IsNegative() {
		return StockRecord{}, apperror.NewValidation("initial quantity must not be negative")
	}
	if reorderLevel.IsNegative() {
		return StockRecord{}, apperror.NewValidation("reorder level must not be negative")
	}
	if err := s.checkRefs(ctx, productID, branchID); err != nil {
		return StockRecord{}, err
	}

	record := NewStockRecord(productID, branchID)
	record.InitialQuantity = initialQuantity
	record.Quantity = initialQuantity
	record.ReorderLevel = reorderLevel

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.CreateRecord(ctx, record)
	})
	if err != nil {
		return StockRecord{}, err
	}

	logger.Info(ctx, "stock initialized",
		"product_id", productID,
		"branch_id", branchID,
		"quantity", initialQuantity.String(),
	)

	return record, nil
}

// ProductStock returns all per-branch records for a product.
func (s *Service) ProductStock(ctx context.Context, productID id.ID) ([]StockRecord, error) {
	if err := s.checkProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.GetRecordsByProduct(ctx, productID)
}

// AdjustmentHistory returns the audit trail for a product.
func (s *Service) AdjustmentHistory(ctx context.Context, productID id.ID, filter AdjustmentFilter) ([]StockAdjustment, error) {
	if err := s.checkProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.GetAdjustments(ctx, productID, filter)
}

// withRetry runs fn in a transaction, re-executing the whole read-modify-write
// cycle when the storage layer reports a transient conflict. Business failures
// (insufficient stock, validation) are never retried.
func (s *Service) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err = s.txManager.RunInTransaction(ctx, fn)
		if err == nil || !apperror.IsConcurrentModification(err) {
			return err
		}
		logger.Warn(ctx, "ledger transaction conflict, retrying", "attempt", attempt+1)
	}
	return err
}

func (s *Service) checkRefs(ctx context.Context, productID, branchID id.ID) error {
	if err := s.checkProduct(ctx, productID); err != nil {
		return err
	}
	ok, err := s.branches.Exists(ctx, branchID)
	if err != nil {
		return fmt.Errorf("check branch: %w", err)
	}
	if !ok {
		return apperror.NewNotFound("branch", branchID.String())
	}
	return nil
}

func (s *Service) checkProduct(ctx context.Context, productID id.ID) error {
	ok, err := s.products.Exists(ctx, productID)
	if err != nil {
		return fmt.Errorf("check product: %w", err)
	}
	if !ok {
		return apperror.NewNotFound("product", productID.String())
	}
	return nil
}
