// Package gateway is the read side of the stock ledger: aggregate views
// over per-branch records for product screens and reports. It never
// mutates stock.
package gateway

import (
	"context"
	"fmt"
	"time"

	"posadmin/internal/core/id"
	"posadmin/internal/core/types"
	"posadmin/internal/domain/ledger"
	"posadmin/pkg/logger"
)

// StockStatus classifies a product's availability across all branches.
type StockStatus string

const (
	StatusInStock    StockStatus = "in_stock"
	StatusLowStock   StockStatus = "low_stock"
	StatusOutOfStock StockStatus = "out_of_stock"
)

// StockReader is the slice of the ledger repository the gateway needs.
type StockReader interface {
	GetRecordsByProduct(ctx context.Context, productID id.ID) ([]ledger.StockRecord, error)
}

// ProductInfo carries the product fields the gateway aggregates over.
type ProductInfo struct {
	ID   id.ID
	SKU  string
	Name string
	Cost types.Money
}

// ProductReader resolves product data for valuation. Satisfied by the
// product catalog service.
type ProductReader interface {
	GetProductInfo(ctx context.Context, productID id.ID) (ProductInfo, error)
}

// BranchStock is one branch line inside a summary.
type BranchStock struct {
	BranchID     id.ID          `json:"branchId"`
	Quantity     types.Quantity `json:"quantity"`
	ReorderLevel types.Quantity `json:"reorderLevel"`
}

// ProductSummary is the cached aggregate view of one product's stock.
type ProductSummary struct {
	ProductID      id.ID          `json:"productId"`
	SKU            string         `json:"sku"`
	Name           string         `json:"name"`
	TotalStock     types.Quantity `json:"totalStock"`
	Status         StockStatus    `json:"status"`
	InventoryValue types.Money    `json:"inventoryValue"`
	Branches       []BranchStock  `json:"branches"`
	ComputedAt     time.Time      `json:"computedAt"`
}

// SummaryCache stores computed summaries. Get returns (nil, nil) on miss;
// cache failures must not fail reads.
type SummaryCache interface {
	Get(ctx context.Context, productID id.ID) (*ProductSummary, error)
	Set(ctx context.Context, summary ProductSummary, ttl time.Duration) error
	Invalidate(ctx context.Context, productID id.ID) error
}

const summaryTTL = 5 * time.Minute

// Service aggregates ledger records into product-level stock views.
type Service struct {
	stocks   StockReader
	products ProductReader
	cache    SummaryCache
}

// NewService creates the gateway service.
func NewService(stocks StockReader, products ProductReader, cache SummaryCache) *Service {
	return &Service{stocks: stocks, products: products, cache: cache}
}

// TotalStock sums quantity-on-hand across all branches. A product with no
// stock records totals zero.
func (s *Service) TotalStock(ctx context.Context, productID id.ID) (types.Quantity, error) {
	records, err := s.stocks.GetRecordsByProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("read stock records: %w", err)
	}
	return sumQuantities(records), nil
}

// Classify derives the availability status from totals: out of stock at
// zero, low when the total does not exceed the summed reorder levels,
// in stock otherwise. A total exactly at the reorder sum is low.
func (s *Service) Classify(ctx context.Context, productID id.ID) (StockStatus, error) {
	records, err := s.stocks.GetRecordsByProduct(ctx, productID)
	if err != nil {
		return "", fmt.Errorf("read stock records: %w", err)
	}
	return classify(records), nil
}

// InventoryValue prices all on-hand stock at the product's unit cost.
func (s *Service) InventoryValue(ctx context.Context, productID id.ID) (types.Money, error) {
	info, err := s.products.GetProductInfo(ctx, productID)
	if err != nil {
		return types.Money{}, err
	}
	total, err := s.TotalStock(ctx, productID)
	if err != nil {
		return types.Money{}, err
	}
	return total.Decimal().Mul(info.Cost), nil
}

// Summary returns the full aggregate view, served from cache when fresh.
func (s *Service) Summary(ctx context.Context, productID id.ID) (ProductSummary, error) {
	if cached, err := s.cache.Get(ctx, productID); err != nil {
		logger.Warn(ctx, "summary cache read failed", "product_id", productID, "error", err)
	} else if cached != nil {
		return *cached, nil
	}

	info, err := s.products.GetProductInfo(ctx, productID)
	if err != nil {
		return ProductSummary{}, err
	}
	records, err := s.stocks.GetRecordsByProduct(ctx, productID)
	if err != nil {
		return ProductSummary{}, fmt.Errorf("read stock records: %w", err)
	}

	total := sumQuantities(records)
	branches := make([]BranchStock, 0, len(records))
	for _, rec := range records {
		branches = append(branches, BranchStock{
			BranchID:     rec.BranchID,
			Quantity:     rec.Quantity,
			ReorderLevel: rec.ReorderLevel,
		})
	}

	summary := ProductSummary{
		ProductID:      productID,
		SKU:            info.SKU,
		Name:           info.Name,
		TotalStock:     total,
		Status:         classify(records),
		InventoryValue: total.Decimal().Mul(info.Cost),
		Branches:       branches,
		ComputedAt:     time.Now().UTC(),
	}

	if err := s.cache.Set(ctx, summary, summaryTTL); err != nil {
		logger.Warn(ctx, "summary cache write failed", "product_id", productID, "error", err)
	}

	return summary, nil
}

// InvalidateSummary drops the cached view after a stock mutation.
func (s *Service) InvalidateSummary(ctx context.Context, productID id.ID) {
	if err := s.cache.Invalidate(ctx, productID); err != nil {
		logger.Warn(ctx, "summary cache invalidation failed", "product_id", productID, "error", err)
	}
}

func sumQuantities(records []ledger.StockRecord) types.Quantity {
	var total types.Quantity
	for _, rec := range records {
		total += rec.Quantity
	}
	return total
}

func classify(records []ledger.StockRecord) StockStatus {
	var total, reorderSum types.Quantity
	for _, rec := range records {
		total += rec.Quantity
		reorderSum += rec.ReorderLevel
	}
	switch {
	case total.IsZero():
		return StatusOutOfStock
	case total <= reorderSum:
		return StatusLowStock
	default:
		return StatusInStock
	}
}
