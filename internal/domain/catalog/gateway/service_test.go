package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posadmin/internal/core/id"
	"posadmin/internal/core/types"
	"posadmin/internal/domain/ledger"
)

type stubStocks map[id.ID][]ledger.StockRecord

func (s stubStocks) GetRecordsByProduct(_ context.Context, productID id.ID) ([]ledger.StockRecord, error) {
	return s[productID], nil
}

type stubProducts map[id.ID]ProductInfo

func (s stubProducts) GetProductInfo(_ context.Context, productID id.ID) (ProductInfo, error) {
	return s[productID], nil
}

type memCache struct {
	entries map[id.ID]ProductSummary
	sets    int
}

func newMemCache() *memCache { return &memCache{entries: make(map[id.ID]ProductSummary)} }

func (c *memCache) Get(_ context.Context, productID id.ID) (*ProductSummary, error) {
	if s, ok := c.entries[productID]; ok {
		return &s, nil
	}
	return nil, nil
}

func (c *memCache) Set(_ context.Context, summary ProductSummary, _ time.Duration) error {
	c.entries[summary.ProductID] = summary
	c.sets++
	return nil
}

func (c *memCache) Invalidate(_ context.Context, productID id.ID) error {
	delete(c.entries, productID)
	return nil
}

func record(productID id.ID, quantity, reorder string) ledger.StockRecord {
	rec := ledger.NewStockRecord(productID, id.New())
	rec.Quantity = mustQty(quantity)
	rec.ReorderLevel = mustQty(reorder)
	return rec
}

func mustQty(s string) types.Quantity {
	q, err := types.ParseQuantity(s)
	if err != nil {
		panic(err)
	}
	return q
}

func TestTotalStock(t *testing.T) {
	productID := id.New()
	stocks := stubStocks{productID: {
		record(productID, "10", "0"),
		record(productID, "5.5", "0"),
		record(productID, "0", "0"),
	}}
	svc := NewService(stocks, stubProducts{}, newMemCache())

	total, err := svc.TotalStock(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, mustQty("15.5"), total)
}

func TestTotalStockNoRecords(t *testing.T) {
	svc := NewService(stubStocks{}, stubProducts{}, newMemCache())

	total, err := svc.TotalStock(context.Background(), id.New())
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		records  [][2]string // quantity, reorder per branch
		expected StockStatus
	}{
		{"no records", nil, StatusOutOfStock},
		{"all zero", [][2]string{{"0", "0"}, {"0", "5"}}, StatusOutOfStock},
		{"below reorder sum", [][2]string{{"3", "5"}, {"1", "5"}}, StatusLowStock},
		{"exactly at reorder sum", [][2]string{{"5", "5"}, {"5", "5"}}, StatusLowStock},
		{"above reorder sum", [][2]string{{"20", "5"}, {"1", "5"}}, StatusInStock},
		{"no reorder levels", [][2]string{{"1", "0"}}, StatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			productID := id.New()
			var records []ledger.StockRecord
			for _, pair := range tt.records {
				records = append(records, record(productID, pair[0], pair[1]))
			}
			svc := NewService(stubStocks{productID: records}, stubProducts{}, newMemCache())

			status, err := svc.Classify(context.Background(), productID)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestInventoryValue(t *testing.T) {
	productID := id.New()
	stocks := stubStocks{productID: {
		record(productID, "10", "0"),
		record(productID, "2.5", "0"),
	}}
	products := stubProducts{productID: {ID: productID, Cost: types.MustMoney("19.99")}}
	svc := NewService(stocks, products, newMemCache())

	value, err := svc.InventoryValue(context.Background(), productID)
	require.NoError(t, err)
	assert.True(t, types.MustMoney("249.875").Equal(value))
}

func TestSummaryCaching(t *testing.T) {
	productID := id.New()
	stocks := stubStocks{productID: {
		record(productID, "4", "10"),
	}}
	products := stubProducts{productID: {ID: productID, SKU: "SKU-1", Name: "Beans", Cost: types.MustMoney("2.00")}}
	cache := newMemCache()
	svc := NewService(stocks, products, cache)
	ctx := context.Background()

	first, err := svc.Summary(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, StatusLowStock, first.Status)
	assert.Equal(t, mustQty("4"), first.TotalStock)
	assert.True(t, types.MustMoney("8").Equal(first.InventoryValue))
	require.Len(t, first.Branches, 1)
	assert.Equal(t, 1, cache.sets)

	// Second read is served from cache, not recomputed.
	second, err := svc.Summary(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, first.ComputedAt, second.ComputedAt)
	assert.Equal(t, 1, cache.sets)

	// After invalidation the summary is recomputed.
	svc.InvalidateSummary(ctx, productID)
	_, err = svc.Summary(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.sets)
}
