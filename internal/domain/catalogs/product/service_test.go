package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posadmin/internal/core/apperror"
	"posadmin/internal/core/id"
	"posadmin/internal/core/types"
	"posadmin/internal/domain"
	"posadmin/internal/domain/ledger"
)

type stubTx struct{}

func (stubTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memRepo struct {
	items map[id.ID]*Product
}

func newMemRepo() *memRepo { return &memRepo{items: make(map[id.ID]*Product)} }

func (r *memRepo) Create(_ context.Context, p *Product) error {
	for _, existing := range r.items {
		if existing.Code == p.Code {
			return apperror.NewDuplicate("product", "code", p.Code)
		}
	}
	r.items[p.ID] = p
	return nil
}

func (r *memRepo) GetByID(_ context.Context, entityID id.ID) (*Product, error) {
	if p, ok := r.items[entityID]; ok {
		return p, nil
	}
	return nil, apperror.NewNotFound("product", entityID.String())
}

func (r *memRepo) GetByCode(_ context.Context, code string) (*Product, error) {
	for _, p := range r.items {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("product", code)
}

func (r *memRepo) Update(_ context.Context, p *Product) error {
	if _, ok := r.items[p.ID]; !ok {
		return apperror.NewNotFound("product", p.ID.String())
	}
	r.items[p.ID] = p
	return nil
}

func (r *memRepo) Delete(_ context.Context, entityID id.ID) error {
	delete(r.items, entityID)
	return nil
}

func (r *memRepo) SetDeletionMark(_ context.Context, entityID id.ID, marked bool) error {
	if p, ok := r.items[entityID]; ok {
		p.DeletionMark = marked
		return nil
	}
	return apperror.NewNotFound("product", entityID.String())
}

func (r *memRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	result := domain.ListResult[*Product]{Limit: filter.Limit, Offset: filter.Offset}
	for _, p := range r.items {
		result.Items = append(result.Items, p)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *memRepo) Exists(_ context.Context, entityID id.ID) (bool, error) {
	_, ok := r.items[entityID]
	return ok, nil
}

func (r *memRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	for _, p := range r.items {
		if p.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) GetByBarcode(_ context.Context, barcode string) (*Product, error) {
	for _, p := range r.items {
		if p.Barcode != nil && *p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("product", barcode)
}

func (r *memRepo) ListVariants(_ context.Context, parentID id.ID) ([]*Product, error) {
	var out []*Product
	for _, p := range r.items {
		if p.ParentID != nil && *p.ParentID == parentID {
			out = append(out, p)
		}
	}
	return out, nil
}

var _ Repository = (*memRepo)(nil)

type initCall struct {
	productID, branchID       id.ID
	initialQuantity, reorderLevel types.Quantity
}

type reorderCall struct {
	productID, branchID id.ID
	level               types.Quantity
}

type stubLedger struct {
	inits    []initCall
	reorders []reorderCall
}

func (l *stubLedger) InitializeStock(_ context.Context, productID, branchID id.ID, initialQuantity, reorderLevel types.Quantity) (ledger.StockRecord, error) {
	l.inits = append(l.inits, initCall{productID, branchID, initialQuantity, reorderLevel})
	rec := ledger.NewStockRecord(productID, branchID)
	rec.InitialQuantity = initialQuantity
	rec.Quantity = initialQuantity
	rec.ReorderLevel = reorderLevel
	return rec, nil
}

func (l *stubLedger) SetReorderLevel(_ context.Context, productID, branchID id.ID, level types.Quantity) error {
	l.reorders = append(l.reorders, reorderCall{productID, branchID, level})
	return nil
}

func newTestService() (*Service, *memRepo, *stubLedger) {
	repo := newMemRepo()
	stocks := &stubLedger{}
	return NewService(repo, stubTx{}, stocks), repo, stocks
}

func qty(s string) types.Quantity {
	q, err := types.ParseQuantity(s)
	if err != nil {
		panic(err)
	}
	return q
}

func TestCreateWithStock(t *testing.T) {
	svc, repo, stocks := newTestService()
	ctx := context.Background()

	branchA, branchB := id.New(), id.New()
	p := NewProduct("SKU-001", "Coffee Beans")
	p.Price = types.MustMoney("12.50")
	p.Cost = types.MustMoney("8.00")

	err := svc.CreateWithStock(ctx, p, []StockSeed{
		{BranchID: branchA, InitialQuantity: qty("100"), ReorderLevel: qty("20")},
		{BranchID: branchB, InitialQuantity: qty("50")},
	})
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)

	require.Len(t, stocks.inits, 2)
	assert.Equal(t, p.ID, stocks.inits[0].productID)
	assert.Equal(t, branchA, stocks.inits[0].branchID)
	assert.Equal(t, qty("100"), stocks.inits[0].initialQuantity)
	assert.Equal(t, qty("20"), stocks.inits[0].reorderLevel)
	assert.Equal(t, branchB, stocks.inits[1].branchID)
}

func TestCreateWithStockRejectsBadSeeds(t *testing.T) {
	svc, repo, stocks := newTestService()
	ctx := context.Background()
	branchID := id.New()

	tests := []struct {
		name  string
		seeds []StockSeed
	}{
		{"duplicate branch", []StockSeed{
			{BranchID: branchID, InitialQuantity: qty("1")},
			{BranchID: branchID, InitialQuantity: qty("2")},
		}},
		{"negative quantity", []StockSeed{
			{BranchID: branchID, InitialQuantity: qty("-1")},
		}},
		{"negative reorder level", []StockSeed{
			{BranchID: branchID, ReorderLevel: qty("-1")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProduct("SKU-BAD", "Bad Seeds")
			err := svc.CreateWithStock(ctx, p, tt.seeds)
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)

			// Rejected before anything is written.
			assert.Empty(t, repo.items)
			assert.Empty(t, stocks.inits)
		})
	}
}

func TestCreateDuplicateSKU(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.CreateWithStock(ctx, NewProduct("SKU-001", "First"), nil))

	err := svc.CreateWithStock(ctx, NewProduct("SKU-001", "Second"), nil)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestUpdateWithReorderLevels(t *testing.T) {
	svc, _, stocks := newTestService()
	ctx := context.Background()

	p := NewProduct("SKU-002", "Tea")
	require.NoError(t, svc.CreateWithStock(ctx, p, nil))

	branchA, branchB := id.New(), id.New()
	p.Name = "Green Tea"
	err := svc.UpdateWithReorderLevels(ctx, p, []ReorderSpec{
		{BranchID: branchA, ReorderLevel: qty("10")},
		{BranchID: branchB, ReorderLevel: qty("5.5")},
	})
	require.NoError(t, err)

	require.Len(t, stocks.reorders, 2)
	assert.Equal(t, qty("10"), stocks.reorders[0].level)
	assert.Equal(t, qty("5.5"), stocks.reorders[1].level)

	err = svc.UpdateWithReorderLevels(ctx, p, []ReorderSpec{
		{BranchID: branchA, ReorderLevel: qty("1")},
		{BranchID: branchA, ReorderLevel: qty("2")},
	})
	require.Error(t, err)
}

func TestGetProductInfo(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	p := NewProduct("SKU-003", "Sugar")
	p.Cost = types.MustMoney("3.25")
	require.NoError(t, svc.CreateWithStock(ctx, p, nil))

	info, err := svc.GetProductInfo(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, info.ID)
	assert.Equal(t, "SKU-003", info.SKU)
	assert.Equal(t, "Sugar", info.Name)
	assert.True(t, types.MustMoney("3.25").Equal(info.Cost))

	_, err = svc.GetProductInfo(ctx, id.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestProductValidate(t *testing.T) {
	ctx := context.Background()

	p := NewProduct("SKU-004", "Milk")
	require.NoError(t, p.Validate(ctx))

	p.Price = types.MustMoney("-1")
	require.Error(t, p.Validate(ctx))
	p.Price = types.MustMoney("0")

	p.ParentID = &p.ID
	require.Error(t, p.Validate(ctx))
	p.ParentID = nil

	p.VariantAttrs = Attributes{"size": "L"}
	require.Error(t, p.Validate(ctx))

	parentID := id.New()
	p.ParentID = &parentID
	require.NoError(t, p.Validate(ctx))
}
