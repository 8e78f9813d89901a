package ledger

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posadmin/internal/core/apperror"
	"posadmin/internal/core/id"
	"posadmin/internal/core/types"
)

// --- In-memory fixtures ---

type pairKey struct {
	product id.ID
	branch  id.ID
}

// memRepo is an in-memory Repository. Mutations are expected to run under
// memTxManager, which serializes transactions and rolls back on error.
type memRepo struct {
	records     map[pairKey]*StockRecord
	adjustments []StockAdjustment
}

func newMemRepo() *memRepo {
	return &memRepo{records: make(map[pairKey]*StockRecord)}
}

func (r *memRepo) snapshot() (map[pairKey]*StockRecord, []StockAdjustment) {
	records := make(map[pairKey]*StockRecord, len(r.records))
	for k, v := range r.records {
		cp := *v
		records[k] = &cp
	}
	adjustments := make([]StockAdjustment, len(r.adjustments))
	copy(adjustments, r.adjustments)
	return records, adjustments
}

func (r *memRepo) restore(records map[pairKey]*StockRecord, adjustments []StockAdjustment) {
	r.records = records
	r.adjustments = adjustments
}

func (r *memRepo) LockOrCreate(_ context.Context, productID, branchID id.ID) (StockRecord, bool, error) {
	key := pairKey{productID, branchID}
	if rec, ok := r.records[key]; ok {
		return *rec, false, nil
	}
	rec := NewStockRecord(productID, branchID)
	r.records[key] = &rec
	return rec, true, nil
}

func (r *memRepo) CreateRecord(_ context.Context, record StockRecord) error {
	key := pairKey{record.ProductID, record.BranchID}
	if _, ok := r.records[key]; ok {
		return apperror.NewAlreadyExists("stock record", record.ProductID.String())
	}
	cp := record
	r.records[key] = &cp
	return nil
}

func (r *memRepo) UpdateRecord(_ context.Context, record StockRecord) error {
	key := pairKey{record.ProductID, record.BranchID}
	stored, ok := r.records[key]
	if !ok {
		return apperror.NewNotFound("stock record", record.ID.String())
	}
	stored.InitialQuantity = record.InitialQuantity
	stored.Quantity = record.Quantity
	stored.ReorderLevel = record.ReorderLevel
	return nil
}

func (r *memRepo) AppendAdjustment(_ context.Context, adj StockAdjustment) error {
	r.adjustments = append(r.adjustments, adj)
	return nil
}

func (r *memRepo) GetRecord(_ context.Context, productID, branchID id.ID) (StockRecord, error) {
	if rec, ok := r.records[pairKey{productID, branchID}]; ok {
		return *rec, nil
	}
	return StockRecord{}, apperror.NewNotFound("stock record", productID.String())
}

func (r *memRepo) GetRecordsByProduct(_ context.Context, productID id.ID) ([]StockRecord, error) {
	var out []StockRecord
	for _, rec := range r.records {
		if rec.ProductID == productID {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BranchID.String() < out[j].BranchID.String() })
	return out, nil
}

func (r *memRepo) GetAdjustments(_ context.Context, productID id.ID, filter AdjustmentFilter) ([]StockAdjustment, error) {
	var out []StockAdjustment
	for _, adj := range r.adjustments {
		if adj.ProductID != productID {
			continue
		}
		if filter.BranchID != nil && adj.BranchID != *filter.BranchID {
			continue
		}
		out = append(out, adj)
	}
	if filter.Descending {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

var _ Repository = (*memRepo)(nil)

// memTxManager serializes transactions with a mutex (standing in for the row
// lock) and restores the repo snapshot when fn fails, so aborted operations
// leave no partial state.
type memTxManager struct {
	mu   sync.Mutex
	repo *memRepo
}

func (m *memTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	records, adjustments := m.repo.snapshot()
	if err := fn(ctx); err != nil {
		m.repo.restore(records, adjustments)
		return err
	}
	return nil
}

// conflictRepo fails LockOrCreate with a transient conflict n times before
// delegating.
type conflictRepo struct {
	Repository
	remaining int
}

func (r *conflictRepo) LockOrCreate(ctx context.Context, productID, branchID id.ID) (StockRecord, bool, error) {
	if r.remaining > 0 {
		r.remaining--
		return StockRecord{}, false, apperror.NewConcurrentModification("stock record", productID.String())
	}
	return r.Repository.LockOrCreate(ctx, productID, branchID)
}

type staticChecker map[id.ID]bool

func (c staticChecker) Exists(_ context.Context, entityID id.ID) (bool, error) {
	return c[entityID], nil
}

type fixture struct {
	svc       *Service
	repo      *memRepo
	productID id.ID
	branchID  id.ID
	actorID   id.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newMemRepo()
	productID := id.New()
	branchID := id.New()
	svc := NewService(
		repo,
		staticChecker{productID: true},
		staticChecker{branchID: true},
		&memTxManager{repo: repo},
	)
	return &fixture{
		svc:       svc,
		repo:      repo,
		productID: productID,
		branchID:  branchID,
		actorID:   id.New(),
	}
}

func qty(s string) types.Quantity {
	q, err := types.ParseQuantity(s)
	if err != nil {
		panic(err)
	}
	return q
}

// --- Tests ---

func TestAdjustScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// First adjustment lazily creates the record; its result becomes the baseline.
	res, err := f.svc.Adjust(ctx, f.productID, f.branchID, qty("50"), "delivery", &f.actorID)
	require.NoError(t, err)
	assert.Equal(t, qty("50"), res.NewQuantity)
	assert.False(t, id.IsNil(res.AdjustmentID))

	rec, err := f.repo.GetRecord(ctx, f.productID, f.branchID)
	require.NoError(t, err)
	assert.Equal(t, qty("50"), rec.Quantity)
	assert.Equal(t, qty("50"), rec.InitialQuantity)

	res, err = f.svc.Adjust(ctx, f.productID, f.branchID, qty("-30"), "sale", &f.actorID)
	require.NoError(t, err)
	assert.Equal(t, qty("20"), res.NewQuantity)

	// Would go to -5: rejected, nothing written.
	_, err = f.svc.Adjust(ctx, f.productID, f.branchID, qty("-25"), "sale", &f.actorID)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	rec, err = f.repo.GetRecord(ctx, f.productID, f.branchID)
	require.NoError(t, err)
	assert.Equal(t, qty("20"), rec.Quantity)
	assert.Equal(t, qty("50"), rec.InitialQuantity)

	adjustments, err := f.repo.GetAdjustments(ctx, f.productID, AdjustmentFilter{})
	require.NoError(t, err)
	assert.Len(t, adjustments, 2)
}

func TestAdjustZeroChangeRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Adjust(context.Background(), f.productID, f.branchID, 0, "noop", &f.actorID)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	// No audit noise, no record.
	assert.Empty(t, f.repo.adjustments)
	assert.Empty(t, f.repo.records)
}

func TestAdjustNegativeFirstAdjustment(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Adjust(context.Background(), f.productID, f.branchID, qty("-1"), "", nil)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	// The lazily created record must have been rolled back.
	assert.Empty(t, f.repo.records)
	assert.Empty(t, f.repo.adjustments)
}

func TestAdjustUnknownRefs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Adjust(ctx, id.New(), f.branchID, qty("5"), "", nil)
	assert.True(t, apperror.IsNotFound(err))

	_, err = f.svc.Adjust(ctx, f.productID, id.New(), qty("5"), "", nil)
	assert.True(t, apperror.IsNotFound(err))
}

func TestAdjustLongReasonRejected(t *testing.T) {
	f := newFixture(t)

	reason := make([]byte, 256)
	for i := range reason {
		reason[i] = 'x'
	}
	_, err := f.svc.Adjust(context.Background(), f.productID, f.branchID, qty("1"), string(reason), nil)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestAdjustRecordsActorAndReason(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Adjust(ctx, f.productID, f.branchID, qty("10"), "delivery", &f.actorID)
	require.NoError(t, err)
	_, err = f.svc.Adjust(ctx, f.productID, f.branchID, qty("-4"), "", nil)
	require.NoError(t, err)

	adjustments, err := f.repo.GetAdjustments(ctx, f.productID, AdjustmentFilter{})
	require.NoError(t, err)
	require.Len(t, adjustments, 2)

	require.NotNil(t, adjustments[0].UserID)
	assert.Equal(t, f.actorID, *adjustments[0].UserID)
	require.NotNil(t, adjustments[0].Reason)
	assert.Equal(t, "delivery", *adjustments[0].Reason)

	// Anonymous adjustment with empty reason stores nulls.
	assert.Nil(t, adjustments[1].UserID)
	assert.Nil(t, adjustments[1].Reason)
}

func TestInitializeStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.svc.InitializeStock(ctx, f.productID, f.branchID, qty("100"), qty("25"))
	require.NoError(t, err)
	assert.Equal(t, qty("100"), rec.Quantity)
	assert.Equal(t, qty("100"), rec.InitialQuantity)
	assert.Equal(t, qty("25"), rec.ReorderLevel)

	// Initialization is one-time per pair.
	_, err = f.svc.InitializeStock(ctx, f.productID, f.branchID, qty("5"), 0)
	require.Error(t, err)
	assert.True(t, apperror.IsAlreadyExists(err))

	// Seeding emits no adjustment rows.
	assert.Empty(t, f.repo.adjustments)
}

func TestInitializeStockValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.InitializeStock(ctx, f.productID, f.branchID, qty("-1"), 0)
	require.Error(t, err)

	_, err = f.svc.InitializeStock(ctx, f.productID, f.branchID, 0, qty("-1"))
	require.Error(t, err)
}

func TestSetReorderLevel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Lazy creation on configuration-only update: quantity stays zero.
	err := f.svc.SetReorderLevel(ctx, f.productID, f.branchID, qty("25"))
	require.NoError(t, err)

	rec, err := f.repo.GetRecord(ctx, f.productID, f.branchID)
	require.NoError(t, err)
	assert.Equal(t, types.Quantity(0), rec.Quantity)
	assert.Equal(t, types.Quantity(0), rec.InitialQuantity)
	assert.Equal(t, qty("25"), rec.ReorderLevel)
	assert.Empty(t, f.repo.adjustments)

	err = f.svc.SetReorderLevel(ctx, f.productID, f.branchID, qty("-3"))
	require.Error(t, err)
}

func TestAuditReplayReconstructsQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	deltas := []string{"50", "-30", "12.5", "-0.5", "100", "-25"}
	for _, d := range deltas {
		_, err := f.svc.Adjust(ctx, f.productID, f.branchID, qty(d), "", nil)
		require.NoError(t, err)
	}

	adjustments, err := f.svc.AdjustmentHistory(ctx, f.productID, AdjustmentFilter{})
	require.NoError(t, err)
	require.Len(t, adjustments, len(deltas))

	var replayed types.Quantity
	for _, adj := range adjustments {
		replayed += adj.QuantityChange
	}

	rec, err := f.repo.GetRecord(ctx, f.productID, f.branchID)
	require.NoError(t, err)
	assert.Equal(t, rec.Quantity, replayed)
}

func TestConcurrentAdjustments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := f.svc.Adjust(ctx, f.productID, f.branchID, qty("1"), "", nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	rec, err := f.repo.GetRecord(ctx, f.productID, f.branchID)
	require.NoError(t, err)
	assert.Equal(t, qty("50"), rec.Quantity)
	assert.Len(t, f.repo.adjustments, workers)
}

func TestConcurrentAdjustmentsWithShortfall(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Adjust(ctx, f.productID, f.branchID, qty("100"), "seed", nil)
	require.NoError(t, err)

	// 60 decreases of 2 against 100 on hand: some must fail, quantity must
	// never go negative under any serialization.
	const workers = 60
	var succeeded int64
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := f.svc.Adjust(ctx, f.productID, f.branchID, qty("-2"), "", nil)
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				assert.True(t, apperror.IsInsufficientStock(err))
			}
		}()
	}
	wg.Wait()

	rec, err := f.repo.GetRecord(ctx, f.productID, f.branchID)
	require.NoError(t, err)
	assert.Equal(t, qty("100")-types.Quantity(succeeded)*qty("2"), rec.Quantity)
	assert.False(t, rec.Quantity.IsNegative())
	assert.Len(t, f.repo.adjustments, int(succeeded)+1)
}

func TestAdjustRetriesTransientConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Two transient conflicts, then success.
	f.svc.repo = &conflictRepo{Repository: f.repo, remaining: 2}
	res, err := f.svc.Adjust(ctx, f.productID, f.branchID, qty("5"), "", nil)
	require.NoError(t, err)
	assert.Equal(t, qty("5"), res.NewQuantity)

	// Conflicts beyond the retry budget surface to the caller.
	f.svc.repo = &conflictRepo{Repository: f.repo, remaining: maxRetries + 10}
	_, err = f.svc.Adjust(ctx, f.productID, f.branchID, qty("5"), "", nil)
	require.Error(t, err)
	assert.True(t, apperror.IsConcurrentModification(err))
}
