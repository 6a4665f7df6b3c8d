package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"asset-tracker/internal/cache"
	"asset-tracker/internal/entities"
	"asset-tracker/internal/repositories"
	"asset-tracker/internal/sheets"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// spyStore считает чтения по листам и позволяет подложить ошибки.
type spyStore struct {
	sheets.Store

	mu       sync.Mutex
	reads    map[string]int
	writes   int
	readErr  map[string]error
	writeErr error
}

func newSpyStore(next sheets.Store) *spyStore {
	return &spyStore{Store: next, reads: map[string]int{}, readErr: map[string]error{}}
}

func (s *spyStore) ReadTable(ctx context.Context, name string) (*sheets.Table, error) {
	s.mu.Lock()
	s.reads[name]++
	err := s.readErr[name]
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.Store.ReadTable(ctx, name)
}

func (s *spyStore) WriteTable(ctx context.Context, name string, header []string, rows [][]string) error {
	s.mu.Lock()
	s.writes++
	err := s.writeErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.Store.WriteTable(ctx, name, header, rows)
}

func (s *spyStore) readCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[name]
}

type testEnv struct {
	store  *spyStore
	clock  *fakeClock
	refs   ReferenceServiceInterface
	assets repositories.AssetRepositoryInterface
	logs   repositories.AuditLogRepositoryInterface
	sync   SyncServiceInterface
	refRep repositories.ReferenceRepositoryInterface
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	workbook, err := sheets.NewWorkbookStore(filepath.Join(t.TempDir(), "assets.xlsx"), zap.NewNop())
	require.NoError(t, err)

	logger := zap.NewNop()
	store := newSpyStore(workbook)
	clock := newFakeClock()

	refRepo := repositories.NewReferenceRepository(store, logger)
	refs := NewReferenceService(refRepo, cache.New(repositories.NewMemoryCacheRepository(clock), cache.DefaultTTL, logger), logger)
	assets := repositories.NewAssetRepository(store, logger)

	return &testEnv{
		store:  store,
		clock:  clock,
		refs:   refs,
		assets: assets,
		logs:   repositories.NewAuditLogRepository(store, logger),
		sync:   NewSyncService(assets, refs, clock, logger),
		refRep: refRepo,
	}
}

// seedReferences: категория Elektronik (код 1, 10%, 5 лет), тип Laptop (5),
// компания ABC, владелец IT.
func (e *testEnv) seedReferences(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.refRep.AppendCategory(ctx, entities.Category{
		Name: "Elektronik", Code: "1", ResidualPercent: decimal.NewFromInt(10), UsefulLife: 5,
	}))
	require.NoError(t, e.refRep.AppendType(ctx, entities.AssetType{Name: "Laptop", Category: "Elektronik", Code: "5"}))
	require.NoError(t, e.refRep.AppendCompany(ctx, entities.Company{Name: "PT Abadi", Code: "ABC"}))
	require.NoError(t, e.refRep.AppendOwner(ctx, entities.Owner{Name: "IT Department", Code: "IT"}))
	require.NoError(t, e.refRep.AppendLocation(ctx, entities.Location{Name: "Jakarta", Room: "R101"}))
}
