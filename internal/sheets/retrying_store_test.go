package sheets

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
)

// flakyStore падает failures раз подряд на каждой операции.
type flakyStore struct {
	failures int
	err      error
	calls    map[string]int
}

func newFlakyStore(failures int, err error) *flakyStore {
	return &flakyStore{failures: failures, err: err, calls: map[string]int{}}
}

func (f *flakyStore) hit(op string) error {
	f.calls[op]++
	if f.calls[op] <= f.failures {
		return f.err
	}
	return nil
}

func (f *flakyStore) ReadTable(_ context.Context, name string) (*Table, error) {
	if err := f.hit("read"); err != nil {
		return nil, err
	}
	return &Table{Name: name}, nil
}

func (f *flakyStore) WriteTable(context.Context, string, []string, [][]string) error {
	return f.hit("write")
}

func (f *flakyStore) AppendRow(context.Context, string, []string) error {
	return f.hit("append")
}

func (f *flakyStore) UpdateCell(context.Context, string, int, int, string) error {
	return f.hit("update_cell")
}

func (f *flakyStore) DeleteRow(context.Context, string, int) error {
	return f.hit("delete")
}

func (f *flakyStore) EnsureTable(context.Context, string, []string) error {
	return f.hit("ensure")
}

var errUnavailable = &googleapi.Error{Code: 503, Message: "backend unavailable"}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(errUnavailable))
	assert.True(t, IsTransient(&googleapi.Error{Code: 429}))
	assert.False(t, IsTransient(&googleapi.Error{Code: 400}))
	assert.False(t, IsTransient(ErrTableNotFound))
	assert.False(t, IsTransient(fmt.Errorf("get: %w", context.DeadlineExceeded)))
	assert.False(t, IsTransient(fmt.Errorf("get: %w", context.Canceled)))
}

func TestRetryingStore_RetriesIdempotentOps(t *testing.T) {
	inner := newFlakyStore(2, errUnavailable)
	store := NewRetryingStore(inner, 3, time.Millisecond, zap.NewNop())
	ctx := context.Background()

	table, err := store.ReadTable(ctx, "Assets")
	require.NoError(t, err)
	assert.Equal(t, "Assets", table.Name)
	assert.Equal(t, 3, inner.calls["read"])

	require.NoError(t, store.WriteTable(ctx, "Assets", nil, nil))
	require.NoError(t, store.UpdateCell(ctx, "Assets", 0, 0, "x"))
	require.NoError(t, store.EnsureTable(ctx, "Assets", nil))
	assert.Equal(t, 3, inner.calls["write"])
	assert.Equal(t, 3, inner.calls["update_cell"])
	assert.Equal(t, 3, inner.calls["ensure"])
}

func TestRetryingStore_AppendAndDeleteAreNotRetried(t *testing.T) {
	inner := newFlakyStore(1, errUnavailable)
	store := NewRetryingStore(inner, 3, time.Millisecond, zap.NewNop())
	ctx := context.Background()

	assert.Error(t, store.AppendRow(ctx, "Assets", []string{"1"}))
	assert.Error(t, store.DeleteRow(ctx, "Assets", 0))
	assert.Equal(t, 1, inner.calls["append"])
	assert.Equal(t, 1, inner.calls["delete"])
}

func TestRetryingStore_Exhausted(t *testing.T) {
	inner := newFlakyStore(10, errUnavailable)
	store := NewRetryingStore(inner, 2, time.Millisecond, zap.NewNop())

	_, err := store.ReadTable(context.Background(), "Assets")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetriesExhausted)

	var apiErr *googleapi.Error
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 3, inner.calls["read"], "first attempt plus two retries")
}

func TestRetryingStore_PermanentErrorNotRetried(t *testing.T) {
	inner := newFlakyStore(10, ErrTableNotFound)
	store := NewRetryingStore(inner, 3, time.Millisecond, zap.NewNop())

	_, err := store.ReadTable(context.Background(), "Ref_Types")
	assert.ErrorIs(t, err, ErrTableNotFound)
	assert.NotErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, 1, inner.calls["read"])
}

func TestRetryingStore_ContextDeadlineNotRetried(t *testing.T) {
	inner := newFlakyStore(10, fmt.Errorf("get: %w", context.DeadlineExceeded))
	store := NewRetryingStore(inner, 3, time.Millisecond, zap.NewNop())

	_, err := store.ReadTable(context.Background(), "Assets")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, 1, inner.calls["read"])
}
