package main

import (
	"context"
	"sync"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/address-verify/internal/model"
	"github.com/sells-group/address-verify/internal/store"
)

// fakeStore records saved locations for batch tests.
type fakeStore struct {
	mu      sync.Mutex
	saved   []model.Location
	saveErr error
}

func (f *fakeStore) GetLocation(context.Context, string) (*model.Location, error) {
	return nil, eris.New("not implemented")
}

func (f *fakeStore) ListPending(context.Context, store.ListFilter) ([]model.Location, error) {
	return nil, nil
}

func (f *fakeStore) SaveLocation(_ context.Context, loc *model.Location) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, *loc)
	return nil
}

func (f *fakeStore) Migrate(context.Context) error { return nil }
func (f *fakeStore) Close() error                  { return nil }

func TestProcessBatch_Empty(t *testing.T) {
	st := &fakeStore{}
	err := processBatch(context.Background(), nil, 2, st, func(context.Context, *model.Location) (bool, string) {
		t.Fatal("verify should not be called for an empty batch")
		return false, ""
	})
	require.NoError(t, err)
	assert.Empty(t, st.saved)
}

func TestProcessBatch_SavesEveryRecord(t *testing.T) {
	st := &fakeStore{}
	locs := []model.Location{
		{ID: "loc-1", Street1: "1 First St"},
		{ID: "loc-2", Street1: "2 Second St"},
		{ID: "loc-3", Street1: "3 Third St"},
	}

	err := processBatch(context.Background(), locs, 2, st, func(_ context.Context, loc *model.Location) (bool, string) {
		// loc-2 fails verification; it is still saved with its bookkeeping.
		return loc.ID != "loc-2", "summary"
	})
	require.NoError(t, err)
	assert.Len(t, st.saved, 3)
}

func TestProcessBatch_SaveFailureDoesNotAbort(t *testing.T) {
	st := &fakeStore{saveErr: eris.New("connection lost")}
	locs := []model.Location{
		{ID: "loc-1"},
		{ID: "loc-2"},
	}

	var calls int
	var mu sync.Mutex
	err := processBatch(context.Background(), locs, 1, st, func(context.Context, *model.Location) (bool, string) {
		mu.Lock()
		calls++
		mu.Unlock()
		return true, ""
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
