package store_test

import (
	"context"
	"errors"
	"testing"

	"watchlist/core/database"
	"watchlist/core/entry"
	"watchlist/core/reconcile"
	"watchlist/feature/watchlist/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	s := store.New(db)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func newMockStore(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return store.New(db), mock
}

func seed(t *testing.T, s *store.Store, entries ...entry.Entry) {
	t.Helper()
	for _, e := range entries {
		_, err := s.Upsert(context.Background(), e)
		require.NoError(t, err)
	}
}

func TestStore_UpsertAndGet(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	e := entry.Entry{ID: 1, Status: entry.StatusWatching, Score: 8, Progress: 4, Title: "Alpha", StartDate: entry.Date("2024-01-02")}
	_, err := s.Upsert(ctx, e)
	require.NoError(t, err)

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, e.Equal(*got))

	// Update in place, including back to zero values
	e.Score = 0
	e.Favorite = false
	e.StartDate = nil
	e.Status = entry.StatusDropped
	_, err = s.Upsert(ctx, e)
	require.NoError(t, err)

	got, err = s.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, e.Equal(*got))

	missing, err := s.Get(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStore_ListAndFilter(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seed(t, s,
		entry.Entry{ID: 1, Status: entry.StatusWatching, Title: "A"},
		entry.Entry{ID: 2, Status: entry.StatusCompleted, Title: "B"},
		entry.Entry{ID: 3, Status: entry.StatusCompleted, Title: "C"},
	)

	all, err := s.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	completed := entry.StatusCompleted
	filtered, err := s.List(ctx, &completed)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	for _, e := range filtered {
		assert.Equal(t, entry.StatusCompleted, e.Status)
	}
}

func TestStore_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seed(t, s,
		entry.Entry{ID: 1, Status: entry.StatusWatching},
		entry.Entry{ID: 2, Status: entry.StatusPlanned},
	)

	ok, err := s.Delete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Delete(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Clear(ctx))
	all, err := s.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_Search(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seed(t, s,
		entry.Entry{ID: 1, Status: entry.StatusWatching, Title: "Cowboy Bebop"},
		entry.Entry{ID: 2, Status: entry.StatusCompleted, Title: "Space Dandy"},
		entry.Entry{ID: 3, Status: entry.StatusPlanned, Title: "Bebop Remix"},
	)

	got, err := s.Search(ctx, "BEBOP")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bebop Remix", got[0].Title)
	assert.Equal(t, "Cowboy Bebop", got[1].Title)
}

func TestStore_Stats(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	empty, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.Total)
	assert.Equal(t, 0.0, empty.MeanScore)
	assert.Len(t, empty.ByStatus, len(entry.Statuses))

	seed(t, s,
		entry.Entry{ID: 1, Status: entry.StatusWatching, Score: 8, Progress: 5},
		entry.Entry{ID: 2, Status: entry.StatusCompleted, Score: 6, Progress: 12},
		entry.Entry{ID: 3, Status: entry.StatusCompleted, Score: 0, Progress: 24},
	)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.ByStatus[entry.StatusCompleted])
	assert.Equal(t, int64(1), stats.ByStatus[entry.StatusWatching])
	assert.Equal(t, int64(0), stats.ByStatus[entry.StatusDropped])
	assert.Equal(t, int64(41), stats.TotalProgress)
	assert.InDelta(t, 7.0, stats.MeanScore, 0.0001, "unrated entries are excluded")

	counts, err := s.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[entry.StatusCompleted])

	progress, mean, err := s.Aggregate(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(41), progress)
	assert.InDelta(t, 7.0, mean, 0.0001)
}

func TestStore_ExclusiveReplace(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seed(t, s,
		entry.Entry{ID: 100, Status: entry.StatusWatching},
		entry.Entry{ID: 101, Status: entry.StatusDropped},
	)

	engine := reconcile.NewEngine(s, nil)
	incoming := []entry.Entry{
		{ID: 1, Status: entry.StatusWatching},
		{ID: 2, Status: entry.StatusCompleted},
		{ID: 3, Status: entry.StatusPlanned},
	}
	policy := reconcile.Policy{Scope: entry.ScopeAll, Strategy: reconcile.StrategyReplace, Resolution: reconcile.ResolutionKeepExisting}

	out, err := engine.Reconcile(ctx, incoming, policy)
	require.NoError(t, err)
	assert.True(t, out.Consistent())
	assert.Equal(t, 3, out.Imported)

	all, err := s.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStore_ReplaceClearFailureRollsBack(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `watchlist_entries`").WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	engine := reconcile.NewEngine(s, nil)
	policy := reconcile.Policy{Scope: entry.ScopeAll, Strategy: reconcile.StrategyReplace, Resolution: reconcile.ResolutionUseImported}

	out, err := engine.Reconcile(context.Background(), []entry.Entry{{ID: 1, Status: entry.StatusWatching}}, policy)
	assert.Nil(t, out)

	var serr *reconcile.StoreError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, reconcile.OpClear, serr.Op)
	assert.ErrorContains(t, err, "lock wait timeout")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetFailureIsRecordedPerEntry(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `watchlist_entries`").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	engine := reconcile.NewEngine(s, nil)
	policy := reconcile.Policy{Scope: entry.ScopeAll, Strategy: reconcile.StrategyMerge, Resolution: reconcile.ResolutionUseImported}

	out, err := engine.Reconcile(context.Background(), []entry.Entry{{ID: 1, Status: entry.StatusWatching}}, policy)
	require.NoError(t, err)
	assert.True(t, out.Consistent())
	require.Len(t, out.Errors, 1)
	assert.Equal(t, reconcile.KindStore, out.Errors[0].Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}
