package backup

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"watchlist/core/database"
	"watchlist/core/entry"
	"watchlist/core/reconcile"
	"watchlist/core/storage"
	"watchlist/feature/watchlist"
	"watchlist/feature/watchlist/store"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	service *Service
	store   *store.Store
	fs      afero.Fs
	clock   time.Time
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	st := store.New(db)
	require.NoError(t, st.Migrate(ctx))

	for _, e := range []entry.Entry{
		{ID: 1, Status: entry.StatusWatching, Title: "One"},
		{ID: 2, Status: entry.StatusCompleted, Title: "Two"},
	} {
		_, err := st.Upsert(ctx, e)
		require.NoError(t, err)
	}

	fs := afero.NewMemMapFs()
	backend := storage.NewLocalBackend(fs, "/data")
	wl := watchlist.NewService(st, backend, zap.NewNop(), watchlist.Options{AppVersion: "test"})

	f := &fixture{store: st, fs: fs, clock: time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC)}
	f.service = NewService(wl, backend, cfg, zap.NewNop())
	f.service.now = func() time.Time {
		f.clock = f.clock.Add(time.Hour)
		return f.clock
	}
	return f
}

func TestService_RunWritesBackup(t *testing.T) {
	f := newFixture(t, Config{Scope: "all", Retain: 3, Prefix: "backups"})

	res, err := f.service.Run(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "backups/watchlist_all_20240501_040000.json", res.Name)
	assert.Equal(t, 2, res.EntryCount)
	assert.Empty(t, res.Pruned)

	exists, err := afero.Exists(f.fs, "/data/backups/watchlist_all_20240501_040000.json")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestService_RunPrunesOldest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Config{Scope: "all", Retain: 2, Prefix: "backups"})

	var names []string
	for i := 0; i < 4; i++ {
		res, err := f.service.Run(ctx)
		require.NoError(t, err)
		names = append(names, res.Name)
	}

	backups, err := f.service.List(ctx)
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, names[3], backups[0].Name)
	assert.Equal(t, names[2], backups[1].Name)
}

func TestService_RunInvalidScope(t *testing.T) {
	f := newFixture(t, Config{Scope: "favorites", Prefix: "backups"})
	_, err := f.service.Run(context.Background())
	assert.Error(t, err)
}

func TestService_Restore(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Config{Scope: "all", Retain: 5, Prefix: "backups"})

	res, err := f.service.Run(ctx)
	require.NoError(t, err)

	require.NoError(t, f.store.Clear(ctx))
	_, err = f.store.Upsert(ctx, entry.Entry{ID: 99, Status: entry.StatusDropped})
	require.NoError(t, err)

	out, err := f.service.Restore(ctx, "watchlist_all_20240501_040000.json", watchlist.ImportOptions{Strategy: "replace"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Imported)
	assert.Equal(t, reconcile.StrategyReplace, out.Strategy)

	all, err := f.store.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// The full name works too
	out, err = f.service.Restore(ctx, res.Name, watchlist.ImportOptions{DryRun: true})
	require.NoError(t, err)
	assert.True(t, out.DryRun)

	_, err = f.service.Restore(ctx, "../secrets.json", watchlist.ImportOptions{})
	assert.ErrorIs(t, err, watchlist.ErrInvalidInput)
}

func TestHandler(t *testing.T) {
	f := newFixture(t, Config{Scope: "all", Retain: 5, Prefix: "backups"})
	app := fiber.New()
	require.NoError(t, NewFeature(f.service).Load(app))

	resp, err := app.Test(httptest.NewRequest("POST", "/backups", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var run RunResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))

	resp, err = app.Test(httptest.NewRequest("GET", "/backups", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var list []storage.ObjectInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, run.Name, list[0].Name)

	resp, err = app.Test(httptest.NewRequest("POST", "/backups/watchlist_all_20240501_040000.json/restore?resolution=use_imported", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var out reconcile.Outcome
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 2, out.Updated)

	resp, err = app.Test(httptest.NewRequest("POST", "/backups/missing.json/restore", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/backups/watchlist_all_20240501_040000.json/restore?strategy=nuke", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("0 3 * * *"))
	assert.NoError(t, ValidateSchedule("*/15 * * * 1-5"))
	assert.Error(t, ValidateSchedule("0 0 3 * * *"))
	assert.Error(t, ValidateSchedule("nightly"))
}

func TestScheduler(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		f := newFixture(t, Config{Enabled: false})
		s := NewScheduler(f.service, Config{Enabled: false, Schedule: "0 3 * * *"}, zap.NewNop())
		require.NoError(t, s.Start(context.Background()))
		assert.False(t, s.IsRunning())
		assert.Nil(t, s.NextRun())
	})

	t.Run("InvalidSchedule", func(t *testing.T) {
		f := newFixture(t, Config{})
		s := NewScheduler(f.service, Config{Enabled: true, Schedule: "every day"}, zap.NewNop())
		assert.Error(t, s.Start(context.Background()))
		assert.False(t, s.IsRunning())
	})

	t.Run("StartStop", func(t *testing.T) {
		f := newFixture(t, Config{})
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		s := NewScheduler(f.service, Config{Enabled: true, Schedule: "0 3 * * *"}, zap.NewNop())
		require.NoError(t, s.Start(ctx))
		assert.True(t, s.IsRunning())

		next := s.NextRun()
		require.NotNil(t, next)
		assert.Equal(t, 3, next.Hour())

		s.Stop()
		assert.False(t, s.IsRunning())
	})

	t.Run("JobRunsBackup", func(t *testing.T) {
		f := newFixture(t, Config{Scope: "all", Prefix: "backups"})
		s := NewScheduler(f.service, Config{Enabled: true, Schedule: "0 3 * * *"}, zap.NewNop())
		s.runJob(context.Background())

		backups, err := f.service.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, backups, 1)
	})
}
