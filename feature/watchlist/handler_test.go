package watchlist

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"watchlist/core/entry"
	"watchlist/core/reconcile"
	"watchlist/feature/watchlist/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, *Service) {
	t.Helper()
	svc, _, _ := newTestService(t)
	seedEntries(t, svc)

	app := fiber.New()
	require.NoError(t, NewFeature(svc).Load(app))
	return app, svc
}

func doRequest(t *testing.T, app *fiber.App, method, target string, body []byte) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestHandler_Entries(t *testing.T) {
	app, _ := newTestApp(t)

	code, body := doRequest(t, app, "GET", "/entries", nil)
	assert.Equal(t, 200, code)
	var all []entry.Entry
	require.NoError(t, json.Unmarshal(body, &all))
	assert.Len(t, all, 3)

	code, body = doRequest(t, app, "GET", "/entries?status=completed", nil)
	assert.Equal(t, 200, code)
	require.NoError(t, json.Unmarshal(body, &all))
	assert.Len(t, all, 1)

	code, _ = doRequest(t, app, "GET", "/entries?status=paused", nil)
	assert.Equal(t, 400, code)

	code, body = doRequest(t, app, "GET", "/entries/search?q=third", nil)
	assert.Equal(t, 200, code)
	require.NoError(t, json.Unmarshal(body, &all))
	require.Len(t, all, 1)
	assert.Equal(t, int64(3), all[0].ID)

	code, _ = doRequest(t, app, "GET", "/entries/2", nil)
	assert.Equal(t, 200, code)
	code, _ = doRequest(t, app, "GET", "/entries/99", nil)
	assert.Equal(t, 404, code)
	code, _ = doRequest(t, app, "GET", "/entries/abc", nil)
	assert.Equal(t, 400, code)
}

func TestHandler_UpsertAndDelete(t *testing.T) {
	app, svc := newTestApp(t)

	code, _ := doRequest(t, app, "PUT", "/entries/50", []byte(`{"status":"watching","score":6,"title":"New"}`))
	assert.Equal(t, 200, code)

	e, err := svc.Get(t.Context(), 50)
	require.NoError(t, err)
	assert.Equal(t, "New", e.Title)

	code, _ = doRequest(t, app, "PUT", "/entries/50", []byte(`{"status":"watching","score":60}`))
	assert.Equal(t, 400, code)

	code, _ = doRequest(t, app, "PUT", "/entries/50", []byte(`{"id":51,"status":"watching"}`))
	assert.Equal(t, 400, code)

	code, _ = doRequest(t, app, "DELETE", "/entries/50", nil)
	assert.Equal(t, 204, code)
	code, _ = doRequest(t, app, "DELETE", "/entries/50", nil)
	assert.Equal(t, 404, code)
}

func TestHandler_Stats(t *testing.T) {
	app, _ := newTestApp(t)

	code, body := doRequest(t, app, "GET", "/stats", nil)
	assert.Equal(t, 200, code)

	var stats store.Stats
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, int64(3), stats.Total)
}

func TestHandler_ExportImport(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/export?scope=all", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderContentDisposition), `attachment; filename="watchlist_export_all_`))
	snapshotBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	code, body := doRequest(t, app, "POST", "/import?strategy=merge&resolution=keep_existing", snapshotBody)
	assert.Equal(t, 200, code)
	var out reconcile.Outcome
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, 3, out.Total)
	assert.Equal(t, 3, out.Skipped)
	assert.Equal(t, 3, out.Conflicts)

	code, body = doRequest(t, app, "POST", "/import?strategy=replace&dry_run=true", snapshotBody)
	assert.Equal(t, 200, code)
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.DryRun)
	assert.Equal(t, 3, out.Imported)

	code, _ = doRequest(t, app, "POST", "/import", []byte("garbage"))
	assert.Equal(t, 400, code)

	code, _ = doRequest(t, app, "POST", "/import", []byte(`{"format_version":"3.1","entries":[]}`))
	assert.Equal(t, 400, code)

	code, _ = doRequest(t, app, "POST", "/import?resolution=newest", snapshotBody)
	assert.Equal(t, 400, code)

	code, _ = doRequest(t, app, "GET", "/export?scope=everything", nil)
	assert.Equal(t, 400, code)
}
