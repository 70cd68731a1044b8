package feeds

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"untis-notifier/core/reconcile"
	"untis-notifier/core/scheduler"
	"untis-notifier/core/snapshot"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeScheduler struct {
	triggered []reconcile.Kind
}

func (f *fakeScheduler) Trigger(kind reconcile.Kind) error {
	f.triggered = append(f.triggered, kind)
	return nil
}

func (f *fakeScheduler) Status() []scheduler.FeedStatus {
	return []scheduler.FeedStatus{{Kind: reconcile.KindTimetable, Enabled: true}}
}

func setupTestApp(t *testing.T) (*fiber.App, *fakeScheduler, *snapshot.MemoryStore) {
	app := fiber.New()
	sched := &fakeScheduler{}
	store := snapshot.NewMemoryStore()
	f := NewFeature(sched, store, zap.NewNop(), true)
	require.NoError(t, f.Load(app))
	return app, sched, store
}

func TestHandleCheck(t *testing.T) {
	app, sched, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/check/absences", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "absence", body["kind"])
	assert.Equal(t, []reconcile.Kind{reconcile.KindAbsence}, sched.triggered)

	resp, err = app.Test(httptest.NewRequest("POST", "/check/grades", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Len(t, sched.triggered, 1)
}

func TestHandleStatus(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/status", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "timetable", body[0]["kind"])
}

func TestHandleGetSnapshot(t *testing.T) {
	app, _, store := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/snapshots/exams", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/snapshots/grades", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	marker := 20240910
	require.NoError(t, store.Save(context.Background(), &reconcile.Snapshot{
		Kind: reconcile.KindTimetable, Records: []byte(`[{"id":1}]`), Marker: &marker,
	}))

	resp, err = app.Test(httptest.NewRequest("GET", "/snapshots/timetable", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Kind    string            `json:"kind"`
		Records []json.RawMessage `json:"records"`
		Marker  int               `json:"marker"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "timetable", body.Kind)
	assert.Len(t, body.Records, 1)
	assert.Equal(t, 20240910, body.Marker)
}

func TestFeature(t *testing.T) {
	f := NewFeature(&fakeScheduler{}, snapshot.NewMemoryStore(), zap.NewNop(), false)
	assert.Equal(t, "feeds", f.Name())
	assert.False(t, f.IsEnabled())
}
