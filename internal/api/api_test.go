package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/tally/internal/db"
	"github.com/balkashynov/tally/internal/testutil"
)

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	store  *db.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := testutil.NewTestStore(t)
	return &testAPI{
		t:      t,
		router: NewRouter(store, slog.New(slog.NewTextHandler(io.Discard, nil))),
		store:  store,
	}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func segmentBody(start, end string) map[string]any {
	return map[string]any{"start_time": start, "end_time": end}
}

func TestHealth(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodGet, "/assessment_task/get-all-tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

	rec = a.do(http.MethodGet, "/assessment_task/get-all-tasks", "bogus", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Could not validate credentials.", decode[errorOut](t, rec).Detail)
}

func TestTasks_CreateAndList(t *testing.T) {
	a := newTestAPI(t)
	_, token := testutil.CreateUser(t, a.store)

	rec := a.do(http.MethodPost, "/assessment_task/create-task", token,
		map[string]any{"title": "Payroll export", "description": "monthly"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[taskOut](t, rec)
	assert.Equal(t, "Payroll export", created.Title)
	require.NotNil(t, created.Description)
	assert.Equal(t, "monthly", *created.Description)

	rec = a.do(http.MethodPost, "/assessment_task/create-task", token, map[string]any{"description": "no title"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[errorOut](t, rec).Detail, "title is required")

	rec = a.do(http.MethodGet, "/assessment_task/get-all-tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tasks := decode[[]taskOut](t, rec)
	require.Len(t, tasks, 1)
	assert.Equal(t, created.ID, tasks[0].ID)
}

func TestEndToEnd_WorkLogToRemittance(t *testing.T) {
	a := newTestAPI(t)
	_, admin := testutil.CreateUser(t, a.store, testutil.AsSuperuser())
	worker, token := testutil.CreateUser(t, a.store)

	rec := a.do(http.MethodPost, "/assessment_task/create-task", admin, map[string]any{"title": "Backend"})
	require.Equal(t, http.StatusCreated, rec.Code)
	task := decode[taskOut](t, rec)

	rec = a.do(http.MethodPost, "/assessment_task/create-wroklog", token, map[string]any{
		"task_id": task.ID,
		"time_segments": []map[string]any{
			segmentBody("2026-01-29T10:00:00Z", "2026-01-29T10:30:00Z"),
			segmentBody("2026-01-29T13:00:00Z", "2026-01-29T14:30:00Z"),
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[workLogOut](t, rec)
	assert.Equal(t, worker.UserID, created.UserID)
	assert.Equal(t, 120.0, created.TotalDurationMinutes)

	rec = a.do(http.MethodGet, "/assessment_task/list-all-worklogs", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	worklogs := decode[[]workLogOut](t, rec)
	require.Len(t, worklogs, 1)
	assert.Equal(t, 2, worklogs[0].SegmentCount)
	assert.Equal(t, 120.0, worklogs[0].TotalDurationMinutes)
	assert.Equal(t, 30.0, worklogs[0].TimeSegments[0].DurationMinutes)

	rec = a.do(http.MethodPost, "/assessment_task/generate-remittances-for-all-users", admin, map[string]any{
		"amount_per_hour": 10,
		"start_date":      "2026-01-29",
		"end_date":        "2026-01-29",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	gen := decode[remittancesGenerateOut](t, rec)
	assert.Equal(t, "Data successfully saved.", gen.Detail)
	assert.Equal(t, 1, gen.Created)

	rec = a.do(http.MethodGet, "/assessment_task/get-all-remittances", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	remittances := decode[[]remittanceOut](t, rec)
	require.Len(t, remittances, 1)
	assert.Equal(t, "20.00", remittances[0].TotalAmount)
	assert.Equal(t, "PENDING", remittances[0].Status)
	assert.Equal(t, worker.UserID, remittances[0].UserID)

	// repeating the run does not pay twice
	rec = a.do(http.MethodPost, "/assessment_task/generate-remittances-for-all-users", admin, map[string]any{
		"amount_per_hour": "10",
		"start_date":      "2026-01-29",
		"end_date":        "2026-01-29",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	gen = decode[remittancesGenerateOut](t, rec)
	assert.Zero(t, gen.Created)
	assert.Equal(t, 1, gen.Skipped)

	rec = a.do(http.MethodPost, "/assessment_task/mark-remittance-paid?remittance_id="+remittances[0].ID.String(), admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "REMITTED", decode[remittanceOut](t, rec).Status)

	rec = a.do(http.MethodGet, "/assessment_task/list-all-worklogs?remittance_status=REMITTED", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]workLogOut](t, rec), 1)
}

func TestCreateWorkLog_Rejections(t *testing.T) {
	a := newTestAPI(t)
	_, token := testutil.CreateUser(t, a.store)
	task := testutil.CreateTask(t, a.store, "Backend")

	rec := a.do(http.MethodPost, "/assessment_task/create-wroklog", token, map[string]any{
		"task_id":       task.ID,
		"time_segments": []map[string]any{segmentBody("2026-01-29T11:00:00Z", "2026-01-29T10:00:00Z")},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[errorOut](t, rec).Detail, "time_segments[0].end_time must be after start_time")

	missing := "7b4a4c57-5a8e-4c8f-9a53-2a0f0a0b7c11"
	rec = a.do(http.MethodPost, "/assessment_task/create-wroklog", token, map[string]any{
		"task_id":       missing,
		"time_segments": []map[string]any{segmentBody("2026-01-29T10:00:00Z", "2026-01-29T11:00:00Z")},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No task with the id "+missing+" found.", decode[errorOut](t, rec).Detail)

	rec = a.do(http.MethodPost, "/assessment_task/create-wroklog", token, `{"task_id": "nope", "time_segments": []}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = a.do(http.MethodPost, "/assessment_task/create-wroklog", token, map[string]any{
		"task_id":       task.ID,
		"time_segments": []map[string]any{},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[errorOut](t, rec).Detail, "time_segments must contain at least 1 item(s)")

	worklogs, err := a.store.ListWorkLogs(context.Background(), db.WorkLogFilter{})
	require.NoError(t, err)
	assert.Empty(t, worklogs)
}

func TestTimeSegments_OwnershipAndMutation(t *testing.T) {
	a := newTestAPI(t)
	owner, ownerToken := testutil.CreateUser(t, a.store)
	_, otherToken := testutil.CreateUser(t, a.store)
	task := testutil.CreateTask(t, a.store, "Backend")
	wl := testutil.CreateWorkLog(t, a.store, owner, task,
		testutil.Segment(testutil.At(10, 0), 30, testutil.WithDescription("draft"), testutil.WithNotes("n")),
		testutil.Segment(testutil.At(11, 0), 30),
	)
	segID := wl.TimeSegments[0].ID.String()

	rec := a.do(http.MethodGet, "/assessment_task/get-all-user-time-segments", otherToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]timeSegmentOut](t, rec))

	rec = a.do(http.MethodGet, "/assessment_task/get-all-user-time-segments", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]timeSegmentOut](t, rec), 2)

	rec = a.do(http.MethodPatch, "/assessment_task/update-time-segment?time_segment_id="+segID, otherToken,
		map[string]any{"description": "mine now"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not allowed to update this time segment.", decode[errorOut](t, rec).Detail)

	rec = a.do(http.MethodDelete, "/assessment_task/remove-time-segment?time_segment_id="+segID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(http.MethodPatch, "/assessment_task/update-time-segment?time_segment_id="+segID, ownerToken,
		map[string]any{"color": "red"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "unknown fields are rejected")

	rec = a.do(http.MethodPatch, "/assessment_task/update-time-segment?time_segment_id="+segID, ownerToken,
		`{"notes": "x"} {"notes": "y"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "trailing data is rejected")

	rec = a.do(http.MethodPatch, "/assessment_task/update-time-segment?time_segment_id="+segID, ownerToken,
		map[string]any{"start_time": nil})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = a.do(http.MethodPatch, "/assessment_task/update-time-segment?time_segment_id="+segID, ownerToken,
		map[string]any{"description": "final", "notes": nil})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Your data has been updated.", decode[updateTimeSegmentOut](t, rec).Description)

	got, err := a.store.GetTimeSegment(context.Background(), wl.TimeSegments[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "final", *got.Description)
	assert.Nil(t, got.Notes)
	assert.WithinDuration(t, testutil.At(10, 0), got.StartTime, 0)

	rec = a.do(http.MethodDelete, "/assessment_task/remove-time-segment?time_segment_id="+segID, ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Time segment deleted successfully", decode[deleteTimeSegmentOut](t, rec).Success)

	rec = a.do(http.MethodDelete, "/assessment_task/remove-time-segment?time_segment_id="+segID, ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(http.MethodDelete, "/assessment_task/remove-time-segment?time_segment_id=42", ownerToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRemittances_RequireSuperuser(t *testing.T) {
	a := newTestAPI(t)
	_, token := testutil.CreateUser(t, a.store)

	rec := a.do(http.MethodPost, "/assessment_task/generate-remittances-for-all-users", token, map[string]any{
		"amount_per_hour": 10, "start_date": "2026-01-01", "end_date": "2026-01-31",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRemittances_BadInput(t *testing.T) {
	a := newTestAPI(t)
	_, admin := testutil.CreateUser(t, a.store, testutil.AsSuperuser())

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing rate", map[string]any{"start_date": "2026-01-01", "end_date": "2026-01-31"}},
		{"bad date", map[string]any{"amount_per_hour": 10, "start_date": "someday", "end_date": "2026-01-31"}},
		{"reversed", map[string]any{"amount_per_hour": 10, "start_date": "2026-02-01", "end_date": "2026-01-01"}},
		{"negative rate", map[string]any{"amount_per_hour": -5, "start_date": "2026-01-01", "end_date": "2026-01-31"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(http.MethodPost, "/assessment_task/generate-remittances-for-all-users", admin, tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
		})
	}
}

func TestListFilters_Invalid(t *testing.T) {
	a := newTestAPI(t)
	_, token := testutil.CreateUser(t, a.store)

	rec := a.do(http.MethodGet, "/assessment_task/list-all-worklogs?remittance_status=MAYBE", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = a.do(http.MethodGet, "/assessment_task/get-all-remittances?status=MAYBE", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
	assert.Equal(t, http.StatusConflict, statusFor(&db.Error{Kind: db.ErrConflict}))
}
