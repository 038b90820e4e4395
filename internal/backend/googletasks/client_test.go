package googletasks_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdash/internal/backend/googletasks"
	"taskdash/internal/service"
)

const listPath = "/tasks/v1/lists/@default/tasks"

type fakeGoogle struct {
	mu     sync.Mutex
	items  []map[string]any
	bodies []map[string]any
	status int
}

func (f *fakeGoogle) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_, _ = io.WriteString(w, `{"error":{"code":401,"message":"Invalid Credentials"}}`)
		return
	}

	var body map[string]any
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		_ = json.Unmarshal(data, &body)
		f.bodies = append(f.bodies, body)
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == listPath:
		_ = json.NewEncoder(w).Encode(map[string]any{"items": f.items})
	case r.Method == http.MethodPost && r.URL.Path == listPath:
		body["id"] = "g-new"
		_ = json.NewEncoder(w).Encode(body)
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, listPath+"/"):
		_ = json.NewEncoder(w).Encode(body)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, listPath+"/"):
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"code":404,"message":"Not Found"}}`)
	}
}

func newClient(t *testing.T, f *fakeGoogle) *googletasks.Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	c, err := googletasks.NewWithHTTPClient(context.Background(), srv.Client(), srv.URL+"/")
	require.NoError(t, err)
	return c
}

func TestListTasks_MapsFields(t *testing.T) {
	f := &fakeGoogle{items: []map[string]any{
		{"id": "g1", "title": "Open", "notes": "n", "status": "needsAction", "due": "2025-05-01T00:00:00.000Z"},
		{"id": "g2", "title": "Done", "status": "completed"},
	}}
	c := newClient(t, f)

	got, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "g1", got[0].ID)
	assert.Equal(t, "n", got[0].Description)
	assert.Equal(t, service.StatusPending, got[0].Status)
	require.NotNil(t, got[0].DueDate)
	assert.True(t, got[0].DueDate.Equal(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, service.StatusCompleted, got[1].Status)
	assert.Nil(t, got[1].DueDate)
}

func TestCreateTask_ReturnsServerID(t *testing.T) {
	f := &fakeGoogle{}
	c := newClient(t, f)

	got, err := c.CreateTask(context.Background(), service.Draft{
		Title: "New", Description: "notes", Status: service.StatusInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, "g-new", got.ID)
	assert.Equal(t, service.StatusPending, got.Status)

	require.Len(t, f.bodies, 1)
	assert.Equal(t, "New", f.bodies[0]["title"])
	assert.Equal(t, "notes", f.bodies[0]["notes"])
	assert.Equal(t, "needsAction", f.bodies[0]["status"])
}

func TestUpdateTask_SendsFullResource(t *testing.T) {
	f := &fakeGoogle{}
	c := newClient(t, f)

	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	err := c.UpdateTask(context.Background(), "g1", service.Draft{Title: "T", Status: service.StatusCompleted, DueDate: &due})
	require.NoError(t, err)

	require.Len(t, f.bodies, 1)
	assert.Equal(t, "g1", f.bodies[0]["id"])
	assert.Equal(t, "completed", f.bodies[0]["status"])
	assert.Equal(t, "2025-06-01T00:00:00Z", f.bodies[0]["due"])
}

func TestDeleteTask(t *testing.T) {
	c := newClient(t, &fakeGoogle{})
	require.NoError(t, c.DeleteTask(context.Background(), "g1"))
}

func TestErrorsMapToServiceError(t *testing.T) {
	c := newClient(t, &fakeGoogle{status: http.StatusUnauthorized})

	_, err := c.ListTasks(context.Background())
	require.Error(t, err)

	var se *service.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, service.AuthenticationRejected, se.Kind)
	assert.Equal(t, http.StatusUnauthorized, se.Status)
	assert.Equal(t, "Invalid Credentials", se.Message)
}

type deadlineRecorder struct {
	next        http.RoundTripper
	mu          sync.Mutex
	hadDeadline []bool
}

func (d *deadlineRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	_, ok := req.Context().Deadline()
	d.mu.Lock()
	d.hadDeadline = append(d.hadDeadline, ok)
	d.mu.Unlock()
	return d.next.RoundTrip(req)
}

func TestCalls_UseCallerContextWithoutDeadline(t *testing.T) {
	f := &fakeGoogle{items: []map[string]any{{"id": "g1", "title": "Open", "status": "needsAction"}}}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	rec := &deadlineRecorder{next: srv.Client().Transport}
	c, err := googletasks.NewWithHTTPClient(context.Background(), &http.Client{Transport: rec}, srv.URL+"/")
	require.NoError(t, err)

	ctx := context.Background()
	_, err = c.ListTasks(ctx)
	require.NoError(t, err)
	_, err = c.CreateTask(ctx, service.Draft{Title: "New", Status: service.StatusPending})
	require.NoError(t, err)
	require.NoError(t, c.UpdateTask(ctx, "g1", service.Draft{Title: "T", Status: service.StatusCompleted}))
	require.NoError(t, c.DeleteTask(ctx, "g1"))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.hadDeadline, 4)
	for i, ok := range rec.hadDeadline {
		assert.False(t, ok, "request %d carried a deadline", i)
	}
}
