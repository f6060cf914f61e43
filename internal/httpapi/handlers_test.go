package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/roster/internal/platform"
	"github.com/aretw0/roster/pkg/adapters/memory"
	"github.com/aretw0/roster/pkg/core"
	"github.com/aretw0/roster/pkg/store"
	"github.com/aretw0/roster/pkg/view"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, opts ...platform.Option) (*httptest.Server, *platform.Console) {
	t.Helper()
	opts = append([]platform.Option{
		platform.WithAdapter("memory"),
		platform.WithClock(func() time.Time { return fixedNow }),
	}, opts...)

	c, err := platform.Open("", opts...)
	require.NoError(t, err)

	h := NewHandler(c, WithNow(func() time.Time { return fixedNow }))
	srv := httptest.NewServer(NewRouter(h, CORSOptions{}))
	t.Cleanup(srv.Close)
	return srv, c
}

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestEmployeesEndpoints(t *testing.T) {
	srv, c := newTestServer(t)

	t.Run("List", func(t *testing.T) {
		resp := do(t, http.MethodGet, srv.URL+"/api/employees", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, decodeBody[[]store.EmployeeSummary](t, resp), 6)
	})

	t.Run("Create", func(t *testing.T) {
		resp := do(t, http.MethodPost, srv.URL+"/api/employees", core.NewEmployee{
			Name:   "Olga Sidorova",
			Skills: []string{" Go ", "Go", "SQL"},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		e := decodeBody[core.Employee](t, resp)
		assert.Equal(t, 7, e.ID)
		assert.Equal(t, []string{"Go", "SQL"}, e.Skills)
		assert.Equal(t, core.ActivityEmployeeAdded, c.Activity.All()[0].Type)
	})

	t.Run("Get", func(t *testing.T) {
		resp := do(t, http.MethodGet, srv.URL+"/api/employees/7", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Olga Sidorova", decodeBody[store.EmployeeSummary](t, resp).Name)
	})

	t.Run("Patch", func(t *testing.T) {
		title := "Lead"
		resp := do(t, http.MethodPatch, srv.URL+"/api/employees/7", core.EmployeePatch{Title: &title})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Lead", decodeBody[core.Employee](t, resp).Title)
	})

	t.Run("Rate", func(t *testing.T) {
		resp := do(t, http.MethodPost, srv.URL+"/api/employees/7/ratings", core.NewRating{Rating: 4, Author: "Anna"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		r := decodeBody[core.Rating](t, resp)
		assert.Equal(t, 1, r.ID)
		assert.Equal(t, "2025-03-10", r.Date)
	})

	t.Run("Search", func(t *testing.T) {
		resp := do(t, http.MethodGet, srv.URL+"/api/employees?q=olga", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		found := decodeBody[[]store.EmployeeSummary](t, resp)
		require.Len(t, found, 1)
		assert.Equal(t, 4.0, found[0].AverageRating)
	})

	t.Run("Not Found", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, do(t, http.MethodGet, srv.URL+"/api/employees/99", nil).StatusCode)

		name := "Ghost"
		resp := do(t, http.MethodPatch, srv.URL+"/api/employees/99", core.EmployeePatch{Name: &name})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Bad Requests", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, do(t, http.MethodGet, srv.URL+"/api/employees/abc", nil).StatusCode)

		resp := do(t, http.MethodPost, srv.URL+"/api/employees", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid request body", decodeBody[ErrorResponse](t, resp).Error)
	})
}

func TestEmployersEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/employers", core.NewEmployer{CompanyName: "Acme", Industry: "Retail"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[core.Employer](t, resp)
	assert.Equal(t, 4, created.ID)
	assert.Equal(t, "2025-03-10", created.CreatedAt)

	resp = do(t, http.MethodGet, srv.URL+"/api/employers", nil)
	list := decodeBody[[]core.Employer](t, resp)
	require.Len(t, list, 4)
	assert.Equal(t, 4, list[0].ID)

	resp = do(t, http.MethodGet, srv.URL+"/api/employers?q=retail", nil)
	assert.Len(t, decodeBody[[]core.Employer](t, resp), 1)

	assert.Equal(t, http.StatusNoContent, do(t, http.MethodDelete, srv.URL+"/api/employers/4", nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, do(t, http.MethodDelete, srv.URL+"/api/employers/4", nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, do(t, http.MethodGet, srv.URL+"/api/employers/4", nil).StatusCode)
}

func TestTestsEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("Filter", func(t *testing.T) {
		resp := do(t, http.MethodGet, srv.URL+"/api/tests?difficulty=HARD", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		for _, tt := range decodeBody[[]core.Test](t, resp) {
			assert.Equal(t, core.Difficulty("hard"), tt.Difficulty)
		}

		resp = do(t, http.MethodGet, srv.URL+"/api/tests?active=true", nil)
		for _, tt := range decodeBody[[]core.Test](t, resp) {
			assert.True(t, tt.IsActive)
		}
	})

	t.Run("Invalid Query", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, do(t, http.MethodGet, srv.URL+"/api/tests?difficulty=extreme", nil).StatusCode)
		assert.Equal(t, http.StatusBadRequest, do(t, http.MethodGet, srv.URL+"/api/tests?active=maybe", nil).StatusCode)
	})

	t.Run("Lifecycle", func(t *testing.T) {
		resp := do(t, http.MethodPost, srv.URL+"/api/tests", core.NewTest{Title: "Go", Difficulty: "medium", IsActive: true})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		created := decodeBody[core.Test](t, resp)

		active := false
		resp = do(t, http.MethodPatch, srv.URL+"/api/tests/7", core.TestPatch{IsActive: &active})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.False(t, decodeBody[core.Test](t, resp).IsActive)

		assert.Equal(t, 7, created.ID)
		assert.Equal(t, http.StatusNoContent, do(t, http.MethodDelete, srv.URL+"/api/tests/7", nil).StatusCode)
		assert.Equal(t, http.StatusNotFound, do(t, http.MethodGet, srv.URL+"/api/tests/7", nil).StatusCode)
	})

	t.Run("Invalid Difficulty", func(t *testing.T) {
		resp := do(t, http.MethodPost, srv.URL+"/api/tests", core.NewTest{Title: "Go", Difficulty: "extreme"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestActivityEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("List", func(t *testing.T) {
		resp := do(t, http.MethodGet, srv.URL+"/api/activity", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		feed := decodeBody[[]ActivityDTO](t, resp)
		require.Len(t, feed, 6)
		assert.Equal(t, "15 min ago", feed[0].Relative)
		assert.Equal(t, view.Display(feed[0].Type), feed[0].Display)
	})

	t.Run("Log", func(t *testing.T) {
		resp := do(t, http.MethodPost, srv.URL+"/api/activity", core.NewActivity{Type: core.ActivityUserLogin, User: "Anna"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, 7, decodeBody[core.ActivityEntry](t, resp).ID)

		resp = do(t, http.MethodPost, srv.URL+"/api/activity", core.NewActivity{Type: "coffee_break", User: "Anna"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Summary", func(t *testing.T) {
		resp := do(t, http.MethodGet, srv.URL+"/api/activity/summary", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 7, decodeBody[view.Summary](t, resp).Total)
	})

	t.Run("Clear", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, do(t, http.MethodDelete, srv.URL+"/api/activity?days=x", nil).StatusCode)

		resp := do(t, http.MethodDelete, srv.URL+"/api/activity?days=0", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		// Only the entry logged at the fixed clock instant survives a zero-day sweep.
		assert.Equal(t, 6, decodeBody[ClearResponse](t, resp).Removed)
	})
}

func TestReadOnlyConflict(t *testing.T) {
	seeded := memory.New()
	_, err := platform.Open("", platform.WithMedium(seeded))
	require.NoError(t, err)

	items := map[string]string{}
	keys, err := seeded.Keys()
	require.NoError(t, err)
	for _, k := range keys {
		v, _, err := seeded.Get(k)
		require.NoError(t, err)
		items[k] = v
	}

	srv, _ := newTestServer(t, platform.WithMedium(memory.NewReadOnly(items)))
	resp := do(t, http.MethodPost, srv.URL+"/api/employers", core.NewEmployer{CompanyName: "Acme"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestStateAndCORS(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/api/state", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "memory", state["adapter"])

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/employees", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	preflight, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer preflight.Body.Close()
	assert.Equal(t, "*", preflight.Header.Get("Access-Control-Allow-Origin"))
}
