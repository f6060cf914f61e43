/*
handlers.go - HTTP handlers over a roster console

ENDPOINTS:
  Employees:
    GET    /api/employees               List with average ratings (?q= searches)
    POST   /api/employees               Add employee
    GET    /api/employees/{id}          Employee details
    PATCH  /api/employees/{id}          Partial update
    POST   /api/employees/{id}/ratings  Add rating

  Employers:
    GET    /api/employers               List, newest first (?q= searches)
    POST   /api/employers               Add employer
    GET    /api/employers/{id}          Employer details
    PATCH  /api/employers/{id}          Partial update
    DELETE /api/employers/{id}          Delete

  Tests:
    GET    /api/tests                   List (?active= ?category= ?difficulty=)
    POST   /api/tests                   Add test
    GET    /api/tests/{id}              Test details
    PATCH  /api/tests/{id}              Partial update
    DELETE /api/tests/{id}              Delete

  Activity:
    GET    /api/activity                Recent entries with display data
    POST   /api/activity                Append an entry
    DELETE /api/activity?days=N         Drop entries older than N days
    GET    /api/activity/summary        Per-category counts

ERROR HANDLING:
  - 400: Malformed body, query or id; unknown activity type or difficulty
  - 404: Unknown entity
  - 409: Medium is read-only
  - 500: Medium failures
*/
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/roster/internal/platform"
	"github.com/aretw0/roster/pkg/core"
	"github.com/aretw0/roster/pkg/store"
	"github.com/aretw0/roster/pkg/view"
)

// Handler holds the console every handler works on.
type Handler struct {
	console *platform.Console
	logger  *slog.Logger
	now     func() time.Time
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the request and error logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithNow replaces time.Now for relative activity labels.
func WithNow(now func() time.Time) HandlerOption {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// NewHandler creates a handler over c.
func NewHandler(c *platform.Console, opts ...HandlerOption) *Handler {
	h := &Handler{
		console: c,
		logger:  slog.New(slog.DiscardHandler),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns employees with their average rating.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		writeJSON(w, http.StatusOK, h.console.Employees.Search(q))
		return
	}
	writeJSON(w, http.StatusOK, h.console.Employees.WithAverages())
}

// CreateEmployee adds an employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var in core.NewEmployee
	if !h.decode(w, r, &in) {
		return
	}
	e, err := h.console.Employees.Add(in)
	if err != nil {
		h.fail(w, "Failed to add employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// GetEmployee returns one employee with its average rating.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, found := h.console.Employees.ByID(id)
	if !found {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, store.EmployeeSummary{
		Employee:      e,
		AverageRating: store.AverageRating(e.Ratings),
	})
}

// UpdateEmployee applies a partial update.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch core.EmployeePatch
	if !h.decode(w, r, &patch) {
		return
	}
	found, err := h.console.Employees.Update(id, patch)
	if err != nil {
		h.fail(w, "Failed to update employee", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	e, _ := h.console.Employees.ByID(id)
	writeJSON(w, http.StatusOK, e)
}

// RateEmployee appends a rating to an employee.
func (h *Handler) RateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in core.NewRating
	if !h.decode(w, r, &in) {
		return
	}
	rating, found, err := h.console.Employees.AddRating(id, in)
	if err != nil {
		h.fail(w, "Failed to add rating", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusCreated, rating)
}

// =============================================================================
// EMPLOYER HANDLERS
// =============================================================================

// ListEmployers returns employers, newest first.
func (h *Handler) ListEmployers(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		writeJSON(w, http.StatusOK, h.console.Employers.Search(q))
		return
	}
	writeJSON(w, http.StatusOK, h.console.Employers.Sorted())
}

// CreateEmployer adds an employer.
func (h *Handler) CreateEmployer(w http.ResponseWriter, r *http.Request) {
	var in core.NewEmployer
	if !h.decode(w, r, &in) {
		return
	}
	e, err := h.console.Employers.Add(in)
	if err != nil {
		h.fail(w, "Failed to add employer", err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// GetEmployer returns one employer.
func (h *Handler) GetEmployer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, found := h.console.Employers.ByID(id)
	if !found {
		writeError(w, http.StatusNotFound, "Employer not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// UpdateEmployer applies a partial update.
func (h *Handler) UpdateEmployer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch core.EmployerPatch
	if !h.decode(w, r, &patch) {
		return
	}
	found, err := h.console.Employers.Update(id, patch)
	if err != nil {
		h.fail(w, "Failed to update employer", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Employer not found", nil)
		return
	}
	e, _ := h.console.Employers.ByID(id)
	writeJSON(w, http.StatusOK, e)
}

// DeleteEmployer removes an employer.
func (h *Handler) DeleteEmployer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	found, err := h.console.Employers.Delete(id)
	if err != nil {
		h.fail(w, "Failed to delete employer", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Employer not found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// TEST HANDLERS
// =============================================================================

// ListTests returns tests, newest first, narrowed by the query.
func (h *Handler) ListTests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := store.TestFilter{Category: q.Get("category")}

	if v := q.Get("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid active flag", err)
			return
		}
		f.ActiveOnly = active
	}
	if v := q.Get("difficulty"); v != "" {
		d, err := core.ParseDifficulty(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid difficulty", err)
			return
		}
		f.Difficulty = d
	}

	writeJSON(w, http.StatusOK, h.console.Tests.Filter(f))
}

// CreateTest adds a test.
func (h *Handler) CreateTest(w http.ResponseWriter, r *http.Request) {
	var in core.NewTest
	if !h.decode(w, r, &in) {
		return
	}
	if in.Difficulty != "" && !in.Difficulty.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid difficulty", nil)
		return
	}
	t, err := h.console.Tests.Add(in)
	if err != nil {
		h.fail(w, "Failed to add test", err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// GetTest returns one test.
func (h *Handler) GetTest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, found := h.console.Tests.ByID(id)
	if !found {
		writeError(w, http.StatusNotFound, "Test not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// UpdateTest applies a partial update.
func (h *Handler) UpdateTest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch core.TestPatch
	if !h.decode(w, r, &patch) {
		return
	}
	if patch.Difficulty != nil && !patch.Difficulty.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid difficulty", nil)
		return
	}
	found, err := h.console.Tests.Update(id, patch)
	if err != nil {
		h.fail(w, "Failed to update test", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Test not found", nil)
		return
	}
	t, _ := h.console.Tests.ByID(id)
	writeJSON(w, http.StatusOK, t)
}

// DeleteTest removes a test.
func (h *Handler) DeleteTest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	found, err := h.console.Tests.Delete(id)
	if err != nil {
		h.fail(w, "Failed to delete test", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Test not found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ACTIVITY HANDLERS
// =============================================================================

// ListActivity returns the recent feed with relative time and display data.
// ?all=true returns the whole log.
func (h *Handler) ListActivity(w http.ResponseWriter, r *http.Request) {
	entries := h.console.Activity.Recent()
	if all, _ := strconv.ParseBool(r.URL.Query().Get("all")); all {
		entries = h.console.Activity.All()
	}
	writeJSON(w, http.StatusOK, toActivityDTOs(entries, h.now()))
}

// LogActivity appends an entry.
func (h *Handler) LogActivity(w http.ResponseWriter, r *http.Request) {
	var in core.NewActivity
	if !h.decode(w, r, &in) {
		return
	}
	e, err := h.console.Activity.Log(in)
	if err != nil {
		h.fail(w, "Failed to log activity", err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// ClearActivity drops entries older than ?days= (default retention when absent).
func (h *Handler) ClearActivity(w http.ResponseWriter, r *http.Request) {
	days := store.DefaultRetentionDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid days", err)
			return
		}
		days = n
	}
	removed, err := h.console.Activity.ClearOld(days)
	if err != nil {
		h.fail(w, "Failed to clear activity", err)
		return
	}
	writeJSON(w, http.StatusOK, ClearResponse{Removed: removed})
}

// ActivitySummary returns per-category counts over the whole log.
func (h *Handler) ActivitySummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, view.Summarize(h.console.Activity.All()))
}

// GetState returns the introspection state of the console.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.console.State())
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

// fail maps a store error to a status and logs server-side failures.
func (h *Handler) fail(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, core.ErrUnknownActivityType):
		writeError(w, http.StatusBadRequest, message, err)
	case errors.Is(err, core.ErrReadOnly):
		writeError(w, http.StatusConflict, message, err)
	default:
		h.logger.Error(message, "error", err)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id", err)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
