package planner_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/studyplan/internal/apperrors"
	"github.com/idilsaglam/studyplan/internal/model"
	"github.com/idilsaglam/studyplan/internal/planner"
)

type fakeAPI struct {
	planStatus int
	lastPlan   atomic.Pointer[model.PlanRequest]
	planCalls  atomic.Int32
	loggedOut  atomic.Bool
}

func (f *fakeAPI) router() http.Handler {
	r := chi.NewRouter()
	r.Post("/api/plan", func(w http.ResponseWriter, r *http.Request) {
		f.planCalls.Add(1)
		var req model.PlanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, map[string]string{"error": "bad body"}, http.StatusBadRequest)
			return
		}
		f.lastPlan.Store(&req)
		if f.planStatus != 0 {
			respondJSON(w, map[string]string{"error": "boom"}, f.planStatus)
			return
		}
		respondJSON(w, model.PlanResponse{Plan: []model.PlanDay{{
			Date: "2026-10-19", Type: model.DayStudy, HoursPlanned: 2,
			Sessions: []model.Session{{Subject: "Math", Hours: 2}},
		}}}, http.StatusOK)
	})
	r.Get("/api/me", func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(planner.SessionCookie)
		if err != nil || ck.Value != "sess-1" {
			respondJSON(w, map[string]string{"error": "Not signed in."}, http.StatusUnauthorized)
			return
		}
		respondJSON(w, model.User{ID: 1, Name: "Ada", Email: "ada@example.com"}, http.StatusOK)
	})
	r.Post("/api/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			respondJSON(w, map[string]string{"error": "Invalid credentials."}, http.StatusUnauthorized)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: planner.SessionCookie, Value: "sess-1"})
		respondJSON(w, model.User{ID: 1, Name: "Ada", Email: body["email"]}, http.StatusOK)
	})
	r.Post("/api/logout", func(w http.ResponseWriter, r *http.Request) {
		f.loggedOut.Store(true)
		respondJSON(w, map[string]bool{"ok": true}, http.StatusOK)
	})
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})
	return r
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func newServer(t *testing.T, f *fakeAPI) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(f.router())
	t.Cleanup(srv.Close)
	return srv
}

func TestPlanSendsPayloadAndDecodes(t *testing.T) {
	f := &fakeAPI{}
	srv := newServer(t, f)
	c := planner.New(srv.URL + "/")

	resp, err := c.Plan(context.Background(), model.PlanRequest{
		Subjects:    []model.Subject{{Name: "Math", Hours: 2}},
		StartDate:   "2026-10-19",
		EndDate:     "2026-10-25",
		HoursPerDay: 2,
	})
	require.NoError(t, err)

	sent := f.lastPlan.Load()
	require.NotNil(t, sent)
	assert.Equal(t, "Math", sent.Subjects[0].Name)
	assert.Equal(t, 2.0, sent.HoursPerDay)
	assert.Equal(t, "2026-10-25", sent.EndDate)
	require.Len(t, resp.Plan, 1)
	assert.Equal(t, "Math", resp.Plan[0].Sessions[0].Subject)
}

func TestPlanHTTPFailureIsOffline(t *testing.T) {
	srv := newServer(t, &fakeAPI{planStatus: http.StatusInternalServerError})

	_, err := planner.New(srv.URL).Plan(context.Background(), model.PlanRequest{})

	assert.ErrorIs(t, err, apperrors.ErrOffline)
}

func TestPlanTransportFailureIsOffline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := planner.New(url).Plan(context.Background(), model.PlanRequest{})

	assert.ErrorIs(t, err, apperrors.ErrOffline)
}

func TestMeWithoutSessionIsNotSignedIn(t *testing.T) {
	srv := newServer(t, &fakeAPI{})

	_, err := planner.New(srv.URL).Me(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrNotSignedIn)
}

func TestLoginCapturesSessionForLaterCalls(t *testing.T) {
	f := &fakeAPI{}
	srv := newServer(t, f)
	c := planner.New(srv.URL)

	_, err := c.Login(context.Background(), "ada@example.com", "wrong")
	var apiErr *planner.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials.", apiErr.Message)

	u, err := c.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "sess-1", c.Session())

	me, err := planner.New(srv.URL, planner.WithSession(c.Session())).Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada", me.Name)

	c.Logout(context.Background())
	assert.True(t, f.loggedOut.Load())
	assert.Empty(t, c.Session())
}

func TestHealth(t *testing.T) {
	srv := newServer(t, &fakeAPI{})
	assert.NoError(t, planner.New(srv.URL).Health(context.Background()))
}
