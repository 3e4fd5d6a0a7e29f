package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/flatshare/internal/mirror"
	"github.com/mesh-intelligence/flatshare/internal/store"
	"github.com/mesh-intelligence/flatshare/pkg/logging"
)

func seededServer(t *testing.T) (*Server, *prometheus.Registry) {
	t.Helper()
	st := store.New(nil,
		store.WithLogger(logging.Discard()),
		store.WithClock(func() time.Time { return time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC) }),
	)
	st.SeedMockData()
	_, ok := st.Login("anna@flat.test", "anna")
	require.True(t, ok)

	reg := prometheus.NewRegistry()
	return New(st, WithLogger(logging.Discard()), WithGatherer(reg)), reg
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthz(t *testing.T) {
	srv, _ := seededServer(t)
	rec := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, rec))
}

func TestUsersHidePasswords(t *testing.T) {
	srv, _ := seededServer(t)
	rec := get(t, srv, "/api/users")
	require.Equal(t, http.StatusOK, rec.Code)

	users := decode[[]map[string]any](t, rec)
	require.Len(t, users, 4)
	for _, u := range users {
		assert.NotContains(t, u, "password")
		assert.Contains(t, u, "hasWG")
	}
}

func TestUserByID(t *testing.T) {
	srv, _ := seededServer(t)

	rec := get(t, srv, "/api/users/"+store.SeedMaxID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Max", decode[map[string]any](t, rec)["name"])

	rec = get(t, srv, "/api/users/nobody")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[errorBody](t, rec)
	assert.Equal(t, "not_found", body.Error)
}

func TestSessionView(t *testing.T) {
	srv, _ := seededServer(t)
	srv.Do(func(st *store.Store) { st.SetBroadcast("Water off Tuesday") })

	view := decode[sessionView](t, get(t, srv, "/api/session"))
	require.NotNil(t, view.User)
	assert.Equal(t, "Anna", view.User.Name)
	require.NotNil(t, view.Household)
	assert.Equal(t, store.SeedHouseholdID, view.Household.ID)
	assert.False(t, view.Impersonating)
	assert.Equal(t, 1.0, view.Onboarding)
	assert.Equal(t, "Water off Tuesday", view.Broadcast)
}

func TestLeaderboardAndCosts(t *testing.T) {
	srv, _ := seededServer(t)

	board := decode[[]store.LeaderboardEntry](t, get(t, srv, "/api/leaderboard"))
	require.Len(t, board, 3)
	assert.Equal(t, "Anna", board[0].Name)
	assert.Equal(t, store.BadgeTop, board[0].Badge)

	costs := decode[costsView](t, get(t, srv, "/api/costs"))
	assert.Len(t, costs.Items, 3)
	assert.InDelta(t, 1539.99, costs.Total, 1e-9)
	assert.InDelta(t, 1539.99/3, costs.Share, 1e-9)
}

func TestViewsWithoutSession(t *testing.T) {
	srv, _ := seededServer(t)
	srv.Do(func(st *store.Store) { st.Logout() })

	rec := get(t, srv, "/api/shopping")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
	assert.JSONEq(t, "[]", get(t, srv, "/api/balances").Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	srv, reg := seededServer(t)
	m := mirror.NewMetrics(reg)
	m.Writes.WithLabelValues("set").Add(3)

	rec := get(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `flatshare_mirror_writes_total{op="set"} 3`)
}

func TestUnknownRoute(t *testing.T) {
	srv, _ := seededServer(t)
	assert.Equal(t, http.StatusNotFound, get(t, srv, "/api/nothing").Code)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader("{}")))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv, _ := seededServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
