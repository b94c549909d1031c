package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rendezvous_server/metrics"
	"rendezvous_server/models"
	"rendezvous_server/services"
	"rendezvous_server/socket"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
	Error   *struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

// setupTestRouter wires every route against an in-memory store.
func setupTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	store := services.NewMemoryStore()
	m := metrics.NewMock()
	registry := socket.NewRegistry(m)

	profiles := &services.ProfileService{Store: store}
	notifier := &services.NotificationService{Store: store, Profiles: profiles, Sessions: registry, Metrics: m}
	matches := &services.MatchService{Store: store, Profiles: profiles, Notifier: notifier, Metrics: m}
	schedule := &services.ScheduleService{
		Store:     store,
		Profiles:  profiles,
		Conflicts: &services.ConflictDetector{Store: store, Profiles: profiles},
		Notifier:  notifier,
		Metrics:   m,
	}

	r := mux.NewRouter()
	api := RegisterRoutes(r)
	RegisterProfileRoutes(api, profiles, matches)
	RegisterMatchRoutes(api, matches)
	RegisterNotificationRoutes(api, notifier, services.DefaultNotificationLimit)
	RegisterScheduleRoutes(api, schedule)
	RegisterMediaRoutes(api, &services.MediaService{})
	return r
}

func do(t *testing.T, r http.Handler, method, path, partyID string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	if partyID != "" {
		req.Header.Set(PartyIDHeader, partyID)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var env envelope
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	}
	return rr, env
}

func register(t *testing.T, r http.Handler, partyID, name string) {
	t.Helper()
	rr, _ := do(t, r, http.MethodPut, "/api/profiles/me", partyID, models.ProfileFields{Name: name, Age: 28})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestHealth(t *testing.T) {
	r := setupTestRouter(t)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rr.Body.String())
}

func TestAPIRequiresPartyID(t *testing.T) {
	r := setupTestRouter(t)
	rr, env := do(t, r, http.MethodGet, "/api/profiles", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "unauthenticated", env.Error.Kind)

	rr, env = do(t, r, http.MethodGet, "/api/profiles", "bad#id", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, string(services.KindInvalidReference), env.Error.Kind)
}

func TestLikeAndMatchOverHTTP(t *testing.T) {
	r := setupTestRouter(t)
	register(t, r, "alice", "Alice")
	register(t, r, "bob", "Bob")

	rr, env := do(t, r, http.MethodPost, "/api/profiles/bob/like", "alice", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"isMatch":false}`, string(env.Result))

	rr, env = do(t, r, http.MethodPost, "/api/profiles/bob/like", "alice", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, string(services.KindInvalidState), env.Error.Kind)

	rr, env = do(t, r, http.MethodPost, "/api/profiles/alice/like", "bob", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"isMatch":true}`, string(env.Result))

	rr, env = do(t, r, http.MethodGet, "/api/match/matches", "alice", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"partyId":"bob","name":"Bob"}]`, string(env.Result))

	rr, env = do(t, r, http.MethodGet, "/api/profiles/bob", "alice", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var view models.ProfileView
	require.NoError(t, json.Unmarshal(env.Result, &view))
	assert.True(t, view.IsMatch)
	assert.NotContains(t, string(env.Result), "likedBy")

	rr, env = do(t, r, http.MethodGet, "/api/notifications?limit=1", "alice", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var notifications []models.NotificationView
	require.NoError(t, json.Unmarshal(env.Result, &notifications))
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationKindMatch, notifications[0].Kind)
	assert.Equal(t, "Bob", notifications[0].Sender.Name)

	rr, env = do(t, r, http.MethodDelete, "/api/profiles/bob/like", "alice", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"matchRemoved":true}`, string(env.Result))
}

func TestErrorStatusMapping(t *testing.T) {
	r := setupTestRouter(t)
	register(t, r, "alice", "Alice")

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
		kind   services.Kind
	}{
		{"self like", http.MethodPost, "/api/profiles/alice/like", nil, http.StatusBadRequest, services.KindSelfReference},
		{"unknown target", http.MethodPost, "/api/profiles/nobody/like", nil, http.StatusBadRequest, services.KindInvalidReference},
		{"unknown profile", http.MethodGet, "/api/profiles/nobody", nil, http.StatusNotFound, services.KindNotFound},
		{"bad limit", http.MethodGet, "/api/notifications?limit=x", nil, http.StatusBadRequest, services.KindInvalidInput},
		{"media not configured", http.MethodPost, "/api/media/read-url", map[string]string{"key": "k"}, http.StatusServiceUnavailable, services.KindConfigurationMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, env := do(t, r, tt.method, tt.path, "alice", tt.body)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
			require.NotNil(t, env.Error)
			assert.Equal(t, string(tt.kind), env.Error.Kind)
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/api/schedule/availability", bytes.NewBufferString("{not json"))
	req.Header.Set(PartyIDHeader, "alice")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSchedulingOverHTTP(t *testing.T) {
	r := setupTestRouter(t)
	register(t, r, "alice", "Alice")
	register(t, r, "bob", "Bob")

	submit := map[string]interface{}{
		"counterpartId": "bob",
		"slots":         []models.TimeSlot{{Date: "2024-06-01", StartTime: "18:00", EndTime: "20:00"}},
	}
	rr, env := do(t, r, http.MethodPost, "/api/schedule/availability", "alice", submit)
	assert.Equal(t, http.StatusConflict, rr.Code, "scheduling requires a match")
	assert.Equal(t, string(services.KindInvalidState), env.Error.Kind)

	do(t, r, http.MethodPost, "/api/profiles/bob/like", "alice", nil)
	do(t, r, http.MethodPost, "/api/profiles/alice/like", "bob", nil)

	rr, _ = do(t, r, http.MethodPost, "/api/schedule/availability", "alice", submit)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr, env = do(t, r, http.MethodPost, "/api/schedule/availability", "bob", map[string]interface{}{
		"counterpartId": "alice",
		"slots":         []models.TimeSlot{{Date: "2024-06-01", StartTime: "19:00", EndTime: "21:00"}},
	})
	require.Equal(t, http.StatusOK, rr.Code)
	var submitted services.SubmitResult
	require.NoError(t, json.Unmarshal(env.Result, &submitted))
	require.True(t, submitted.Matched)
	assert.Equal(t, "19:00", submitted.CommonSlot.StartTime)

	rr, env = do(t, r, http.MethodPost, "/api/schedule/confirm", "bob", map[string]interface{}{
		"counterpartId": "alice",
		"slot":          submitted.CommonSlot,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr, env = do(t, r, http.MethodGet, "/api/schedule/status/bob", "alice", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var status models.ScheduleStatus
	require.NoError(t, json.Unmarshal(env.Result, &status))
	assert.Equal(t, models.ScheduleStatusAppointment, status.Type)

	rr, env = do(t, r, http.MethodGet, "/api/schedule/appointments", "alice", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var appointments []models.AppointmentView
	require.NoError(t, json.Unmarshal(env.Result, &appointments))
	require.Len(t, appointments, 1)
	assert.Equal(t, "Bob", appointments[0].With.Name)
}
