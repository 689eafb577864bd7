package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review-explorer/api/places"
	"review-explorer/dao"
	"review-explorer/db"
	"review-explorer/logger"
	"review-explorer/models"
	services "review-explorer/service"
)

type testEnv struct {
	router  *mux.Router
	limiter *services.RateLimiter
}

func newTestEnv(t *testing.T, enforceQuota bool) *testEnv {
	t.Helper()

	mock, err := places.NewPlacesApiClientMock()
	require.NoError(t, err)

	stateDAO := dao.NewClientStateDAO(db.NewMemoryStateClient())
	limiter := services.NewRateLimiter(stateDAO, 10)
	var gate *services.RateLimiter
	if enforceQuota {
		gate = limiter
	}

	registry := services.NewControllerRegistry(func(clientID string) *services.SearchController {
		return services.NewSearchController(clientID, mock, gate, services.ControllerOptions{Logger: logger.Discard()})
	}, time.Hour, logger.Discard())

	placeHandler := NewPlaceHandler(registry, services.NewSummaryService(nil, mock, "en", logger.Discard()))
	chatHandler := NewChatHandler(registry, services.NewChatService())
	clientHandler := NewClientHandler(limiter, enforceQuota, stateDAO)

	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := logger.WithClientID(req.Context(), req.Header.Get("X-Client-ID"))
			next.ServeHTTP(w, req.WithContext(logger.NewContext(ctx, logger.Discard())))
		})
	})
	r.HandleFunc("/v1/places/autocomplete", placeHandler.Autocomplete).Methods("GET")
	r.HandleFunc("/v1/places/autocomplete", placeHandler.ClearSearch).Methods("DELETE")
	r.HandleFunc("/v1/places/current", placeHandler.GetCurrent).Methods("GET")
	r.HandleFunc("/v1/places/current", placeHandler.LeaveCurrent).Methods("DELETE")
	r.HandleFunc("/v1/places/current/summary", placeHandler.GetSummary).Methods("GET")
	r.HandleFunc("/v1/places/current/chart", placeHandler.GetChart).Methods("GET")
	r.HandleFunc("/v1/places/current/chat", chatHandler.GetGreeting).Methods("GET")
	r.HandleFunc("/v1/places/current/chat", chatHandler.PostMessage).Methods("POST")
	r.HandleFunc("/v1/places/{id}/select", placeHandler.Select).Methods("POST")
	r.HandleFunc("/v1/quota", clientHandler.GetQuota).Methods("GET")
	r.HandleFunc("/v1/consent", clientHandler.GetConsent).Methods("GET")
	r.HandleFunc("/v1/consent", clientHandler.PostConsent).Methods("POST")
	r.HandleFunc("/ping", clientHandler.Ping).Methods("GET")

	return &testEnv{router: r, limiter: limiter}
}

func (e *testEnv) do(t *testing.T, client, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("X-Client-ID", client)
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	envelope := struct {
		Error ErrorBody `json:"error"`
	}{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	return envelope.Error
}

func TestAutocomplete(t *testing.T) {
	env := newTestEnv(t, false)

	rr := env.do(t, "a", "GET", "/v1/places/autocomplete?q=restaurant", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var results []models.Place
	decodeData(t, rr, &results)
	require.Len(t, results, 1)
	assert.Equal(t, "Ristorante Italiano", results[0].Name)

	rr = env.do(t, "a", "GET", "/v1/places/autocomplete?q=r", "")
	require.Equal(t, http.StatusOK, rr.Code)
	decodeData(t, rr, &results)
	assert.Empty(t, results)

	rr = env.do(t, "a", "DELETE", "/v1/places/autocomplete", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestSelectAndCurrentPlace(t *testing.T) {
	env := newTestEnv(t, false)

	rr := env.do(t, "a", "GET", "/v1/places/current", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NO_PLACE_SELECTED", decodeError(t, rr).Code)

	env.do(t, "a", "GET", "/v1/places/autocomplete?q=coffee", "")
	rr = env.do(t, "a", "POST", "/v1/places/3/select", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var result services.SelectResult
	decodeData(t, rr, &result)
	assert.Equal(t, "Coffee Corner", result.Place.Name)
	assert.Empty(t, result.Notice)

	rr = env.do(t, "a", "GET", "/v1/places/current", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var current models.Place
	decodeData(t, rr, &current)
	assert.Equal(t, "3", current.ID)

	// Another client has its own navigation state.
	rr = env.do(t, "b", "GET", "/v1/places/current", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, "a", "DELETE", "/v1/places/current", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = env.do(t, "a", "GET", "/v1/places/current", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSelect_UnknownPlace(t *testing.T) {
	env := newTestEnv(t, false)

	rr := env.do(t, "a", "POST", "/v1/places/missing/select", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rr).Code)
}

func TestSelect_QuotaExceeded(t *testing.T) {
	env := newTestEnv(t, true)

	for i := 0; i < 10; i++ {
		rr := env.do(t, "a", "POST", "/v1/places/1/select", "")
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := env.do(t, "a", "POST", "/v1/places/1/select", "")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	body := decodeError(t, rr)
	assert.Equal(t, "QUOTA_EXCEEDED", body.Code)
	assert.Equal(t, "Daily limit reached (10 searches). Please try again tomorrow.", body.Message)

	rr = env.do(t, "a", "GET", "/v1/quota", "")
	var quota QuotaResponse
	decodeData(t, rr, &quota)
	assert.Equal(t, QuotaResponse{Enforced: true, Limit: 10, Remaining: 0}, quota)
}

func TestQuota_NotEnforcedInDemoMode(t *testing.T) {
	env := newTestEnv(t, false)

	for i := 0; i < 12; i++ {
		rr := env.do(t, "a", "POST", "/v1/places/2/select", "")
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := env.do(t, "a", "GET", "/v1/quota", "")
	var quota QuotaResponse
	decodeData(t, rr, &quota)
	assert.Equal(t, QuotaResponse{Enforced: false, Limit: 10, Remaining: 10}, quota)
}

func TestSummary(t *testing.T) {
	env := newTestEnv(t, false)

	env.do(t, "a", "POST", "/v1/places/1/select", "")
	rr := env.do(t, "a", "GET", "/v1/places/current/summary", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Available bool                 `json:"available"`
		Summary   models.ReviewSummary `json:"summary"`
	}
	decodeData(t, rr, &resp)
	assert.True(t, resp.Available)
	assert.Equal(t, models.SummarySourceDemo, resp.Summary.Source)
}

func TestChart(t *testing.T) {
	env := newTestEnv(t, false)

	env.do(t, "a", "POST", "/v1/places/1/select", "")
	rr := env.do(t, "a", "GET", "/v1/places/current/chart", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "Ristorante Italiano")
}

func TestChat(t *testing.T) {
	env := newTestEnv(t, false)

	rr := env.do(t, "a", "GET", "/v1/places/current/chat", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	env.do(t, "a", "POST", "/v1/places/1/select", "")

	rr = env.do(t, "a", "GET", "/v1/places/current/chat", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var greeting []models.ChatMessage
	decodeData(t, rr, &greeting)
	require.Len(t, greeting, 1)
	assert.Contains(t, greeting[0].Text, "Ristorante Italiano")

	rr = env.do(t, "a", "POST", "/v1/places/current/chat", `{"message": "Is parking easy?"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var messages []models.ChatMessage
	decodeData(t, rr, &messages)
	require.Len(t, messages, 2)
	assert.Contains(t, messages[1].Text, "parking can be challenging")

	rr = env.do(t, "a", "POST", "/v1/places/current/chat", `{"message": ""}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, "a", "POST", "/v1/places/current/chat", `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestConsent(t *testing.T) {
	env := newTestEnv(t, false)

	var consent ConsentResponse
	decodeData(t, env.do(t, "a", "GET", "/v1/consent", ""), &consent)
	assert.False(t, consent.Accepted)

	rr := env.do(t, "a", "POST", "/v1/consent", "")
	require.Equal(t, http.StatusOK, rr.Code)

	decodeData(t, env.do(t, "a", "GET", "/v1/consent", ""), &consent)
	assert.True(t, consent.Accepted)

	decodeData(t, env.do(t, "b", "GET", "/v1/consent", ""), &consent)
	assert.False(t, consent.Accepted)
}

func TestPing(t *testing.T) {
	env := newTestEnv(t, false)

	rr := env.do(t, "a", "GET", "/ping", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, rr.Body.String())
}
