package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nearby/internal/models/db_models"
	"nearby/internal/models/request_models"
	"nearby/internal/models/response_models"
	"nearby/pkg/middleware"
	"nearby/pkg/utils"
)

type stubPlaceService struct {
	places  []response_models.Place
	details string
	err     error
	traceID string
}

func (s *stubPlaceService) FindNearbyPlaces(_ context.Context, traceID string, req request_models.FindNearbyPlacesRequest) ([]response_models.Place, error) {
	s.traceID = traceID
	if req.Location == "" {
		return nil, utils.ErrMissingLocation
	}
	return s.places, s.err
}

func (s *stubPlaceService) GetPlaceDetails(_ context.Context, req request_models.PlaceDetailsRequest) (string, error) {
	if req.PlaceName == "" {
		return "", utils.ErrMissingPlaceName
	}
	return s.details, s.err
}

func (s *stubPlaceService) RecentSearches(_ context.Context, limit int) ([]db_models.SearchLog, error) {
	return []db_models.SearchLog{{Location: "Paris", Category: "Cafes"}}, s.err
}

func newTestRouter(svc *stubPlaceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewGatewayController(svc, zap.NewNop())

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.POST("/api/gemini", ctrl.HandleAction)
	r.Match([]string{http.MethodGet, http.MethodPut, http.MethodDelete}, "/api/gemini", ctrl.MethodNotAllowed)
	r.GET("/api/searches", ctrl.RecentSearches)
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/gemini", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body response_models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestHandleAction_FindNearbyPlaces(t *testing.T) {
	svc := &stubPlaceService{places: []response_models.Place{{Name: "Café de Flore", Rating: 4.3, CategoryTag: "Café"}}}
	r := newTestRouter(svc)

	w := post(r, `{"action":"findNearbyPlaces","payload":{"location":"Paris","category":"Cafes"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var places []response_models.Place
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &places))
	require.Len(t, places, 1)
	assert.Equal(t, "Café de Flore", places[0].Name)
	assert.Equal(t, w.Header().Get(middleware.TraceIDHeader), svc.traceID)
}

func TestHandleAction_GetPlaceDetails(t *testing.T) {
	r := newTestRouter(&stubPlaceService{details: "Art deco interior."})

	w := post(r, `{"action":"getPlaceDetails","payload":{"placeName":"Café de Flore","location":"172 Bd Saint-Germain"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var text string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &text))
	assert.Equal(t, "Art deco interior.", text)
}

func TestHandleAction_Errors(t *testing.T) {
	tests := []struct {
		name    string
		svc     *stubPlaceService
		body    string
		code    int
		message string
	}{
		{"unknown action", &stubPlaceService{}, `{"action":"deletePlaces","payload":{}}`, http.StatusBadRequest, "Invalid action specified"},
		{"malformed body", &stubPlaceService{}, `{"action":`, http.StatusBadRequest, "Invalid request format"},
		{"missing location", &stubPlaceService{}, `{"action":"findNearbyPlaces","payload":{"category":"Cafes"}}`, http.StatusBadRequest, "Location and category are required."},
		{"missing payload", &stubPlaceService{}, `{"action":"getPlaceDetails"}`, http.StatusBadRequest, "Place name and location are required."},
		{"model failure", &stubPlaceService{err: utils.ErrModelFailure}, `{"action":"findNearbyPlaces","payload":{"location":"Paris","category":"Cafes"}}`, http.StatusInternalServerError, "Failed to fetch data from Gemini API."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(newTestRouter(tt.svc), tt.body)
			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.message, decodeError(t, w))
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	r := newTestRouter(&stubPlaceService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/gemini", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "Method Not Allowed", decodeError(t, w))
}

func TestRecentSearches(t *testing.T) {
	r := newTestRouter(&stubPlaceService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/searches?limit=5", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Paris")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/searches?limit=0", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
