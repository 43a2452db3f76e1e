package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LuckyDraw_Go/internal/domain"
	"github.com/osse101/LuckyDraw_Go/internal/handler"
	"github.com/osse101/LuckyDraw_Go/mocks"
)

const testAPIKey = "router-test-key"

func newTestServer(t *testing.T, svc *mocks.MockRaffleService, readiness ...handler.HealthChecker) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(testAPIKey, nil, Dependencies{
		Raffle:    svc,
		Readiness: readiness,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func apiRequest(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set(HeaderAPIKey, testAPIKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_PublicEndpoints(t *testing.T) {
	srv := newTestServer(t, mocks.NewMockRaffleService(t))

	for _, path := range []string{"/healthz", "/readyz", "/version", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + path)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, HeaderValueNoSniff, resp.Header.Get(HeaderContentType))
		})
	}
}

func TestRouter_ReadinessFailure(t *testing.T) {
	srv := newTestServer(t, mocks.NewMockRaffleService(t), handler.HealthCheckFunc(func(context.Context) error {
		return errors.New("prizes dataset missing")
	}))

	resp, err := http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRouter_APIRequiresKey(t *testing.T) {
	srv := newTestServer(t, mocks.NewMockRaffleService(t))

	resp, err := http.Post(srv.URL+"/api/v1/sessions", "application/json", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_DrawRoutes(t *testing.T) {
	id := uuid.New()
	svc := mocks.NewMockRaffleService(t)
	svc.On("ListGroups", mock.Anything, id).Return([]string{"Gold"}, nil)
	svc.On("DrawGroup", mock.Anything, id, "Gold").Return(&domain.GroupDrawOutcome{
		Group:   "Gold",
		Winners: []domain.WinnerRecord{{SequenceNumber: 1, Group: "Gold"}},
	}, nil)
	svc.On("DrawNext", mock.Anything, id, "Gold").Return(nil, domain.ErrUnknownOrExhaustedGroup)
	svc.On("Winners", mock.Anything, id).Return([]domain.WinnerRecord{{SequenceNumber: 1}}, nil)
	svc.On("Summary", mock.Anything, id).Return(&domain.SessionSummary{SessionID: id}, nil)
	svc.On("DeleteSession", mock.Anything, id).Return(nil)

	srv := newTestServer(t, svc)
	base := srv.URL + "/api/v1/sessions/" + id.String()

	assert.Equal(t, http.StatusOK, apiRequest(t, http.MethodGet, base+"/groups", "").StatusCode)
	assert.Equal(t, http.StatusOK, apiRequest(t, http.MethodPost, base+"/draws", `{"group":"Gold"}`).StatusCode)
	assert.Equal(t, http.StatusNotFound, apiRequest(t, http.MethodPost, base+"/draws/next", `{"group":"Gold"}`).StatusCode)
	assert.Equal(t, http.StatusOK, apiRequest(t, http.MethodGet, base+"/winners", "").StatusCode)
	assert.Equal(t, http.StatusOK, apiRequest(t, http.MethodGet, base, "").StatusCode)
	assert.Equal(t, http.StatusOK, apiRequest(t, http.MethodDelete, base, "").StatusCode)
}

func TestRouter_UnknownRoute(t *testing.T) {
	srv := newTestServer(t, mocks.NewMockRaffleService(t))
	resp := apiRequest(t, http.MethodGet, srv.URL+"/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
