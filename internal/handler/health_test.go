package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

func TestHandleHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	HandleHealthz().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHandleReadyz(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   HealthResponse
	}{
		{
			name:       "database reachable",
			wantStatus: http.StatusOK,
			wantBody:   HealthResponse{Status: StatusOK, Checks: map[string]string{"database": StatusOK}},
		},
		{
			name:       "database refuses connections",
			pingErr:    errors.New("dial tcp 10.0.0.5:5432: connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   HealthResponse{Status: StatusUnavailable, Checks: map[string]string{"database": "unreachable"}},
		},
		{
			name:       "ping times out",
			pingErr:    context.DeadlineExceeded,
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   HealthResponse{Status: StatusUnavailable, Checks: map[string]string{"database": "timeout"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB := &MockDBPool{}
			mockDB.On("Ping", mock.Anything).Return(tt.pingErr)

			w := httptest.NewRecorder()
			HandleReadyz(mockDB).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var got HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.wantBody, got)
			assert.NotContains(t, w.Body.String(), "10.0.0.5", "driver detail must not leak")
			mockDB.AssertExpectations(t)
		})
	}
}

func TestHandleVersion(t *testing.T) {
	t.Setenv("VERSION", "1.4.2")

	w := httptest.NewRecorder()
	HandleVersion().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))

	var info VersionInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1.4.2", info.Version)
	assert.NotEmpty(t, info.GoVersion)
}
