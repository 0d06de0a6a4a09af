package http

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

	"github.com/steebus/notion-book-fetch/internal/enrich"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context) (*enrich.Report, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.(*enrich.Report), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestEnrichHandler_Webhook(t *testing.T) {
	const secret = "hook-token"

	sampleReport := &enrich.Report{
		RunID:    "run-1",
		Matched:  3,
		Resolved: 2,
		Updated:  2,
	}

	tests := []struct {
		name           string
		method         string
		token          string
		setupMock      func(m *mockRunner)
		expectedStatus int
	}{
		{
			name:   "success",
			method: http.MethodPost,
			token:  secret,
			setupMock: func(m *mockRunner) {
				m.On("Run", mock.Anything).Return(sampleReport, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing token",
			method:         http.MethodPost,
			token:          "",
			setupMock:      func(m *mockRunner) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong token",
			method:         http.MethodPost,
			token:          "not-the-secret",
			setupMock:      func(m *mockRunner) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong method",
			method:         http.MethodGet,
			token:          secret,
			setupMock:      func(m *mockRunner) {},
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:   "pass failure",
			method: http.MethodPost,
			token:  secret,
			setupMock: func(m *mockRunner) {
				m.On("Run", mock.Anything).Return(nil, errors.New("notion unreachable"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := new(mockRunner)
			tt.setupMock(runner)
			handler := NewEnrichHandler(runner, secret)

			r := httptest.NewRequest(tt.method, "/webhook", nil)
			if tt.token != "" {
				r.Header.Set("X-Notion-Token", tt.token)
			}
			w := httptest.NewRecorder()

			handler.Webhook(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
			runner.AssertExpectations(t)
		})
	}
}

func TestEnrichHandler_Webhook_ReportsCounts(t *testing.T) {
	runner := new(mockRunner)
	runner.On("Run", mock.Anything).Return(&enrich.Report{
		RunID:        "run-42",
		Matched:      5,
		Resolved:     3,
		Unresolved:   2,
		Updated:      2,
		UpdateFailed: 1,
	}, nil)
	handler := NewEnrichHandler(runner, "s")

	r := httptest.NewRequest(http.MethodPost, "/webhook", nil)
	r.Header.Set("X-Notion-Token", "s")
	w := httptest.NewRecorder()

	handler.Webhook(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			RunID        string `json:"run_id"`
			Matched      int    `json:"matched"`
			Resolved     int    `json:"resolved"`
			Unresolved   int    `json:"unresolved"`
			Updated      int    `json:"updated"`
			UpdateFailed int    `json:"update_failed"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "run-42", body.Data.RunID)
	assert.Equal(t, 5, body.Data.Matched)
	assert.Equal(t, 2, body.Data.Unresolved)
	assert.Equal(t, 1, body.Data.UpdateFailed)
}

func TestEnrichHandler_Fetch(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		setupMock      func(m *mockRunner)
		expectedStatus int
	}{
		{
			name:   "success without auth",
			method: http.MethodGet,
			setupMock: func(m *mockRunner) {
				m.On("Run", mock.Anything).Return(&enrich.Report{RunID: "run-2"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong method",
			method:         http.MethodPost,
			setupMock:      func(m *mockRunner) {},
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:   "pass failure",
			method: http.MethodGet,
			setupMock: func(m *mockRunner) {
				m.On("Run", mock.Anything).Return(nil, errors.New("notion unreachable"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := new(mockRunner)
			tt.setupMock(runner)
			handler := NewEnrichHandler(runner, "unused")

			r := httptest.NewRequest(tt.method, "/fetch", nil)
			w := httptest.NewRecorder()

			handler.Fetch(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
			runner.AssertExpectations(t)
		})
	}
}

func TestHealthz(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	Healthz(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
