package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"mail-telegram-notifier/internal/models"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runnerFunc func(ctx context.Context) models.RunResult

func (f runnerFunc) Run(ctx context.Context) models.RunResult { return f(ctx) }

func TestInvoke(t *testing.T) {
	tests := []struct {
		name       string
		runner     runnerFunc
		wantStatus int
		wantJSON   string
	}{
		{
			name: "Success",
			runner: func(context.Context) models.RunResult {
				return models.RunResult{Success: true, ProcessedCount: 2}
			},
			wantStatus: http.StatusOK,
			wantJSON:   `{"success":true,"message":"Email check completed","processed":2}`,
		},
		{
			name: "Success with nothing to do",
			runner: func(context.Context) models.RunResult {
				return models.RunResult{Success: true}
			},
			wantStatus: http.StatusOK,
			wantJSON:   `{"success":true,"message":"Email check completed","processed":0}`,
		},
		{
			name: "Connection failure",
			runner: func(context.Context) models.RunResult {
				return models.RunResult{Success: false, Error: "connection failed"}
			},
			wantStatus: http.StatusInternalServerError,
			wantJSON:   `{"success":false,"error":"connection failed"}`,
		},
		{
			name: "Panic is converted",
			runner: func(context.Context) models.RunResult {
				panic("nil session")
			},
			wantStatus: http.StatusInternalServerError,
			wantJSON:   `{"success":false,"error":"nil session"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := test.NewNullLogger()

			resp, status := Invoke(context.Background(), tt.runner, logger)
			assert.Equal(t, tt.wantStatus, status)

			encoded, err := json.Marshal(resp)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantJSON, string(encoded))
		})
	}
}

func TestServer(t *testing.T) {
	logger, _ := test.NewNullLogger()

	calls := 0
	app := NewServer(runnerFunc(func(context.Context) models.RunResult {
		calls++
		if calls == 1 {
			return models.RunResult{Success: true, ProcessedCount: 1}
		}
		return models.RunResult{Success: false, Error: "connection failed"}
	}), logger)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/run", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"success":true,"message":"Email check completed","processed":1}`, string(body))

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/", nil), -1)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"success":false,"error":"connection failed"}`, string(body))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, calls)
}
