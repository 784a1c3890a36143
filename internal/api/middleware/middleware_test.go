package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/api/shared"
	"github.com/phrazzld/taskboard/internal/mocks"
	"github.com/phrazzld/taskboard/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name        string
		header      string
		validateErr error
		wantStatus  int
		wantMessage string
	}{
		{"valid token", "Bearer good", nil, http.StatusOK, ""},
		{"lowercase scheme", "bearer good", nil, http.StatusOK, ""},
		{"missing header", "", nil, http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", "Basic abc", nil, http.StatusUnauthorized, "Invalid authorization format"},
		{"empty token", "Bearer ", nil, http.StatusUnauthorized, "Invalid authorization format"},
		{"expired", "Bearer old", auth.ErrExpiredToken, http.StatusUnauthorized, "Token expired"},
		{"invalid", "Bearer bad", auth.ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
		{"wrong type", "Bearer other", auth.ErrWrongTokenType, http.StatusUnauthorized, "Invalid token"},
		{"unexpected", "Bearer x", errors.New("boom"), http.StatusInternalServerError, "Authentication error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			jwtSvc := mocks.NewAuthenticatedJWTService(userID)
			jwtSvc.ValidateErr = tc.validateErr
			if tc.validateErr != nil {
				jwtSvc.Claims = nil
			}

			var gotUser uuid.UUID
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, ok := GetUserID(r)
				require.True(t, ok)
				gotUser = id
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/boards", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			NewAuthMiddleware(jwtSvc).Authenticate(next).ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, userID, gotUser)
				return
			}
			var resp shared.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantMessage, resp.Error)
		})
	}
}

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()

	var traceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
	})

	t.Run("generates a trace id", func(t *testing.T) {
		w := httptest.NewRecorder()
		TraceMiddleware(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, traceID, 32)
		assert.Equal(t, traceID, w.Header().Get(TraceIDHeader))
	})

	t.Run("reuses the chi request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), chimiddleware.RequestIDKey, "host/abc-000001"))
		w := httptest.NewRecorder()

		TraceMiddleware(next).ServeHTTP(w, req)

		assert.Equal(t, "host/abc-000001", traceID)
		assert.Equal(t, "host/abc-000001", w.Header().Get(TraceIDHeader))
	})
}
