package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ronak8595/Backend/internal/api/response"
	"github.com/Ronak8595/Backend/internal/domain"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	response.OK(rec, map[string]string{"status": "ok"}, "healthy")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	env := decode(t, rec)
	assert.Equal(t, http.StatusOK, env.StatusCode)
	assert.Equal(t, "healthy", env.Message)
	assert.True(t, env.Success)
	assert.NotNil(t, env.Data)
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Created(rec, map[string]string{"id": "abc"}, "created")

	assert.Equal(t, http.StatusCreated, rec.Code)

	env := decode(t, rec)
	assert.Equal(t, http.StatusCreated, env.StatusCode)
	assert.True(t, env.Success)
}

func TestFail(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Fail(rec, http.StatusBadRequest, "bad input")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decode(t, rec)
	assert.Equal(t, "bad input", env.Message)
	assert.False(t, env.Success)
	assert.Nil(t, env.Data)
}

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", domain.Validation("email is required"), http.StatusBadRequest, "email is required"},
		{"conflict", domain.Conflict("email already in use"), http.StatusConflict, "email already in use"},
		{"auth", domain.Auth("invalid credentials"), http.StatusUnauthorized, "invalid credentials"},
		{"not found", domain.NotFound("user not found"), http.StatusNotFound, "user not found"},
		{"internal hides detail", domain.Internal("db write failed", errors.New("connection reset")), http.StatusInternalServerError, "internal server error"},
		{"unclassified defaults to internal", errors.New("surprise"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.Error(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decode(t, rec)
			assert.Equal(t, tt.wantMsg, env.Message)
			assert.False(t, env.Success)
		})
	}
}
