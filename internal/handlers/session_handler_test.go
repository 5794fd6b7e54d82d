package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionsRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, http.MethodGet, "/api/v1/sessions", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = env.do(t, http.MethodPost, "/api/v1/sessions", map[string]any{}, "bad-token")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestCreateAndListSessions(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "u1")

	status, body := env.do(t, http.MethodPost, "/api/v1/sessions", map[string]any{
		"moduleType":       "hr",
		"question":         "Why us?",
		"answerTranscript": "Because",
		"feedback":         map[string]any{"overallScore": 7},
	}, token)
	require.Equal(t, fiber.StatusCreated, status)
	assert.EqualValues(t, 7, body["overallScore"])
	assert.Equal(t, "u1", body["userId"])
	assert.NotEmpty(t, body["id"])

	status, _ = env.do(t, http.MethodPost, "/api/v1/sessions", map[string]any{
		"moduleType":   "technical",
		"question":     "Explain GC",
		"overallScore": 3,
		"feedback":     map[string]any{"overallScore": 9},
	}, token)
	require.Equal(t, fiber.StatusCreated, status)

	_, _ = env.do(t, http.MethodPost, "/api/v1/sessions", map[string]any{
		"moduleType": "hr",
		"question":   "Other user",
	}, env.token(t, "u2"))

	status, body = env.do(t, http.MethodGet, "/api/v1/sessions", nil, token)
	require.Equal(t, fiber.StatusOK, status)

	sessions := body["sessions"].([]any)
	require.Len(t, sessions, 2)
	newest := sessions[0].(map[string]any)
	assert.Equal(t, "Explain GC", newest["question"])
	assert.EqualValues(t, 3, newest["overallScore"])
}

func TestCreateSessionDefaultsScoreToZero(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/api/v1/sessions", map[string]any{
		"moduleType": "behavioral",
		"question":   "Q",
	}, env.token(t, "u1"))
	require.Equal(t, fiber.StatusCreated, status)
	assert.EqualValues(t, 0, body["overallScore"])
}

func TestCreateSessionValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "u1")

	status, _ := env.do(t, http.MethodPost, "/api/v1/sessions", map[string]any{"moduleType": "hr"}, token)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodPost, "/api/v1/sessions", map[string]any{"moduleType": "x", "question": "Q"}, token)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCreateSessionStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.err = errors.New("db down")

	status, body := env.do(t, http.MethodPost, "/api/v1/sessions", map[string]any{
		"moduleType": "hr",
		"question":   "Q",
	}, env.token(t, "u1"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Failed to save session", body["error"])
}
