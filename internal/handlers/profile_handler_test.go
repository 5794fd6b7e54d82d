package handlers

import (
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfileMissing(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/api/v1/profile", nil, env.token(t, "u1"))
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "profile")
	assert.Nil(t, body["profile"])
}

func TestSaveAndGetProfile(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "u1")

	status, body := env.do(t, http.MethodPost, "/api/v1/profile", map[string]any{
		"name":            "Ana",
		"jobRole":         "SRE",
		"experienceLevel": "senior",
	}, token)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, body = env.do(t, http.MethodGet, "/api/v1/profile", nil, token)
	require.Equal(t, fiber.StatusOK, status)
	profile := body["profile"].(map[string]any)
	assert.Equal(t, "Ana", profile["name"])
	assert.Equal(t, "SRE", profile["jobRole"])
	assert.Equal(t, "u1", profile["userId"])
}

func TestUploadResume(t *testing.T) {
	env := newTestEnv(t, withPDF("Go developer\nFive years", nil))
	token := env.token(t, "u1")

	status, body := env.upload(t, "/api/v1/profile/resume", "resume", "cv.pdf", []byte("%PDF-1.4"), token)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Go developer\nFive years", body["resumeText"])

	stored := env.profiles.profiles["u1"]
	assert.Equal(t, "Go developer\nFive years", stored.ResumeText)
	assert.Equal(t, body["resumeFile"], stored.ResumeFile)

	entries, err := os.ReadDir(env.uploadDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUploadResumeRejections(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "u1")

	status, _ := env.upload(t, "/api/v1/profile/resume", "file", "cv.pdf", []byte("%PDF"), token)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = env.upload(t, "/api/v1/profile/resume", "resume", "cv.txt", []byte("plain"), token)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = env.upload(t, "/api/v1/profile/resume", "resume", "cv.pdf", []byte("not a pdf"), token)
	assert.Equal(t, fiber.StatusBadRequest, status)

	big := make([]byte, 2048)
	status, body := env.upload(t, "/api/v1/profile/resume", "resume", "cv.pdf", big, token)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["error"], "too large")
}

func TestUploadResumeUnreadablePDF(t *testing.T) {
	env := newTestEnv(t, withPDF("", errors.New("no text content found in PDF")))

	status, _ := env.upload(t, "/api/v1/profile/resume", "resume", "cv.pdf", []byte("%PDF-1.7"), env.token(t, "u1"))
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	entries, err := os.ReadDir(env.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
