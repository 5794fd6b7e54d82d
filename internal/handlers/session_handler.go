package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"interview-coach/internal/auth"
	"interview-coach/internal/models"
	"interview-coach/internal/repositories"
	"interview-coach/internal/services"
)

type SessionHandler struct {
	sessionRepo repositories.SessionRepository
	logger      *zap.Logger
}

func NewSessionHandler(sessionRepo repositories.SessionRepository, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// HandleCreate handles POST /sessions
func (h *SessionHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.SaveSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	module, ok := services.ParseModuleType(req.ModuleType)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "moduleType must be one of hr, behavioral, technical",
		})
	}

	if strings.TrimSpace(req.Question) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "question is required",
		})
	}

	session := &models.Session{
		ID:               uuid.New(),
		UserID:           auth.UserID(c),
		ModuleType:       string(module),
		Question:         req.Question,
		AnswerTranscript: req.AnswerTranscript,
		Feedback:         req.Feedback,
		OverallScore:     overallScore(req),
		CreatedAt:        time.Now(),
	}

	if err := h.sessionRepo.Create(session); err != nil {
		h.logger.Error("failed to save session", zap.String("user_id", session.UserID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

// An explicit score wins, then the feedback's own score.
func overallScore(req models.SaveSessionRequest) int {
	if req.OverallScore != nil {
		return *req.OverallScore
	}
	if req.Feedback != nil {
		return req.Feedback.OverallScore
	}
	return 0
}

// HandleList handles GET /sessions
func (h *SessionHandler) HandleList(c *fiber.Ctx) error {
	uid := auth.UserID(c)

	sessions, err := h.sessionRepo.ListByUser(uid, repositories.MaxSessionsPerPage)
	if err != nil {
		h.logger.Error("failed to list sessions", zap.String("user_id", uid), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch sessions",
		})
	}

	return c.JSON(fiber.Map{
		"sessions": sessions,
	})
}
