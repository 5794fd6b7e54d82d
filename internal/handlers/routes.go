package handlers

import (
	"github.com/gofiber/fiber/v2"

	"interview-coach/internal/auth"
)

type Handlers struct {
	Health    *HealthHandler
	Interview *InterviewHandler
	Session   *SessionHandler
	Profile   *ProfileHandler
}

// RegisterRoutes mounts the API under /api/v1.
func RegisterRoutes(app *fiber.App, h Handlers, mw *auth.Middleware) {
	api := app.Group("/api/v1")

	api.Get("/health", h.Health.HandleHealth)

	optional := mw.OptionalAuth()
	api.Post("/questions", optional, h.Interview.HandleGenerateQuestions)
	api.Get("/questions/similar", optional, h.Interview.HandleSimilarQuestions)
	api.Post("/feedback", optional, h.Interview.HandleAnalyzeFeedback)
	api.Post("/follow-up", optional, h.Interview.HandleFollowUp)

	required := mw.RequireAuth()
	api.Post("/sessions", required, h.Session.HandleCreate)
	api.Get("/sessions", required, h.Session.HandleList)
	api.Post("/profile", required, h.Profile.HandleSave)
	api.Get("/profile", required, h.Profile.HandleGet)
	api.Post("/profile/resume", required, h.Profile.HandleUploadResume)
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
