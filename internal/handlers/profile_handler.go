package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"interview-coach/internal/auth"
	"interview-coach/internal/models"
	"interview-coach/internal/services"
)

type ProfileHandler struct {
	profiles       *ProfileStore
	storageService services.StorageService
	pdfParser      services.PDFParserService
	maxFileSize    int64
	logger         *zap.Logger
}

func NewProfileHandler(
	profiles *ProfileStore,
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	maxFileSize int64,
	logger *zap.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		profiles:       profiles,
		storageService: storageService,
		pdfParser:      pdfParser,
		maxFileSize:    maxFileSize,
		logger:         logger,
	}
}

// HandleSave handles POST /profile
func (h *ProfileHandler) HandleSave(c *fiber.Ctx) error {
	var req models.SaveProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	profile := &models.Profile{
		UserID:          auth.UserID(c),
		Name:            req.Name,
		JobRole:         req.JobRole,
		ExperienceLevel: req.ExperienceLevel,
		ResumeText:      req.ResumeText,
	}

	if err := h.profiles.Save(c.UserContext(), profile); err != nil {
		h.logger.Error("failed to save profile", zap.String("user_id", profile.UserID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save profile",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// HandleGet handles GET /profile
func (h *ProfileHandler) HandleGet(c *fiber.Ctx) error {
	uid := auth.UserID(c)

	profile, err := h.profiles.Load(c.UserContext(), uid)
	if err != nil {
		h.logger.Error("failed to load profile", zap.String("user_id", uid), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch profile",
		})
	}

	return c.JSON(fiber.Map{
		"profile": profile,
	})
}

// HandleUploadResume handles POST /profile/resume
func (h *ProfileHandler) HandleUploadResume(c *fiber.Ctx) error {
	uid := auth.UserID(c)

	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please upload a PDF file in the 'resume' field",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(file, "resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume: %v", err),
		})
	}

	text, err := h.pdfParser.ExtractText(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   "Could not read text from the uploaded PDF",
			"details": err.Error(),
		})
	}

	if err := h.profiles.SaveResume(c.UserContext(), uid, text, filename); err != nil {
		h.storageService.DeleteFile(filename)
		h.logger.Error("failed to store resume", zap.String("user_id", uid), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store resume",
		})
	}

	h.logger.Info("resume uploaded",
		zap.String("user_id", uid),
		zap.String("file", filename),
		zap.Int("chars", len(text)),
	)

	return c.Status(fiber.StatusCreated).JSON(models.ResumeUploadResponse{
		ResumeText: text,
		ResumeFile: filename,
	})
}
