package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"interview-coach/internal/auth"
	"interview-coach/internal/models"
	"interview-coach/internal/services"
)

const (
	MaxQuestionCount     = 20
	defaultSimilarLimit  = 5
	maxSimilarLimit      = 20
	generatedQuestionSrc = "generated"
)

type InterviewHandler struct {
	interview services.InterviewService
	profiles  *ProfileStore
	indexer   services.Worker
	embedder  services.Embedder
	bank      services.QuestionBankService
	logger    *zap.Logger
}

// NewInterviewHandler wires the AI endpoints. profiles, indexer and bank may
// be nil, which disables profile context, indexing and similarity search.
func NewInterviewHandler(
	interview services.InterviewService,
	profiles *ProfileStore,
	indexer services.Worker,
	embedder services.Embedder,
	bank services.QuestionBankService,
	logger *zap.Logger,
) *InterviewHandler {
	return &InterviewHandler{
		interview: interview,
		profiles:  profiles,
		indexer:   indexer,
		embedder:  embedder,
		bank:      bank,
		logger:    logger,
	}
}

// HandleGenerateQuestions handles POST /questions
func (h *InterviewHandler) HandleGenerateQuestions(c *fiber.Ctx) error {
	var req models.GenerateQuestionsRequest
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

	if req.Count > MaxQuestionCount {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("count must not exceed %d", MaxQuestionCount),
		})
	}

	genReq := services.GenerationRequest{
		ModuleType: module,
		Count:      req.Count,
		Context: &services.QuestionContext{
			ResumeText:     req.ResumeText,
			JobDescription: req.JobDescription,
			Role:           req.Role,
		},
	}
	h.fillFromProfile(c, genReq.Context)

	set := h.interview.GenerateQuestions(c.UserContext(), genReq)

	if h.indexer != nil {
		h.indexer.EnqueueQuestions(module, set.Questions, generatedQuestionSrc)
	}

	return c.JSON(set)
}

// fillFromProfile uses the signed-in user's stored resume and role when the
// request carries neither.
func (h *InterviewHandler) fillFromProfile(c *fiber.Ctx, qc *services.QuestionContext) {
	uid := auth.UserID(c)
	if uid == "" || h.profiles == nil {
		return
	}
	if strings.TrimSpace(qc.ResumeText) != "" || strings.TrimSpace(qc.Role) != "" {
		return
	}

	profile, err := h.profiles.Load(c.UserContext(), uid)
	if err != nil {
		h.logger.Warn("profile lookup failed, generating without it", zap.String("user_id", uid), zap.Error(err))
		return
	}
	if profile == nil {
		return
	}

	qc.ResumeText = profile.ResumeText
	qc.Role = profile.JobRole
}

// HandleAnalyzeFeedback handles POST /feedback
func (h *InterviewHandler) HandleAnalyzeFeedback(c *fiber.Ctx) error {
	var req models.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Answer) == "" || req.ModuleType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "question, answer and moduleType are required",
		})
	}

	module, ok := services.ParseModuleType(req.ModuleType)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "moduleType must be one of hr, behavioral, technical",
		})
	}

	result := h.interview.AnalyzeFeedback(c.UserContext(), services.FeedbackRequest{
		Question:   req.Question,
		Answer:     req.Answer,
		ModuleType: module,
	})

	return c.JSON(result)
}

// HandleFollowUp handles POST /follow-up
func (h *InterviewHandler) HandleFollowUp(c *fiber.Ctx) error {
	var req models.FollowUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Answer) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "question and answer are required",
		})
	}

	return c.JSON(h.interview.GenerateFollowUp(c.UserContext(), req.Question, req.Answer))
}

// HandleSimilarQuestions handles GET /questions/similar
func (h *InterviewHandler) HandleSimilarQuestions(c *fiber.Ctx) error {
	if h.bank == nil || h.embedder == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Question bank is not configured",
		})
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "q is required",
		})
	}

	var module services.ModuleType
	if raw := c.Query("moduleType"); raw != "" {
		var ok bool
		if module, ok = services.ParseModuleType(raw); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "moduleType must be one of hr, behavioral, technical",
			})
		}
	}

	limit := c.QueryInt("limit", defaultSimilarLimit)
	if limit <= 0 || limit > maxSimilarLimit {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("limit must be between 1 and %d", maxSimilarLimit),
		})
	}

	embedding, err := h.embedder.GenerateEmbedding(c.UserContext(), query)
	if err != nil {
		h.logger.Error("query embedding failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to embed query",
		})
	}

	matches, err := h.bank.Search(c.UserContext(), embedding, module, limit)
	if err != nil {
		h.logger.Error("question bank search failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to search question bank",
		})
	}

	return c.JSON(fiber.Map{
		"questions": matches,
	})
}
