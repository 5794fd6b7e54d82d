package services

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"
)

const (
	OpGenerateQuestions = "generate_questions"
	OpAnalyzeFeedback   = "analyze_feedback"
	OpGenerateFollowUp  = "generate_follow_up"
)

// InterviewService runs the three AI operations. None of them return an
// error: a failed invocation or parse yields the operation's fallback.
type InterviewService interface {
	GenerateQuestions(ctx context.Context, req GenerationRequest) QuestionSet
	AnalyzeFeedback(ctx context.Context, req FeedbackRequest) FeedbackResult
	GenerateFollowUp(ctx context.Context, question, answer string) FollowUpResult
}

// OutcomeStats counts successful and fallback results across operations.
type OutcomeStats struct {
	success  atomic.Int64
	fallback atomic.Int64
}

func (s *OutcomeStats) record(ok bool) {
	if s == nil {
		return
	}
	if ok {
		s.success.Add(1)
		return
	}
	s.fallback.Add(1)
}

func (s *OutcomeStats) Snapshot() map[string]int64 {
	if s == nil {
		return map[string]int64{"success": 0, "fallback": 0}
	}
	return map[string]int64{
		"success":  s.success.Load(),
		"fallback": s.fallback.Load(),
	}
}

type interviewService struct {
	generator     TextGenerator
	promptBuilder *PromptBuilder
	logger        *zap.Logger
	stats         *OutcomeStats
}

func NewInterviewService(generator TextGenerator, logger *zap.Logger, stats *OutcomeStats) InterviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &interviewService{
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		logger:        logger,
		stats:         stats,
	}
}

func (s *interviewService) GenerateQuestions(ctx context.Context, req GenerationRequest) QuestionSet {
	if req.Count <= 0 {
		req.Count = DefaultQuestionCount
	}

	prompt := s.promptBuilder.BuildQuestionPrompt(req)
	raw, err := s.generator.GenerateText(ctx, prompt)
	if err == nil {
		var set QuestionSet
		if set, err = ParseQuestions(raw, req.Count); err == nil {
			s.succeeded(OpGenerateQuestions, zap.String("module", string(req.ModuleType)), zap.Int("questions", len(set.Questions)))
			return set
		}
	}

	s.failed(OpGenerateQuestions, err, zap.String("module", string(req.ModuleType)))
	return QuestionSet{Questions: FallbackQuestions(req.ModuleType, req.Count)}
}

func (s *interviewService) AnalyzeFeedback(ctx context.Context, req FeedbackRequest) FeedbackResult {
	prompt := s.promptBuilder.BuildFeedbackPrompt(req)
	raw, err := s.generator.GenerateText(ctx, prompt)
	if err == nil {
		var result FeedbackResult
		if result, err = ParseFeedback(raw); err == nil {
			s.succeeded(OpAnalyzeFeedback, zap.String("module", string(req.ModuleType)), zap.Int("overall_score", result.OverallScore))
			return result
		}
	}

	s.failed(OpAnalyzeFeedback, err, zap.String("module", string(req.ModuleType)))
	return FallbackFeedback()
}

func (s *interviewService) GenerateFollowUp(ctx context.Context, question, answer string) FollowUpResult {
	prompt := s.promptBuilder.BuildFollowUpPrompt(question, answer)
	raw, err := s.generator.GenerateText(ctx, prompt)
	if err == nil {
		var result FollowUpResult
		if result, err = ParseFollowUps(raw); err == nil {
			s.succeeded(OpGenerateFollowUp)
			return result
		}
	}

	s.failed(OpGenerateFollowUp, err)
	return FallbackFollowUps()
}

func (s *interviewService) succeeded(op string, fields ...zap.Field) {
	s.stats.record(true)
	s.logger.Info("ai operation completed",
		append([]zap.Field{zap.String("operation", op), zap.String("outcome", "success")}, fields...)...)
}

func (s *interviewService) failed(op string, err error, fields ...zap.Field) {
	s.stats.record(false)
	s.logger.Warn("ai operation fell back to defaults",
		append([]zap.Field{
			zap.String("operation", op),
			zap.String("outcome", "fallback"),
			zap.String("reason", failureReason(err)),
			zap.Error(err),
		}, fields...)...)
}

func failureReason(err error) string {
	if errors.Is(err, ErrParseFailure) {
		return "parse"
	}
	return "invocation"
}
