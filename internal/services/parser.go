package services

import (
	"encoding/json"
	"math"
	"strings"
)

const followUpCount = 2

// ExtractJSONObject returns the substring spanning the first '{' to the
// last '}' in text. The model is told to answer with JSON only but often
// wraps it in prose or markdown fences.
func ExtractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSON
	}
	return text[start : end+1], nil
}

func decodeObject(raw string, target any) error {
	jsonStr, err := ExtractJSONObject(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return parseFailure("failed to unmarshal JSON: %v", err)
	}
	return nil
}

// ParseQuestions decodes a question-list response. Lists longer than count
// are cut to count; shorter lists are returned as-is.
func ParseQuestions(raw string, count int) (QuestionSet, error) {
	var payload struct {
		Questions *[]string `json:"questions"`
	}
	if err := decodeObject(raw, &payload); err != nil {
		return QuestionSet{}, err
	}
	if payload.Questions == nil {
		return QuestionSet{}, parseFailure("missing field %q", "questions")
	}

	questions := nonBlank(*payload.Questions)
	if len(questions) == 0 {
		return QuestionSet{}, parseFailure("no questions in response")
	}
	if count > 0 && len(questions) > count {
		questions = questions[:count]
	}

	return QuestionSet{Questions: questions}, nil
}

type rawScores struct {
	Relevance  *float64 `json:"relevance"`
	Structure  *float64 `json:"structure"`
	Clarity    *float64 `json:"clarity"`
	Depth      *float64 `json:"depth"`
	Confidence *float64 `json:"confidence"`
}

type rawFeedback struct {
	Scores           *rawScores `json:"scores"`
	OverallScore     *float64   `json:"overallScore"`
	Strengths        []string   `json:"strengths"`
	Improvements     []string   `json:"improvements"`
	DetailedFeedback string     `json:"detailedFeedback"`
	ImprovedAnswer   string     `json:"improvedAnswer"`
}

// ParseFeedback decodes a feedback response. All five score axes and the
// overall score must be present, integral and within 1-10.
func ParseFeedback(raw string) (FeedbackResult, error) {
	var payload rawFeedback
	if err := decodeObject(raw, &payload); err != nil {
		return FeedbackResult{}, err
	}
	if payload.Scores == nil {
		return FeedbackResult{}, parseFailure("missing field %q", "scores")
	}

	var (
		result FeedbackResult
		err    error
	)
	axes := []struct {
		name string
		in   *float64
		out  *int
	}{
		{"relevance", payload.Scores.Relevance, &result.Scores.Relevance},
		{"structure", payload.Scores.Structure, &result.Scores.Structure},
		{"clarity", payload.Scores.Clarity, &result.Scores.Clarity},
		{"depth", payload.Scores.Depth, &result.Scores.Depth},
		{"confidence", payload.Scores.Confidence, &result.Scores.Confidence},
		{"overallScore", payload.OverallScore, &result.OverallScore},
	}
	for _, axis := range axes {
		if *axis.out, err = score(axis.name, axis.in); err != nil {
			return FeedbackResult{}, err
		}
	}

	result.Strengths = payload.Strengths
	result.Improvements = payload.Improvements
	result.DetailedFeedback = payload.DetailedFeedback
	result.ImprovedAnswer = payload.ImprovedAnswer
	return result, nil
}

func score(name string, v *float64) (int, error) {
	if v == nil {
		return 0, parseFailure("missing score %q", name)
	}
	if *v != math.Trunc(*v) {
		return 0, parseFailure("score %q is not an integer: %v", name, *v)
	}
	if *v < 1 || *v > 10 {
		return 0, parseFailure("score %q out of range: %v", name, *v)
	}
	return int(*v), nil
}

// ParseFollowUps decodes a follow-up response into exactly two questions.
func ParseFollowUps(raw string) (FollowUpResult, error) {
	var payload struct {
		FollowUps *[]string `json:"followUps"`
	}
	if err := decodeObject(raw, &payload); err != nil {
		return FollowUpResult{}, err
	}
	if payload.FollowUps == nil {
		return FollowUpResult{}, parseFailure("missing field %q", "followUps")
	}

	followUps := nonBlank(*payload.FollowUps)
	if len(followUps) < followUpCount {
		return FollowUpResult{}, parseFailure("expected %d follow-ups, got %d", followUpCount, len(followUps))
	}

	return FollowUpResult{FollowUps: followUps[:followUpCount]}, nil
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
