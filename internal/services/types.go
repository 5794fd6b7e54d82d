package services

import "strings"

type ModuleType string

const (
	ModuleHR         ModuleType = "hr"
	ModuleBehavioral ModuleType = "behavioral"
	ModuleTechnical  ModuleType = "technical"
)

const DefaultQuestionCount = 5

func (m ModuleType) Valid() bool {
	switch m {
	case ModuleHR, ModuleBehavioral, ModuleTechnical:
		return true
	}
	return false
}

// ParseModuleType accepts the exact lowercase names only.
func ParseModuleType(s string) (ModuleType, bool) {
	m := ModuleType(s)
	return m, m.Valid()
}

// QuestionContext carries optional candidate context for question generation.
type QuestionContext struct {
	ResumeText     string
	JobDescription string
	Role           string
}

func (c *QuestionContext) empty() bool {
	return c == nil ||
		(strings.TrimSpace(c.ResumeText) == "" &&
			strings.TrimSpace(c.JobDescription) == "" &&
			strings.TrimSpace(c.Role) == "")
}

type GenerationRequest struct {
	ModuleType ModuleType
	Count      int
	Context    *QuestionContext
}

type QuestionSet struct {
	Questions []string `json:"questions"`
}

type FeedbackRequest struct {
	Question   string
	Answer     string
	ModuleType ModuleType
}

type FeedbackScores struct {
	Relevance  int `json:"relevance"`
	Structure  int `json:"structure"`
	Clarity    int `json:"clarity"`
	Depth      int `json:"depth"`
	Confidence int `json:"confidence"`
}

// FeedbackResult is the scored analysis of a single answer. OverallScore is
// assigned by the model directly and is not derived from Scores.
type FeedbackResult struct {
	Scores           FeedbackScores `json:"scores"`
	OverallScore     int            `json:"overallScore"`
	Strengths        []string       `json:"strengths"`
	Improvements     []string       `json:"improvements"`
	DetailedFeedback string         `json:"detailedFeedback"`
	ImprovedAnswer   string         `json:"improvedAnswer"`
}

type FollowUpResult struct {
	FollowUps []string `json:"followUps"`
}
