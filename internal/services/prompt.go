package services

import (
	"fmt"
	"strings"
)

const (
	maxResumeChars         = 1500
	maxJobDescriptionChars = 1000
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildQuestionPrompt creates prompt for interview question generation
func (pb *PromptBuilder) BuildQuestionPrompt(req GenerationRequest) string {
	role := ""
	if req.Context != nil {
		role = strings.TrimSpace(req.Context.Role)
	}

	return fmt.Sprintf(`You are an expert interview coach. %s
%s

IMPORTANT: Respond ONLY with a valid JSON object in this exact format:
{
  "questions": ["question 1", "question 2", ...]
}

Do not include any text before or after the JSON.`,
		moduleInstruction(req.ModuleType, req.Count, role),
		contextBlock(req.Context))
}

// BuildFeedbackPrompt creates prompt for answer analysis and scoring
func (pb *PromptBuilder) BuildFeedbackPrompt(req FeedbackRequest) string {
	structure := "(Clear intro, body, conclusion)"
	if req.ModuleType == ModuleBehavioral {
		structure = "(STAR method: Situation, Task, Action, Result)"
	}

	return fmt.Sprintf(`You are an expert interview coach with 20+ years of experience. Analyze this interview answer thoroughly.

INTERVIEW TYPE: %s
QUESTION: "%s"
CANDIDATE'S ANSWER: "%s"

Evaluate the answer on these criteria (score each 1-10):

1. **Relevance** - Does the answer directly address the question?
2. **Structure** - Is it well-organized? %s
3. **Clarity** - Is the language clear? Any filler words, rambling, or vague statements?
4. **Depth** - Does the answer show real experience, specific examples, and quantifiable results?
5. **Confidence** - Does the answer demonstrate conviction and professionalism?

IMPORTANT: Respond ONLY with a valid JSON object in this exact format:
{
  "scores": {
    "relevance": <1-10>,
    "structure": <1-10>,
    "clarity": <1-10>,
    "depth": <1-10>,
    "confidence": <1-10>
  },
  "overallScore": <1-10>,
  "strengths": ["strength 1", "strength 2"],
  "improvements": ["improvement 1", "improvement 2", "improvement 3"],
  "detailedFeedback": "A 2-3 sentence overall assessment with actionable advice.",
  "improvedAnswer": "A brief example of how the answer could be improved (2-3 sentences showing the key changes)."
}

Do not include any text before or after the JSON.`,
		strings.ToUpper(string(req.ModuleType)), req.Question, req.Answer, structure)
}

// BuildFollowUpPrompt creates prompt for follow-up questions on a Q&A pair
func (pb *PromptBuilder) BuildFollowUpPrompt(question, answer string) string {
	return fmt.Sprintf(`You are an experienced interviewer. Based on this Q&A, generate 2 natural follow-up questions that probe deeper.

ORIGINAL QUESTION: "%s"
CANDIDATE'S ANSWER: "%s"

Respond ONLY with valid JSON:
{
  "followUps": ["follow-up question 1", "follow-up question 2"]
}`, question, answer)
}

func moduleInstruction(module ModuleType, count int, role string) string {
	switch module {
	case ModuleHR:
		return fmt.Sprintf("Generate %d realistic HR interview questions. Focus on: motivation, teamwork, conflict resolution, strengths/weaknesses, career goals. Make them specific and thought-provoking, not generic.", count)
	case ModuleBehavioral:
		return fmt.Sprintf(`Generate %d behavioral interview questions using the STAR method format. Focus on: leadership, problem-solving, adaptability, communication, decision-making. Each question should start with "Tell me about a time when..." or similar behavioral prompt.`, count)
	case ModuleTechnical:
		tailoring := "Focus on general software engineering."
		if role != "" {
			tailoring = fmt.Sprintf("Tailor for a %s role.", role)
		}
		return fmt.Sprintf("Generate %d technical interview questions. Include a mix of: conceptual questions, problem-solving scenarios, system design basics, and coding logic questions. %s", count, tailoring)
	default:
		return ""
	}
}

func contextBlock(ctx *QuestionContext) string {
	if ctx.empty() {
		return ""
	}

	var b strings.Builder
	if ctx.ResumeText != "" {
		b.WriteString("\nCandidate Resume Summary: ")
		b.WriteString(truncateRunes(ctx.ResumeText, maxResumeChars))
	}
	if ctx.JobDescription != "" {
		b.WriteString("\nJob Description: ")
		b.WriteString(truncateRunes(ctx.JobDescription, maxJobDescriptionChars))
	}
	if ctx.Role != "" {
		b.WriteString("\nTarget Role: ")
		b.WriteString(ctx.Role)
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
