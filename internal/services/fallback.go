package services

var fallbackQuestionPools = map[ModuleType][]string{
	ModuleHR: {
		"Tell me about yourself and your career journey so far.",
		"Why are you interested in this position?",
		"Where do you see yourself in 5 years?",
		"What is your greatest strength and how has it helped you professionally?",
		"Describe a challenging work situation and how you handled it.",
		"What motivates you to do your best work?",
		"How do you handle feedback and criticism?",
	},
	ModuleBehavioral: {
		"Tell me about a time when you had to work with a difficult team member.",
		"Describe a situation where you had to meet a tight deadline.",
		"Give an example of when you showed leadership in a project.",
		"Tell me about a time you failed and what you learned from it.",
		"Describe a situation where you had to adapt to a significant change.",
		"Tell me about a time you went above and beyond your responsibilities.",
		"Give an example of how you resolved a conflict at work.",
	},
	ModuleTechnical: {
		"Explain the difference between REST and GraphQL APIs.",
		"How would you optimize a slow database query?",
		"Describe how you would design a URL shortening service.",
		"What are the SOLID principles? Give an example of one.",
		"Explain the concept of time complexity with an example.",
		"How does garbage collection work in modern programming languages?",
		"What is the difference between SQL and NoSQL databases?",
	},
}

var fallbackFollowUps = []string{
	"Can you elaborate on that?",
	"What would you do differently next time?",
}

// FallbackQuestions returns the first count questions of the module's fixed
// pool, or the whole pool when count exceeds it. Unknown modules use the HR
// pool.
func FallbackQuestions(module ModuleType, count int) []string {
	pool, ok := fallbackQuestionPools[module]
	if !ok {
		pool = fallbackQuestionPools[ModuleHR]
	}
	if count < 0 {
		count = 0
	}
	if count > len(pool) {
		count = len(pool)
	}

	out := make([]string, count)
	copy(out, pool[:count])
	return out
}

func FallbackFeedback() FeedbackResult {
	return FeedbackResult{
		Scores: FeedbackScores{
			Relevance:  5,
			Structure:  5,
			Clarity:    5,
			Depth:      5,
			Confidence: 5,
		},
		OverallScore: 5,
		Strengths:    []string{"You attempted to answer the question"},
		Improvements: []string{
			"Try to be more specific with examples",
			"Use the STAR method for behavioral questions",
			"Add quantifiable results",
		},
		DetailedFeedback: "Your answer covers the basics but could benefit from more specific examples and a clearer structure.",
		ImprovedAnswer:   "Consider starting with a specific situation, describing your role, the actions you took, and the measurable results.",
	}
}

func FallbackFollowUps() FollowUpResult {
	out := make([]string, len(fallbackFollowUps))
	copy(out, fallbackFollowUps)
	return FollowUpResult{FollowUps: out}
}
