package services

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type QuestionChunker interface {
	// ChunkQuestions splits a question-bank document into single questions.
	ChunkQuestions(text string, maxQuestionLen int) []string
}

type questionChunker struct{}

func NewQuestionChunker() QuestionChunker {
	return &questionChunker{}
}

// ChunkQuestions implements QuestionChunker. Each non-empty line or paragraph
// is a candidate; list markers are stripped. Candidates longer than
// maxQuestionLen are split into sentences and only the interrogative ones
// are kept.
func (qc *questionChunker) ChunkQuestions(text string, maxQuestionLen int) []string {
	if maxQuestionLen <= 0 {
		maxQuestionLen = 500
	}

	seen := make(map[string]struct{})
	var questions []string
	add := func(q string) {
		q = strings.TrimSpace(q)
		if q == "" {
			return
		}
		if _, dup := seen[q]; dup {
			return
		}
		seen[q] = struct{}{}
		questions = append(questions, q)
	}

	for _, para := range strings.Split(text, "\n\n") {
		for _, line := range strings.Split(para, "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "--- Page") {
				continue
			}
			line = stripListMarker(line)
			if line == "" {
				continue
			}

			if utf8.RuneCountInString(line) <= maxQuestionLen {
				add(line)
				continue
			}

			for _, sentence := range splitIntoSentences(line) {
				if strings.HasSuffix(sentence, "?") && utf8.RuneCountInString(sentence) <= maxQuestionLen {
					add(sentence)
				}
			}
		}
	}

	return questions
}

// splitIntoSentences keeps the terminating punctuation on each sentence.
func splitIntoSentences(text string) []string {
	var (
		result  []string
		current strings.Builder
	)
	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				result = append(result, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		result = append(result, s)
	}
	return result
}

// stripListMarker removes "1.", "2)", "-", "*" and "•" prefixes.
func stripListMarker(line string) string {
	trimmed := strings.TrimLeft(line, "-*• \t")
	digits := strings.TrimLeftFunc(trimmed, unicode.IsDigit)
	if len(digits) < len(trimmed) && (strings.HasPrefix(digits, ".") || strings.HasPrefix(digits, ")")) {
		return strings.TrimSpace(digits[1:])
	}
	return strings.TrimSpace(trimmed)
}
