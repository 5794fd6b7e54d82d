package models

import "interview-coach/internal/services"

type GenerateQuestionsRequest struct {
	ModuleType     string `json:"moduleType"`
	Count          int    `json:"count"`
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
	Role           string `json:"role"`
}

type FeedbackRequest struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	ModuleType string `json:"moduleType"`
}

type FollowUpRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type SaveSessionRequest struct {
	ModuleType       string                   `json:"moduleType"`
	Question         string                   `json:"question"`
	AnswerTranscript string                   `json:"answerTranscript"`
	Feedback         *services.FeedbackResult `json:"feedback"`
	OverallScore     *int                     `json:"overallScore"`
}

type SaveProfileRequest struct {
	Name            string `json:"name"`
	JobRole         string `json:"jobRole"`
	ExperienceLevel string `json:"experienceLevel"`
	ResumeText      string `json:"resumeText"`
}

type ResumeUploadResponse struct {
	ResumeText string `json:"resumeText"`
	ResumeFile string `json:"resumeFile"`
}
