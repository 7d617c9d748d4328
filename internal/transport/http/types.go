package http

import "quiz-timer-service/internal/domain"

type createQuizRequest struct {
	QuestionCount *int `json:"questionCount" binding:"omitempty,gte=0"`
}

type createQuizResponse struct {
	SessionID      string           `json:"sessionId"`
	TotalQuestions int              `json:"totalQuestions"`
	FirstQuestion  *domain.Question `json:"firstQuestion"`
}

type answerRequest struct {
	SessionID      string `json:"sessionId" binding:"required"`
	SelectedAnswer *int   `json:"selectedAnswer" binding:"required"`
}

type endQuizRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

type endQuizResponse struct {
	Ended   bool           `json:"ended"`
	Results domain.Results `json:"results"`
}

type bankResponse struct {
	TotalQuestions int `json:"totalQuestions"`
}

type errorResponse struct {
	Error string `json:"error"`
}
