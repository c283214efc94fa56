package dto

import "time"

// GenerateQuizResponse is the single result the UI sees for a generation request.
// ErrorKind keeps the failure class that a plain message would lose.
type GenerateQuizResponse struct {
	Success   bool              `json:"success"`
	Questions []QuizQuestionDTO `json:"questions,omitempty"`
	Error     string            `json:"error,omitempty"`
	ErrorKind string            `json:"errorKind,omitempty"`
	Attempts  int               `json:"attempts,omitempty"`
}

// QuestionViewDTO is the current question as shown to the player. CorrectAnswer is only
// filled once the question has been answered.
type QuestionViewDTO struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
}

type QuizAnswerDTO struct {
	QuestionIndex  int    `json:"questionIndex"`
	SelectedAnswer string `json:"selectedAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
	TimedOut       bool   `json:"timedOut"`
}

type ReviewItemDTO struct {
	QuestionIndex  int    `json:"questionIndex"`
	Question       string `json:"question"`
	SelectedAnswer string `json:"selectedAnswer"`
	CorrectAnswer  string `json:"correctAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
	TimedOut       bool   `json:"timedOut"`
}

type QuizResultsDTO struct {
	Score               int             `json:"score"`
	TotalQuestions      int             `json:"totalQuestions"`
	AnsweredCorrectly   []int           `json:"answeredCorrectly"`
	AnsweredIncorrectly []int           `json:"answeredIncorrectly"`
	Review              []ReviewItemDTO `json:"review"`
}

// SessionDTO is a point-in-time view of a quiz session.
type SessionDTO struct {
	ID             string           `json:"id"`
	State          string           `json:"state"`
	QuestionIndex  int              `json:"questionIndex"`
	TotalQuestions int              `json:"totalQuestions"`
	Question       *QuestionViewDTO `json:"question,omitempty"`
	Deadline       *time.Time       `json:"deadline,omitempty"`
	Answers        []QuizAnswerDTO  `json:"answers"`
	Results        *QuizResultsDTO  `json:"results,omitempty"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// ProxyErrorResponse is the error shape of the Gemini proxy route.
type ProxyErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}
