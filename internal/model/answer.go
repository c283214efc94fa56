package model

// QuizAnswer records the outcome of one question. Exactly one is appended per question.
type QuizAnswer struct {
	QuestionIndex  int    `json:"questionIndex"`
	SelectedAnswer string `json:"selectedAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
	TimedOut       bool   `json:"timedOut"`
}
