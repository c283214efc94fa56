package model

// QuizResults is the aggregate computed once a session completes.
type QuizResults struct {
	Score               int          `json:"score"` // percentage, 0-100
	TotalQuestions      int          `json:"totalQuestions"`
	AnsweredCorrectly   []int        `json:"answeredCorrectly"`
	AnsweredIncorrectly []int        `json:"answeredIncorrectly"`
	Review              []ReviewItem `json:"review"`
}

// ReviewItem pairs a question with what the user actually picked.
type ReviewItem struct {
	QuestionIndex  int    `json:"questionIndex"`
	Question       string `json:"question"`
	SelectedAnswer string `json:"selectedAnswer"`
	CorrectAnswer  string `json:"correctAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
	TimedOut       bool   `json:"timedOut"`
}
