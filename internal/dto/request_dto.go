package dto

// GenerateQuizRequest is the JSON upload path: an image the client already base64-encoded.
type GenerateQuizRequest struct {
	ImageData string `json:"imageData" binding:"required"`
	MimeType  string `json:"mimeType"`
}

// ProxyRequest is the body accepted by the Gemini proxy route.
type ProxyRequest struct {
	ImageData string `json:"imageData"`
	MimeType  string `json:"mimeType"`
}

// QuizQuestionDTO is a question as exchanged with clients.
type QuizQuestionDTO struct {
	ID            string   `json:"id" binding:"required"`
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectAnswer string   `json:"correctAnswer" binding:"required"`
}

// CreateSessionRequest starts a session over a set previously returned by quiz generation.
type CreateSessionRequest struct {
	Questions []QuizQuestionDTO `json:"questions" binding:"required,min=1,dive"`
}

// SubmitAnswerRequest selects one option of the current question.
type SubmitAnswerRequest struct {
	SelectedAnswer string `json:"selectedAnswer" binding:"required"`
}
