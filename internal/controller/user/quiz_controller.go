package user

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Snapquiz/internal/dto"
	"github.com/lshigami/Snapquiz/internal/repository"
	"github.com/lshigami/Snapquiz/internal/service"
	"github.com/lshigami/Snapquiz/internal/session"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	generationService service.QuizGenerationService
	sessionService    service.QuizSessionService
	uploadMaxBytes    int64
}

func NewQuizController(gs service.QuizGenerationService, ss service.QuizSessionService, uploadMaxBytes int64) *QuizController {
	return &QuizController{
		generationService: gs,
		sessionService:    ss,
		uploadMaxBytes:    uploadMaxBytes,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz from an image
// @Description Upload a JPG or PNG (multipart field "image") or send {imageData, mimeType} as JSON. The image is described by a vision model and turned into multiple-choice questions. Invalid model output is retried a bounded number of times.
// @Tags Quizzes
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param image formData file false "Image file (JPG or PNG)"
// @Param request body dto.GenerateQuizRequest false "Base64 image payload"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} dto.GenerateQuizResponse "Missing or unreadable image"
// @Failure 422 {object} dto.GenerateQuizResponse "The model did not produce a valid quiz"
// @Router /api/v1/quizzes [post]
func (c *QuizController) GenerateQuiz(ctx *gin.Context) {
	if c.uploadMaxBytes > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.uploadMaxBytes)
	}

	var resp dto.GenerateQuizResponse
	if strings.HasPrefix(ctx.ContentType(), "multipart/") {
		fileHeader, err := ctx.FormFile("image")
		if err != nil {
			log.Warn().Err(err).Msg("GenerateQuiz: no image in multipart form")
			ctx.JSON(http.StatusBadRequest, dto.GenerateQuizResponse{Error: "Please select an image file (field \"image\")."})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("GenerateQuiz: cannot open upload")
			ctx.JSON(http.StatusBadRequest, dto.GenerateQuizResponse{Error: "Could not read the uploaded file."})
			return
		}
		defer file.Close()
		log.Info().Str("filename", fileHeader.Filename).Int64("size", fileHeader.Size).Msg("Received image upload for quiz generation")
		resp = c.generationService.GenerateQuestionsFromImage(ctx.Request.Context(), file)
	} else {
		var req dto.GenerateQuizRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			log.Warn().Err(err).Msg("GenerateQuiz: Failed to bind JSON")
			ctx.JSON(http.StatusBadRequest, dto.GenerateQuizResponse{Error: "Invalid request body: " + err.Error()})
			return
		}
		log.Info().Str("mimeType", req.MimeType).Int("length", len(req.ImageData)).Msg("Received base64 image for quiz generation")
		resp = c.generationService.GenerateQuestionsFromBase64(ctx.Request.Context(), req.ImageData, req.MimeType)
	}

	switch {
	case resp.Success:
		ctx.JSON(http.StatusOK, resp)
	case resp.ErrorKind == service.ErrorKindInvalidImage:
		ctx.JSON(http.StatusBadRequest, resp)
	default:
		ctx.JSON(http.StatusUnprocessableEntity, resp)
	}
}

// StartSession godoc
// @Summary Start a quiz session
// @Description Starts a timed session over a question set returned by quiz generation. The first question is shown immediately and its countdown starts.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest true "Questions to play"
// @Success 201 {object} dto.SessionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid question set"
// @Router /api/v1/sessions [post]
func (c *QuizController) StartSession(ctx *gin.Context) {
	var req dto.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("StartSession: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	s, err := c.sessionService.StartSession(req.Questions)
	if err != nil {
		respondSessionError(ctx, err, "Failed to start session")
		return
	}
	ctx.JSON(http.StatusCreated, s)
}

// GetSession godoc
// @Summary Get the current state of a session
// @Description The correct answer of the current question is only included once it has been answered.
// @Tags Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /api/v1/sessions/{session_id} [get]
func (c *QuizController) GetSession(ctx *gin.Context) {
	s, err := c.sessionService.GetSession(ctx.Param("session_id"))
	if err != nil {
		respondSessionError(ctx, err, "Failed to get session")
		return
	}
	ctx.JSON(http.StatusOK, s)
}

// SubmitAnswer godoc
// @Summary Answer the current question
// @Description Only the first answer per question counts.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param request body dto.SubmitAnswerRequest true "Selected option"
// @Success 200 {object} dto.QuizAnswerDTO
// @Failure 400 {object} dto.ErrorResponse "Answer is not one of the options"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "The session is not waiting for an answer"
// @Router /api/v1/sessions/{session_id}/answers [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	answer, err := c.sessionService.SubmitAnswer(ctx.Param("session_id"), req.SelectedAnswer)
	if err != nil {
		respondSessionError(ctx, err, "Answer not accepted")
		return
	}
	ctx.JSON(http.StatusOK, answer)
}

// GetResults godoc
// @Summary Get the results of a finished session
// @Tags Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.QuizResultsDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session still running"
// @Router /api/v1/sessions/{session_id}/results [get]
func (c *QuizController) GetResults(ctx *gin.Context) {
	res, err := c.sessionService.GetResults(ctx.Param("session_id"))
	if err != nil {
		respondSessionError(ctx, err, "Results not available")
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// StartReview godoc
// @Summary Review the incorrectly answered questions
// @Description Starts a new session made of the questions the finished session got wrong, in their original order.
// @Tags Sessions
// @Produce json
// @Param session_id path string true "Finished session ID"
// @Success 201 {object} dto.SessionDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session still running"
// @Failure 422 {object} dto.ErrorResponse "Nothing to review"
// @Router /api/v1/sessions/{session_id}/review [post]
func (c *QuizController) StartReview(ctx *gin.Context) {
	s, err := c.sessionService.StartReview(ctx.Param("session_id"))
	if err != nil {
		respondSessionError(ctx, err, "Review not available")
		return
	}
	ctx.JSON(http.StatusCreated, s)
}

// EndSession godoc
// @Summary End a session and free its timers
// @Tags Sessions
// @Param session_id path string true "Session ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /api/v1/sessions/{session_id} [delete]
func (c *QuizController) EndSession(ctx *gin.Context) {
	if err := c.sessionService.EndSession(ctx.Param("session_id")); err != nil {
		respondSessionError(ctx, err, "Failed to end session")
		return
	}
	ctx.Status(http.StatusNoContent)
}

func respondSessionError(ctx *gin.Context, err error, message string) {
	var genErr *service.GenerationError
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrSessionNotFound), errors.Is(err, session.ErrClosed):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrNotAwaitingAnswer), errors.Is(err, service.ErrSessionNotComplete):
		status = http.StatusConflict
	case errors.Is(err, session.ErrUnknownOption), errors.Is(err, session.ErrEmptyQuizSet), errors.As(err, &genErr):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNothingToReview):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Session request failed")
	}
	ctx.JSON(status, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
}
