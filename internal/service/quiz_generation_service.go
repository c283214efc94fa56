package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Snapquiz/internal/dto"
	"github.com/lshigami/Snapquiz/internal/gateway"
	"github.com/lshigami/Snapquiz/internal/imageenc"
	"github.com/lshigami/Snapquiz/internal/model"
	"github.com/rs/zerolog/log"
)

// ErrorKindInvalidImage is reported to clients when the upload itself was unusable.
const ErrorKindInvalidImage = "InvalidImage"

// QuizGenerationService turns an image into a validated quiz.
type QuizGenerationService interface {
	GenerateQuiz(ctx context.Context, imageBase64, mimeType string) (model.QuizSet, error)
	GenerateQuestionsFromImage(ctx context.Context, r io.Reader) dto.GenerateQuizResponse
	GenerateQuestionsFromBase64(ctx context.Context, data, mimeType string) dto.GenerateQuizResponse
}

// GenerationOptions bounds the attempt loop. QuestionCount <= 0 accepts any non-empty quiz.
type GenerationOptions struct {
	QuestionCount  int
	MaxRetries     int
	RetryDelay     time.Duration
	AttemptTimeout time.Duration
}

type quizGenerationService struct {
	gateway gateway.ModelGateway
	encoder *imageenc.Encoder
	opts    GenerationOptions
}

func NewQuizGenerationService(gw gateway.ModelGateway, enc *imageenc.Encoder, opts GenerationOptions) QuizGenerationService {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	return &quizGenerationService{gateway: gw, encoder: enc, opts: opts}
}

// GenerateQuiz runs up to MaxRetries+1 strictly sequential attempts. An attempt that has been
// submitted runs to completion even if ctx is cancelled; ctx is checked before each attempt
// and while waiting between attempts.
func (s *quizGenerationService) GenerateQuiz(ctx context.Context, imageBase64, mimeType string) (model.QuizSet, error) {
	if mimeType == "" {
		mimeType = imageenc.MIMETypeJPEG
	}
	img := imageenc.Image{Data: imageBase64, MIMEType: mimeType}
	prompt := BuildQuizPrompt(s.opts.QuestionCount)
	maxAttempts := s.opts.MaxRetries + 1

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepContext(ctx, s.opts.RetryDelay); err != nil {
				return nil, fmt.Errorf("quiz generation abandoned after %d attempts: %w", attempt-1, err)
			}
		} else if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("quiz generation abandoned before first attempt: %w", err)
		}

		set, err := s.runAttempt(ctx, prompt, img)
		if err == nil {
			log.Info().Int("attempt", attempt).Str("gateway", s.gateway.Name()).Int("questions", len(set)).Msg("Quiz generated")
			return set, nil
		}
		lastErr = err
		logAttemptFailure(err, attempt, maxAttempts, s.gateway.Name())
	}

	return nil, &GenerationError{Kind: KindExhaustedRetries, Attempts: maxAttempts, Err: lastErr}
}

func (s *quizGenerationService) runAttempt(ctx context.Context, prompt string, img imageenc.Image) (model.QuizSet, error) {
	callCtx := context.WithoutCancel(ctx)
	if s.opts.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(callCtx, s.opts.AttemptTimeout)
		defer cancel()
	}

	text, err := s.gateway.GenerateContent(callCtx, prompt, img)
	if err != nil {
		return nil, &GenerationError{Kind: KindTransportFailure, Err: err}
	}
	return ParseQuizSet(text, s.opts.QuestionCount)
}

func logAttemptFailure(err error, attempt, maxAttempts int, gatewayName string) {
	var genErr *GenerationError
	kind := "unknown"
	if errors.As(err, &genErr) {
		kind = genErr.Kind.String()
	}
	event := log.Warn()
	if genErr != nil && genErr.Kind == KindTransportFailure {
		// infrastructure problem rather than an unreliable model
		event = log.Error()
	}
	event.Err(err).
		Int("attempt", attempt).
		Int("max_attempts", maxAttempts).
		Str("kind", kind).
		Str("gateway", gatewayName).
		Msg("Quiz generation attempt failed")
}

func (s *quizGenerationService) GenerateQuestionsFromImage(ctx context.Context, r io.Reader) dto.GenerateQuizResponse {
	img, err := s.encoder.Encode(r)
	if err != nil {
		log.Warn().Err(err).Msg("GenerateQuestionsFromImage: image could not be encoded")
		return failureResponse(err)
	}
	return s.respond(ctx, img)
}

func (s *quizGenerationService) GenerateQuestionsFromBase64(ctx context.Context, data, mimeType string) dto.GenerateQuizResponse {
	img, err := s.encoder.FromBase64(data, mimeType)
	if err != nil {
		log.Warn().Err(err).Msg("GenerateQuestionsFromBase64: image payload rejected")
		return failureResponse(err)
	}
	return s.respond(ctx, img)
}

func (s *quizGenerationService) respond(ctx context.Context, img imageenc.Image) dto.GenerateQuizResponse {
	set, err := s.GenerateQuiz(ctx, img.Data, img.MIMEType)
	if err != nil {
		return failureResponse(err)
	}
	var questions []dto.QuizQuestionDTO
	if err := copier.Copy(&questions, &set); err != nil {
		log.Error().Err(err).Msg("Failed to copy QuizSet to DTO")
		return failureResponse(fmt.Errorf("error preparing response data: %w", err))
	}
	return dto.GenerateQuizResponse{Success: true, Questions: questions}
}

func failureResponse(err error) dto.GenerateQuizResponse {
	resp := dto.GenerateQuizResponse{
		Success: false,
		Error:   "Failed to generate questions: " + err.Error(),
	}
	var genErr *GenerationError
	switch {
	case errors.As(err, &genErr):
		resp.ErrorKind = genErr.Kind.String()
		resp.Attempts = genErr.Attempts
	case errors.Is(err, imageenc.ErrUnreadableImage), errors.Is(err, imageenc.ErrUnsupportedImage):
		resp.ErrorKind = ErrorKindInvalidImage
	}
	return resp
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
