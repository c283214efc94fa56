package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Snapquiz/internal/dto"
	"github.com/lshigami/Snapquiz/internal/model"
	"github.com/lshigami/Snapquiz/internal/repository"
	"github.com/lshigami/Snapquiz/internal/session"
	"github.com/rs/zerolog/log"
)

var (
	ErrSessionNotComplete = errors.New("session is not complete yet")
	ErrNothingToReview    = errors.New("no incorrectly answered questions to review")
)

// QuizSessionService drives quiz sessions on behalf of HTTP clients.
type QuizSessionService interface {
	StartSession(questions []dto.QuizQuestionDTO) (*dto.SessionDTO, error)
	GetSession(id string) (*dto.SessionDTO, error)
	SubmitAnswer(id, selectedAnswer string) (*dto.QuizAnswerDTO, error)
	GetResults(id string) (*dto.QuizResultsDTO, error)
	StartReview(id string) (*dto.SessionDTO, error)
	EndSession(id string) error
	EvictExpired(now time.Time) int
}

type quizSessionService struct {
	repo   repository.SessionRepository
	timing session.Timing
	ttl    time.Duration
}

func NewQuizSessionService(repo repository.SessionRepository, timing session.Timing, ttl time.Duration) QuizSessionService {
	return &quizSessionService{repo: repo, timing: timing, ttl: ttl}
}

// StartSession re-checks the shape rules on a client supplied set before any timer starts.
func (s *quizSessionService) StartSession(questions []dto.QuizQuestionDTO) (*dto.SessionDTO, error) {
	var set model.QuizSet
	if err := copier.Copy(&set, &questions); err != nil {
		log.Error().Err(err).Msg("Failed to copy questions DTO to QuizSet")
		return nil, fmt.Errorf("error reading questions: %w", err)
	}
	if err := ValidateQuizSet(set, 0); err != nil {
		log.Warn().Err(err).Msg("StartSession: rejected quiz set")
		return nil, err
	}
	return s.start(set)
}

func (s *quizSessionService) start(set model.QuizSet) (*dto.SessionDTO, error) {
	id, ctrl, err := s.repo.Create(set, s.timing)
	if err != nil {
		return nil, err
	}
	log.Info().Str("sessionID", id).Int("questions", len(set)).Msg("Quiz session started")

	snap, err := ctrl.Snapshot()
	if err != nil {
		return nil, err
	}
	return toSessionDTO(id, snap)
}

func (s *quizSessionService) GetSession(id string) (*dto.SessionDTO, error) {
	ctrl, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	snap, err := ctrl.Snapshot()
	if err != nil {
		return nil, err
	}
	return toSessionDTO(id, snap)
}

func (s *quizSessionService) SubmitAnswer(id, selectedAnswer string) (*dto.QuizAnswerDTO, error) {
	ctrl, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	answer, err := ctrl.Select(selectedAnswer)
	if err != nil {
		log.Debug().Err(err).Str("sessionID", id).Msg("SubmitAnswer: selection ignored")
		return nil, err
	}
	log.Info().Str("sessionID", id).Int("questionIndex", answer.QuestionIndex).Bool("correct", answer.IsCorrect).Msg("Answer recorded")

	var resp dto.QuizAnswerDTO
	if err := copier.Copy(&resp, &answer); err != nil {
		return nil, fmt.Errorf("error preparing answer response: %w", err)
	}
	return &resp, nil
}

func (s *quizSessionService) GetResults(id string) (*dto.QuizResultsDTO, error) {
	results, err := s.completedResults(id)
	if err != nil {
		return nil, err
	}
	return toResultsDTO(results)
}

// StartReview opens a new session over the questions the finished session got wrong.
func (s *quizSessionService) StartReview(id string) (*dto.SessionDTO, error) {
	results, err := s.completedResults(id)
	if err != nil {
		return nil, err
	}
	ctrl, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	review := session.ReviewSet(ctrl.QuizSet(), results)
	if len(review) == 0 {
		return nil, ErrNothingToReview
	}
	log.Info().Str("fromSessionID", id).Int("questions", len(review)).Msg("Starting review session")
	return s.start(review)
}

func (s *quizSessionService) completedResults(id string) (model.QuizResults, error) {
	ctrl, err := s.repo.FindByID(id)
	if err != nil {
		return model.QuizResults{}, err
	}
	snap, err := ctrl.Snapshot()
	if err != nil {
		return model.QuizResults{}, err
	}
	if snap.State != session.Complete || snap.Results == nil {
		return model.QuizResults{}, ErrSessionNotComplete
	}
	return *snap.Results, nil
}

func (s *quizSessionService) EndSession(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	log.Info().Str("sessionID", id).Msg("Quiz session ended")
	return nil
}

// EvictExpired drops sessions idle for longer than the configured TTL. A zero TTL keeps
// everything.
func (s *quizSessionService) EvictExpired(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	n := s.repo.DeleteIdleSince(now.Add(-s.ttl))
	if n > 0 {
		log.Info().Int("evicted", n).Int("remaining", s.repo.Count()).Msg("Idle quiz sessions evicted")
	}
	return n
}

func toSessionDTO(id string, snap session.Snapshot) (*dto.SessionDTO, error) {
	resp := &dto.SessionDTO{
		ID:             id,
		State:          snap.State.String(),
		QuestionIndex:  snap.Index,
		TotalQuestions: snap.Total,
		Answers:        []dto.QuizAnswerDTO{},
	}
	if err := copier.Copy(&resp.Answers, &snap.Answers); err != nil {
		return nil, fmt.Errorf("error preparing session answers: %w", err)
	}
	if resp.Answers == nil {
		resp.Answers = []dto.QuizAnswerDTO{}
	}
	if !snap.Deadline.IsZero() {
		deadline := snap.Deadline
		resp.Deadline = &deadline
	}

	switch snap.State {
	case session.AwaitingAnswer, session.ShowingFeedback:
		q := snap.Question
		view := &dto.QuestionViewDTO{ID: q.ID, Question: q.Question, Options: q.Options}
		if snap.State == session.ShowingFeedback {
			view.CorrectAnswer = q.CorrectAnswer
		}
		resp.Question = view
	case session.Complete:
		if snap.Results != nil {
			results, err := toResultsDTO(*snap.Results)
			if err != nil {
				return nil, err
			}
			resp.Results = results
		}
	}
	return resp, nil
}

func toResultsDTO(results model.QuizResults) (*dto.QuizResultsDTO, error) {
	var resp dto.QuizResultsDTO
	if err := copier.Copy(&resp, &results); err != nil {
		log.Error().Err(err).Msg("Failed to copy QuizResults to DTO")
		return nil, fmt.Errorf("error preparing results response: %w", err)
	}
	return &resp, nil
}
