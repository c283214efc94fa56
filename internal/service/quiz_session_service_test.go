package service

import (
	"testing"
	"time"

	"github.com/lshigami/Snapquiz/internal/dto"
	"github.com/lshigami/Snapquiz/internal/repository"
	"github.com/lshigami/Snapquiz/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var twoPlusTwoDTO = []dto.QuizQuestionDTO{{
	ID:            "1",
	Question:      "2+2?",
	Options:       []string{"3", "4", "5", "6"},
	CorrectAnswer: "4",
}}

func newSessionService(t *testing.T, timing session.Timing) (QuizSessionService, repository.SessionRepository) {
	t.Helper()
	repo := repository.NewSessionRepository()
	t.Cleanup(repo.CloseAll)
	return NewQuizSessionService(repo, timing, time.Hour), repo
}

func waitComplete(t *testing.T, svc QuizSessionService, id string) {
	t.Helper()
	require.Eventually(t, func() bool {
		s, err := svc.GetSession(id)
		return err == nil && s.State == session.Complete.String()
	}, 2*time.Second, 5*time.Millisecond)
}

func TestStartSessionHidesCorrectAnswer(t *testing.T) {
	svc, _ := newSessionService(t, session.Timing{AnswerTimeout: time.Hour, FeedbackDelay: time.Hour})

	s, err := svc.StartSession(twoPlusTwoDTO)
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "awaiting_answer", s.State)
	assert.Equal(t, 1, s.TotalQuestions)
	require.NotNil(t, s.Question)
	assert.Equal(t, "2+2?", s.Question.Question)
	assert.Empty(t, s.Question.CorrectAnswer)
	assert.NotNil(t, s.Deadline)
	assert.Empty(t, s.Answers)

	answer, err := svc.SubmitAnswer(s.ID, "4")
	require.NoError(t, err)
	assert.Equal(t, dto.QuizAnswerDTO{QuestionIndex: 0, SelectedAnswer: "4", IsCorrect: true}, *answer)

	s, err = svc.GetSession(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "showing_feedback", s.State)
	assert.Equal(t, "4", s.Question.CorrectAnswer)
}

func TestStartSessionRejectsInvalidSet(t *testing.T) {
	svc, repo := newSessionService(t, session.Timing{AnswerTimeout: time.Hour, FeedbackDelay: time.Hour})

	bad := []dto.QuizQuestionDTO{{ID: "1", Question: "?", Options: []string{"a", "b", "c"}, CorrectAnswer: "a"}}
	_, err := svc.StartSession(bad)
	requireKind(t, err, KindWrongOptionCount)

	bad[0].Options = []string{"a", "b", "c", "d"}
	bad[0].CorrectAnswer = "e"
	_, err = svc.StartSession(bad)
	requireKind(t, err, KindAnswerNotInOptions)
	assert.Zero(t, repo.Count())
}

func TestCorrectSessionResults(t *testing.T) {
	svc, _ := newSessionService(t, session.Timing{AnswerTimeout: time.Hour, FeedbackDelay: time.Millisecond})

	s, err := svc.StartSession(twoPlusTwoDTO)
	require.NoError(t, err)
	_, err = svc.GetResults(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotComplete)

	_, err = svc.SubmitAnswer(s.ID, "4")
	require.NoError(t, err)
	waitComplete(t, svc, s.ID)

	res, err := svc.GetResults(s.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, []int{0}, res.AnsweredCorrectly)
	assert.Empty(t, res.AnsweredIncorrectly)

	_, err = svc.StartReview(s.ID)
	assert.ErrorIs(t, err, ErrNothingToReview)
}

func TestIncorrectSessionStartsReview(t *testing.T) {
	svc, _ := newSessionService(t, session.Timing{AnswerTimeout: time.Hour, FeedbackDelay: time.Millisecond})

	s, err := svc.StartSession(twoPlusTwoDTO)
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(s.ID, "3")
	require.NoError(t, err)
	waitComplete(t, svc, s.ID)

	done, err := svc.GetSession(s.ID)
	require.NoError(t, err)
	assert.Nil(t, done.Question)
	require.NotNil(t, done.Results)
	assert.Equal(t, 0, done.Results.Score)
	assert.Equal(t, []int{0}, done.Results.AnsweredIncorrectly)
	assert.Equal(t, "3", done.Results.Review[0].SelectedAnswer)

	review, err := svc.StartReview(s.ID)
	require.NoError(t, err)
	assert.NotEqual(t, s.ID, review.ID)
	assert.Equal(t, 1, review.TotalQuestions)
	assert.Equal(t, "2+2?", review.Question.Question)
	assert.Equal(t, []string{"3", "4", "5", "6"}, review.Question.Options)
}

func TestSubmitAnswerErrors(t *testing.T) {
	svc, _ := newSessionService(t, session.Timing{AnswerTimeout: time.Hour, FeedbackDelay: time.Hour})

	_, err := svc.SubmitAnswer("missing", "4")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)

	s, err := svc.StartSession(twoPlusTwoDTO)
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(s.ID, "7")
	assert.ErrorIs(t, err, session.ErrUnknownOption)

	_, err = svc.SubmitAnswer(s.ID, "5")
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(s.ID, "4")
	assert.ErrorIs(t, err, session.ErrNotAwaitingAnswer)
}

func TestEndSessionAndEviction(t *testing.T) {
	svc, repo := newSessionService(t, session.Timing{AnswerTimeout: time.Hour, FeedbackDelay: time.Hour})

	a, err := svc.StartSession(twoPlusTwoDTO)
	require.NoError(t, err)
	require.NoError(t, svc.EndSession(a.ID))
	_, err = svc.GetSession(a.ID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)

	_, err = svc.StartSession(twoPlusTwoDTO)
	require.NoError(t, err)
	assert.Zero(t, svc.EvictExpired(time.Now()))
	assert.Equal(t, 1, svc.EvictExpired(time.Now().Add(2*time.Hour)))
	assert.Zero(t, repo.Count())
}
