package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/lshigami/Snapquiz/internal/imageenc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedReply struct {
	text string
	err  error
}

// fakeGateway replays a script; the last reply repeats once the script runs out.
type fakeGateway struct {
	mu      sync.Mutex
	replies []scriptedReply
	calls   int
	prompts []string
	images  []imageenc.Image
	ctxErrs []error
}

func (f *fakeGateway) Name() string { return "fake" }

func (f *fakeGateway) GenerateContent(ctx context.Context, prompt string, img imageenc.Image) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := f.calls
	if idx >= len(f.replies) {
		idx = len(f.replies) - 1
	}
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.images = append(f.images, img)
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	return f.replies[idx].text, f.replies[idx].err
}

func newTestGenerationService(gw *fakeGateway, count int) QuizGenerationService {
	return NewQuizGenerationService(gw, imageenc.NewEncoder(1080, 70), GenerationOptions{
		QuestionCount: count,
		MaxRetries:    2,
	})
}

func TestGenerateQuizSucceedsFirstAttempt(t *testing.T) {
	gw := &fakeGateway{replies: []scriptedReply{{text: "```json\n" + sampleJSON(t, 10) + "\n```"}}}

	set, err := newTestGenerationService(gw, 10).GenerateQuiz(context.Background(), "aGk=", "")
	require.NoError(t, err)
	assert.Len(t, set, 10)
	assert.Equal(t, 1, gw.calls)
	assert.Equal(t, imageenc.MIMETypeJPEG, gw.images[0].MIMEType)
	assert.Contains(t, gw.prompts[0], "exactly 4 options")
	assert.Contains(t, gw.prompts[0], `"1" to "10"`)
}

func TestGenerateQuizRetriesUntilValid(t *testing.T) {
	gw := &fakeGateway{replies: []scriptedReply{
		{text: "Sure! here you go"},
		{err: errors.New("connection reset")},
		{text: sampleJSON(t, 10)},
	}}

	set, err := newTestGenerationService(gw, 10).GenerateQuiz(context.Background(), "aGk=", "image/jpeg")
	require.NoError(t, err)
	assert.Len(t, set, 10)
	assert.Equal(t, 3, gw.calls)
}

func TestGenerateQuizRetryBound(t *testing.T) {
	gw := &fakeGateway{replies: []scriptedReply{{text: `[{"id":]`}}}

	_, err := newTestGenerationService(gw, 10).GenerateQuiz(context.Background(), "aGk=", "image/jpeg")
	genErr := requireKind(t, err, KindExhaustedRetries)
	assert.Equal(t, 3, gw.calls)
	assert.Equal(t, 3, genErr.Attempts)
	assert.False(t, genErr.Retryable())

	var last *GenerationError
	require.True(t, errors.As(genErr.Unwrap(), &last))
	assert.Equal(t, KindMalformedJSON, last.Kind)
}

func TestGenerateQuizWaitsRetryDelayBetweenAttempts(t *testing.T) {
	const delay = 30 * time.Millisecond
	gw := &fakeGateway{replies: []scriptedReply{{text: "not json"}}}
	svc := NewQuizGenerationService(gw, imageenc.NewEncoder(1080, 70), GenerationOptions{
		QuestionCount: 10,
		MaxRetries:    2,
		RetryDelay:    delay,
	})

	start := time.Now()
	_, err := svc.GenerateQuiz(context.Background(), "aGk=", "image/jpeg")
	elapsed := time.Since(start)

	requireKind(t, err, KindExhaustedRetries)
	assert.Equal(t, 3, gw.calls)
	assert.GreaterOrEqual(t, elapsed, 2*delay)
}

func TestGenerateQuizProsePrefixEveryAttempt(t *testing.T) {
	gw := &fakeGateway{replies: []scriptedReply{{text: "Sure! " + sampleJSON(t, 10)}}}

	_, err := newTestGenerationService(gw, 10).GenerateQuiz(context.Background(), "aGk=", "image/jpeg")
	genErr := requireKind(t, err, KindExhaustedRetries)
	assert.Equal(t, 3, gw.calls)
	assert.Equal(t, KindNotAnArray, genErr.Err.(*GenerationError).Kind)
}

func TestGenerateQuizTransportFailureIsRetried(t *testing.T) {
	gw := &fakeGateway{replies: []scriptedReply{{err: errors.New("no route to host")}}}

	_, err := newTestGenerationService(gw, 10).GenerateQuiz(context.Background(), "aGk=", "image/jpeg")
	genErr := requireKind(t, err, KindExhaustedRetries)
	assert.Equal(t, 3, gw.calls)
	assert.Equal(t, KindTransportFailure, genErr.Err.(*GenerationError).Kind)
	assert.Contains(t, err.Error(), "no route to host")
}

func TestGenerateQuizSuccessMatchesValidation(t *testing.T) {
	raws := []string{
		sampleJSON(t, 10),
		sampleJSON(t, 9),
		"Sure! " + sampleJSON(t, 10),
		`[{"id":"1","question":"Q","options":["A","B","C","D"],"correctAnswer":"E"}]`,
	}
	for _, raw := range raws {
		_, parseErr := ParseQuizSet(raw, 10)
		gw := &fakeGateway{replies: []scriptedReply{{text: raw}}}
		_, genErr := newTestGenerationService(gw, 10).GenerateQuiz(context.Background(), "aGk=", "image/jpeg")
		assert.Equal(t, parseErr == nil, genErr == nil, raw)
	}
}

func TestGenerateQuizHonoursContextBetweenAttempts(t *testing.T) {
	gw := &fakeGateway{replies: []scriptedReply{{text: "nope"}}}
	svc := NewQuizGenerationService(gw, imageenc.NewEncoder(1080, 70), GenerationOptions{
		QuestionCount: 10,
		MaxRetries:    2,
		RetryDelay:    time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := svc.GenerateQuiz(ctx, "aGk=", "image/jpeg")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, gw.calls)
}

func TestGenerateQuizInFlightAttemptIgnoresCancellation(t *testing.T) {
	gw := &fakeGateway{replies: []scriptedReply{{text: sampleJSON(t, 10)}}}
	svc := newTestGenerationService(gw, 10).(*quizGenerationService)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	set, err := svc.runAttempt(ctx, "p", imageenc.Image{Data: "aGk=", MIMEType: "image/jpeg"})
	require.NoError(t, err)
	assert.Len(t, set, 10)
	assert.NoError(t, gw.ctxErrs[0])
}

func TestGenerateQuestionsFromImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))

	t.Run("success", func(t *testing.T) {
		gw := &fakeGateway{replies: []scriptedReply{{text: sampleJSON(t, 10)}}}
		resp := newTestGenerationService(gw, 10).GenerateQuestionsFromImage(context.Background(), bytes.NewReader(buf.Bytes()))
		require.True(t, resp.Success, resp.Error)
		require.Len(t, resp.Questions, 10)
		assert.Equal(t, "B", resp.Questions[0].CorrectAnswer)
		assert.Equal(t, []string{"A", "B", "C", "D"}, resp.Questions[0].Options)
		assert.Equal(t, imageenc.MIMETypeJPEG, gw.images[0].MIMEType)
	})

	t.Run("exhausted", func(t *testing.T) {
		gw := &fakeGateway{replies: []scriptedReply{{text: "nope"}}}
		resp := newTestGenerationService(gw, 10).GenerateQuestionsFromImage(context.Background(), bytes.NewReader(buf.Bytes()))
		assert.False(t, resp.Success)
		assert.Empty(t, resp.Questions)
		assert.Equal(t, "ExhaustedRetries", resp.ErrorKind)
		assert.Equal(t, 3, resp.Attempts)
		assert.Contains(t, resp.Error, "Failed to generate questions: ")
	})

	t.Run("not an image", func(t *testing.T) {
		gw := &fakeGateway{replies: []scriptedReply{{text: sampleJSON(t, 10)}}}
		resp := newTestGenerationService(gw, 10).GenerateQuestionsFromImage(context.Background(), bytes.NewReader([]byte("text")))
		assert.False(t, resp.Success)
		assert.Equal(t, ErrorKindInvalidImage, resp.ErrorKind)
		assert.Zero(t, gw.calls)
	})
}
