// Package session runs one quiz session: question sequencing, the per-question countdown,
// answer capture and scoring.
package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lshigami/Snapquiz/internal/model"
)

type State int

const (
	AwaitingAnswer State = iota
	ShowingFeedback
	Complete
)

func (s State) String() string {
	switch s {
	case AwaitingAnswer:
		return "awaiting_answer"
	case ShowingFeedback:
		return "showing_feedback"
	case Complete:
		return "complete"
	}
	return "unknown"
}

var (
	ErrEmptyQuizSet      = errors.New("quiz set has no questions")
	ErrNotAwaitingAnswer = errors.New("session is not awaiting an answer")
	ErrUnknownOption     = errors.New("answer is not one of the question's options")
	ErrClosed            = errors.New("session is closed")
)

// Timing holds the two fixed delays of a session.
type Timing struct {
	AnswerTimeout time.Duration
	FeedbackDelay time.Duration
}

// Snapshot is a copy of the session state at one instant. Question is the zero value once
// the session is complete.
type Snapshot struct {
	State    State
	Index    int
	Total    int
	Question model.QuizQuestion
	Deadline time.Time
	Answers  []model.QuizAnswer
	Results  *model.QuizResults
}

type selectCmd struct {
	answer string
	reply  chan selectReply
}

type selectReply struct {
	answer model.QuizAnswer
	err    error
}

// Controller owns a session. All mutable state belongs to a single goroutine; the exported
// methods talk to it over channels, so no locking is needed around the answer log or the
// timer.
type Controller struct {
	set       model.QuizSet
	timing    Timing
	createdAt time.Time
	// unix nanos of the last client call
	lastActive atomic.Int64

	selects chan selectCmd
	snaps   chan chan Snapshot
	stop    chan struct{}
	exited  chan struct{}
	done    chan struct{}
	once    sync.Once

	// written once before done is closed
	final model.QuizResults

	// owned by run
	state    State
	index    int
	answers  []model.QuizAnswer
	timer    *time.Timer
	deadline time.Time
}

// New starts a session in AwaitingAnswer(0). The set is copied.
func New(set model.QuizSet, timing Timing) (*Controller, error) {
	if len(set) == 0 {
		return nil, ErrEmptyQuizSet
	}
	c := &Controller{
		set:       set.Clone(),
		timing:    timing,
		createdAt: time.Now(),
		selects:   make(chan selectCmd),
		snaps:     make(chan chan Snapshot),
		stop:      make(chan struct{}),
		exited:    make(chan struct{}),
		done:      make(chan struct{}),
		answers:   make([]model.QuizAnswer, 0, len(set)),
	}
	c.lastActive.Store(c.createdAt.UnixNano())
	c.arm(timing.AnswerTimeout)
	go c.run()
	return c, nil
}

// QuizSet returns a copy of the questions this session was started with.
func (c *Controller) QuizSet() model.QuizSet { return c.set.Clone() }

func (c *Controller) CreatedAt() time.Time { return c.createdAt }

// LastActive is the time of the most recent Select, Snapshot or Results call.
func (c *Controller) LastActive() time.Time { return time.Unix(0, c.lastActive.Load()) }

func (c *Controller) touch() { c.lastActive.Store(time.Now().UnixNano()) }

// Done is closed when the session reaches Complete.
func (c *Controller) Done() <-chan struct{} { return c.done }

// Select answers the current question. Only the first selection per question counts; later
// ones return ErrNotAwaitingAnswer and change nothing.
func (c *Controller) Select(answer string) (model.QuizAnswer, error) {
	c.touch()
	reply := make(chan selectReply, 1)
	select {
	case c.selects <- selectCmd{answer: answer, reply: reply}:
	case <-c.exited:
		return model.QuizAnswer{}, ErrClosed
	}
	r := <-reply
	return r.answer, r.err
}

func (c *Controller) Snapshot() (Snapshot, error) {
	c.touch()
	reply := make(chan Snapshot, 1)
	select {
	case c.snaps <- reply:
	case <-c.exited:
		return Snapshot{}, ErrClosed
	}
	return <-reply, nil
}

// Results blocks until the session completes or ctx is done.
func (c *Controller) Results(ctx context.Context) (model.QuizResults, error) {
	c.touch()
	select {
	case <-c.done:
		return c.final, nil
	case <-ctx.Done():
		return model.QuizResults{}, ctx.Err()
	case <-c.exited:
		select {
		case <-c.done:
			return c.final, nil
		default:
			return model.QuizResults{}, ErrClosed
		}
	}
}

// Close stops the session goroutine and its timer. Safe to call more than once.
func (c *Controller) Close() {
	c.once.Do(func() { close(c.stop) })
	<-c.exited
}

func (c *Controller) run() {
	defer close(c.exited)
	defer c.disarm()

	for {
		select {
		case <-c.stop:
			return
		case cmd := <-c.selects:
			cmd.reply <- c.handleSelect(cmd.answer)
		case reply := <-c.snaps:
			reply <- c.snapshot()
		case <-c.timerC():
			c.handleTimer()
		}
	}
}

func (c *Controller) handleSelect(answer string) selectReply {
	if c.state != AwaitingAnswer {
		return selectReply{err: ErrNotAwaitingAnswer}
	}
	if !c.set[c.index].HasOption(answer) {
		return selectReply{err: ErrUnknownOption}
	}
	return selectReply{answer: c.record(answer, false)}
}

func (c *Controller) handleTimer() {
	switch c.state {
	case AwaitingAnswer:
		// no selection before the deadline: the first option stands in
		c.record(c.set[c.index].Options[0], true)
	case ShowingFeedback:
		c.advance()
	}
}

func (c *Controller) record(answer string, timedOut bool) model.QuizAnswer {
	q := c.set[c.index]
	a := model.QuizAnswer{
		QuestionIndex:  c.index,
		SelectedAnswer: answer,
		IsCorrect:      answer == q.CorrectAnswer,
		TimedOut:       timedOut,
	}
	c.answers = append(c.answers, a)
	c.state = ShowingFeedback
	c.arm(c.timing.FeedbackDelay)
	return a
}

func (c *Controller) advance() {
	if c.index+1 < len(c.set) {
		c.index++
		c.state = AwaitingAnswer
		c.arm(c.timing.AnswerTimeout)
		return
	}
	c.state = Complete
	c.disarm()
	c.final = ComputeResults(c.set, c.answers)
	close(c.done)
}

func (c *Controller) snapshot() Snapshot {
	snap := Snapshot{
		State:    c.state,
		Index:    c.index,
		Total:    len(c.set),
		Deadline: c.deadline,
		Answers:  append([]model.QuizAnswer(nil), c.answers...),
	}
	if c.state == Complete {
		res := c.final
		snap.Results = &res
	} else {
		q := c.set[c.index]
		q.Options = append([]string(nil), q.Options...)
		snap.Question = q
	}
	return snap
}

// arm replaces the single active timer.
func (c *Controller) arm(d time.Duration) {
	c.disarm()
	c.timer = time.NewTimer(d)
	c.deadline = time.Now().Add(d)
}

func (c *Controller) disarm() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.deadline = time.Time{}
}

func (c *Controller) timerC() <-chan time.Time {
	if c.timer == nil {
		return nil
	}
	return c.timer.C
}
