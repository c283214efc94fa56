package repository

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Snapquiz/internal/model"
	"github.com/lshigami/Snapquiz/internal/session"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository keeps running quiz sessions in process memory. Nothing survives a restart.
type SessionRepository interface {
	Create(set model.QuizSet, timing session.Timing) (string, *session.Controller, error)
	FindByID(id string) (*session.Controller, error)
	Delete(id string) error
	DeleteIdleSince(cutoff time.Time) int
	Count() int
	CloseAll()
}

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*session.Controller
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{sessions: make(map[string]*session.Controller)}
}

func (r *sessionRepository) Create(set model.QuizSet, timing session.Timing) (string, *session.Controller, error) {
	ctrl, err := session.New(set, timing)
	if err != nil {
		return "", nil, err
	}
	id := uuid.NewString()

	r.mu.Lock()
	r.sessions[id] = ctrl
	r.mu.Unlock()
	return id, ctrl, nil
}

func (r *sessionRepository) FindByID(id string) (*session.Controller, error) {
	r.mu.RLock()
	ctrl, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return ctrl, nil
}

// Delete removes the session and stops its timers.
func (r *sessionRepository) Delete(id string) error {
	r.mu.Lock()
	ctrl, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	ctrl.Close()
	return nil
}

// DeleteIdleSince evicts every session with no client activity after cutoff and reports how
// many went.
func (r *sessionRepository) DeleteIdleSince(cutoff time.Time) int {
	var stale []*session.Controller
	r.mu.Lock()
	for id, ctrl := range r.sessions {
		if ctrl.LastActive().Before(cutoff) {
			stale = append(stale, ctrl)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, ctrl := range stale {
		ctrl.Close()
	}
	return len(stale)
}

func (r *sessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *sessionRepository) CloseAll() {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]*session.Controller)
	r.mu.Unlock()

	for _, ctrl := range all {
		ctrl.Close()
	}
}
