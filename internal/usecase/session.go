package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"AstroChart/internal/domain/models"
)

var (
	// ErrSubmissionInFlight rejects a second submission while one is loading.
	ErrSubmissionInFlight = errors.New("a calculation is already in progress")
	ErrInvalidTransition  = errors.New("invalid state transition")
)

// Phase is the visible screen of one form instance.
type Phase int

const (
	PhaseInput Phase = iota
	PhaseLoading
	PhaseResult
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseLoading:
		return "loading"
	case PhaseResult:
		return "result"
	default:
		return "unknown"
	}
}

// State is the UI state machine. The zero value is not used; start from
// NewState. Transitions return a new State and never modify the receiver.
type State struct {
	phase    Phase
	form     models.BirthData
	snapshot *models.ChartSnapshot
	errMsg   string
}

// NewState is the input view with the default form.
func NewState() State {
	return State{phase: PhaseInput, form: models.DefaultBirthData()}
}

func (s State) Phase() Phase                    { return s.phase }
func (s State) Form() models.BirthData          { return s.form }
func (s State) Snapshot() *models.ChartSnapshot { return s.snapshot }

// ErrorMessage is set only on the input view after a failed calculation.
func (s State) ErrorMessage() string { return s.errMsg }

// Submit moves Input to Loading. The previous error is cleared.
func (s State) Submit(form models.BirthData) (State, error) {
	if s.phase != PhaseInput {
		return s, ErrSubmissionInFlight
	}
	return State{phase: PhaseLoading, form: form}, nil
}

// Succeed moves Loading to Result.
func (s State) Succeed(snap *models.ChartSnapshot) (State, error) {
	if s.phase != PhaseLoading || snap == nil {
		return s, ErrInvalidTransition
	}
	return State{phase: PhaseResult, form: s.form, snapshot: snap}, nil
}

// Fail returns to the input view, keeping the submitted form and showing msg.
func (s State) Fail(msg string) (State, error) {
	if s.phase != PhaseLoading {
		return s, ErrInvalidTransition
	}
	return State{phase: PhaseInput, form: s.form, errMsg: msg}, nil
}

// Reset discards any snapshot or error and shows a fresh form.
func (s State) Reset() State {
	return NewState()
}

type sessionEntry struct {
	state State
	seen  time.Time
}

// Sessions holds one State per browser session, in memory only.
type Sessions struct {
	mu      sync.Mutex
	m       map[string]*sessionEntry
	idleTTL time.Duration
	now     func() time.Time
	observe func(active int)
}

func NewSessions(idleTTL time.Duration) *Sessions {
	return &Sessions{m: make(map[string]*sessionEntry), idleTTL: idleTTL, now: time.Now}
}

// Observe registers fn to receive the session count whenever a session is
// created or the sweeper runs. fn is called with the lock held.
func (s *Sessions) Observe(fn func(active int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observe = fn
	s.notify()
}

func (s *Sessions) notify() {
	if s.observe != nil {
		s.observe(len(s.m))
	}
}

func (s *Sessions) entry(id string) *sessionEntry {
	e, ok := s.m[id]
	if !ok {
		e = &sessionEntry{state: NewState()}
		s.m[id] = e
		s.notify()
	}
	e.seen = s.now()
	return e
}

// Get returns the session's state, or a fresh input state.
func (s *Sessions) Get(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.m[id]; ok {
		e.seen = s.now()
		return e.state
	}
	return NewState()
}

// Begin starts a calculation. Submitting from the result view starts over,
// since a new calculation replaces the snapshot wholesale.
func (s *Sessions) Begin(id string, form models.BirthData) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(id)
	cur := e.state
	if cur.phase == PhaseResult {
		cur = cur.Reset()
	}
	next, err := cur.Submit(form)
	if err != nil {
		return e.state, err
	}
	e.state = next
	return next, nil
}

func (s *Sessions) Complete(id string, snap *models.ChartSnapshot) (State, error) {
	return s.apply(id, func(st State) (State, error) { return st.Succeed(snap) })
}

func (s *Sessions) Fail(id, msg string) (State, error) {
	return s.apply(id, func(st State) (State, error) { return st.Fail(msg) })
}

func (s *Sessions) Reset(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(id)
	e.state = e.state.Reset()
	return e.state
}

func (s *Sessions) apply(id string, fn func(State) (State, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(id)
	next, err := fn(e.state)
	if err != nil {
		return e.state, err
	}
	e.state = next
	return next, nil
}

// Sweep evicts sessions idle longer than the TTL. Loading sessions are kept
// until their request finishes.
func (s *Sessions) Sweep() int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTTL)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.m {
		if e.state.phase != PhaseLoading && e.seen.Before(cutoff) {
			delete(s.m, id)
			n++
		}
	}
	s.notify()
	return n
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

// Run sweeps every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep()
		}
	}
}
