package form

import (
	"errors"
	"sync"
)

// ErrBusy is returned when a session already has a submission in flight.
var ErrBusy = errors.New("analysis already in progress")

type State int

const (
	Idle State = iota
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// submissions allows one in-flight submission per session. Finished sessions
// are forgotten, which is the same as being Idle.
type submissions struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

func newSubmissions() *submissions {
	return &submissions{inflight: make(map[string]struct{})}
}

// Begin moves a session to Submitting.
func (s *submissions) Begin(session string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[session]; busy {
		return ErrBusy
	}
	s.inflight[session] = struct{}{}
	return nil
}

// Finish records the terminal state and returns the session to Idle.
func (s *submissions) Finish(session string, failed bool) State {
	s.mu.Lock()
	delete(s.inflight, session)
	s.mu.Unlock()
	if failed {
		return Failed
	}
	return Succeeded
}

func (s *submissions) State(session string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[session]; busy {
		return Submitting
	}
	return Idle
}

// Len is the number of sessions currently Submitting.
func (s *submissions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inflight)
}
