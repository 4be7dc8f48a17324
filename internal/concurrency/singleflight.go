package concurrency

import (
	"sync"
)

// SingleFlight collapses overlapping calls into one execution: callers
// that arrive while a call is already running wait for it and share its
// result instead of starting another one.
type SingleFlight struct {
	mu      sync.Mutex
	pending *pendingCall
}

type pendingCall struct {
	done chan struct{}
	err  error
}

func (s *SingleFlight) Do(fn func() error) error {

	s.mu.Lock()
	if call := s.pending; call != nil {
		s.mu.Unlock()
		<-call.done
		return call.err
	}

	call := &pendingCall{done: make(chan struct{})}
	s.pending = call
	s.mu.Unlock()

	call.err = fn()

	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()

	close(call.done)

	return call.err
}
