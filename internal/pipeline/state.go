// Package pipeline provides request ID generation and per-request
// lifecycle tracking for the chat and audio flows.
package pipeline

import (
	"fmt"
	"sync"
)

// State represents the lifecycle state of a request moving through the
// ingest → transcribe → complete pipeline.
type State int

const (
	// StateReceiving - the request body is being consumed.
	StateReceiving State = iota
	// StateIngested - the upload was buffered and validated.
	StateIngested
	// StateTranscribing - the transcription call is in flight.
	StateTranscribing
	// StateTranscribed - a non-empty transcript was produced.
	StateTranscribed
	// StateCompleting - the completion call is in flight.
	StateCompleting
	// StateSucceeded - terminal, response written.
	StateSucceeded
	// StateFailed - terminal, no later stage may execute.
	StateFailed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateReceiving:
		return "RECEIVING"
	case StateIngested:
		return "INGESTED"
	case StateTranscribing:
		return "TRANSCRIBING"
	case StateTranscribed:
		return "TRANSCRIBED"
	case StateCompleting:
		return "COMPLETING"
	case StateSucceeded:
		return "SUCCEEDED"
	case StateFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", s)
	}
}

// IsTerminal returns true if the state is terminal.
func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Lifecycle tracks the linear stage progression of a single request.
// Thread-safe for concurrent access.
//
// Transitions advance strictly forward; Fail() is reachable from any
// non-terminal state and is terminal. Advancing out of a terminal state
// is an error, which guards against a failed stage leaking into a later
// downstream call.
type Lifecycle struct {
	mu        sync.RWMutex
	requestId string
	state     State
}

// NewLifecycle creates a lifecycle in RECEIVING state.
func NewLifecycle(requestId string) *Lifecycle {
	return &Lifecycle{requestId: requestId, state: StateReceiving}
}

// RequestId returns the request ID.
func (l *Lifecycle) RequestId() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.requestId
}

// State returns the current state.
func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Advance moves the lifecycle to the next stage. Returns an error if the
// current state is terminal or if next is not strictly after the current
// state.
func (l *Lifecycle) Advance(next State) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state.IsTerminal() {
		return fmt.Errorf("request %s already terminal in state %s", l.requestId, l.state)
	}
	if next <= l.state || next == StateFailed {
		return fmt.Errorf("invalid transition %s -> %s", l.state, next)
	}
	l.state = next
	return nil
}

// Fail moves the lifecycle to FAILED. Returns false if already terminal.
func (l *Lifecycle) Fail() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state.IsTerminal() {
		return false
	}
	l.state = StateFailed
	return true
}

// Failed returns true if the request failed.
func (l *Lifecycle) Failed() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state == StateFailed
}
