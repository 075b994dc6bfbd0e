package pipeline

import (
	"strings"
	"testing"
)

func TestLifecycle_HappyPath(t *testing.T) {
	l := NewLifecycle("req-1")

	if l.State() != StateReceiving {
		t.Fatalf("expected initial state RECEIVING, got %s", l.State())
	}

	stages := []State{StateIngested, StateTranscribing, StateTranscribed, StateCompleting, StateSucceeded}
	for _, s := range stages {
		if err := l.Advance(s); err != nil {
			t.Fatalf("advance to %s: %v", s, err)
		}
	}

	if !l.State().IsTerminal() {
		t.Error("expected terminal state after SUCCEEDED")
	}
}

func TestLifecycle_FailIsTerminal(t *testing.T) {
	l := NewLifecycle("req-1")

	if err := l.Advance(StateIngested); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !l.Fail() {
		t.Fatal("expected Fail to succeed from non-terminal state")
	}
	if !l.Failed() {
		t.Error("expected Failed() to be true")
	}

	// No later stage may execute after failure.
	if err := l.Advance(StateTranscribing); err == nil {
		t.Error("expected error advancing out of FAILED")
	}
	if l.Fail() {
		t.Error("expected second Fail to report already terminal")
	}
}

func TestLifecycle_NoBackwardTransition(t *testing.T) {
	l := NewLifecycle("req-1")

	if err := l.Advance(StateTranscribing); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := l.Advance(StateIngested); err == nil {
		t.Error("expected error on backward transition")
	}
}

func TestLifecycle_CannotAdvanceToFailed(t *testing.T) {
	l := NewLifecycle("req-1")

	if err := l.Advance(StateFailed); err == nil {
		t.Error("expected error advancing directly to FAILED; use Fail()")
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateReceiving, "RECEIVING"},
		{StateIngested, "INGESTED"},
		{StateTranscribing, "TRANSCRIBING"},
		{StateTranscribed, "TRANSCRIBED"},
		{StateCompleting, "COMPLETING"},
		{StateSucceeded, "SUCCEEDED"},
		{StateFailed, "FAILED"},
		{State(42), "UNKNOWN(42)"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %s, want %s", tt.state, got, tt.expected)
		}
	}
}

func TestGenerator_UniqueIds(t *testing.T) {
	g := NewGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := g.Next()
		if !strings.HasPrefix(id, "req-") {
			t.Fatalf("expected req- prefix, got %s", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
