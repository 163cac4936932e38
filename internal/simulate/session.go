// File: internal/simulate/session.go

// Package simulate maintains the multi-turn counterfactual chat session. The
// session, not the transport, owns conversation memory: turns are held in
// memory for the session's lifetime, strictly ordered by submission, and
// never persisted.
package simulate

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/nachiketsane1912/habit-impact-coach/api/schemas"
	"github.com/nachiketsane1912/habit-impact-coach/internal/insight"
)

// Greeting opens every session as the first model turn.
const Greeting = "I'm your Counterfactual Simulator. Ask me 'What if' questions based on your history. e.g., 'What if I stopped drinking coffee after 2 PM?'"

// noAnswerText stands in for an empty model reply.
const noAnswerText = "I couldn't simulate that scenario."

// errorTurnText is the fixed error turn appended when a round-trip fails.
const errorTurnText = "Error connecting to the simulation engine. Please check your API key."

// DefaultContextWindow is how many recent logs ground the session.
const DefaultContextWindow = 7

var (
	// ErrEmptyQuery rejects blank submissions before any turn is appended.
	ErrEmptyQuery = errors.New("query text must not be empty")
	// ErrSessionBusy rejects submission while a turn is outstanding; one
	// request per session at a time.
	ErrSessionBusy = errors.New("a simulation turn is already awaiting a response")
)

// State tracks the session's position in its two-state machine.
type State int

const (
	StateIdle State = iota
	StateAwaitingResponse
)

// Session is one counterfactual dialogue grounded in a fixed snapshot of
// recent history. Abandoning a session is simply dropping it; nothing is
// completed or persisted on the way out.
type Session struct {
	mu          sync.Mutex
	engine      schemas.ReasoningEngine
	contextLogs []schemas.DailyLog
	messages    []schemas.SimulationMessage
	state       State
	logger      *zap.Logger
}

// NewSession snapshots the context window once (the most recent entries by
// date) and opens with the fixed greeting turn.
func NewSession(engine schemas.ReasoningEngine, logs []schemas.DailyLog, contextWindow int, logger *zap.Logger) *Session {
	if contextWindow <= 0 {
		contextWindow = DefaultContextWindow
	}
	return &Session{
		engine:      engine,
		contextLogs: insight.Window(logs, contextWindow),
		messages:    []schemas.SimulationMessage{{Role: schemas.RoleModel, Text: Greeting}},
		state:       StateIdle,
		logger:      logger.Named("simulate"),
	}
}

// Ask submits one user query. The user turn is appended optimistically before
// the round-trip; on success the model reply follows, on failure the fixed
// error turn follows instead. The user turn is never rolled back. The
// returned message is the appended model turn.
func (s *Session) Ask(ctx context.Context, text string) (schemas.SimulationMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return schemas.SimulationMessage{}, ErrEmptyQuery
	}

	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return schemas.SimulationMessage{}, ErrSessionBusy
	}
	s.state = StateAwaitingResponse
	s.messages = append(s.messages, schemas.SimulationMessage{Role: schemas.RoleUser, Text: text})
	// Snapshot the prior turn sequence for the outgoing request.
	history := make([]schemas.SimulationMessage, len(s.messages)-1)
	copy(history, s.messages[:len(s.messages)-1])
	contextLogs := s.contextLogs
	s.mu.Unlock()

	reply, err := s.engine.Converse(ctx, contextLogs, history, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle

	var turn schemas.SimulationMessage
	switch {
	case err != nil:
		s.logger.Warn("Simulation turn failed", zap.Error(err))
		turn = schemas.SimulationMessage{Role: schemas.RoleModel, Text: errorTurnText}
	case reply == "":
		turn = schemas.SimulationMessage{Role: schemas.RoleModel, Text: noAnswerText}
	default:
		turn = schemas.SimulationMessage{Role: schemas.RoleModel, Text: reply}
	}
	s.messages = append(s.messages, turn)
	return turn, nil
}

// Messages returns a copy of the ordered turn sequence.
func (s *Session) Messages() []schemas.SimulationMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]schemas.SimulationMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Busy reports whether a turn is currently outstanding; callers disable
// input while true.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateAwaitingResponse
}
