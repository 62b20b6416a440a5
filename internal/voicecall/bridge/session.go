package bridge

import (
	"sync"
	"time"

	"voice-bridge/internal/voicecall/call"
	"voice-bridge/internal/voicecall/socket"
)

// State is the teardown progress of a session. It only moves forward.
type State int32

const (
	StateActive State = iota
	StateDisconnecting
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateDisconnecting:
		return "disconnecting"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session is the state of one bridged call. It is mutated only by the call's
// event loop; other goroutines read it through Snapshot and the accessors.
type Session struct {
	mu sync.RWMutex

	id             string
	direction      call.Direction
	streamID       string
	callID         string
	callerIdentity string
	conversationID string
	record         *call.ContextRecord
	customParams   map[string]string
	startedAt      time.Time
	endedAt        *time.Time
	state          State
	transcript     []call.TranscriptLine

	agent      socket.FrameConn
	closeTimer *time.Timer
}

func (s *Session) ID() string { return s.id }

func (s *Session) StreamID() string { return s.streamID }

func (s *Session) CallID() string { return s.callID }

func (s *Session) Direction() call.Direction { return s.direction }

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) ConversationID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conversationID
}

// AgentConnected reports whether the agent socket is attached and open.
func (s *Session) AgentConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agent != nil && s.agent.IsOpen()
}

// advance moves the session to a later state. It returns false, leaving the
// state untouched, if to is not ahead of the current state.
func (s *Session) advance(to State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if to <= s.state {
		return false
	}
	s.state = to
	if to >= StateDisconnecting && s.endedAt == nil {
		now := time.Now().UTC()
		s.endedAt = &now
	}
	return true
}

// setConversationID records the agent conversation id. Only the first value sticks.
func (s *Session) setConversationID(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conversationID != "" {
		return false
	}
	s.conversationID = id
	return true
}

func (s *Session) appendTranscript(role, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, call.TranscriptLine{Role: role, Text: text, At: time.Now().UTC()})
}

func (s *Session) setAgent(conn socket.FrameConn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agent = conn
}

func (s *Session) agentConn() socket.FrameConn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agent
}

func (s *Session) setCloseTimer(t *time.Timer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeTimer = t
}

func (s *Session) stopCloseTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closeTimer != nil {
		s.closeTimer.Stop()
	}
}

// Snapshot copies the session into a retained record with the given status.
func (s *Session) Snapshot() call.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := call.StatusActive
	if s.state != StateActive {
		status = call.StatusCompleted
	}
	return call.Record{
		CallID:         s.callID,
		StreamID:       s.streamID,
		Direction:      s.direction,
		CallerIdentity: s.callerIdentity,
		ConversationID: s.conversationID,
		Status:         status,
		StartedAt:      s.startedAt,
		EndedAt:        s.endedAt,
		Transcript:     append([]call.TranscriptLine(nil), s.transcript...),
	}
}

func (s *Session) notification() call.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	callSID := s.callID
	if callSID == "" {
		callSID = s.streamID
	}
	return call.Notification{
		ConversationID: s.conversationID,
		PhoneNumber:    s.callerIdentity,
		CallSID:        callSID,
		Direction:      s.direction,
	}
}
