package call

import (
	"encoding/json"
	"strings"
	"time"
)

// Direction distinguishes calls the caller dialed in from calls we placed.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

func (d Direction) String() string { return string(d) }

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == DirectionInbound || d == DirectionOutbound
}

// ContextRecord is the caller-specific case data returned by the directory lookup.
type ContextRecord struct {
	DebtorID string `json:"debtor_id,omitempty"`
	Debtor   Debtor `json:"debtor"`
	Case     Case   `json:"case"`
}

type Debtor struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Language  string `json:"language,omitempty"`
}

// Case amounts are integers in the smallest currency unit.
type Case struct {
	CaseNumber      string      `json:"case_number"`
	DebtAmount      json.Number `json:"debt_amount"`
	Currency        string      `json:"currency"`
	CaseDescription string      `json:"case_description"`
}

// FullName joins first and last name, tolerating either being empty.
func (d Debtor) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// FormattedAmount renders the amount with its currency, e.g. "1000 PLN".
func (c Case) FormattedAmount() string {
	return strings.TrimSpace(c.DebtAmount.String() + " " + c.Currency)
}

// Authorization is the outcome of a caller directory lookup.
type Authorization struct {
	Authorized bool
	Record     *ContextRecord
}

// Notification is the call-summary payload delivered to the notification webhook.
type Notification struct {
	ConversationID string    `json:"conversation_id"`
	PhoneNumber    string    `json:"phone_number"`
	CallSID        string    `json:"call_sid"`
	Direction      Direction `json:"direction"`
}

// Status of a retained call record
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

// TranscriptLine is one utterance captured from the agent socket.
type TranscriptLine struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Record is the retained summary of a call, served by the transcript lookup.
type Record struct {
	CallID         string           `json:"call_id"`
	StreamID       string           `json:"stream_id"`
	Direction      Direction        `json:"direction"`
	CallerIdentity string           `json:"caller_identity"`
	ConversationID string           `json:"conversation_id,omitempty"`
	Status         Status           `json:"status"`
	StartedAt      time.Time        `json:"started_at"`
	EndedAt        *time.Time       `json:"ended_at,omitempty"`
	Transcript     []TranscriptLine `json:"transcript,omitempty"`
}

// Key returns the identifier the record is retained under: the provider call
// id when known, otherwise the stream id.
func (r Record) Key() string {
	if r.CallID != "" {
		return r.CallID
	}
	return r.StreamID
}

// EventType names a call lifecycle event.
type EventType string

const (
	EventCallStarted   EventType = "call.started"
	EventCallRejected  EventType = "call.rejected"
	EventCallCompleted EventType = "call.completed"
	EventCallAbandoned EventType = "call.abandoned"
)

// Event is a call lifecycle notification published for downstream consumers.
type Event struct {
	ID             string    `json:"id"`
	Type           EventType `json:"type"`
	CallID         string    `json:"call_id,omitempty"`
	StreamID       string    `json:"stream_id"`
	Direction      Direction `json:"direction"`
	CallerIdentity string    `json:"caller_identity"`
	ConversationID string    `json:"conversation_id,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Key partitions events so one call's events stay ordered.
func (e Event) Key() string {
	if e.CallID != "" {
		return e.CallID
	}
	return e.StreamID
}
