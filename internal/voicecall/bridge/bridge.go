// Package bridge connects a telephony media stream to a conversational agent
// socket for the lifetime of one call.
package bridge

import (
	"context"
	"fmt"
	"time"

	"voice-bridge/internal/observability"
	"voice-bridge/internal/voicecall/agent"
	"voice-bridge/internal/voicecall/call"
	"voice-bridge/internal/voicecall/frames"
	"voice-bridge/internal/voicecall/socket"

	"github.com/google/uuid"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=bridge.go -destination=mocks_test.go -package=bridge

// Authorizer looks a caller up in the case directory.
type Authorizer interface {
	CheckCaller(ctx context.Context, phone string) (call.Authorization, error)
}

// Upstream opens agent sockets.
type Upstream interface {
	ResolveEndpoint(ctx context.Context) (string, error)
	Dial(ctx context.Context, url string) (socket.FrameConn, error)
}

// Notifier delivers the end-of-call summary.
type Notifier interface {
	Dispatch(ctx context.Context, n call.Notification) error
}

// RecordStore retains call records after the live session is gone.
type RecordStore interface {
	Save(ctx context.Context, rec call.Record) error
}

// EventPublisher receives call lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event call.Event) error
}

// Deps are the collaborators shared by every call the bridge serves.
type Deps struct {
	Authorizer Authorizer
	Upstream   Upstream
	Notifier   Notifier
	Registry   Registry
	Records    RecordStore
	// Publisher is optional.
	Publisher EventPublisher
	Logger    *observability.Logger
}

const (
	defaultHangupMarkup = `<?xml version="1.0" encoding="UTF-8"?><Response><Hangup/></Response>`
	defaultRejectMarkup = `<?xml version="1.0" encoding="UTF-8"?><Response><Say>We could not verify your number. Goodbye.</Say><Hangup/></Response>`
)

// Options tune call timing and the markup sent on hangup or rejection. Zero
// values fall back to defaults.
type Options struct {
	// CloseGrace is how long the telephony socket stays open after the hangup frames.
	CloseGrace    time.Duration
	NotifyTimeout time.Duration
	LookupTimeout time.Duration
	// SaveTimeout bounds each record write made from the call loop.
	SaveTimeout  time.Duration
	HangupMarkup string
	RejectMarkup string
	EventBuffer  int
}

func (o Options) withDefaults() Options {
	if o.CloseGrace <= 0 {
		o.CloseGrace = time.Second
	}
	if o.NotifyTimeout <= 0 {
		o.NotifyTimeout = 10 * time.Second
	}
	if o.LookupTimeout <= 0 {
		o.LookupTimeout = 5 * time.Second
	}
	if o.SaveTimeout <= 0 {
		o.SaveTimeout = 2 * time.Second
	}
	if o.HangupMarkup == "" {
		o.HangupMarkup = defaultHangupMarkup
	}
	if o.RejectMarkup == "" {
		o.RejectMarkup = defaultRejectMarkup
	}
	if o.EventBuffer <= 0 {
		o.EventBuffer = 256
	}
	return o
}

// Bridge runs calls. It is safe for concurrent use; each Serve owns one call.
type Bridge struct {
	deps   Deps
	opts   Options
	logger *observability.Logger
}

// New returns a Bridge. Deps.Publisher and Deps.Records may be nil.
func New(deps Deps, opts Options) *Bridge {
	return &Bridge{
		deps:   deps,
		opts:   opts.withDefaults(),
		logger: deps.Logger,
	}
}

// Registry exposes the live sessions for lookups.
func (b *Bridge) Registry() Registry {
	return b.deps.Registry
}

// Lookup returns a snapshot of the live call with the given call or stream id.
func (b *Bridge) Lookup(id string) (call.Record, bool) {
	s, ok := b.deps.Registry.Find(id)
	if !ok {
		return call.Record{}, false
	}
	return s.Snapshot(), true
}

// Serve runs one call over an accepted telephony socket and returns once that
// socket is closed.
func (b *Bridge) Serve(ctx context.Context, direction call.Direction, telephony socket.FrameConn) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l := &callLoop{
		b:         b,
		ctx:       observability.WithFields(ctx, observability.Field{Key: "direction", Value: direction.String()}),
		direction: direction,
		telephony: telephony,
		events:    make(chan event, b.opts.EventBuffer),
		done:      make(chan struct{}),
	}
	defer close(l.done)

	go l.readTelephony()
	l.run(ctx)
	l.finish()
}

type event interface{}

type (
	telephonyFrame  struct{ data []byte }
	telephonyClosed struct{ err error }
	agentReady      struct{ conn socket.FrameConn }
	agentFailed     struct{ err error }
	agentFrame      struct {
		conn socket.FrameConn
		data []byte
	}
	agentClosed struct {
		conn socket.FrameConn
		code int
	}
)

// callLoop owns a single call. All session mutation happens on the goroutine running run.
type callLoop struct {
	b         *Bridge
	ctx       context.Context
	direction call.Direction
	telephony socket.FrameConn
	session   *Session

	// rejected is set once a start was refused; the socket only waits to close.
	rejected    bool
	rejectTimer *time.Timer

	events chan event
	done   chan struct{}
}

// post hands an event to the loop. It returns false once the loop has exited.
func (l *callLoop) post(ev event) bool {
	select {
	case l.events <- ev:
		return true
	case <-l.done:
		return false
	}
}

func (l *callLoop) readTelephony() {
	for {
		data, err := l.telephony.ReadFrame()
		if err != nil {
			l.post(telephonyClosed{err: err})
			return
		}
		if !l.post(telephonyFrame{data: data}) {
			return
		}
	}
}

func (l *callLoop) readAgent(conn socket.FrameConn) {
	for {
		data, err := conn.ReadFrame()
		if err != nil {
			l.post(agentClosed{conn: conn, code: socket.CloseCode(err)})
			return
		}
		if !l.post(agentFrame{conn: conn, data: data}) {
			return
		}
	}
}

func (l *callLoop) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			l.b.logger.Info(l.ctx, "call context cancelled, closing telephony socket")
			_ = l.telephony.Close()
			l.onTelephonyClosed(ctx.Err())
			return
		case ev := <-l.events:
			switch e := ev.(type) {
			case telephonyFrame:
				l.onTelephonyFrame(e.data)
			case telephonyClosed:
				l.onTelephonyClosed(e.err)
				return
			case agentReady:
				l.onAgentReady(e.conn)
			case agentFailed:
				l.onAgentFailed(e.err)
			case agentFrame:
				l.onAgentFrame(e.conn, e.data)
			case agentClosed:
				l.onAgentClosed(e.conn, e.code)
			}
		}
	}
}

// finish releases anything the loop still holds after it stops.
func (l *callLoop) finish() {
	if l.rejectTimer != nil {
		l.rejectTimer.Stop()
	}
	_ = l.telephony.Close()
	if l.session != nil {
		l.session.stopCloseTimer()
		if conn := l.session.agentConn(); conn != nil {
			_ = conn.Close()
		}
	}
}

func (l *callLoop) onTelephonyFrame(data []byte) {
	ev, err := frames.DecodeTelephony(data)
	if err != nil {
		observability.DecodeError(string(frames.SourceTelephony))
		l.b.logger.Warn(l.ctx, err.Error())
		return
	}

	if l.session != nil && l.session.State() != StateActive {
		if _, ok := ev.(frames.Stop); !ok {
			l.b.logger.Debug(l.ctx, fmt.Sprintf("discarding telephony %T during %s", ev, l.session.State()))
			return
		}
	}

	switch e := ev.(type) {
	case frames.Start:
		l.onStart(e)
	case frames.Media:
		l.onMedia(e)
	case frames.Stop:
		l.onStop()
	case frames.TelephonyUnknown:
		l.b.logger.Debug(l.ctx, fmt.Sprintf("ignoring telephony event %q", e.RawType))
	}
}

func (l *callLoop) onStart(start frames.Start) {
	if l.session != nil || l.rejected {
		l.b.logger.Warn(l.ctx, fmt.Sprintf("duplicate start for stream %s ignored", start.StreamID))
		return
	}
	ctx := observability.WithFields(l.ctx,
		observability.Field{Key: "stream_sid", Value: start.StreamID},
		observability.Field{Key: "call_sid", Value: start.CallID},
	)
	if _, exists := l.b.deps.Registry.Get(start.StreamID); exists {
		l.b.logger.Warn(ctx, "stream already has a live session, start ignored")
		return
	}

	auth := l.authorize(ctx, start.CallerIdentity)
	if l.direction == call.DirectionInbound && !auth.Authorized {
		l.reject(ctx, start)
		return
	}

	s := &Session{
		id:             uuid.New().String(),
		direction:      l.direction,
		streamID:       start.StreamID,
		callID:         start.CallID,
		callerIdentity: start.CallerIdentity,
		record:         auth.Record,
		customParams:   start.CustomParams,
		startedAt:      time.Now().UTC(),
		state:          StateActive,
	}
	if err := l.b.deps.Registry.Put(start.StreamID, s); err != nil {
		l.b.logger.Warn(ctx, fmt.Sprintf("start ignored: %v", err))
		return
	}
	l.session = s
	l.ctx = observability.WithFields(ctx, observability.Field{Key: "session_id", Value: s.id})

	observability.CallStarted(l.direction.String())
	l.saveRecord(s.Snapshot())
	l.publish(call.EventCallStarted)
	l.b.logger.Info(l.ctx, fmt.Sprintf("stream started for %s", start.CallerIdentity))

	initial, err := agent.BuildInitialConfig(agent.SessionParams{
		Direction:      l.direction,
		Record:         auth.Record,
		CallerIdentity: start.CallerIdentity,
		CustomParams:   start.CustomParams,
	})
	if err != nil {
		l.onAgentFailed(err)
		return
	}
	go l.connectAgent(l.ctx, initial)
}

// authorize never fails the call on a lookup error; it reports an unmatched caller instead.
func (l *callLoop) authorize(ctx context.Context, phone string) call.Authorization {
	lookupCtx, cancel := context.WithTimeout(ctx, l.b.opts.LookupTimeout)
	defer cancel()

	auth, err := l.b.deps.Authorizer.CheckCaller(lookupCtx, phone)
	if err != nil {
		l.b.logger.InfoWithError(ctx, "caller lookup failed, treating caller as unmatched", err)
		return call.Authorization{}
	}
	return auth
}

func (l *callLoop) reject(ctx context.Context, start frames.Start) {
	l.rejected = true
	l.b.logger.Info(ctx, fmt.Sprintf("rejecting unauthorized caller %s", start.CallerIdentity))
	observability.CallRejected(l.direction.String())

	if err := l.telephony.WriteJSON(frames.NewTwiML(start.StreamID, l.b.opts.RejectMarkup)); err != nil {
		l.b.logger.Warn(ctx, fmt.Sprintf("failed to send reject directive: %v", err))
	}
	l.rejectTimer = l.scheduleClose()

	l.publishEvent(ctx, call.Event{
		Type:           call.EventCallRejected,
		CallID:         start.CallID,
		StreamID:       start.StreamID,
		Direction:      l.direction,
		CallerIdentity: start.CallerIdentity,
	})
}

// connectAgent runs off the loop so telephony events keep flowing while the
// agent socket is being opened.
func (l *callLoop) connectAgent(ctx context.Context, initial frames.InitiationClientData) {
	signedURL, err := l.b.deps.Upstream.ResolveEndpoint(ctx)
	if err != nil {
		l.post(agentFailed{err: err})
		return
	}
	conn, err := l.b.deps.Upstream.Dial(ctx, signedURL)
	if err != nil {
		l.post(agentFailed{err: err})
		return
	}
	if err := conn.WriteJSON(initial); err != nil {
		_ = conn.Close()
		l.post(agentFailed{err: fmt.Errorf("send initial config: %w", err)})
		return
	}
	if !l.post(agentReady{conn: conn}) {
		_ = conn.Close()
	}
}

func (l *callLoop) onAgentReady(conn socket.FrameConn) {
	if l.session == nil || l.session.State() != StateActive {
		_ = conn.Close()
		return
	}
	l.session.setAgent(conn)
	go l.readAgent(conn)
	l.b.logger.Info(l.ctx, "agent socket connected")
}

func (l *callLoop) onAgentFailed(err error) {
	observability.UpstreamFailure(l.direction.String())
	l.b.logger.Error(l.ctx, "failed to connect agent, call continues without agent audio", err)
}

func (l *callLoop) onMedia(m frames.Media) {
	if l.session == nil {
		return
	}
	conn := l.session.agentConn()
	if conn == nil || !conn.IsOpen() {
		return
	}
	if err := conn.WriteJSON(frames.NewUserAudioChunk(m.Payload)); err != nil {
		l.b.logger.Debug(l.ctx, fmt.Sprintf("failed to forward caller audio: %v", err))
		return
	}
	observability.AudioForwarded("to_agent")
}

func (l *callLoop) onStop() {
	if l.session == nil {
		l.b.logger.Debug(l.ctx, "stop received without a session")
		return
	}
	l.b.logger.Info(l.ctx, "telephony stream stopped")

	if conn := l.session.agentConn(); conn != nil && conn.IsOpen() {
		if err := conn.WriteJSON(frames.NewEndConversation()); err != nil {
			l.b.logger.Warn(l.ctx, fmt.Sprintf("failed to send end_conversation: %v", err))
		}
		_ = conn.Close()
	}
	l.teardown("telephony_stop")
}

func (l *callLoop) onAgentFrame(conn socket.FrameConn, data []byte) {
	if l.session == nil || conn != l.session.agentConn() {
		return
	}
	if l.session.State() != StateActive {
		l.b.logger.Debug(l.ctx, "discarding agent frame during teardown")
		return
	}

	ev, err := frames.DecodeAgent(data)
	if err != nil {
		observability.DecodeError(string(frames.SourceAgent))
		l.b.logger.Warn(l.ctx, err.Error())
		return
	}

	switch e := ev.(type) {
	case frames.AgentSessionMetadata:
		if l.session.setConversationID(e.ConversationID) {
			l.ctx = observability.WithFields(l.ctx, observability.Field{Key: "conversation_id", Value: e.ConversationID})
			l.b.logger.Info(l.ctx, "agent conversation started")
		} else {
			l.b.logger.Info(l.ctx, fmt.Sprintf("ignoring repeated conversation id %s", e.ConversationID))
		}

	case frames.AgentAudio:
		if err := l.telephony.WriteJSON(frames.NewTelephonyMedia(l.session.streamID, e.Payload)); err != nil {
			l.b.logger.Debug(l.ctx, fmt.Sprintf("failed to play agent audio: %v", err))
			return
		}
		observability.AudioForwarded("to_telephony")

	case frames.AgentInterruption:
		l.sendTelephony(frames.NewClear(l.session.streamID))

	case frames.AgentPing:
		if err := conn.WriteJSON(frames.NewPong(e.EventID)); err != nil {
			l.b.logger.Warn(l.ctx, fmt.Sprintf("failed to answer agent ping: %v", err))
		}

	case frames.AgentEndOfConversation:
		l.b.logger.Info(l.ctx, "agent ended the conversation")
		l.teardown("agent_end")

	case frames.AgentTranscript:
		l.session.appendTranscript(e.Role, e.Text)

	case frames.AgentUnknown:
		l.b.logger.Debug(l.ctx, fmt.Sprintf("ignoring agent event %q", e.RawType))
	}
}

func (l *callLoop) onAgentClosed(conn socket.FrameConn, code int) {
	if l.session == nil || conn != l.session.agentConn() {
		return
	}
	if l.session.State() != StateActive {
		return
	}
	if code == socket.CodeNormalClosure || code == socket.CodeNoStatus {
		l.b.logger.Info(l.ctx, fmt.Sprintf("agent socket closed cleanly (%d)", code))
		l.teardown("agent_closed")
		return
	}
	l.b.logger.Warn(l.ctx, fmt.Sprintf("agent socket closed abnormally (%d), waiting for telephony to end the call", code))
}

func (l *callLoop) onTelephonyClosed(err error) {
	if l.rejectTimer != nil {
		l.rejectTimer.Stop()
	}
	if l.session == nil {
		l.b.logger.Debug(l.ctx, "telephony socket closed before a session started")
		return
	}
	l.session.stopCloseTimer()
	if conn := l.session.agentConn(); conn != nil && conn.IsOpen() {
		_ = conn.Close()
	}
	l.b.deps.Registry.Remove(l.session.streamID)

	wasActive := l.session.State() == StateActive
	l.session.advance(StateClosed)
	if wasActive {
		l.b.logger.Info(l.ctx, fmt.Sprintf("telephony socket closed without stop: %v", err))
		observability.CallEnded(l.direction.String())
		rec := l.session.Snapshot()
		rec.Status = call.StatusAbandoned
		l.saveRecord(rec)
		l.publish(call.EventCallAbandoned)
	}
}

// teardown ends the call on both sides. Only the first call does anything.
func (l *callLoop) teardown(reason string) {
	if !l.session.advance(StateDisconnecting) {
		l.b.logger.Debug(l.ctx, "teardown already in progress")
		return
	}
	l.b.logger.Info(l.ctx, fmt.Sprintf("tearing down call (%s)", reason))

	if l.session.ConversationID() != "" {
		notifyCtx, cancel := context.WithTimeout(l.ctx, l.b.opts.NotifyTimeout)
		err := l.b.deps.Notifier.Dispatch(notifyCtx, l.session.notification())
		cancel()
		observability.NotificationResult(err == nil)
		if err != nil {
			l.b.logger.Error(l.ctx, "call notification failed", err)
		}
	}

	for _, f := range frames.HangupSequence(l.session.streamID, l.b.opts.HangupMarkup) {
		l.sendTelephony(f)
	}
	l.session.setCloseTimer(l.scheduleClose())

	l.b.deps.Registry.Remove(l.session.streamID)
	l.saveRecord(l.session.Snapshot())
	l.publish(call.EventCallCompleted)
	observability.CallEnded(l.direction.String())
	observability.Teardown(l.direction.String(), reason)
}

// scheduleClose closes the telephony socket after the grace period unless it already closed.
func (l *callLoop) scheduleClose() *time.Timer {
	telephony := l.telephony
	return time.AfterFunc(l.b.opts.CloseGrace, func() {
		if telephony.IsOpen() {
			_ = telephony.Close()
		}
	})
}

func (l *callLoop) sendTelephony(f frames.TelephonyControl) {
	if err := l.telephony.WriteJSON(f); err != nil {
		l.b.logger.Debug(l.ctx, fmt.Sprintf("failed to send %s to telephony: %v", f.Event, err))
	}
}

func (l *callLoop) saveRecord(rec call.Record) {
	if l.b.deps.Records == nil {
		return
	}
	ctx, cancel := context.WithTimeout(l.ctx, l.b.opts.SaveTimeout)
	defer cancel()
	if err := l.b.deps.Records.Save(ctx, rec); err != nil {
		l.b.logger.Error(l.ctx, "failed to save call record", err)
	}
}

func (l *callLoop) publish(t call.EventType) {
	rec := l.session.Snapshot()
	l.publishEvent(l.ctx, call.Event{
		Type:           t,
		CallID:         rec.CallID,
		StreamID:       rec.StreamID,
		Direction:      rec.Direction,
		CallerIdentity: rec.CallerIdentity,
		ConversationID: rec.ConversationID,
	})
}

func (l *callLoop) publishEvent(ctx context.Context, ev call.Event) {
	if l.b.deps.Publisher == nil {
		return
	}
	ev.ID = uuid.New().String()
	ev.Timestamp = time.Now().UTC()
	if err := l.b.deps.Publisher.Publish(ctx, ev); err != nil {
		l.b.logger.Warn(ctx, fmt.Sprintf("failed to publish %s: %v", ev.Type, err))
	}
}
