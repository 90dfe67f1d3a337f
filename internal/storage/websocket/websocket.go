package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/swinglab/swingcheck/pkg/core"
	"github.com/swinglab/swingcheck/pkg/streaming"
)

// Config holds WebSocket backend configuration.
type Config struct {
	URL    string
	Secret string
}

// Backend streams swing data over WebSocket to the viewer server.
// It implements storage.Backend but not storage.Exportable.
type Backend struct {
	conn *connection
	cfg  Config
}

// New creates a new WebSocket storage backend.
func New(cfg Config, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		conn: newConnection(logger),
		cfg:  cfg,
	}
}

// Init connects to the WebSocket server.
func (b *Backend) Init() error {
	return b.conn.dial(b.cfg.URL, b.cfg.Secret)
}

// Close disconnects from the WebSocket server.
func (b *Backend) Close() error {
	return b.conn.close()
}

// marshalEnvelope builds a JSON-encoded Envelope from a message type and payload.
func marshalEnvelope(msgType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", msgType, err)
	}
	env := streaming.Envelope{Type: msgType, Payload: raw}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal %s envelope: %w", msgType, err)
	}
	return data, nil
}

// sendEnvelope marshals the payload into an Envelope and pushes it
// to the write loop (fire-and-forget).
func (b *Backend) sendEnvelope(msgType string, payload any) error {
	data, err := marshalEnvelope(msgType, payload)
	if err != nil {
		return err
	}
	b.conn.send(data)
	return nil
}

// sendEnvelopeAndWait marshals the payload and waits for a server ack.
func (b *Backend) sendEnvelopeAndWait(msgType string, payload any) error {
	data, err := marshalEnvelope(msgType, payload)
	if err != nil {
		return err
	}
	return b.conn.sendAndWait(data, msgType, ackTimeout)
}

// StartSwing sends swing metadata and reference geometry and waits for
// server ack.
func (b *Backend) StartSwing(s *core.Swing, ref core.Reference) error {
	data, err := marshalEnvelope(streaming.TypeStartSwing, streaming.StartSwingPayload{Swing: s, Reference: ref})
	if err != nil {
		return err
	}

	// Cache for reconnect replay.
	b.conn.mu.Lock()
	b.conn.cachedStartMsg = data
	b.conn.mu.Unlock()

	return b.conn.sendAndWait(data, streaming.TypeStartSwing, ackTimeout)
}

// EndSwing sends end_swing and waits for server ack.
func (b *Backend) EndSwing() error {
	err := b.sendEnvelopeAndWait(streaming.TypeEndSwing, nil)

	// Clear cached state regardless of error.
	b.conn.mu.Lock()
	b.conn.cachedStartMsg = nil
	b.conn.mu.Unlock()

	return err
}

// RecordFrame streams an overlay frame (fire-and-forget).
func (b *Backend) RecordFrame(f *core.OverlayFrame) error {
	return b.sendEnvelope(streaming.TypeOverlayFrame, f)
}

// RecordSummary streams the swing summary and waits for server ack so the
// caller knows the result landed before shutdown.
func (b *Backend) RecordSummary(sum *core.SwingSummary) error {
	return b.sendEnvelopeAndWait(streaming.TypeSwingSummary, sum)
}
