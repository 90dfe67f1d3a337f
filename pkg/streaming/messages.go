package streaming

import (
	"encoding/json"

	"github.com/swinglab/swingcheck/pkg/core"
)

// Message type constants matching the streaming protocol.
const (
	TypeStartSwing   = "start_swing"
	TypeEndSwing     = "end_swing"
	TypeOverlayFrame = "overlay_frame"
	TypeSwingSummary = "swing_summary"
)

// Envelope wraps all messages sent over the WebSocket.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AckMessage is the server's acknowledgement response.
type AckMessage struct {
	Type string `json:"type"` // always "ack"
	For  string `json:"for"`  // the message type being acknowledged
}

// StartSwingPayload carries the swing metadata and the fixed reference
// geometry the viewer draws every overlay against.
type StartSwingPayload struct {
	Swing     *core.Swing    `json:"swing"`
	Reference core.Reference `json:"reference"`
}
