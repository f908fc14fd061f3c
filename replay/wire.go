package replay

import "encoding/json"

// WireSessionTape is the camelCase shape handed to viewers. Each event's
// payload is pre-marshaled so a consumer can route on type without knowing
// every record shape.
type WireSessionTape struct {
	TapeVersion int             `json:"tapeVersion"`
	SessionID   string          `json:"sessionId"`
	Events      []WireTapeEvent `json:"events"`
}

type WireTapeEvent struct {
	Type    string          `json:"type"`
	Seq     uint64          `json:"seq"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func ToWireSessionTape(tape *SessionTape) *WireSessionTape {
	if tape == nil {
		return nil
	}
	out := &WireSessionTape{
		TapeVersion: tape.TapeVersion,
		SessionID:   tape.SessionID,
		Events:      make([]WireTapeEvent, 0, len(tape.Events)),
	}
	for _, e := range tape.Events {
		var payload json.RawMessage
		switch {
		case e.Start != nil:
			payload, _ = json.Marshal(e.Start)
		case e.Round != nil:
			payload, _ = json.Marshal(e.Round)
		case e.End != nil:
			payload, _ = json.Marshal(e.End)
		}
		out.Events = append(out.Events, WireTapeEvent{
			Type:    e.Type,
			Seq:     e.Seq,
			Payload: payload,
		})
	}
	return out
}
