package stream

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SSEDone is the conventional terminal frame for event-stream transports.
const SSEDone = "data: [DONE]\n\n"

// FormatSSE frames a payload as one server-sent event. Strings and byte
// slices pass through as the event body; anything else is JSON-encoded.
// Multi-line bodies become one data: line per line, as the wire format
// requires.
func FormatSSE(payload any) (string, error) {
	var body string
	switch v := payload.(type) {
	case string:
		body = v
	case []byte:
		body = string(v)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("encode event payload: %w", err)
		}
		body = string(raw)
	}

	var b strings.Builder
	for _, line := range strings.Split(body, "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String(), nil
}
