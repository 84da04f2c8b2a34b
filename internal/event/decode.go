package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload converts an event payload into T. In-process events carry the typed
// struct (or a pointer to it); events read back from JSON carry a generic map.
func DecodePayload[T any](payload any) (T, error) {
	var out T
	switch v := payload.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return out, fmt.Errorf("decode %T: nil payload", out)
		}
		return *v, nil
	case json.RawMessage:
		if err := json.Unmarshal(v, &out); err != nil {
			return out, fmt.Errorf("decode %T: %w", out, err)
		}
		return out, nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("decode %T: %w", out, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode %T: %w", out, err)
	}
	return out, nil
}
