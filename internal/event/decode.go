package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns the payload of an event as T. Payloads published in
// process are already typed (by value or pointer); payloads read back from
// the dead-letter file arrive as generic maps or raw JSON.
func DecodePayload[T any](input any) (T, error) {
	var out T
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return out, fmt.Errorf(ErrMsgDecodePayload, fmt.Sprintf("%T", out), "nil pointer")
		}
		return *v, nil
	case json.RawMessage:
		if err := json.Unmarshal(v, &out); err != nil {
			return out, fmt.Errorf("decode %T payload: %w", out, err)
		}
		return out, nil
	case nil:
		return out, fmt.Errorf(ErrMsgDecodePayload, fmt.Sprintf("%T", out), "no payload")
	}

	data, err := json.Marshal(input)
	if err != nil {
		return out, fmt.Errorf("decode %T payload: %w", out, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode %T payload: %w", out, err)
	}
	return out, nil
}
