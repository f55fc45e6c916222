package utils

import (
	"encoding/json"
	"fmt"
)

// AnyToStruct converts an opaque payload (typically a decoded JSON map) into a
// typed struct via a JSON round trip.
func AnyToStruct[T any](value any) (*T, error) {
	var out T

	switch typed := value.(type) {
	case nil:
		return &out, nil
	case T:
		out = typed
		return &out, nil
	case *T:
		if typed != nil {
			out = *typed
		}
		return &out, nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}

	return &out, nil
}
