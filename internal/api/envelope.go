package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

const unknownErrorMessage = "unknown error occurred"

// Envelope is the response convention of the storefront API. The convention
// is not always honored consistently: message may be a string, an array of
// strings, an array of anything, or absent entirely.
type Envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Error   bool            `json:"error"`
	Message json.RawMessage `json:"message"`
}

// UserMessage flattens the envelope message into a single user-facing
// string: arrays are joined with spaces, non-strings are stringified and
// absent messages map to a generic unknown-error text.
func (e Envelope) UserMessage() string {
	if len(e.Message) == 0 {
		return unknownErrorMessage
	}
	var v interface{}
	if err := json.Unmarshal(e.Message, &v); err != nil {
		return unknownErrorMessage
	}
	return flattenMessage(v)
}

func flattenMessage(v interface{}) string {
	switch m := v.(type) {
	case nil:
		return unknownErrorMessage
	case string:
		return m
	case []interface{}:
		parts := make([]string, 0, len(m))
		for _, item := range m {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
				continue
			}
			parts = append(parts, fmt.Sprint(item))
		}
		if len(parts) == 0 {
			return unknownErrorMessage
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(m)
	}
}
