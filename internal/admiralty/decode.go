package admiralty

import (
	"bytes"
	"encoding/json"
)

// Admiralty payloads are decoded field by field. A badly typed value reads
// as missing.

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// rawString returns raw as a string, ok false if absent, null or not a string
func rawString(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// rawFloat returns raw as a number, ok false if absent, null or not numeric
func rawFloat(raw json.RawMessage) (float64, bool) {
	if isNull(raw) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return f, true
}
