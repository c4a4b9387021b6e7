package persist

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/spaghetto/manager/internal/common"
	"github.com/spaghetto/manager/internal/restaurant"
)

// Marshal serializes a restaurant snapshot to the JSON save document.
func Marshal(st restaurant.State) ([]byte, error) {
	data, err := json.MarshalIndent(FromState(st), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal save document: %w", err)
	}
	return data, nil
}

// Wrap applies the reversible text-safe encoding layer to a document.
func Wrap(data []byte) []byte {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(data)))
	base64.StdEncoding.Encode(out, data)
	return out
}

// Unmarshal hydrates a snapshot from a save document, accepting either
// the raw JSON form or the base64-wrapped form without distinguishing
// the two. Anything else fails atomically with ErrCorruptSave.
func Unmarshal(data []byte) (restaurant.State, error) {
	raw := bytes.TrimSpace(data)

	if len(raw) == 0 {
		return restaurant.State{}, fmt.Errorf("%w: empty document", common.ErrCorruptSave)
	}

	if raw[0] != '{' {
		decoded := make([]byte, base64.StdEncoding.DecodedLen(len(raw)))
		n, err := base64.StdEncoding.Decode(decoded, raw)
		if err != nil {
			return restaurant.State{}, fmt.Errorf("%w: not JSON and not base64: %v", common.ErrCorruptSave, err)
		}
		raw = decoded[:n]
	}

	var doc Document
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return restaurant.State{}, fmt.Errorf("%w: %v", common.ErrCorruptSave, err)
	}

	return doc.ToState(), nil
}
