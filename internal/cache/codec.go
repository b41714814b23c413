package cache

import "encoding/json"

// Codec serializes cache values. Implementations must round-trip values
// built from maps, slices, strings, numbers and booleans losslessly.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte) (any, error)
	Name() string
}

// JSONCodec stores values as JSON documents. Decoded values follow the JSON
// value model: objects come back as map[string]any, arrays as []any and
// numbers as float64.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (JSONCodec) Unmarshal(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (JSONCodec) Name() string { return "json" }
