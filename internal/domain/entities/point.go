// Package entities contains core domain data structures.
package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// TextPayloadKey is the reserved payload key that receives a point's source text.
const TextPayloadKey = "text"

// PointID identifies a point within a collection. Exactly one of Num or UUID is meaningful:
// the backend accepts unsigned integers or UUID strings.
type PointID struct {
	Num    uint64
	UUID   string
	IsUUID bool
}

// NewNumericID returns an integer point id.
func NewNumericID(n uint64) PointID {
	return PointID{Num: n}
}

// NewUUIDID returns a string point id.
func NewUUIDID(s string) PointID {
	return PointID{UUID: s, IsUUID: true}
}

// String renders the id the way callers supplied it.
func (id PointID) String() string {
	if id.IsUUID {
		return id.UUID
	}
	return strconv.FormatUint(id.Num, 10)
}

// MarshalJSON encodes numeric ids as JSON numbers and uuid ids as strings.
func (id PointID) MarshalJSON() ([]byte, error) {
	if id.IsUUID {
		return json.Marshal(id.UUID)
	}
	return json.Marshal(id.Num)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (id *PointID) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParsePointID(raw)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Point is one record submitted for write. A point needs either Vector or Text.
type Point struct {
	ID      PointID        `json:"id"`
	Vector  []float32      `json:"vector,omitempty"`
	Text    *string        `json:"text,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// HasVector reports whether the point carries a vector.
func (p Point) HasVector() bool {
	return p.Vector != nil
}

// HasText reports whether the point carries source text.
func (p Point) HasText() bool {
	return p.Text != nil
}

// RetrievedPoint is a point returned by an id lookup.
type RetrievedPoint struct {
	ID      PointID        `json:"id"`
	Payload map[string]any `json:"payload"`
	Vector  any            `json:"vector"`
}

// ScoredPoint is a nearest-neighbor search hit.
type ScoredPoint struct {
	ID      PointID        `json:"id"`
	Score   float32        `json:"score"`
	Payload map[string]any `json:"payload"`
	Version uint64         `json:"version"`
}

// String implements fmt.Stringer for log output.
func (p ScoredPoint) String() string {
	return fmt.Sprintf("%s (%.4f)", p.ID, p.Score)
}
