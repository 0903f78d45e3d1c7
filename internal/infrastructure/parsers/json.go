package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses a JSON array of point objects.
type JSONParser struct{}

// Parse reads JSON from the reader and returns the decoded points.
// Numbers are kept as json.Number so large ids and integers stay exact.
func (p *JSONParser) Parse(r io.Reader) ([]any, error) {
	var points []any

	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	if err := decoder.Decode(&points); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	for i, pt := range points {
		if _, ok := pt.(map[string]any); !ok {
			return nil, fmt.Errorf("element %d: expected an object, got %T", i+1, pt)
		}
	}
	if points == nil {
		points = []any{}
	}
	return points, nil
}
