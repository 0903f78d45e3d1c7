package parsers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// Reserved CSV columns. Every other column becomes a string payload field.
const (
	columnID     = "id"
	columnText   = "text"
	columnVector = "vector"
)

// CSVParser parses points from CSV format.
type CSVParser struct{}

// Parse reads CSV from the reader and returns point objects.
// Required column: id. Optional: text, vector (a JSON array of numbers).
func (p *CSVParser) Parse(r io.Reader) ([]any, error) {
	reader := csv.NewReader(r)

	header, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, header)
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) ([]string, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	seen := make(map[string]bool, len(header))
	for _, col := range header {
		if seen[col] {
			return nil, fmt.Errorf("duplicate column: %s", col)
		}
		seen[col] = true
	}
	if !seen[columnID] {
		return nil, fmt.Errorf("missing required column: %s", columnID)
	}

	return header, nil
}

// readRecords reads all data rows and converts them to point objects.
func (p *CSVParser) readRecords(reader *csv.Reader, header []string) ([]any, error) {
	points := []any{}
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		point, err := p.parseRecord(record, header, lineNum)
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}

	return points, nil
}

// parseRecord converts a CSV record to a point object. Empty cells are
// omitted.
func (p *CSVParser) parseRecord(record, header []string, lineNum int) (map[string]any, error) {
	point := map[string]any{}
	payload := map[string]any{}

	for i, col := range header {
		if i >= len(record) || record[i] == "" {
			continue
		}
		value := record[i]

		switch col {
		case columnID, columnText:
			point[col] = value
		case columnVector:
			var vector []any
			if err := json.Unmarshal([]byte(value), &vector); err != nil {
				return nil, fmt.Errorf("line %d: invalid vector %q: %w", lineNum, value, err)
			}
			point[col] = vector
		default:
			payload[col] = value
		}
	}

	if _, ok := point[columnID]; !ok {
		return nil, fmt.Errorf("line %d: id is empty", lineNum)
	}
	if len(payload) > 0 {
		point["payload"] = payload
	}
	return point, nil
}
