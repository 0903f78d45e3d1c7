package entities

import (
	"fmt"
	"strings"
)

// Distance is the similarity metric of a collection's vectors.
type Distance string

// Supported distance metrics.
const (
	DistanceCosine    Distance = "Cosine"
	DistanceEuclid    Distance = "Euclid"
	DistanceDot       Distance = "Dot"
	DistanceManhattan Distance = "Manhattan"
)

// ValidDistances lists the accepted metrics in display order.
var ValidDistances = []Distance{DistanceCosine, DistanceEuclid, DistanceDot, DistanceManhattan}

// ParseDistance validates a distance name. Matching is exact, as the backend names them.
func ParseDistance(s string) (Distance, error) {
	for _, d := range ValidDistances {
		if string(d) == s {
			return d, nil
		}
	}
	names := make([]string, len(ValidDistances))
	for i, d := range ValidDistances {
		names[i] = string(d)
	}
	return "", fmt.Errorf("%w: unknown distance %q, valid: %s", ErrInvalidArgument, s, strings.Join(names, ", "))
}

// CollectionSpec describes a collection to create.
type CollectionSpec struct {
	Name       string
	VectorSize uint64
	Distance   Distance
}

// Validate checks the spec before it reaches the backend.
func (s CollectionSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: collection name is required", ErrInvalidArgument)
	}
	if s.VectorSize < 1 {
		return fmt.Errorf("%w: vector size must be >= 1", ErrInvalidArgument)
	}
	if _, err := ParseDistance(string(s.Distance)); err != nil {
		return err
	}
	return nil
}

// VectorParams is the size and metric of one vector space.
type VectorParams struct {
	Size     uint64   `json:"size"`
	Distance Distance `json:"distance"`
}

// CollectionInfo summarizes a collection's state.
// Vector is set for a single unnamed vector config; NamedVectors otherwise.
type CollectionInfo struct {
	Name                string                  `json:"name"`
	Status              string                  `json:"status"`
	PointsCount         uint64                  `json:"points_count"`
	IndexedVectorsCount uint64                  `json:"indexed_vectors_count"`
	SegmentsCount       uint64                  `json:"segments_count"`
	Vector              *VectorParams           `json:"-"`
	NamedVectors        map[string]VectorParams `json:"named_vectors,omitempty"`
}

// Snapshot describes a backup artifact of a collection.
type Snapshot struct {
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
	Size      int64  `json:"size"`
}
