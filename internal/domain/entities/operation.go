package entities

// UpdateStatus values reported for point writes.
const (
	StatusNoPointsToUpsert = "no_points_to_upsert"
)

// OperationResult is the backend acknowledgement of a points mutation.
type OperationResult struct {
	OperationID *uint64 `json:"operation_id"`
	Status      string  `json:"status"`
}

// UpsertResult reports a batch upsert. DroppedIDs lists points that were excluded
// because they carried neither a vector nor text.
type UpsertResult struct {
	OperationID *uint64   `json:"operation_id,omitempty"`
	Status      string    `json:"status"`
	Upserted    int       `json:"upserted"`
	DroppedIDs  []PointID `json:"dropped_ids,omitempty"`
}

// HealthReport is the outcome of a backend round-trip probe.
type HealthReport struct {
	Status           string   `json:"status"`
	BackendAvailable bool     `json:"qdrant_available"`
	LatencyMs        *float64 `json:"latency_ms"`
	CollectionsCount *int     `json:"collections_count"`
	Error            *string  `json:"error"`
}

// Health statuses.
const (
	HealthHealthy   = "healthy"
	HealthUnhealthy = "unhealthy"
)
