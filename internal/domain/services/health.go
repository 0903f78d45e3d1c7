package services

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
)

// HealthService probes backend availability.
type HealthService struct {
	resolver Resolver
	now      func() time.Time
}

// NewHealthService creates a new health service.
func NewHealthService(resolver Resolver) *HealthService {
	return &HealthService{
		resolver: resolver,
		now:      time.Now,
	}
}

// Check measures the round trip of a list-collections call. It never returns an
// error: failures are reported in the Error field.
func (s *HealthService) Check(ctx context.Context) entities.HealthReport {
	report := entities.HealthReport{Status: entities.HealthUnhealthy}

	backend, err := s.resolver.Resolve(ctx)
	if err != nil {
		return unhealthy(report, err)
	}

	start := s.now()
	names, err := backend.ListCollections(ctx)
	if err != nil {
		return unhealthy(report, err)
	}
	elapsed := s.now().Sub(start)

	latency := math.Round(float64(elapsed.Microseconds())/10) / 100
	count := len(names)

	report.Status = entities.HealthHealthy
	report.BackendAvailable = true
	report.LatencyMs = &latency
	report.CollectionsCount = &count
	return report
}

func unhealthy(report entities.HealthReport, err error) entities.HealthReport {
	msg := err.Error()
	report.Error = &msg
	log.Error().Err(err).Msg("health check failed")
	return report
}
