package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
	"github.com/ersonp/qdrant-admin/internal/domain/mocks"
)

func TestHealthService_Check_Healthy(t *testing.T) {
	backend := &mocks.Backend{Collections: []string{"a", "b", "c"}}
	svc := NewHealthService(&staticResolver{backend: backend})

	base := time.Unix(0, 0)
	ticks := []time.Time{base, base.Add(12345 * time.Microsecond)}
	svc.now = func() time.Time {
		t := ticks[0]
		ticks = ticks[1:]
		return t
	}

	report := svc.Check(t.Context())

	assert.Equal(t, entities.HealthHealthy, report.Status)
	assert.True(t, report.BackendAvailable)
	require.NotNil(t, report.LatencyMs)
	assert.InDelta(t, 12.35, *report.LatencyMs, 0.001)
	require.NotNil(t, report.CollectionsCount)
	assert.Equal(t, 3, *report.CollectionsCount)
	assert.Nil(t, report.Error)
}

func TestHealthService_Check_Unhealthy(t *testing.T) {
	tests := []struct {
		name     string
		resolver *staticResolver
	}{
		{
			name:     "backend error",
			resolver: &staticResolver{backend: &mocks.Backend{Err: errors.New("connection refused")}},
		},
		{
			name:     "resolve error",
			resolver: &staticResolver{err: errors.New("connection refused")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := NewHealthService(tt.resolver).Check(t.Context())

			assert.Equal(t, entities.HealthUnhealthy, report.Status)
			assert.False(t, report.BackendAvailable)
			assert.Nil(t, report.LatencyMs)
			assert.Nil(t, report.CollectionsCount)
			require.NotNil(t, report.Error)
			assert.Contains(t, *report.Error, "connection refused")
		})
	}
}
