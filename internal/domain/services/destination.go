package services

import (
	"context"

	"github.com/ersonp/qdrant-admin/internal/domain/ports"
)

type destinationKey struct{}

// DestinationOverride holds per-call destination values. Empty fields fall back
// to the process default, except that the default API key is never sent to an
// overridden URL.
type DestinationOverride struct {
	URL    string
	APIKey string
	// APIKeySet distinguishes an explicitly empty key from an absent one.
	APIKeySet bool
}

// WithDestination returns a context carrying a per-call destination override.
func WithDestination(ctx context.Context, o DestinationOverride) context.Context {
	return context.WithValue(ctx, destinationKey{}, o)
}

// DestinationFromContext returns the override stored in ctx, if any.
func DestinationFromContext(ctx context.Context) (DestinationOverride, bool) {
	o, ok := ctx.Value(destinationKey{}).(DestinationOverride)
	return o, ok
}

// effectiveDestination applies a request-scoped override on top of the default.
func effectiveDestination(ctx context.Context, def ports.Destination) ports.Destination {
	dest := def
	o, ok := DestinationFromContext(ctx)
	if !ok {
		return dest
	}
	if o.URL != "" && o.URL != def.URL {
		dest.URL = o.URL
		dest.APIKey = ""
	}
	if o.APIKeySet {
		dest.APIKey = o.APIKey
	}
	return dest
}
