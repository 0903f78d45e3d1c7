// Package qdrant provides a Backend implementation using Qdrant.
package qdrant

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
	"github.com/ersonp/qdrant-admin/internal/domain/ports"
	"github.com/ersonp/qdrant-admin/internal/infrastructure/config"
)

// Repository implements ports.Backend for one Qdrant destination.
type Repository struct {
	collections pb.CollectionsClient
	points      pb.PointsClient
	snapshots   pb.SnapshotsClient
	rest        *restClient
	conn        *grpc.ClientConn
}

// NewConnector returns a ports.Connector that opens Repositories using the
// configured gRPC port.
func NewConnector(cfg config.QdrantConfig) ports.Connector {
	return ports.ConnectorFunc(func(dest ports.Destination) (ports.Backend, error) {
		return NewRepository(dest, cfg.GRPCPort)
	})
}

// NewRepository creates a new Qdrant repository. The gRPC client is created
// lazily and does not dial until the first call.
func NewRepository(dest ports.Destination, grpcPort int) (*Repository, error) {
	addr, secure, err := grpcTarget(dest.URL, grpcPort)
	if err != nil {
		return nil, err
	}

	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if secure {
		opts[0] = grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12}))
	}
	if dest.APIKey != "" {
		opts = append(opts, grpc.WithUnaryInterceptor(apiKeyInterceptor(dest.APIKey)))
	}

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant: %w", err)
	}

	return &Repository{
		collections: pb.NewCollectionsClient(conn),
		points:      pb.NewPointsClient(conn),
		snapshots:   pb.NewSnapshotsClient(conn),
		rest:        newRESTClient(dest, http.DefaultClient),
		conn:        conn,
	}, nil
}

// Close closes the gRPC connection.
func (r *Repository) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// grpcTarget derives the gRPC address from the REST URL of a destination.
func grpcTarget(rawURL string, port int) (string, bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false, fmt.Errorf("%w: parsing qdrant url: %v", entities.ErrInvalidArgument, err)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", false, fmt.Errorf("%w: qdrant url %q must use http or https", entities.ErrInvalidArgument, rawURL)
	}
	if u.Hostname() == "" {
		return "", false, fmt.Errorf("%w: qdrant url %q has no host", entities.ErrInvalidArgument, rawURL)
	}

	return net.JoinHostPort(u.Hostname(), strconv.Itoa(port)), scheme == "https", nil
}

func apiKeyInterceptor(key string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, "api-key", key)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}
