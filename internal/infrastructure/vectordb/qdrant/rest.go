package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
	"github.com/ersonp/qdrant-admin/internal/domain/ports"
)

// restClient covers the operations the gRPC API does not expose.
type restClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func newRESTClient(dest ports.Destination, client *http.Client) *restClient {
	return &restClient{
		baseURL: strings.TrimRight(dest.URL, "/"),
		apiKey:  dest.APIKey,
		http:    client,
	}
}

type recoverRequest struct {
	Location string `json:"location"`
	APIKey   string `json:"api_key,omitempty"`
}

// snapshotLocation resolves a snapshot name to the location Qdrant downloads
// it from. Values that already carry a scheme (file:// or http(s)://) are used
// as given and reported as external. A bare name resolves against the
// client-facing URL, so Qdrant must be able to reach itself at that address.
func (c *restClient) snapshotLocation(collection, snapshot string) (location string, external bool) {
	if strings.Contains(snapshot, "://") {
		return snapshot, true
	}
	return fmt.Sprintf("%s/collections/%s/snapshots/%s",
		c.baseURL, url.PathEscape(collection), url.PathEscape(snapshot)), false
}

func (c *restClient) recoverSnapshot(ctx context.Context, collection, snapshot string) error {
	location, external := c.snapshotLocation(collection, snapshot)
	payload := recoverRequest{Location: location}
	// The key only authenticates the download from this same server.
	if !external {
		payload.APIKey = c.apiKey
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding recover request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/collections/%s/snapshots/recover?wait=true", c.baseURL, url.PathEscape(collection))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: building recover request: %v", entities.ErrInvalidArgument, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: recovering snapshot: %v", entities.ErrBackendUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 300 {
		return nil
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	msg := gjson.GetBytes(respBody, "status.error").String()
	if msg == "" {
		msg = strings.TrimSpace(string(respBody))
	}
	if msg == "" {
		msg = resp.Status
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", entities.ErrNotFound, msg)
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", entities.ErrInvalidArgument, msg)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s", entities.ErrBackendUnavailable, msg)
	default:
		return fmt.Errorf("recovering snapshot: %s", msg)
	}
}
