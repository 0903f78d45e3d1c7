package qdrant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
	"github.com/ersonp/qdrant-admin/internal/domain/ports"
)

func TestRESTClient_RecoverSnapshot(t *testing.T) {
	var (
		gotPath   string
		gotQuery  string
		gotMethod string
		gotKey    string
		gotBody   map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotMethod = r.Method
		gotKey = r.Header.Get("api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"result":true,"status":"ok","time":0.1}`))
	}))
	defer srv.Close()

	c := newRESTClient(ports.Destination{URL: srv.URL + "/", APIKey: "secret"}, srv.Client())
	err := c.recoverSnapshot(context.Background(), "docs", "docs-1.snapshot")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/collections/docs/snapshots/recover", gotPath)
	assert.Equal(t, "wait=true", gotQuery)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, srv.URL+"/collections/docs/snapshots/docs-1.snapshot", gotBody["location"])
	assert.Equal(t, "secret", gotBody["api_key"])
}

func TestRESTClient_RecoverSnapshot_URLLocation(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tests := []struct {
		name     string
		location string
	}{
		{"file location", "file:///qdrant/snapshots/docs/a.snapshot"},
		{"remote url", "https://backups.example.com/docs/a.snapshot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotBody = nil
			c := newRESTClient(ports.Destination{URL: srv.URL, APIKey: "secret"}, srv.Client())
			err := c.recoverSnapshot(context.Background(), "docs", tt.location)
			require.NoError(t, err)

			assert.Equal(t, tt.location, gotBody["location"])
			_, hasKey := gotBody["api_key"]
			assert.False(t, hasKey)
		})
	}
}

func TestRESTClient_RecoverSnapshot_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    error
		wantMsg string
	}{
		{"not found", http.StatusNotFound, `{"status":{"error":"Snapshot file not found"}}`, entities.ErrNotFound, "Snapshot file not found"},
		{"bad request", http.StatusBadRequest, `{"status":{"error":"Wrong input"}}`, entities.ErrInvalidArgument, "Wrong input"},
		{"unprocessable", http.StatusUnprocessableEntity, `not json`, entities.ErrInvalidArgument, "not json"},
		{"server error", http.StatusInternalServerError, ``, entities.ErrBackendUnavailable, "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newRESTClient(ports.Destination{URL: srv.URL}, srv.Client())
			err := c.recoverSnapshot(context.Background(), "docs", "s.snapshot")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestRESTClient_RecoverSnapshot_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newRESTClient(ports.Destination{URL: url}, http.DefaultClient)
	err := c.recoverSnapshot(context.Background(), "docs", "s.snapshot")
	assert.ErrorIs(t, err, entities.ErrBackendUnavailable)
}
