// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cloudflare

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instantBackOff() backoff.BackOff {
	return backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), 5)
}

func newTestClient(serverURL string) *Client {
	return &Client{
		APIToken:   "test-token-0123456789",
		BaseURL:    serverURL,
		NewBackOff: instantBackOff,
	}
}

func writeEnvelope(w http.ResponseWriter, result interface{}) {
	raw, _ := json.Marshal(result)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"errors":  []interface{}{},
		"result":  json.RawMessage(raw),
	})
}

func TestZoneIDByName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token-0123456789", r.Header.Get("Authorization"))
		assert.Equal(t, "/zones", r.URL.Path)
		switch r.URL.Query().Get("name") {
		case "example.com":
			writeEnvelope(w, []Zone{{ID: "zone-1", Name: "example.com"}})
		default:
			writeEnvelope(w, []Zone{})
		}
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	t.Run("Found", func(t *testing.T) {
		id, err := c.ZoneIDByName(context.Background(), "example.com")
		require.NoError(t, err)
		assert.Equal(t, "zone-1", id)
	})
	t.Run("NotFound", func(t *testing.T) {
		_, err := c.ZoneIDByName(context.Background(), "nosuch.example")
		require.ErrorIs(t, err, ErrZoneNotFound)
	})
}

func TestUpsertARecord(t *testing.T) {
	type zoneState struct {
		records []Record
		nextID  int
	}
	state := &zoneState{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/zones/zone-1/dns_records":
			matched := []Record{}
			for _, rec := range state.records {
				if rec.Type == r.URL.Query().Get("type") && rec.Name == r.URL.Query().Get("name") {
					matched = append(matched, rec)
				}
			}
			writeEnvelope(w, matched)
		case r.Method == http.MethodPost && r.URL.Path == "/zones/zone-1/dns_records":
			var rec Record
			require.NoError(t, json.NewDecoder(r.Body).Decode(&rec))
			state.nextID++
			rec.ID = fmt.Sprintf("rec-%d", state.nextID)
			state.records = append(state.records, rec)
			writeEnvelope(w, rec)
		case r.Method == http.MethodPut:
			var rec Record
			require.NoError(t, json.NewDecoder(r.Body).Decode(&rec))
			for i := range state.records {
				if "/zones/zone-1/dns_records/"+state.records[i].ID == r.URL.Path {
					rec.ID = state.records[i].ID
					state.records[i] = rec
					writeEnvelope(w, rec)
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"errors":  []ErrorDetail{{Code: 81044, Message: "Record not found"}},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		rec, err := c.UpsertARecord(ctx, "zone-1", "home.example.com", "203.0.113.7", true, 0)
		require.NoError(t, err)
		assert.Equal(t, "rec-1", rec.ID)
		assert.Equal(t, "A", rec.Type)
		assert.Equal(t, "203.0.113.7", rec.Content)
		assert.Equal(t, 1, rec.TTL, "zero ttl must become automatic")
		assert.True(t, rec.Proxied)
	})
	t.Run("Unchanged", func(t *testing.T) {
		rec, err := c.UpsertARecord(ctx, "zone-1", "home.example.com", "203.0.113.7", true, 0)
		require.NoError(t, err)
		assert.Equal(t, "rec-1", rec.ID)
		assert.Len(t, state.records, 1)
	})
	t.Run("Update", func(t *testing.T) {
		rec, err := c.UpsertARecord(ctx, "zone-1", "home.example.com", "198.51.100.9", true, 0)
		require.NoError(t, err)
		assert.Equal(t, "rec-1", rec.ID)
		assert.Equal(t, "198.51.100.9", rec.Content)
		assert.Len(t, state.records, 1)
	})
}

func TestDoRetriesTransient(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeEnvelope(w, []Zone{{ID: "zone-9", Name: "example.org"}})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	id, err := c.ZoneIDByName(context.Background(), "example.org")
	require.NoError(t, err)
	assert.Equal(t, "zone-9", id)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDoPermanentAPIError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"errors":  []ErrorDetail{{Code: 9109, Message: "Invalid access token"}},
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.ZoneIDByName(context.Background(), "example.com")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "Invalid access token")
	assert.Equal(t, int32(1), calls.Load(), "permanent errors must not be retried")
}

func TestDoRetryExhaustion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.ZoneIDByName(context.Background(), "example.com")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestAPIErrorMessage(t *testing.T) {
	assert.Equal(t, "cloudflare: API returned status 500",
		(&APIError{StatusCode: 500}).Error())
	assert.Equal(t, "cloudflare: API returned status 403 (9109: Invalid access token)",
		(&APIError{StatusCode: 403, Errors: []ErrorDetail{{Code: 9109, Message: "Invalid access token"}}}).Error())
}
