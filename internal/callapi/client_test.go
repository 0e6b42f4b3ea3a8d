package callapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/calls", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))

		var req CallRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "be brief", req.SystemPrompt)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"callId":"c1","joinUrl":"wss://example.test/join/c1"}`))
	}))
	defer srv.Close()

	call, err := New(srv.URL+"/", "secret", srv.Client()).CreateCall(context.Background(), CallRequest{SystemPrompt: "be brief"})
	require.NoError(t, err)
	assert.Equal(t, "c1", call.CallID)
	assert.Equal(t, "wss://example.test/join/c1", call.JoinURL)
}

func TestCreateCallWithoutJoinURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"callId":"c1"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "secret", srv.Client()).CreateCall(context.Background(), CallRequest{})
	assert.ErrorIs(t, err, ErrNoJoinURL)
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "bad", srv.Client()).CreateCall(context.Background(), CallRequest{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.HTTPStatus)
	assert.Equal(t, "nope", apiErr.Body)
}

func TestMissingAPIKey(t *testing.T) {
	err := New("http://127.0.0.1:1", "", nil).DeleteCall(context.Background(), "c1")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestListCallsFollowsCursor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("cursor") {
		case "":
			_, _ = w.Write([]byte(`{"results":[{"callId":"a"}],"next":"https://api.test/api/calls?cursor=p2"}`))
		case "p2":
			_, _ = w.Write([]byte(`{"results":[{"callId":"b"}],"next":null}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "k", srv.Client())
	first, next, err := c.ListCalls(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "a", first[0].CallID)
	assert.Equal(t, "p2", next)

	second, next, err := c.ListCalls(context.Background(), next)
	require.NoError(t, err)
	assert.Equal(t, "b", second[0].CallID)
	assert.Empty(t, next)
}

func TestDeleteCall(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL, "k", srv.Client()).DeleteCall(context.Background(), "c 1"))
	assert.Equal(t, "/api/calls/c 1", path)
}
