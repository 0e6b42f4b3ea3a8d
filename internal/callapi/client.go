// Package callapi talks to the REST API that creates and manages calls.
package callapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "https://api.ultravox.ai"

var (
	ErrMissingAPIKey = errors.New("api key is not set")
	ErrNoJoinURL     = errors.New("call has no join url")
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Method     string
	Path       string
	HTTPStatus int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.HTTPStatus, e.Body)
}

type CallRequest struct {
	SystemPrompt string   `json:"systemPrompt,omitempty"`
	Model        string   `json:"model,omitempty"`
	Voice        string   `json:"voice,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
}

type Call struct {
	CallID  string    `json:"callId"`
	JoinURL string    `json:"joinUrl"`
	Created time.Time `json:"created"`
	Ended   time.Time `json:"ended,omitzero"`
}

type CallPage struct {
	Results []Call `json:"results"`
	Next    string `json:"next"`
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string, hc *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    hc,
	}
}

// CreateCall starts a call and returns it with its join URL.
func (c *Client) CreateCall(ctx context.Context, req CallRequest) (*Call, error) {
	var call Call
	if err := c.do(ctx, http.MethodPost, "/api/calls", req, &call); err != nil {
		return nil, fmt.Errorf("create call: %w", err)
	}
	if call.JoinURL == "" {
		return nil, ErrNoJoinURL
	}
	log.Info().Str("module", "callapi").Str("call", call.CallID).Msg("call created")
	return &call, nil
}

func (c *Client) GetCall(ctx context.Context, id string) (*Call, error) {
	var call Call
	if err := c.do(ctx, http.MethodGet, "/api/calls/"+url.PathEscape(id), nil, &call); err != nil {
		return nil, fmt.Errorf("get call: %w", err)
	}
	return &call, nil
}

// ListCalls returns one page of calls. An empty cursor starts at the
// first page; the next cursor is empty on the last page.
func (c *Client) ListCalls(ctx context.Context, cursor string) ([]Call, string, error) {
	path := "/api/calls"
	if cursor != "" {
		path += "?cursor=" + url.QueryEscape(cursor)
	}
	var page CallPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, "", fmt.Errorf("list calls: %w", err)
	}
	next := ""
	if page.Next != "" {
		u, err := url.Parse(page.Next)
		if err != nil {
			return nil, "", fmt.Errorf("list calls: bad next link: %w", err)
		}
		next = u.Query().Get("cursor")
	}
	return page.Results, next, nil
}

func (c *Client) DeleteCall(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/calls/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("delete call: %w", err)
	}
	log.Info().Str("module", "callapi").Str("call", id).Msg("call deleted")
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Method: method, Path: path, HTTPStatus: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
