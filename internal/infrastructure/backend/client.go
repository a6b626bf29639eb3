package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/nashon/pos-ledger-api/internal/config"
	"github.com/nashon/pos-ledger-api/pkg/apperror"
)

// Client talks to the remote REST backend that owns gift cards,
// inventory and customers. It hides the backend's pagination and error
// shapes from the rest of the system: every failure comes back as a
// normalized apperror, never a raw transport error.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

// NewClient creates a backend client from configuration.
func NewClient(cfg *config.BackendConfig) *Client {
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
	}
}

// url resolves a path against the base URL. Pagination cursors arrive as
// absolute URLs and pass through untouched.
func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + path
}

// backendError is the error body shape the backend returns on non-2xx
// responses. Either field may be present.
type backendError struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// do issues one request and returns the response body. Non-2xx responses
// are logged and surfaced as upstream errors carrying the backend's
// detail/message when one was supplied.
func (c *Client) do(ctx context.Context, method, rawURL string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		log.Printf("backend: %s %s failed: %v", method, rawURL, err)
		return nil, apperror.NewAppError(http.StatusBadGateway, "Backend unreachable")
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		log.Printf("backend: %s %s read failed: %v", method, rawURL, err)
		return nil, apperror.NewAppError(http.StatusBadGateway, "Backend response unreadable")
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var be backendError
		_ = json.Unmarshal(data, &be)
		detail := be.Detail
		if detail == "" {
			detail = be.Message
		}
		log.Printf("backend: %s %s returned %d: %s", method, rawURL, res.StatusCode, detail)
		return nil, apperror.NewUpstreamError(res.StatusCode, detail)
	}

	return data, nil
}

// listPage is the backend's paginated list envelope. Next is an absolute
// URL, or empty/null on the last page.
type listPage struct {
	Results []json.RawMessage `json:"results"`
	Next    string            `json:"next"`
}

// FetchAll follows the next cursor from the given path until exhausted
// and concatenates the results in page order. A bare JSON array response
// is treated as the complete collection.
func (c *Client) FetchAll(ctx context.Context, path string) ([]json.RawMessage, error) {
	var all []json.RawMessage
	next := c.url(path)
	for next != "" {
		data, err := c.do(ctx, http.MethodGet, next, nil)
		if err != nil {
			return nil, err
		}

		trimmed := bytes.TrimLeft(data, " \t\r\n")
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var arr []json.RawMessage
			if err := json.Unmarshal(trimmed, &arr); err != nil {
				return nil, fmt.Errorf("failed to decode backend list: %w", err)
			}
			return append(all, arr...), nil
		}

		var page listPage
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("failed to decode backend page: %w", err)
		}
		all = append(all, page.Results...)
		next = page.Next
	}
	return all, nil
}

// fetchList fetches all pages from path and decodes every record into T.
func fetchList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	raw, err := c.FetchAll(ctx, path)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		var rec T
		if err := json.Unmarshal(r, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode backend record: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}
