package pickerpoll

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/photo-wall/picker"
	"github.com/jrsteele09/photo-wall/sessions"
)

const (
	pickerSessionPath = "/api/picker/session"
	maxErrorBody      = 4 << 10
)

// StatusError is a non-2xx answer from the picker routes.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("picker route: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("picker route: HTTP %d", e.StatusCode)
}

// Client calls this service's picker routes as a signed-in user.
type Client struct {
	baseURL      string
	sessionToken string
	httpClient   *http.Client
}

var _ StatusFetcher = (*Client)(nil)

func NewClient(baseURL, sessionToken string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		sessionToken: sessionToken,
		httpClient:   httpClient,
	}
}

func (c *Client) Start(ctx context.Context, collectionID string) (*picker.StartResult, error) {
	body, err := json.Marshal(map[string]string{"collectionId": collectionID})
	if err != nil {
		return nil, err
	}
	var out picker.StartResult
	if err := c.do(ctx, http.MethodPost, c.baseURL+pickerSessionPath, bytes.NewReader(body), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchStatus(ctx context.Context, sessionID, collectionID string) (*picker.PollResult, error) {
	q := url.Values{}
	q.Set("sessionId", sessionID)
	q.Set("collectionId", collectionID)

	var out picker.PollResult
	if err := c.do(ctx, http.MethodGet, c.baseURL+pickerSessionPath+"?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, target string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(&http.Cookie{Name: sessions.CookieName, Value: c.sessionToken})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(raw, &errBody) == nil {
			statusErr.Message = errBody.Error
		}
		return statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode picker response: %w", err)
	}
	return nil
}
