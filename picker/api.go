package picker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jrsteele09/photo-wall/internal/googleapi"
)

const (
	// DefaultBaseURL is the Google Photos Picker API root.
	DefaultBaseURL = "https://photospicker.googleapis.com/v1"

	listPageSize = 100
)

// Session is the picker session resource.
type Session struct {
	ID            string         `json:"id"`
	PickerURI     string         `json:"pickerUri,omitempty"`
	MediaItemsSet bool           `json:"mediaItemsSet,omitempty"`
	PollingConfig *PollingConfig `json:"pollingConfig,omitempty"`
	ExpireTime    string         `json:"expireTime,omitempty"`
}

// PollingConfig is Google's advice on how often to poll. Durations are in
// the "5s" string form.
type PollingConfig struct {
	PollInterval string `json:"pollInterval,omitempty"`
	TimeoutIn    string `json:"timeoutIn,omitempty"`
}

// PickedItems is the full listing of a session. NotReady is set while the
// user is still picking.
type PickedItems struct {
	Items    []RawItem
	NotReady bool
}

// API is the subset of the Picker API the orchestrator needs.
type API interface {
	CreateSession(ctx context.Context, accessToken string) (*Session, error)
	GetSession(ctx context.Context, accessToken, sessionID string) (*Session, error)
	ListPickedItems(ctx context.Context, accessToken, sessionID string) (*PickedItems, error)
}

// Client calls the Google Photos Picker REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ API = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) CreateSession(ctx context.Context, accessToken string) (*Session, error) {
	var s Session
	if err := googleapi.DoJSON(ctx, c.bearer(ctx, accessToken), http.MethodPost, c.baseURL+"/sessions", struct{}{}, &s); err != nil {
		return nil, fmt.Errorf("create picker session: %w", err)
	}
	if s.ID == "" || s.PickerURI == "" {
		return nil, errors.New("create picker session: response missing id or pickerUri")
	}
	return &s, nil
}

func (c *Client) GetSession(ctx context.Context, accessToken, sessionID string) (*Session, error) {
	var s Session
	if err := googleapi.DoJSON(ctx, c.bearer(ctx, accessToken), http.MethodGet, c.baseURL+"/sessions/"+url.PathEscape(sessionID), nil, &s); err != nil {
		return nil, fmt.Errorf("get picker session %s: %w", sessionID, err)
	}
	return &s, nil
}

type listResponse struct {
	MediaItems    []RawItem `json:"mediaItems"`
	NextPageToken string    `json:"nextPageToken"`
}

// ListPickedItems follows nextPageToken until the listing is exhausted. A
// FAILED_PRECONDITION answer means the user has not finished picking.
func (c *Client) ListPickedItems(ctx context.Context, accessToken, sessionID string) (*PickedItems, error) {
	client := c.bearer(ctx, accessToken)
	out := &PickedItems{}
	seen := map[string]bool{}

	pageToken := ""
	for {
		q := url.Values{}
		q.Set("sessionId", sessionID)
		q.Set("pageSize", strconv.Itoa(listPageSize))
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}

		var page listResponse
		err := googleapi.DoJSON(ctx, client, http.MethodGet, c.baseURL+"/mediaItems?"+q.Encode(), nil, &page)
		if errors.Is(err, googleapi.ErrFailedPrecondition) {
			return &PickedItems{NotReady: true}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("list picked items of %s: %w", sessionID, err)
		}

		out.Items = append(out.Items, page.MediaItems...)
		if page.NextPageToken == "" {
			return out, nil
		}
		if seen[page.NextPageToken] {
			return nil, fmt.Errorf("list picked items of %s: page token %q repeated", sessionID, page.NextPageToken)
		}
		seen[page.NextPageToken] = true
		pageToken = page.NextPageToken
	}
}

func (c *Client) bearer(ctx context.Context, accessToken string) *http.Client {
	return googleapi.BearerClient(ctx, c.httpClient, accessToken)
}
