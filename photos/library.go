package photos

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/photo-wall/internal/googleapi"
)

// DefaultLibraryBaseURL is the Google Photos Library API root.
const DefaultLibraryBaseURL = "https://photoslibrary.googleapis.com/v1"

// LibraryClient reads media items from the Google Photos Library API and
// fetches image bytes on behalf of a user.
type LibraryClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewLibraryClient(baseURL string, httpClient *http.Client) *LibraryClient {
	if baseURL == "" {
		baseURL = DefaultLibraryBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &LibraryClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type mediaItem struct {
	ID      string `json:"id"`
	BaseURL string `json:"baseUrl"`
}

// GetBaseURL returns a fresh base URL for a media item. Base URLs expire
// after about an hour.
func (c *LibraryClient) GetBaseURL(ctx context.Context, accessToken, mediaItemID string) (string, error) {
	var item mediaItem
	client := googleapi.BearerClient(ctx, c.httpClient, accessToken)
	if err := googleapi.DoJSON(ctx, client, http.MethodGet, c.baseURL+"/mediaItems/"+url.PathEscape(mediaItemID), nil, &item); err != nil {
		return "", err
	}
	if item.BaseURL == "" {
		return "", fmt.Errorf("media item %s has no baseUrl", mediaItemID)
	}
	return item.BaseURL, nil
}

// FetchImage requests imageURL with the user's token. Profile photo URLs
// (containing /ppa/) only take the token as a query parameter. The caller
// owns the response body.
func (c *LibraryClient) FetchImage(ctx context.Context, accessToken, imageURL string) (*http.Response, error) {
	client := c.httpClient
	if strings.Contains(imageURL, "/ppa/") {
		imageURL = withAccessToken(imageURL, accessToken)
	} else {
		client = googleapi.BearerClient(ctx, c.httpClient, accessToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	return resp, nil
}

func withAccessToken(imageURL, accessToken string) string {
	joiner := "?"
	if strings.Contains(imageURL, "?") {
		joiner = "&"
	}
	return imageURL + joiner + "access_token=" + url.QueryEscape(accessToken)
}
