package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleIssuer          = "https://accounts.google.com"
	DefaultUserInfoURL    = "https://openidconnect.googleapis.com/v1/userinfo"
	DefaultTokenInfoURL   = "https://oauth2.googleapis.com/tokeninfo"
	defaultGoogleJWKSURL  = "https://www.googleapis.com/oauth2/v3/certs"
	maxTokenInfoBodyBytes = 64 << 10
)

// Profile is the identity returned by the userinfo endpoint.
type Profile struct {
	Subject string
	Email   string
	Name    string
}

// GoogleOptions configures the Google client. Zero endpoint values fall
// back to Google's production endpoints.
type GoogleOptions struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	Endpoint     oauth2.Endpoint
	UserInfoURL  string
	TokenInfoURL string
	HTTPClient   *http.Client
}

// Google talks to Google's OAuth 2.0 and OpenID Connect endpoints. It is the
// handshake Provider and the refresher's RefreshGrant.
type Google struct {
	oauth        *oauth2.Config
	oidc         *oidc.Provider
	tokenInfoURL string
	httpClient   *http.Client
}

func NewGoogle(ctx context.Context, opts GoogleOptions) *Google {
	if opts.Endpoint.AuthURL == "" {
		opts.Endpoint = google.Endpoint
	}
	if opts.UserInfoURL == "" {
		opts.UserInfoURL = DefaultUserInfoURL
	}
	if opts.TokenInfoURL == "" {
		opts.TokenInfoURL = DefaultTokenInfoURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	// Built from static endpoints so startup makes no discovery request.
	provider := (&oidc.ProviderConfig{
		IssuerURL:   googleIssuer,
		AuthURL:     opts.Endpoint.AuthURL,
		TokenURL:    opts.Endpoint.TokenURL,
		UserInfoURL: opts.UserInfoURL,
		JWKSURL:     defaultGoogleJWKSURL,
	}).NewProvider(ctx)

	return &Google{
		oauth: &oauth2.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			RedirectURL:  opts.RedirectURL,
			Endpoint:     opts.Endpoint,
			Scopes:       RequestedScopes,
		},
		oidc:         provider,
		tokenInfoURL: opts.TokenInfoURL,
		httpClient:   opts.HTTPClient,
	}
}

// ConfigProblem names the first missing client setting, or "" when the
// client can start a login.
func (g *Google) ConfigProblem() string {
	switch {
	case g.oauth.ClientID == "":
		return "missing_google_client_id"
	case g.oauth.ClientSecret == "":
		return "missing_google_client_secret"
	case g.oauth.RedirectURL == "":
		return "missing_google_redirect_uri"
	}
	return ""
}

// AuthCodeURL asks for offline access with a forced consent prompt, which
// makes Google return a refresh token even on re-authorization.
func (g *Google) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
}

func (g *Google) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := g.oauth.Exchange(g.clientContext(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}

// Refresh implements credentials.RefreshGrant.
func (g *Google) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	return g.oauth.TokenSource(g.clientContext(ctx), &oauth2.Token{RefreshToken: refreshToken}).Token()
}

type tokenInfo struct {
	Scope     string `json:"scope"`
	Audience  string `json:"aud"`
	ExpiresIn string `json:"expires_in"`
}

// GrantedScopes introspects accessToken with the tokeninfo endpoint.
func (g *Google) GrantedScopes(ctx context.Context, accessToken string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.tokenInfoURL+"?access_token="+url.QueryEscape(accessToken), nil)
	if err != nil {
		return nil, fmt.Errorf("build tokeninfo request: %w", err)
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTokenInfoBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read tokeninfo: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo: HTTP %d: %s", resp.StatusCode, body)
	}

	var info tokenInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("decode tokeninfo: %w", err)
	}
	return ParseScopes(info.Scope), nil
}

func (g *Google) UserInfo(ctx context.Context, tok *oauth2.Token) (*Profile, error) {
	info, err := g.oidc.UserInfo(oidc.ClientContext(ctx, g.httpClient), oauth2.StaticTokenSource(tok))
	if err != nil {
		return nil, fmt.Errorf("userinfo: %w", err)
	}

	var claims struct {
		Name string `json:"name"`
	}
	if err := info.Claims(&claims); err != nil {
		return nil, fmt.Errorf("userinfo claims: %w", err)
	}
	return &Profile{
		Subject: info.Subject,
		Email:   info.Email,
		Name:    claims.Name,
	}, nil
}

func (g *Google) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
}
