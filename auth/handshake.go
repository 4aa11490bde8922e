package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jrsteele09/photo-wall/credentials"
	"github.com/jrsteele09/photo-wall/oauthstate"
	"github.com/jrsteele09/photo-wall/sessions"
	"github.com/jrsteele09/photo-wall/users"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// Stage is a step of the authorization-code handshake.
type Stage string

const (
	StageStart            Stage = "start"
	StageStateIssued      Stage = "state_issued"
	StageCallbackReceived Stage = "callback_received"
	StageCodeExchanged    Stage = "code_exchanged"
	StageScopesValidated  Stage = "scopes_validated"
	StageUserUpserted     Stage = "user_upserted"
	StageTokensPersisted  Stage = "tokens_persisted"
	StageSessionIssued    Stage = "session_issued"
	StageDone             Stage = "done"
)

// Provider is the OAuth/OIDC identity provider.
type Provider interface {
	ConfigProblem() string
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	GrantedScopes(ctx context.Context, accessToken string) ([]string, error)
	UserInfo(ctx context.Context, tok *oauth2.Token) (*Profile, error)
}

// MemberBinder attaches invitations made by email to a user who just signed in.
type MemberBinder interface {
	BindPendingMembers(ctx context.Context, email, userID string) (int, error)
}

type Repos struct {
	Users       users.UserRepo
	Members     MemberBinder
	Credentials credentials.Repo
}

// Handshake drives the Google authorization-code flow from state issuance
// to session issuance.
type Handshake struct {
	provider Provider
	states   oauthstate.Store
	repos    Repos
	sessions *sessions.Manager
	logger   zerolog.Logger
}

func NewHandshake(provider Provider, states oauthstate.Store, repos Repos, sessionManager *sessions.Manager, logger zerolog.Logger) *Handshake {
	return &Handshake{
		provider: provider,
		states:   states,
		repos:    repos,
		sessions: sessionManager,
		logger:   logger,
	}
}

// Begin issues a state nonce cookie and returns the provider URL to send
// the browser to.
func (h *Handshake) Begin(w http.ResponseWriter) (string, error) {
	if reason := h.provider.ConfigProblem(); reason != "" {
		return "", &ConfigError{Reason: reason}
	}
	state, err := h.states.Issue(w)
	if err != nil {
		return "", fmt.Errorf("issue oauth state: %w", err)
	}
	return h.provider.AuthCodeURL(state), nil
}

// Complete handles the provider callback. On success the session cookie has
// been written and the user ID is returned. Every failure is a
// *HandshakeError and has already been logged.
func (h *Handshake) Complete(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, error) {
	q := r.URL.Query()
	if providerErr := q.Get("error"); providerErr != "" {
		h.discardState(w, r)
		return "", h.fail(StageStateIssued, ReasonOAuth, fmt.Errorf("provider returned %q", providerErr))
	}

	code, state := q.Get("code"), q.Get("state")
	if code == "" || state == "" {
		h.discardState(w, r)
		return "", h.fail(StageStateIssued, ReasonMissing, ErrMissingParams)
	}
	if err := h.states.Consume(w, r, state); err != nil {
		return "", h.fail(StageStateIssued, ReasonState, err)
	}

	tok, err := h.provider.Exchange(ctx, code)
	if err != nil {
		return "", h.fail(StageCallbackReceived, ReasonFailed, err)
	}

	granted, err := h.provider.GrantedScopes(ctx, tok.AccessToken)
	if err != nil {
		return "", h.fail(StageCodeExchanged, ReasonFailed, err)
	}
	if err := ValidateScopes(granted); err != nil {
		var scopeErr *ScopeError
		if errors.As(err, &scopeErr) {
			h.logger.Warn().Strs("granted_scopes", granted).Strs("missing_scopes", scopeErr.Missing).Msg("oauth scopes missing")
		}
		return "", h.fail(StageCodeExchanged, ReasonFailed, err)
	}
	h.logger.Debug().Strs("granted_scopes", granted).Msg("oauth scopes granted")

	profile, err := h.provider.UserInfo(ctx, tok)
	if err != nil {
		return "", h.fail(StageScopesValidated, ReasonFailed, err)
	}
	if profile.Subject == "" {
		return "", h.fail(StageScopesValidated, ReasonFailed, ErrMissingSubject)
	}
	user, err := h.repos.Users.UpsertByGoogleID(ctx, &users.User{
		GoogleUserID: profile.Subject,
		Email:        profile.Email,
		Name:         profile.Name,
	})
	if err != nil {
		return "", h.fail(StageScopesValidated, ReasonFailed, fmt.Errorf("upsert user: %w", err))
	}

	if profile.Email != "" {
		bound, err := h.repos.Members.BindPendingMembers(ctx, profile.Email, user.ID)
		if err != nil {
			return "", h.fail(StageUserUpserted, ReasonFailed, fmt.Errorf("bind pending memberships: %w", err))
		}
		if bound > 0 {
			h.logger.Info().Str("user_id", user.ID).Int("memberships", bound).Msg("bound pending collection memberships")
		}
	}

	if tok.RefreshToken == "" {
		return "", h.fail(StageUserUpserted, ReasonFailed, ErrMissingRefreshToken)
	}
	if err := h.repos.Credentials.Put(ctx, &credentials.Credential{
		UserID:       user.ID,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}); err != nil {
		return "", h.fail(StageUserUpserted, ReasonFailed, fmt.Errorf("store credentials: %w", err))
	}

	sessionToken, expiresAt, err := h.sessions.Issue(ctx, user.ID)
	if err != nil {
		return "", h.fail(StageTokensPersisted, ReasonFailed, err)
	}
	h.sessions.WriteCookie(w, sessionToken, expiresAt)

	h.logger.Info().Str("user_id", user.ID).Str("stage", string(StageDone)).Msg("oauth handshake complete")
	return user.ID, nil
}

// discardState clears the nonce cookie on paths that never compare it.
func (h *Handshake) discardState(w http.ResponseWriter, r *http.Request) {
	_ = h.states.Consume(w, r, "")
}

func (h *Handshake) fail(stage Stage, reason Reason, err error) error {
	h.logger.Error().Err(err).Str("stage", string(stage)).Str("reason", string(reason)).Msg("oauth handshake failed")
	return &HandshakeError{Stage: stage, Reason: reason, Err: err}
}
