package credentials

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// RefreshMargin is how close to expiry a stored access token may get before
// it is renewed.
const RefreshMargin = 60 * time.Second

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// RefreshGrant trades a refresh token for a new access token.
type RefreshGrant interface {
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// Refresher hands out access tokens that are valid for at least RefreshMargin.
type Refresher struct {
	repo   Repo
	grant  RefreshGrant
	logger zerolog.Logger
}

func NewRefresher(repo Repo, grant RefreshGrant, logger zerolog.Logger) *Refresher {
	return &Refresher{
		repo:   repo,
		grant:  grant,
		logger: logger,
	}
}

// GetValidAccessToken returns the stored access token, refreshing and
// persisting a new one first if the stored one is within RefreshMargin of
// expiring. Refresh failures are not retried.
func (r *Refresher) GetValidAccessToken(ctx context.Context, userID string) (string, error) {
	cred, err := r.repo.Get(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return "", fmt.Errorf("user %s: %w", userID, ErrMissingCredentials)
	}
	if err != nil {
		return "", apperrors.Wrapf(err, "load credentials for user %s", userID)
	}

	if cred.ExpiresAt.Sub(NowTimeFunc()) > RefreshMargin {
		return cred.AccessToken, nil
	}

	tok, err := r.grant.Refresh(ctx, cred.RefreshToken)
	if err != nil {
		refreshErr := &RefreshFailedError{UserID: userID, Err: err}
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			refreshErr.Body = string(retrieveErr.Body)
		}
		r.logger.Error().Err(err).Str("user_id", userID).Str("body", refreshErr.Body).Msg("access token refresh failed")
		return "", refreshErr
	}

	expiresAt := tok.Expiry
	if expiresAt.IsZero() {
		expiresAt = NowTimeFunc().Add(time.Hour)
	}
	if err := r.repo.UpdateAccessToken(ctx, userID, tok.AccessToken, expiresAt); err != nil {
		return "", apperrors.Wrapf(err, "persist refreshed token for user %s", userID)
	}

	r.logger.Debug().Str("user_id", userID).Time("expires_at", expiresAt).Msg("access token refreshed")
	return tok.AccessToken, nil
}
