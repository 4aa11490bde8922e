package picker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jrsteele09/photo-wall/collections"
	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
	"github.com/jrsteele09/photo-wall/photos"
	"github.com/rs/zerolog"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// TokenSource yields a usable Google access token for a user.
type TokenSource interface {
	GetValidAccessToken(ctx context.Context, userID string) (string, error)
}

type StartResult struct {
	PickerURI string `json:"pickerUri"`
	SessionID string `json:"sessionId"`
}

// PollResult is either "keep polling" (Completed false, with Google's
// polling advice) or the number of photos ingested.
type PollResult struct {
	Completed     bool           `json:"completed"`
	Count         int            `json:"count,omitempty"`
	PollingConfig *PollingConfig `json:"pollingConfig,omitempty"`
}

// Orchestrator starts picker sessions and ingests their results once.
type Orchestrator struct {
	api         API
	tokens      TokenSource
	records     Repo
	photos      photos.Repo
	collections collections.Repo
	recordTTL   time.Duration
	logger      zerolog.Logger
}

// NewOrchestrator builds an orchestrator. Records older than recordTTL are
// treated as abandoned; zero disables the expiry.
func NewOrchestrator(api API, tokens TokenSource, records Repo, photoRepo photos.Repo, collectionRepo collections.Repo, recordTTL time.Duration, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		api:         api,
		tokens:      tokens,
		records:     records,
		photos:      photoRepo,
		collections: collectionRepo,
		recordTTL:   recordTTL,
		logger:      logger,
	}
}

// Start opens a picker session for a collection the user can edit.
func (o *Orchestrator) Start(ctx context.Context, userID, collectionID string) (*StartResult, error) {
	access, err := collections.ResolveAccess(ctx, o.collections, userID, collectionID)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit() {
		return nil, fmt.Errorf("user %s on collection %s: %w", userID, collectionID, apperrors.ErrForbidden)
	}

	o.expireAbandoned(ctx, userID)

	accessToken, err := o.tokens.GetValidAccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	session, err := o.api.CreateSession(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if err := o.records.Create(ctx, &Record{
		UserID:       userID,
		CollectionID: collectionID,
		SessionID:    session.ID,
		CreatedAt:    NowTimeFunc(),
	}); err != nil {
		return nil, apperrors.Wrapf(err, "store picker session %s", session.ID)
	}

	o.logger.Info().Str("user_id", userID).Str("collection_id", collectionID).Str("session_id", session.ID).Msg("picker session started")
	return &StartResult{
		PickerURI: strings.TrimRight(session.PickerURI, "/") + "/autoclose",
		SessionID: session.ID,
	}, nil
}

// Poll reports progress of a session this user started for this
// collection. When the user is done, the picked items are upserted and the
// session record is deleted, so later polls get ErrSessionNotFound.
func (o *Orchestrator) Poll(ctx context.Context, userID, sessionID, collectionID string) (*PollResult, error) {
	record, err := o.records.Find(ctx, userID, collectionID, sessionID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, apperrors.Wrapf(err, "find picker session %s", sessionID)
	}
	if o.expired(record) {
		if err := o.records.Delete(ctx, record.ID); err != nil {
			o.logger.Warn().Err(err).Str("session_id", sessionID).Msg("delete expired picker session")
		}
		return nil, ErrSessionNotFound
	}

	accessToken, err := o.tokens.GetValidAccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	session, err := o.api.GetSession(ctx, accessToken, sessionID)
	if err != nil {
		return nil, err
	}
	picked, err := o.api.ListPickedItems(ctx, accessToken, sessionID)
	if err != nil {
		return nil, err
	}

	if picked.NotReady || (len(picked.Items) == 0 && !session.MediaItemsSet) {
		return &PollResult{Completed: false, PollingConfig: session.PollingConfig}, nil
	}

	normalized := Normalize(picked.Items)
	logEvent := o.logger.Info()
	if normalized.InvalidCount > 0 {
		logEvent = o.logger.Warn().Interface("invalid_samples", normalized.InvalidSamples)
	}
	logEvent.Str("session_id", sessionID).
		Int("raw_count", normalized.RawCount).
		Int("normalized_count", len(normalized.Items)).
		Int("invalid_count", normalized.InvalidCount).
		Msg("picker items normalized")

	if normalized.RawCount > 0 && len(normalized.Items) == 0 {
		return nil, &MalformedResponseError{
			SessionID:    sessionID,
			RawCount:     normalized.RawCount,
			InvalidCount: normalized.InvalidCount,
			Samples:      normalized.InvalidSamples,
		}
	}

	if len(normalized.Items) > 0 {
		rows := make([]photos.Photo, 0, len(normalized.Items))
		for _, item := range normalized.Items {
			rows = append(rows, photos.Photo{
				UserID:       userID,
				CollectionID: collectionID,
				ExternalID:   item.ExternalID,
				BaseURL:      item.BaseURL,
			})
		}
		if err := o.photos.UpsertMany(ctx, rows); err != nil {
			return nil, apperrors.Wrapf(err, "store picked photos of session %s", sessionID)
		}
	}

	if err := o.records.Delete(ctx, record.ID); err != nil {
		return nil, apperrors.Wrapf(err, "delete picker session %s", sessionID)
	}

	o.logger.Info().Str("user_id", userID).Str("collection_id", collectionID).Str("session_id", sessionID).Int("count", len(normalized.Items)).Msg("picker session ingested")
	return &PollResult{Completed: true, Count: len(normalized.Items)}, nil
}

func (o *Orchestrator) expired(record *Record) bool {
	return o.recordTTL > 0 && NowTimeFunc().Sub(record.CreatedAt) > o.recordTTL
}

func (o *Orchestrator) expireAbandoned(ctx context.Context, userID string) {
	if o.recordTTL <= 0 {
		return
	}
	n, err := o.records.DeleteOlderThan(ctx, userID, NowTimeFunc().Add(-o.recordTTL))
	if err != nil {
		o.logger.Warn().Err(err).Str("user_id", userID).Msg("expire abandoned picker sessions")
		return
	}
	if n > 0 {
		o.logger.Debug().Str("user_id", userID).Int("expired", n).Msg("expired abandoned picker sessions")
	}
}
