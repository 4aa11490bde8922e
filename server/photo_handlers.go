package server

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/jrsteele09/photo-wall/collections"
	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
	"github.com/jrsteele09/photo-wall/photos"
	"github.com/jrsteele09/photo-wall/sessions"
	"github.com/rs/zerolog"
)

const maxUpstreamErrorBody = 4 << 10

// accessDenied is a rejection carrying the response to send.
type accessDenied struct {
	status  int
	message string
}

func (e *accessDenied) Error() string {
	return e.message
}

// PhotoImageHandler proxies a photo's bytes from Google at the requested
// size. A signed-in viewer of the photo's collection or a holder of the
// collection's share token may read it.
func (s *Server) PhotoImageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		photoID := r.PathValue("photoId")
		logger := s.logger.With().Str("photo_id", photoID).Logger()

		var photo *photos.Photo
		var err error
		userID, sessionErr := s.deps.Sessions.Validate(ctx, sessions.TokenFromRequest(r))
		shareToken := r.URL.Query().Get("share")
		switch {
		case sessionErr == nil:
			photo, err = s.memberPhoto(ctx, userID, photoID)
		case shareToken != "":
			photo, err = s.sharedPhoto(ctx, shareToken, photoID)
		default:
			err = &accessDenied{status: http.StatusUnauthorized, message: "Unauthorized"}
		}

		var denied *accessDenied
		if errors.As(err, &denied) {
			logger.Warn().Str("user_id", userID).Int("status", denied.status).Msg("image request rejected")
			writeJSONError(w, denied.status, denied.message)
			return
		}
		if err != nil {
			logger.Error().Err(err).Msg("image lookup")
			writeJSONError(w, http.StatusInternalServerError, "Failed to fetch image")
			return
		}

		s.streamImage(w, r, photo, photos.ImageSize(r.URL.Query().Get("size")), logger)
	}
}

func (s *Server) memberPhoto(ctx context.Context, userID, photoID string) (*photos.Photo, error) {
	photo, err := s.deps.Photos.Get(ctx, photoID)
	if errors.Is(err, apperrors.ErrNotFound) || (err == nil && photo.CollectionID == "") {
		return nil, &accessDenied{status: http.StatusNotFound, message: "Photo not found"}
	}
	if err != nil {
		return nil, err
	}

	access, err := collections.ResolveAccess(ctx, s.deps.Collections, userID, photo.CollectionID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, &accessDenied{status: http.StatusNotFound, message: "Photo not found"}
	}
	if err != nil {
		return nil, err
	}
	if !access.CanView() {
		return nil, &accessDenied{status: http.StatusForbidden, message: "Forbidden"}
	}
	return photo, nil
}

func (s *Server) sharedPhoto(ctx context.Context, shareToken, photoID string) (*photos.Photo, error) {
	collection, err := s.deps.Collections.GetByShareToken(ctx, shareToken)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, &accessDenied{status: http.StatusNotFound, message: "Share link not found"}
	}
	if err != nil {
		return nil, err
	}

	photo, err := s.deps.Photos.Get(ctx, photoID)
	if errors.Is(err, apperrors.ErrNotFound) || (err == nil && (photo.CollectionID != collection.ID || photo.Hidden)) {
		return nil, &accessDenied{status: http.StatusNotFound, message: "Photo not found"}
	}
	if err != nil {
		return nil, err
	}
	return photo, nil
}

// streamImage fetches the sized image with the photo owner's token. An
// upstream 403 usually means the base URL expired, so it is refreshed once.
func (s *Server) streamImage(w http.ResponseWriter, r *http.Request, photo *photos.Photo, size int, logger zerolog.Logger) {
	ctx := r.Context()

	accessToken, err := s.deps.Tokens.GetValidAccessToken(ctx, photo.UserID)
	if err != nil {
		logger.Error().Err(err).Str("user_id", photo.UserID).Msg("owner access token")
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch image")
		return
	}

	resp, err := s.deps.Images.FetchImage(ctx, accessToken, photos.SizedURL(photo.BaseURL, size))
	if err != nil {
		logger.Error().Err(err).Msg("fetch image")
		writeJSONError(w, http.StatusBadGateway, "Failed to fetch image")
		return
	}

	if resp.StatusCode == http.StatusForbidden && photo.ExternalID != "" {
		if retry := s.refetchWithFreshURL(ctx, accessToken, photo, size, logger); retry != nil {
			_ = resp.Body.Close()
			resp = retry
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamErrorBody))
		logger.Warn().Int("status", resp.StatusCode).Str("body", string(body)).Msg("image fetch failed")
		writeJSONError(w, resp.StatusCode, "Failed to fetch image")
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, resp.Body); err != nil {
		logger.Debug().Err(err).Msg("stream image")
	}
}

// refetchWithFreshURL returns nil when the refresh itself fails, leaving the
// original response in place.
func (s *Server) refetchWithFreshURL(ctx context.Context, accessToken string, photo *photos.Photo, size int, logger zerolog.Logger) *http.Response {
	freshURL, err := s.deps.Images.GetBaseURL(ctx, accessToken, photo.ExternalID)
	if err != nil {
		logger.Warn().Err(err).Msg("refresh base url")
		return nil
	}
	if err := s.deps.Photos.UpdateBaseURL(ctx, photo.ID, freshURL); err != nil {
		logger.Warn().Err(err).Msg("store refreshed base url")
	}
	photo.BaseURL = freshURL

	resp, err := s.deps.Images.FetchImage(ctx, accessToken, photos.SizedURL(freshURL, size))
	if err != nil {
		logger.Warn().Err(err).Msg("fetch image with refreshed base url")
		return nil
	}
	return resp
}
