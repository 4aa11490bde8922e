package server

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
	"github.com/jrsteele09/photo-wall/picker"
)

type startPickerRequest struct {
	CollectionID string `json:"collectionId"`
}

type pollPendingResponse struct {
	Completed     bool                  `json:"completed"`
	PollingConfig *picker.PollingConfig `json:"pollingConfig,omitempty"`
}

type pollCompletedResponse struct {
	Completed bool `json:"completed"`
	Count     int  `json:"count"`
}

// StartPickerHandler creates a picker session for a collection the user
// can edit.
func (s *Server) StartPickerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := UserIDFromContext(r.Context())

		var req startPickerRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil || req.CollectionID == "" {
			writeJSONError(w, http.StatusBadRequest, "Missing collectionId")
			return
		}

		res, err := s.deps.Picker.Start(r.Context(), userID, req.CollectionID)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, res)
		case errors.Is(err, apperrors.ErrForbidden):
			writeJSONError(w, http.StatusForbidden, "Forbidden")
		case errors.Is(err, apperrors.ErrNotFound):
			writeJSONError(w, http.StatusNotFound, "Collection not found")
		default:
			s.logger.Error().Err(err).Str("user_id", userID).Str("collection_id", req.CollectionID).Msg("start picker")
			writeJSONError(w, http.StatusInternalServerError, "Failed to start picker")
		}
	}
}

// PollPickerHandler reports picker progress and ingests the result once
// the user is done.
func (s *Server) PollPickerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := UserIDFromContext(r.Context())
		sessionID := r.URL.Query().Get("sessionId")
		collectionID := r.URL.Query().Get("collectionId")
		if sessionID == "" || collectionID == "" {
			writeJSONError(w, http.StatusBadRequest, "Missing params")
			return
		}

		res, err := s.deps.Picker.Poll(r.Context(), userID, sessionID, collectionID)
		switch {
		case errors.Is(err, picker.ErrSessionNotFound):
			writeJSONError(w, http.StatusNotFound, "Session not found")
		case err != nil:
			logEvent := s.logger.Error().Err(err)
			var malformed *picker.MalformedResponseError
			if errors.As(err, &malformed) {
				logEvent = logEvent.Int("raw_count", malformed.RawCount).
					Int("invalid_count", malformed.InvalidCount).
					Interface("samples", malformed.Samples)
			}
			logEvent.Str("user_id", userID).Str("session_id", sessionID).Msg("poll picker")
			writeJSONError(w, http.StatusInternalServerError, "Failed to read picker session")
		case res.Completed:
			writeJSON(w, http.StatusOK, pollCompletedResponse{Completed: true, Count: res.Count})
		default:
			writeJSON(w, http.StatusOK, pollPendingResponse{Completed: false, PollingConfig: res.PollingConfig})
		}
	}
}
