package server

import (
	"context"
	"net/http"
	"time"
)

const healthTimeout = 3 * time.Second

type healthResponse struct {
	OK bool `json:"ok"`
}

// HealthHandler reports whether the store is reachable.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := s.deps.Health.Ping(ctx); err != nil {
			s.logger.Error().Err(err).Msg("health check")
			writeJSON(w, http.StatusInternalServerError, healthResponse{OK: false})
			return
		}
		writeJSON(w, http.StatusOK, healthResponse{OK: true})
	}
}
