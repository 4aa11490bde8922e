package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/jrsteele09/photo-wall/auth"
	"github.com/jrsteele09/photo-wall/sessions"
)

// BeginAuthHandler sends the browser to Google's consent screen.
func (s *Server) BeginAuthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authURL, err := s.deps.Handshake.Begin(w)
		if err != nil {
			var cfgErr *auth.ConfigError
			if errors.As(err, &cfgErr) {
				s.logger.Error().Str("reason", cfgErr.Reason).Msg("google oauth not configured")
				q := url.Values{"error": {"config"}, "reason": {cfgErr.Reason}}
				s.redirectApp(w, r, PageHome+"?"+q.Encode())
				return
			}
			s.logger.Error().Err(err).Msg("begin oauth")
			s.redirectApp(w, r, PageLogin+"?error="+string(auth.ReasonFailed))
			return
		}
		http.Redirect(w, r, authURL, http.StatusFound)
	}
}

// AuthCallbackHandler completes the handshake. Failures land on the login
// page with a coarse reason; the detail has already been logged.
func (s *Server) AuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.deps.Handshake.Complete(r.Context(), w, r); err != nil {
			reason := auth.ReasonFailed
			var hsErr *auth.HandshakeError
			if errors.As(err, &hsErr) {
				reason = hsErr.Reason
			}
			s.redirectApp(w, r, PageLogin+"?error="+url.QueryEscape(string(reason)))
			return
		}
		s.redirectApp(w, r, PageCollections)
	}
}

// LogoutHandler revokes the session, if any, and goes home.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.deps.Sessions.Revoke(r.Context(), w, sessions.TokenFromRequest(r)); err != nil {
			s.logger.Warn().Err(err).Msg("revoke session")
		}
		s.redirectApp(w, r, PageHome)
	}
}
