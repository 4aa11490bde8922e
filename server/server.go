package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/photo-wall/auth"
	"github.com/jrsteele09/photo-wall/collections"
	"github.com/jrsteele09/photo-wall/internal/config"
	"github.com/jrsteele09/photo-wall/photos"
	"github.com/jrsteele09/photo-wall/picker"
	"github.com/jrsteele09/photo-wall/sessions"
	"github.com/rs/zerolog"
)

// PickerService starts and polls picker sessions.
type PickerService interface {
	Start(ctx context.Context, userID, collectionID string) (*picker.StartResult, error)
	Poll(ctx context.Context, userID, sessionID, collectionID string) (*picker.PollResult, error)
}

// ImageSource fetches photo bytes from Google and refreshes expired base URLs.
type ImageSource interface {
	GetBaseURL(ctx context.Context, accessToken, mediaItemID string) (string, error)
	FetchImage(ctx context.Context, accessToken, imageURL string) (*http.Response, error)
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Deps are the components the routes are served by.
type Deps struct {
	Handshake   *auth.Handshake
	Sessions    *sessions.Manager
	Picker      PickerService
	Tokens      picker.TokenSource
	Photos      photos.Repo
	Collections collections.Repo
	Images      ImageSource
	Health      HealthChecker
}

type Server struct {
	env    string
	appURL string
	mux    *http.ServeMux
	routes []string
	config config.Config
	deps   Deps
	logger zerolog.Logger
}

func New(cfg config.Config, deps Deps, logger zerolog.Logger) *Server {
	s := &Server{
		env:    cfg.GetEnv(),
		appURL: cfg.GetAppURL(),
		mux:    http.NewServeMux(),
		config: cfg,
		deps:   deps,
		logger: logger,
	}

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		method, path, found := strings.Cut(route, " ")
		if !found {
			method, path = "", route
		}
		s.logger.Debug().Str("method", method).Str("path", path).Msg("route registered")
	}
}

// redirectApp sends the browser to path under the configured app URL.
func (s *Server) redirectApp(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, s.appURL+path, http.StatusFound)
}
