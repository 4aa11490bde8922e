package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/photo-wall/auth"
	"github.com/jrsteele09/photo-wall/credentials"
	"github.com/jrsteele09/photo-wall/internal/config"
	"github.com/jrsteele09/photo-wall/internal/db"
	"github.com/jrsteele09/photo-wall/internal/db/migrate"
	"github.com/jrsteele09/photo-wall/internal/db/pgrepo"
	"github.com/jrsteele09/photo-wall/internal/logging"
	"github.com/jrsteele09/photo-wall/oauthstate"
	"github.com/jrsteele09/photo-wall/photos"
	"github.com/jrsteele09/photo-wall/picker"
	"github.com/jrsteele09/photo-wall/server"
	"github.com/jrsteele09/photo-wall/sessions"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
	cmd.Flags().String("port", "", "listen port")
	_ = v.BindPFlag("PORT", cmd.Flags().Lookup("port"))
	cmd.Flags().Bool("skip-migrations", false, "do not apply migrations on start")
	_ = v.BindPFlag("SKIP_MIGRATIONS", cmd.Flags().Lookup("skip-migrations"))
	return cmd
}

func runServe(ctx context.Context) error {
	c, err := config.Load(v)
	if err != nil {
		return err
	}
	if err := config.ValidateServe(c); err != nil {
		return err
	}
	logger := logging.New(c.GetEnv(), c.GetLogLevel())
	displayAppname(c.GetAppName())

	if !v.GetBool("SKIP_MIGRATIONS") {
		if err := migrate.Run(c.GetDatabaseURL(), migrate.Up); err != nil {
			return err
		}
	}

	pool, err := db.Open(c.GetDatabaseURL())
	if err != nil {
		return err
	}
	defer pool.Close()
	store := pgrepo.NewStore(pool)

	handler, err := buildServer(ctx, c, store, logger)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return listenAndServe(srv, logger)
	})
	g.Go(func() error {
		<-gctx.Done()
		return shutdown(srv)
	})
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func buildServer(ctx context.Context, c config.Config, store *pgrepo.Store, logger zerolog.Logger) (*server.Server, error) {
	google := auth.NewGoogle(ctx, auth.GoogleOptions{
		ClientID:     c.GetGoogleClientID(),
		ClientSecret: c.GetGoogleClientSecret(),
		RedirectURL:  c.GetGoogleRedirectURI(),
	})
	if reason := google.ConfigProblem(); reason != "" {
		logger.Warn().Str("reason", reason).Msg("google oauth is not configured; sign-in will fail")
	}

	states, err := oauthstate.NewCookieStore(c.GetSessionSecret(), c.GetStateTTL(), c.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("oauth state store: %w", err)
	}
	sessionManager := sessions.NewManager(store.Sessions, c.GetSessionTTL(), c.IsProduction(), logger)
	refresher := credentials.NewRefresher(store.Credentials, google, logger)

	handshake := auth.NewHandshake(google, states, auth.Repos{
		Users:       store.Users,
		Members:     store.Collections,
		Credentials: store.Credentials,
	}, sessionManager, logger)

	orchestrator := picker.NewOrchestrator(
		picker.NewClient("", nil),
		refresher,
		store.Picker,
		store.Photos,
		store.Collections,
		c.GetPickerSessionTTL(),
		logger,
	)

	return server.New(c, server.Deps{
		Handshake:   handshake,
		Sessions:    sessionManager,
		Picker:      orchestrator,
		Tokens:      refresher,
		Photos:      store.Photos,
		Collections: store.Collections,
		Images:      photos.NewLibraryClient("", nil),
		Health:      store,
	}, logger), nil
}

func listenAndServe(srv *http.Server, logger zerolog.Logger) error {
	logger.Info().Str("addr", srv.Addr).Msg("server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
