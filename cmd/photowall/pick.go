package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jrsteele09/photo-wall/internal/config"
	"github.com/jrsteele09/photo-wall/internal/logging"
	"github.com/jrsteele09/photo-wall/pickerpoll"
	"github.com/spf13/cobra"
)

type pickFlags struct {
	serverURL    string
	sessionToken string
	collectionID string
	timeout      time.Duration
}

// newPickCmd starts a picker session against a running server, prints the
// link to open and waits for the selection to be ingested.
func newPickCmd() *cobra.Command {
	var flags pickFlags
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Add photos to a collection with the Google Photos picker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.sessionToken == "" {
				flags.sessionToken = os.Getenv("PWO_SESSION")
			}
			if flags.sessionToken == "" || flags.collectionID == "" {
				return errors.New("--session (or PWO_SESSION) and --collection are required")
			}

			c, err := config.Load(v)
			if err != nil {
				return err
			}
			logger := logging.New(c.GetEnv(), c.GetLogLevel())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			client := pickerpoll.NewClient(flags.serverURL, flags.sessionToken, &http.Client{Timeout: 30 * time.Second})
			start, err := client.Start(ctx, flags.collectionID)
			if err != nil {
				return fmt.Errorf("start picker: %w", err)
			}

			poller := pickerpoll.NewPoller(client, pickerpoll.PrintOpener{Out: cmd.OutOrStdout()}, pickerpoll.RealScheduler{}, logger)
			if flags.timeout > 0 {
				poller.Timeout = flags.timeout
			}
			poller.OnCompleted = func(count int) {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d photo(s) to collection %s\n", count, flags.collectionID)
			}

			res, err := poller.Run(ctx, flags.collectionID, start)
			if err != nil {
				return fmt.Errorf("picker %s after %d poll(s): %w", res.State, res.Polls, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.serverURL, "server", "http://localhost:8080", "photo wall server URL")
	cmd.Flags().StringVar(&flags.sessionToken, "session", "", "value of the pwo_session cookie")
	cmd.Flags().StringVar(&flags.collectionID, "collection", "", "collection to add photos to")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", pickerpoll.DefaultTimeout, "give up after this long")
	return cmd
}
