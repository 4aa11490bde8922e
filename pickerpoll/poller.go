// Package pickerpoll drives a picker session from the caller's side: open
// the picker, poll the service until the user is done, then hand control
// back.
package pickerpoll

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/photo-wall/picker"
	"github.com/rs/zerolog"
)

const (
	DefaultInitialDelay     = 2500 * time.Millisecond
	DefaultFallbackInterval = 2500 * time.Millisecond
	DefaultRetryBackoff     = 3 * time.Second
	DefaultTimeout          = 10 * time.Minute
)

var ErrTimedOut = errors.New("picker timed out")

type State int

const (
	StatePolling State = iota
	StateCompleted
	StateTimedOut
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePolling:
		return "polling"
	case StateCompleted:
		return "completed"
	case StateTimedOut:
		return "timed_out"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StatusFetcher reads the progress of a picker session.
type StatusFetcher interface {
	FetchStatus(ctx context.Context, sessionID, collectionID string) (*picker.PollResult, error)
}

// Window is wherever the picker UI was shown.
type Window interface {
	Closed() bool
	Close() error
}

type Opener interface {
	Open(pickerURI string) (Window, error)
}

type Result struct {
	State State
	Count int
	Polls int
}

// Poller runs one picker session to a terminal state. The exported
// durations may be changed before Run.
type Poller struct {
	fetcher   StatusFetcher
	opener    Opener
	scheduler Scheduler
	logger    zerolog.Logger

	InitialDelay     time.Duration
	FallbackInterval time.Duration
	RetryBackoff     time.Duration
	Timeout          time.Duration

	// OnCompleted is called once with the ingested count.
	OnCompleted func(count int)
}

func NewPoller(fetcher StatusFetcher, opener Opener, scheduler Scheduler, logger zerolog.Logger) *Poller {
	if scheduler == nil {
		scheduler = RealScheduler{}
	}
	return &Poller{
		fetcher:          fetcher,
		opener:           opener,
		scheduler:        scheduler,
		logger:           logger,
		InitialDelay:     DefaultInitialDelay,
		FallbackInterval: DefaultFallbackInterval,
		RetryBackoff:     DefaultRetryBackoff,
		Timeout:          DefaultTimeout,
	}
}

// Run opens the picker and polls until the session completes, the deadline
// passes, a terminal error comes back or ctx is cancelled.
func (p *Poller) Run(ctx context.Context, collectionID string, start *picker.StartResult) (Result, error) {
	window, err := p.opener.Open(start.PickerURI)
	if err != nil {
		return Result{State: StateFailed}, err
	}

	logger := p.logger.With().Str("session_id", start.SessionID).Str("collection_id", collectionID).Logger()
	deadline := p.scheduler.Now().Add(p.Timeout)
	delay := p.InitialDelay
	res := Result{State: StatePolling}

	for {
		if err := ctx.Err(); err != nil {
			res.State = StateFailed
			return res, err
		}
		select {
		case <-ctx.Done():
			res.State = StateFailed
			return res, ctx.Err()
		case <-p.scheduler.After(delay):
		}

		if p.scheduler.Now().After(deadline) {
			logger.Warn().Int("polls", res.Polls).Msg("picker timed out")
			res.State = StateTimedOut
			return res, ErrTimedOut
		}

		status, err := p.fetcher.FetchStatus(ctx, start.SessionID, collectionID)
		res.Polls++
		if err != nil {
			if isTerminal(err) {
				logger.Error().Err(err).Msg("picker poll failed")
				res.State = StateFailed
				return res, err
			}
			logger.Warn().Err(err).Dur("retry_in", p.RetryBackoff).Msg("picker poll error")
			delay = p.RetryBackoff
			continue
		}

		if status.Completed {
			if !window.Closed() {
				if err := window.Close(); err != nil {
					logger.Debug().Err(err).Msg("close picker window")
				}
			}
			res.State = StateCompleted
			res.Count = status.Count
			logger.Info().Int("count", status.Count).Int("polls", res.Polls).Msg("picker completed")
			if p.OnCompleted != nil {
				p.OnCompleted(status.Count)
			}
			return res, nil
		}

		var interval string
		if status.PollingConfig != nil {
			interval = status.PollingConfig.PollInterval
		}
		delay = ParsePollInterval(interval, p.FallbackInterval)
	}
}

// ParsePollInterval reads Google's interval advice, given either as a
// duration ("5s") or as bare seconds ("5"). Empty or unusable values give
// fallback.
func ParsePollInterval(v string, fallback time.Duration) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil && secs > 0 {
		return time.Duration(secs * float64(time.Second))
	}
	return fallback
}

func isTerminal(err error) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	switch statusErr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return true
	default:
		return false
	}
}
