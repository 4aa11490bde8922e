package pickerpoll

import (
	"fmt"
	"io"
	"time"
)

// Scheduler abstracts the clock so tests can run the poll loop instantly.
type Scheduler interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type RealScheduler struct{}

func (RealScheduler) Now() time.Time {
	return time.Now()
}

func (RealScheduler) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// PrintOpener shows the picker URI on a terminal. Its windows can't be
// closed by the program.
type PrintOpener struct {
	Out io.Writer
}

func (o PrintOpener) Open(pickerURI string) (Window, error) {
	if _, err := fmt.Fprintf(o.Out, "Open this link to pick photos:\n  %s\n", pickerURI); err != nil {
		return nil, err
	}
	return printedWindow{}, nil
}

type printedWindow struct{}

func (printedWindow) Closed() bool { return true }
func (printedWindow) Close() error { return nil }
