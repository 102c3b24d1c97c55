package logview

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/biovault/bvconsole/internal/ansi"
	"github.com/biovault/bvconsole/internal/logging"
)

// Options configures a Viewer.
type Options struct {
	// MaxBytes limits how much log tail is fetched per refresh.
	MaxBytes int64

	// PollInterval is how often Run refreshes. Zero disables polling and
	// makes Run render once and return.
	PollInterval time.Duration

	// ShowVerbose includes DEBUG/TRACE lines.
	ShowVerbose bool
}

// Viewer polls a log source and renders its text into HTML. It is the
// auto-refreshing log tab without the DOM: each refresh fetches the tail,
// filters verbose lines, renders, and hands the HTML to the sink.
type Viewer struct {
	source Source
	opts   Options
	sink   func(html string)
	log    zerolog.Logger
}

// NewViewer creates a viewer over the given source. sink receives the
// rendered HTML after every refresh.
func NewViewer(source Source, opts Options, sink func(html string)) *Viewer {
	return &Viewer{
		source: source,
		opts:   opts,
		sink:   sink,
		log:    logging.Component("logview"),
	}
}

// RenderOnce fetches, filters, and renders the current log text.
func (v *Viewer) RenderOnce(ctx context.Context) (string, error) {
	text, err := v.source.FetchLogText(ctx, v.opts.MaxBytes)
	if err != nil {
		return "", fmt.Errorf("fetch log text: %w", err)
	}
	text = FilterVerbose(text, v.opts.ShowVerbose)
	return ansi.Render(text), nil
}

// Run renders immediately, then keeps refreshing every PollInterval until
// the context is canceled. Fetch errors are logged and the previous output
// stands; they do not stop the loop.
func (v *Viewer) Run(ctx context.Context) error {
	refresh := func() {
		html, err := v.RenderOnce(ctx)
		if err != nil {
			if ctx.Err() == nil {
				v.log.Warn().Err(err).Msg("log refresh failed")
			}
			return
		}
		v.sink(html)
	}

	refresh()
	if v.opts.PollInterval <= 0 {
		return nil
	}

	ticker := time.NewTicker(v.opts.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			refresh()
		}
	}
}
