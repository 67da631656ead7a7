package output

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh/spinner"
)

// SpinnerOption configures a spinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title   string
	timeout time.Duration
}

// WithTitle sets the spinner title.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) {
		c.title = title
	}
}

// WithTimeout sets the spinner timeout.
func WithTimeout(timeout time.Duration) SpinnerOption {
	return func(c *spinnerConfig) {
		c.timeout = timeout
	}
}

// RunWithSpinner executes an action with a spinner.
// Returns the action's error if any.
func RunWithSpinner(ctx context.Context, action func() error, opts ...SpinnerOption) error {
	cfg := &spinnerConfig{
		title:   "Working...",
		timeout: 0,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	// If not a TTY, just run the action directly
	if !IsTTY() {
		return action()
	}

	actionCtx := ctx
	var cancel context.CancelFunc
	if cfg.timeout > 0 {
		actionCtx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- action()
	}()

	// The result channel is read at most once, inside the spinner closure.
	// It must be captured there, not received again afterwards: the single
	// buffered value is gone once consumed.
	var actionErr error
	actionDone := false

	spinnerErr := spinner.New().Title(cfg.title).Action(func() {
		actionErr, actionDone = waitAction(actionCtx, errCh)
	}).Run()

	if spinnerErr != nil {
		return fmt.Errorf("spinner error: %w", spinnerErr)
	}

	if actionDone {
		return actionErr
	}
	return actionCtx.Err()
}

// waitAction blocks until the action delivers its result or ctx ends. The
// boolean reports whether a result was received.
func waitAction(ctx context.Context, errCh <-chan error) (error, bool) {
	select {
	case <-ctx.Done():
		return nil, false
	case err := <-errCh:
		return err, true
	}
}
