package output

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitAction_CapturesSingleBufferedResult(t *testing.T) {
	boom := errors.New("detect failed")
	errCh := make(chan error, 1)
	errCh <- boom

	// The channel holds exactly one value; waitAction must hand it back so
	// the caller never has to receive a second time.
	err, ok := waitAction(context.Background(), errCh)
	require.True(t, ok)
	assert.Equal(t, boom, err)

	select {
	case <-errCh:
		t.Fatal("channel should be drained after waitAction")
	default:
	}
}

func TestWaitAction_NilResult(t *testing.T) {
	errCh := make(chan error, 1)
	errCh <- nil

	err, ok := waitAction(context.Background(), errCh)
	require.True(t, ok)
	assert.NoError(t, err)
}

func TestWaitAction_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := waitAction(ctx, make(chan error, 1))
	assert.False(t, ok)
}

func TestRunWithSpinner_ReturnsPromptly(t *testing.T) {
	boom := errors.New("detect failed")

	done := make(chan error, 1)
	go func() {
		done <- RunWithSpinner(context.Background(), func() error { return boom })
	}()

	select {
	case err := <-done:
		assert.Equal(t, boom, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunWithSpinner did not return after the action completed")
	}
}
