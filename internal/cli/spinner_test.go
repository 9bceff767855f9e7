package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer for writes from the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsMessage(t *testing.T) {
	var out syncBuffer
	s := newSpinner("Computing layout...")
	s.out = &out
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	if got := out.String(); !strings.Contains(got, "Computing layout...") {
		t.Errorf("spinner output %q should contain the message", got)
	}
	if s.Cancelled() {
		t.Error("Stop() should not report the spinner as cancelled")
	}
}

func TestSpinnerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Working...")
	s.out = &syncBuffer{}
	s.Start()

	cancel()
	time.Sleep(2 * spinnerInterval)

	if !s.Cancelled() {
		t.Error("spinner should report cancelled after context cancellation")
	}
}

func TestSpinnerStopsOnContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), spinnerInterval/2)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Working...")
	s.out = &syncBuffer{}
	s.Start()
	time.Sleep(2 * spinnerInterval)

	if !s.Cancelled() {
		t.Error("spinner should report cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Working...")
	s.out = &syncBuffer{}
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerClearsLineOnStop(t *testing.T) {
	var out syncBuffer
	s := newSpinner("Working...")
	s.out = &out
	s.Start()
	time.Sleep(2 * spinnerInterval)
	s.Stop()

	if got := out.String(); !strings.HasSuffix(got, "\r") {
		t.Errorf("output should end with a carriage return after Stop, got %q", got)
	}
}
