package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// syncBuffer guards a buffer shared with the spinner goroutine.
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

func testSpinner(ctx context.Context, msg string) (*Spinner, *syncBuffer) {
	out := &syncBuffer{}
	s := newSpinnerWithContext(ctx, msg)
	s.out = out
	return s, out
}

func TestSpinnerRendersMessage(t *testing.T) {
	s, out := testSpinner(context.Background(), "Scanning workspace...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(out.String(), "Scanning workspace...") {
		t.Errorf("spinner output %q does not contain the message", out.String())
	}
	if s.Cancelled() {
		t.Error("Stop should not report the parent context as cancelled")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, _ := testSpinner(ctx, "Testing with context...")
	s.Start()

	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s, _ := testSpinner(context.Background(), "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerWriteClearsFrame(t *testing.T) {
	s, out := testSpinner(context.Background(), "Working...")
	s.Start()
	time.Sleep(200 * time.Millisecond)

	logger := log.NewWithOptions(s, log.Options{})
	logger.Info("collected dependencies")
	s.Stop()

	got := out.String()
	clear := "\r" + strings.Repeat(" ", len("Working...")+4) + "\r"
	i := strings.Index(got, "collected dependencies")
	if i < 0 {
		t.Fatalf("output %q does not contain the log line", got)
	}
	line := got[strings.LastIndex(got[:i], "\r")+1 : i]
	if !strings.HasSuffix(got[:i], clear+line) || strings.Contains(line, "Working...") {
		t.Errorf("log line shares the spinner line: %q", got)
	}
}

func TestSpinnerWriteAfterStop(t *testing.T) {
	s, out := testSpinner(context.Background(), "Working...")
	s.Start()
	s.Stop()
	before := out.String()

	if _, err := s.Write([]byte("done\n")); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != before+"done\n" {
		t.Errorf("output = %q, want %q", got, before+"done\n")
	}
}

func TestStopFirst(t *testing.T) {
	var stops int
	inner := hoistChooser(func() int { return 2 })
	c := &stopFirst{Chooser: inner, stop: func() { stops++ }}

	for range 3 {
		got, err := c.Choose("dep", nil)
		if err != nil || got != 2 {
			t.Fatalf("Choose = %d, %v", got, err)
		}
	}
	if stops != 1 {
		t.Errorf("stop called %d times, want 1", stops)
	}
}

func TestSpinnerLogger(t *testing.T) {
	var base bytes.Buffer
	logger := log.NewWithOptions(&base, log.Options{})
	s, out := testSpinner(context.Background(), "Scanning workspace...")
	s.Start()

	spinnerLogger(logger, s).Info("rewrote member")
	logger.Info("after the run")
	s.Stop()

	if !strings.Contains(out.String(), "rewrote member") {
		t.Errorf("spinner output %q does not contain the run log", out.String())
	}
	if strings.Contains(base.String(), "rewrote member") || !strings.Contains(base.String(), "after the run") {
		t.Errorf("base logger output = %q", base.String())
	}
}
