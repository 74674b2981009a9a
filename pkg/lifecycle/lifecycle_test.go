package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/gapline/gapline/pkg/lifecycle"
)

func TestWaitForStartup(t *testing.T) {
	c := lifecycle.New()

	var count atomic.Int32
	c.OnStartup(func() { count.Add(1) })
	c.OnStartup(func() { count.Add(1) })

	if c.Ready() {
		t.Error("Ready() = true before WaitForStartup")
	}

	c.WaitForStartup()

	if got := count.Load(); got != 2 {
		t.Errorf("startup hooks run = %d, want 2", got)
	}
	if !c.Ready() {
		t.Error("Ready() = false after WaitForStartup")
	}
}

func TestShutdownRunsHooks(t *testing.T) {
	c := lifecycle.New()

	var done atomic.Bool
	c.OnShutdown(func() {
		<-c.Context().Done()
		done.Store(true)
	})

	if err := c.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown error: %v", err)
	}
	if !done.Load() {
		t.Error("shutdown hook did not run")
	}
}

func TestShutdownCancelsContext(t *testing.T) {
	c := lifecycle.New()

	if err := c.Context().Err(); err != nil {
		t.Fatalf("context cancelled before shutdown: %v", err)
	}

	if err := c.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown error: %v", err)
	}

	select {
	case <-c.Context().Done():
	default:
		t.Error("context not cancelled after Shutdown")
	}
}

func TestShutdownTimeout(t *testing.T) {
	c := lifecycle.New()

	release := make(chan struct{})
	c.OnShutdown(func() {
		<-release
	})

	err := c.Shutdown(10 * time.Millisecond)
	close(release)

	if err == nil {
		t.Error("Shutdown expected timeout error")
	}
}
