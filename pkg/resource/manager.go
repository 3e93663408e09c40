// pkg/resource/manager.go
package resource

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opd-ai/go-spaceman/pkg/config"
	"github.com/opd-ai/go-spaceman/pkg/logging"
)

// Manager tracks the background goroutines of a session so they can be
// stopped together with a bounded wait.
type Manager struct {
	maxGoroutines   int64
	shutdownTimeout time.Duration

	count   int64
	started int64
	panics  int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
	logger *logging.Logger
}

// NewManager creates a manager bounded by cfg.
func NewManager(cfg config.ResourceConfig, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Discard()
	}
	if cfg.MaxGoroutines <= 0 {
		cfg.MaxGoroutines = 1
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		maxGoroutines:   int64(cfg.MaxGoroutines),
		shutdownTimeout: cfg.ShutdownTimeout,
		ctx:             ctx,
		cancel:          cancel,
		logger:          logger.Component("resource"),
	}
}

// Go runs fn in a tracked goroutine. The context passed to fn is cancelled
// by Shutdown. It returns an error if the goroutine limit would be exceeded
// or the manager has shut down.
func (m *Manager) Go(name string, fn func(context.Context)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return fmt.Errorf("resource manager shut down, cannot start %s", name)
	}
	current := atomic.LoadInt64(&m.count)
	if current >= m.maxGoroutines {
		m.logger.Warn(m.ctx, "Goroutine limit exceeded",
			"current", current,
			"limit", m.maxGoroutines,
			"name", name,
		)
		return fmt.Errorf("goroutine limit exceeded: %d/%d", current, m.maxGoroutines)
	}

	atomic.AddInt64(&m.count, 1)
	atomic.AddInt64(&m.started, 1)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer atomic.AddInt64(&m.count, -1)
		defer func() {
			if r := recover(); r != nil {
				atomic.AddInt64(&m.panics, 1)
				m.logger.Error(m.ctx, "Goroutine panic", fmt.Errorf("panic: %v", r), "name", name)
			}
		}()
		fn(m.ctx)
	}()
	return nil
}

// Stats is a snapshot of tracked goroutine counters.
type Stats struct {
	Running       int64 `json:"running"`
	Started       int64 `json:"started"`
	Panics        int64 `json:"panics"`
	MaxGoroutines int64 `json:"max_goroutines"`
}

// Stats returns the current counters.
func (m *Manager) Stats() Stats {
	return Stats{
		Running:       atomic.LoadInt64(&m.count),
		Started:       atomic.LoadInt64(&m.started),
		Panics:        atomic.LoadInt64(&m.panics),
		MaxGoroutines: m.maxGoroutines,
	}
}

// Shutdown cancels every tracked goroutine and waits for them to return,
// up to the configured timeout or until ctx is done.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	m.logger.Info(ctx, "Shutting down resource manager", "running", atomic.LoadInt64(&m.count))
	m.cancel()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(m.shutdownTimeout)
	defer timer.Stop()
	select {
	case <-done:
		m.logger.Info(ctx, "All tracked goroutines finished")
		return nil
	case <-timer.C:
	case <-ctx.Done():
	}
	remaining := atomic.LoadInt64(&m.count)
	m.logger.Warn(ctx, "Shutdown timeout exceeded with goroutines still running", "remaining", remaining)
	return fmt.Errorf("shutdown timeout: %d goroutines still running", remaining)
}
