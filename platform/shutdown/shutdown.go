// Package shutdown coordinates graceful application shutdown. Hooks are
// registered during startup and fired concurrently when SIGINT or SIGTERM
// arrives; each hook gets the grace period to finish its cleanup.
package shutdown

import (
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/rohanthewiz/logger"
)

const gracePeriod = 10 * time.Second

// Hook is one cleanup function, given the grace period it has to complete
type Hook func(grace time.Duration) error

var (
	mu         sync.Mutex
	hooks      []Hook
	inShutdown bool
)

// Register adds a cleanup hook. Call during startup, before Watch.
func Register(fn Hook) {
	mu.Lock()
	defer mu.Unlock()
	hooks = append(hooks, fn)
}

// InProgress reports whether shutdown has begun
func InProgress() bool {
	mu.Lock()
	defer mu.Unlock()
	return inShutdown
}

// Watch installs the signal handler. When a shutdown signal arrives, all
// hooks run concurrently; done is closed once they finish or the grace
// period expires.
func Watch(done chan struct{}) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer close(done)

		sig := <-sigChan
		logger.Info("Received shutdown signal", "signal", sig.String())

		mu.Lock()
		inShutdown = true
		registered := append([]Hook(nil), hooks...)
		mu.Unlock()

		var wg sync.WaitGroup
		for i, hook := range registered {
			wg.Add(1)
			go func(n int, fn Hook) {
				defer wg.Done()
				if err := fn(gracePeriod); err != nil {
					logger.LogErr(err, "shutdown hook failed")
				}
				logger.Debug("Shutdown hook completed", "hook", strconv.Itoa(n))
			}(i, hook)
		}

		finished := make(chan struct{})
		go func() {
			wg.Wait()
			close(finished)
		}()

		select {
		case <-finished:
			logger.Info("All shutdown hooks completed")
		case <-time.After(gracePeriod):
			logger.Warn("Shutdown hooks timed out", "grace", gracePeriod.String())
		}
	}()
}
