package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"codeberg.org/mutker/deepcoolctl/internal/logger"
)

// signalRouter sends SIGINT to the active monitoring run when there is one,
// and every other signal to the root context.
type signalRouter struct {
	root context.CancelFunc

	mu  sync.Mutex
	run context.CancelFunc
}

func newSignalRouter(root context.CancelFunc) *signalRouter {
	return &signalRouter{root: root}
}

func (r *signalRouter) watch() func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigs:
				r.handle(sig)
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// begin derives the context of one interruptible run. The returned function
// ends the run and must always be called.
func (r *signalRouter) begin(ctx context.Context) (context.Context, func()) {
	runCtx, cancel := context.WithCancel(ctx)

	r.mu.Lock()
	r.run = cancel
	r.mu.Unlock()

	return runCtx, func() {
		r.mu.Lock()
		r.run = nil
		r.mu.Unlock()
		cancel()
	}
}

func (r *signalRouter) handle(sig os.Signal) {
	r.mu.Lock()
	run := r.run
	r.run = nil
	r.mu.Unlock()

	if run != nil && sig == os.Interrupt {
		logger.Info().Msg("Stopped by user")
		run()
		return
	}

	logger.Info().Str("signal", sig.String()).Msg("Received termination signal")
	r.root()
}
