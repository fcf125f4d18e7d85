package main

import (
	"context"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterruptStopsRunOnly(t *testing.T) {
	root, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	r := newSignalRouter(cancelRoot)
	runCtx, done := r.begin(root)
	defer done()

	r.handle(os.Interrupt)
	assert.Error(t, runCtx.Err())
	assert.NoError(t, root.Err())

	r.handle(os.Interrupt)
	assert.Error(t, root.Err(), "a second interrupt outside a run stops the program")
}

func TestTerminateStopsEverything(t *testing.T) {
	root, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	r := newSignalRouter(cancelRoot)
	runCtx, done := r.begin(root)
	defer done()

	r.handle(syscall.SIGTERM)
	assert.Error(t, root.Err())
	assert.Error(t, runCtx.Err())
}

func TestInterruptWithoutRun(t *testing.T) {
	root, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	r := newSignalRouter(cancelRoot)
	_, done := r.begin(root)
	done()

	r.handle(os.Interrupt)
	assert.Error(t, root.Err())
}
