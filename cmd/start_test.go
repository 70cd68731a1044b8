package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeServer struct {
	err   error
	calls int
}

func (f *fakeServer) Shutdown() error {
	f.calls++
	return f.err
}

type fakeStopper struct {
	err   error
	calls int
}

func (f *fakeStopper) Stop() error {
	f.calls++
	return f.err
}

func TestShutdown_LogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	server := &fakeServer{err: errors.New("listener busy")}
	sched := &fakeStopper{err: errors.New("scheduler not running")}

	shutdown(server, sched, zap.New(core))

	assert.Equal(t, 1, server.calls)
	assert.Equal(t, 1, sched.calls)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Failed to shut down server", entries[0].Message)
	assert.Equal(t, "listener busy", entries[0].ContextMap()["error"])
	assert.Equal(t, "Failed to stop scheduler", entries[1].Message)
}

func TestShutdown_WithoutServer(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sched := &fakeStopper{}

	shutdown(nil, sched, zap.New(core))

	assert.Equal(t, 1, sched.calls)
	assert.Zero(t, logs.Len())
}
