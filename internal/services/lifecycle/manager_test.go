package lifecycle

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestShutdown_ReverseOrderAndJoinedErrors(t *testing.T) {
	m := New(time.Second, nil)

	var order []string
	errFlush := errors.New("flush failed")
	m.Register("logger", func(context.Context) error {
		order = append(order, "logger")
		return nil
	})
	m.Register("store", func(context.Context) error {
		order = append(order, "store")
		return errFlush
	})
	m.Register("http_server", func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		order = append(order, "http_server")
		return nil
	})
	m.Register("ignored", nil)

	err := m.Shutdown(context.Background())
	require.ErrorIs(t, err, errFlush)
	assert.Equal(t, []string{"http_server", "store", "logger"}, order)

	// hooks run only once
	require.NoError(t, m.Shutdown(context.Background()))
	assert.Len(t, order, 3)
}

func TestShutdown_LogsFailedComponent(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := New(time.Second, zap.New(core))
	m.Register("store", func(context.Context) error { return errors.New("busy") })
	m.Register("http_server", func(context.Context) error { return nil })

	require.EqualError(t, m.Shutdown(context.Background()), "busy")

	failed := logs.FilterMessage("component stop failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "store", failed[0].ContextMap()["component"])
	assert.Equal(t, 1, logs.FilterMessage("component stopped").Len())
}

func TestAwait_CancelsOnSignal(t *testing.T) {
	m := New(0, nil)
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	sigCh <- syscall.SIGTERM
	m.await(sigCh, cancel)

	select {
	case <-ctx.Done():
	default:
		t.Fatal("context was not cancelled")
	}
}
