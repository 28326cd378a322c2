package httpcontext

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/users/pkg/logger"
)

func TestAttach_GeneratesRequestID(t *testing.T) {
	var ctx fasthttp.RequestCtx
	a := NewAdapter(time.Second)

	stdCtx, cancel := a.Attach(&ctx)
	defer cancel()

	reqID := appLogger.RequestID(stdCtx)
	_, err := uuid.Parse(reqID)
	require.NoError(t, err)
	assert.Equal(t, reqID, string(ctx.Response.Header.Peek(HeaderRequestID)))

	deadline, ok := stdCtx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 200*time.Millisecond)
}

func TestAttach_ReusesClientRequestID(t *testing.T) {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set(HeaderRequestID, "client-42")

	stdCtx, cancel := NewAdapter(0).Attach(&ctx)
	defer cancel()

	assert.Equal(t, "client-42", appLogger.RequestID(stdCtx))
	assert.Equal(t, "client-42", string(ctx.Response.Header.Peek(HeaderRequestID)))
}

func TestRequestID_StableWithinRequest(t *testing.T) {
	var ctx fasthttp.RequestCtx

	first := RequestID(&ctx)
	assert.Equal(t, first, RequestID(&ctx))
}
