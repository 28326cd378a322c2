package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newCtx(method, uri string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	return ctx
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := AccessLog(zap.New(core))(func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusCreated)
	})

	ctx := newCtx(fasthttp.MethodPost, "/users")
	ctx.Request.Header.Set("X-Request-ID", "req-7")
	ctx.Request.Header.SetUserAgent("curl/8")
	h(ctx)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-7", fields["request_id"])
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/users", fields["path"])
	assert.EqualValues(t, 201, fields["status"])
	assert.Equal(t, "curl/8", fields["user_agent"])
	assert.Contains(t, fields, "remote_addr")
	assert.Equal(t, "req-7", string(ctx.Response.Header.Peek("X-Request-ID")))
}

func TestAccessLog_ServerErrorsAtErrorLevel(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := AccessLog(zap.New(core))(func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
	})

	h(newCtx(fasthttp.MethodGet, "/users/1"))

	require.Equal(t, 1, logs.FilterMessage("request completed").Len())
	assert.Equal(t, zap.ErrorLevel, logs.All()[0].Level)
	assert.NotContains(t, logs.All()[0].ContextMap(), "user_agent")
}

func TestRecover(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := Chain(func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString("partial")
		panic("storage exploded")
	}, Recover(zap.New(core)))

	ctx := newCtx(fasthttp.MethodGet, "/users")
	require.NotPanics(t, func() { h(ctx) })

	assert.Equal(t, fasthttp.StatusInternalServerError, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"detail":"internal server error","code":"INTERNAL"}`, string(ctx.Response.Body()))
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
			return func(ctx *fasthttp.RequestCtx) {
				order = append(order, name)
				next(ctx)
			}
		}
	}

	Chain(func(*fasthttp.RequestCtx) { order = append(order, "handler") }, mark("outer"), mark("inner"))(newCtx("GET", "/"))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
