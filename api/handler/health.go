package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/users/api/transport"
	"github.com/fastygo/users/internal/infrastructure/monitor"
	"github.com/fastygo/users/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	status := h.monitor.Check(stdCtx)
	payload := transport.HealthResponse{
		Status: "ok",
		SQLite: status.SQLite,
		Error:  status.Error,
	}
	if !status.SQLite {
		payload.Status = "degraded"
		h.respondJSON(ctx, http.StatusServiceUnavailable, payload)
		return
	}
	h.respondJSON(ctx, http.StatusOK, payload)
}
