package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/users/api/transport"
	"github.com/fastygo/users/domain"
	"github.com/fastygo/users/pkg/httpcontext"
	authUC "github.com/fastygo/users/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// Login always answers 200; the message tells success, failure and inactive apart.
//
// @Summary Check credentials
// @Tags auth
// @Router /login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	outcome, err := h.uc.Login(stdCtx, *req.Username, *req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewMessage(string(outcome)))
}

// @Summary Change password
// @Tags auth
// @Router /users/{id}/password [put]
func (h *AuthHandler) ChangePassword(ctx *fasthttp.RequestCtx) {
	id, ok := h.userID(ctx)
	if !ok {
		return
	}

	var req transport.PasswordChangeRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.ChangePassword(stdCtx, id, *req.OldPassword, *req.NewPassword); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewMessage(domain.PasswordChanged))
}
