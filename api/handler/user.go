package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/users/api/transport"
	"github.com/fastygo/users/domain"
	"github.com/fastygo/users/pkg/httpcontext"
	userUC "github.com/fastygo/users/usecase/user"
)

type UserHandler struct {
	baseHandler
	uc *userUC.UseCase
}

func NewUserHandler(uc *userUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Create user
// @Tags users
// @Router /users [post]
func (h *UserHandler) CreateUser(ctx *fasthttp.RequestCtx) {
	var req transport.CreateUserRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateUser(stdCtx, userUC.NewUser{
		Username: *req.Username,
		Password: *req.Password,
		Email:    req.Email,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, created)
}

// @Summary List users ordered by id
// @Tags users
// @Router /users [get]
func (h *UserHandler) ListUsers(ctx *fasthttp.RequestCtx) {
	skip, err := queryInt(ctx, "skip")
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	users, err := h.uc.ListUsers(stdCtx, skip, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, users)
}

// @Summary Get user
// @Tags users
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(ctx *fasthttp.RequestCtx) {
	id, ok := h.userID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.GetUser(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, user)
}

// @Summary Partially update username, email or is_active
// @Tags users
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(ctx *fasthttp.RequestCtx) {
	id, ok := h.userID(ctx)
	if !ok {
		return
	}

	var req transport.UpdateUserRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateUser(stdCtx, id, domain.UserPatch{
		Username: req.Username,
		Email:    req.Email,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, updated)
}

// @Summary Delete user
// @Tags users
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(ctx *fasthttp.RequestCtx) {
	id, ok := h.userID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteUser(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondNoContent(ctx)
}
