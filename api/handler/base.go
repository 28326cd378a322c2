package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/users/api/transport"
	"github.com/fastygo/users/domain"
	"github.com/fastygo/users/pkg/httpcontext"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("encode response", zap.Error(err))
		status = http.StatusInternalServerError
		body = []byte(transport.NewError(string(domain.ErrCodeInternal), "internal server error").String())
	}
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func (h baseHandler) respondNoContent(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(http.StatusNoContent)
	ctx.ResetBody()
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status, code := mapError(err)
	detail := err.Error()
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		detail = dErr.Message
	}
	if status == http.StatusInternalServerError {
		detail = "internal server error"
	}
	h.respondJSON(ctx, status, transport.NewError(code, detail))
}

// decode unmarshals and validates the body into dst, answering 400 on failure.
func (h baseHandler) decode(ctx *fasthttp.RequestCtx, dst any) bool {
	if err := json.Unmarshal(ctx.PostBody(), dst); err != nil {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		h.respondError(ctx, validationError(err))
		return false
	}
	return true
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.ErrInvalidPayload
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s is not a valid email address", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return domain.NewError(domain.ErrCodeInvalid, strings.Join(msgs, "; "))
}

// userID parses the {id} route parameter, answering 400 when it is not an integer.
func (h baseHandler) userID(ctx *fasthttp.RequestCtx) (int64, bool) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.respondError(ctx, domain.Invalid("invalid user id %q", raw))
		return 0, false
	}
	return id, true
}

// queryInt returns nil when key is absent or empty.
func queryInt(ctx *fasthttp.RequestCtx, key string) (*int, error) {
	raw := string(ctx.QueryArgs().Peek(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.Invalid("%s must be an integer", key)
	}
	return &v, nil
}

func mapError(err error) (int, string) {
	switch code := domain.CodeOf(err); code {
	case domain.ErrCodeNotFound:
		return http.StatusNotFound, string(code)
	case domain.ErrCodeInvalid, domain.ErrCodeConflict, domain.ErrCodeInvalidCredentials:
		return http.StatusBadRequest, string(code)
	default:
		return http.StatusInternalServerError, string(domain.ErrCodeInternal)
	}
}
