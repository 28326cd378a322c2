package router

import (
	"net/http"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/users/api/handler"
	"github.com/fastygo/users/internal/middleware"
)

type Handlers struct {
	User   *apiHandler.UserHandler
	Auth   *apiHandler.AuthHandler
	Health *apiHandler.HealthHandler
}

// New builds the route table and wraps it with mws (first is outermost).
func New(handlers Handlers, mws ...middleware.Middleware) fasthttp.RequestHandler {
	r := router.New()
	r.NotFound = jsonStatus(http.StatusNotFound, "Not Found")
	r.MethodNotAllowed = jsonStatus(http.StatusMethodNotAllowed, "Method Not Allowed")

	if handlers.Health != nil {
		r.GET("/health", handlers.Health.Check)
	}

	r.POST("/users", handlers.User.CreateUser)
	r.GET("/users", handlers.User.ListUsers)
	r.GET("/users/{id}", handlers.User.GetUser)
	r.PUT("/users/{id}", handlers.User.UpdateUser)
	r.DELETE("/users/{id}", handlers.User.DeleteUser)

	r.POST("/login", handlers.Auth.Login)
	r.PUT("/users/{id}/password", handlers.Auth.ChangePassword)

	return middleware.Chain(r.Handler, mws...)
}

func jsonStatus(status int, detail string) fasthttp.RequestHandler {
	body := `{"detail":"` + detail + `"}`
	return func(ctx *fasthttp.RequestCtx) {
		ctx.Response.Header.SetContentType("application/json")
		ctx.SetStatusCode(status)
		ctx.SetBodyString(body)
	}
}
