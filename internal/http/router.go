package router

import (
	"net/http"

	"github.com/charmbracelet/log"

	"task-tracker-api/internal/apierror"
	"task-tracker-api/internal/http/handlers"
	"task-tracker-api/internal/workerpool"
)

type Options struct {
	Logger       *log.Logger
	Pool         *workerpool.Pool
	ClientOrigin string
}

func New(handler *handlers.TaskHandler, health *handlers.HealthHandler, opts Options) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/tasks", handler.List)
	mux.HandleFunc("POST /api/tasks", handler.Create)
	mux.HandleFunc("PUT /api/tasks/{id}", handler.Update)
	mux.HandleFunc("DELETE /api/tasks/{id}", handler.Delete)
	mux.HandleFunc("PATCH /api/tasks/{id}/toggle", handler.Toggle)
	mux.HandleFunc("GET /api/health", health.Check)

	mux.HandleFunc("/", apierror.WriteRouteNotFound)

	var h http.Handler = mux
	h = admit(opts.Pool, h)
	h = logRequests(opts.Logger, h)
	h = cors(opts.ClientOrigin, h)

	return h
}
