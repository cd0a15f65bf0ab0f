// Package apierror turns any failure raised while serving a request into the
// single error envelope and status code the API exposes.
package apierror

import (
	"encoding/json"
	"errors"
	"net/http"

	"task-tracker-api/internal/service"
	"task-tracker-api/internal/validation"
	"task-tracker-api/internal/workerpool"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindNotFound
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unexpected"
	}
}

const (
	LabelValidation    = "Validation failed"
	LabelNotFound      = "Task not found"
	LabelUnavailable   = "Server busy"
	LabelServerError   = "Server Error"
	LabelRouteNotFound = "Route not found"
)

// Envelope is the body of every error response.
type Envelope struct {
	Error   string                 `json:"error"`
	Details []validation.Violation `json:"details,omitempty"`
	Message string                 `json:"message,omitempty"`
}

func Classify(err error) Kind {
	var verr *validation.Error

	switch {
	case errors.As(err, &verr):
		return KindValidation
	case errors.Is(err, service.ErrNotFound):
		return KindNotFound
	case errors.Is(err, workerpool.ErrPoolFull), errors.Is(err, workerpool.ErrPoolClosed):
		return KindUnavailable
	default:
		return KindUnexpected
	}
}

// Normalize maps err to a status code and envelope. Unexpected errors never
// leak their text.
func Normalize(err error) (int, Envelope) {
	switch Classify(err) {
	case KindValidation:
		var verr *validation.Error
		errors.As(err, &verr)
		return http.StatusBadRequest, Envelope{Error: LabelValidation, Details: verr.Violations}
	case KindNotFound:
		return http.StatusNotFound, Envelope{Error: LabelNotFound}
	case KindUnavailable:
		return http.StatusServiceUnavailable, Envelope{Error: LabelUnavailable}
	default:
		return http.StatusInternalServerError, Envelope{Error: LabelServerError}
	}
}

// RouteNotFound is the envelope for requests no route matches.
func RouteNotFound(method, path string) (int, Envelope) {
	return http.StatusNotFound, Envelope{
		Error:   LabelRouteNotFound,
		Message: "Cannot " + method + " " + path,
	}
}

// Write sends the normalized envelope for err and returns the status used.
func Write(w http.ResponseWriter, err error) int {
	status, env := Normalize(err)
	writeJSON(w, status, env)
	return status
}

func WriteRouteNotFound(w http.ResponseWriter, r *http.Request) {
	status, env := RouteNotFound(r.Method, r.URL.Path)
	writeJSON(w, status, env)
}

func writeJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
