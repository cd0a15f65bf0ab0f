package handlers

import (
	"encoding/json"
	"net/http"

	"task-tracker-api/internal/apierror"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// fail writes the normalized envelope for err. Server-side failures are
// logged since their detail never reaches the client.
func (h *TaskHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if status := apierror.Write(w, err); status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}
