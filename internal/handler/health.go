package handler

import "net/http"

// HandleHealthz reports process liveness for load balancer checks.
func HandleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
