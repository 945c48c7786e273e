// Package health serves the readiness endpoint. Liveness stays on the
// chi Heartbeat middleware.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/georgemunganga/gastrotech-backend/internal/platform/logger"
)

const checkTimeout = 2 * time.Second

// Check reports whether one dependency can serve traffic.
type Check func(ctx context.Context) error

type report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Ready runs every check and answers 503 when any of them fails.
func Ready(checks map[string]Check, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()

		out := report{Status: "ready", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for name, check := range checks {
			if err := check(ctx); err != nil {
				log.Warn("readiness check failed", "check", name, "error", err)
				out.Checks[name] = err.Error()
				out.Status = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			out.Checks[name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(out)
	}
}
