package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	devicedomain "github.com/micro-ha/smarthome-dashboard/internal/domain/device"
	userdomain "github.com/micro-ha/smarthome-dashboard/internal/domain/user"
	"github.com/micro-ha/smarthome-dashboard/internal/services/dashboard"
)

// Banner is the plain-text body of GET /.
const Banner = "Smart Home Backend OK"

// DashboardBuilder assembles the dashboard aggregate.
type DashboardBuilder interface {
	Build(ctx context.Context) (dashboard.Dashboard, error)
}

// Pinger reports storage liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// API groups HTTP handlers and dependencies.
type API struct {
	devices   devicedomain.Service
	users     userdomain.Service
	dashboard DashboardBuilder
	db        Pinger
	logger    *slog.Logger
}

// New creates HTTP handlers with explicit dependencies.
func New(
	devices devicedomain.Service,
	users userdomain.Service,
	dash DashboardBuilder,
	db Pinger,
	logger *slog.Logger,
) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		devices:   devices,
		users:     users,
		dashboard: dash,
		db:        db,
		logger:    logger,
	}
}

// Logger returns request logger used by HTTP middleware.
func (a *API) Logger() *slog.Logger {
	return a.logger
}

// Health reports service liveness and database reachability.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	if a.db != nil {
		if err := a.db.Ping(r.Context()); err != nil {
			a.logger.Warn("health check failed", "err", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "degraded", "database": false})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "database": true})
}

// Root answers the bare liveness banner.
func (a *API) Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, Banner)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]any{"message": message})
}

// decodeJSON reads the request body into dst. An empty body decodes as an
// empty object. With strict set, unknown fields are rejected the way the
// device schema rejects them. It writes the 400 response itself and reports
// whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, strict bool) bool {
	dec := json.NewDecoder(r.Body)
	if strict {
		dec.DisallowUnknownFields()
	}
	err := dec.Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s is not allowed", field))
		return false
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%q must be a %s", typeErr.Field, jsonKind(typeErr.Type.Kind().String())))
		return false
	}
	writeError(w, http.StatusBadRequest, "Invalid JSON payload")
	return false
}

func jsonKind(kind string) string {
	switch kind {
	case "bool":
		return "boolean"
	case "float64", "int":
		return "number"
	default:
		return kind
	}
}
