package handler

import (
	"context"
	"net/http"
	"time"

	pausa "github.com/projetopausa/Site-Pausa-V1"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

// HealthResponse reports service liveness and backend connectivity. This is
// the only surface that exposes persistence state explicitly.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

type HealthHandler struct {
	store pausa.ContactStore
	log   *zap.SugaredLogger
}

func NewHealthHandler(store pausa.ContactStore, log *zap.SugaredLogger) *HealthHandler {
	return &HealthHandler{
		store: store,
		log:   log,
	}
}

// Check probes the persistence backend under a bounded timeout. It always
// answers HTTP 200: an unreachable backend degrades the report, it does not
// fail the endpoint.
func (hh HealthHandler) Check(rw http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	res := HealthResponse{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if err := hh.store.Ping(ctx); err != nil {
		hh.log.Errorw("Check", "error", err.Error())
		res.Status = "unhealthy"
		res.Database = "disconnected"
		res.Error = err.Error()
	}

	respond(r.Context(), rw, http.StatusOK, res)
}

// Status answers a static online marker, independent of any backend.
func Status(rw http.ResponseWriter, r *http.Request) {
	respond(r.Context(), rw, http.StatusOK, map[string]string{"status": "online"})
}

// Root answers the API greeting probed by the front-end during development.
func Root(rw http.ResponseWriter, r *http.Request) {
	respond(r.Context(), rw, http.StatusOK, map[string]string{
		"message": "Portal Pausa API está funcionando!",
	})
}
