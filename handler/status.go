package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	pausa "github.com/projetopausa/Site-Pausa-V1"
	"go.uber.org/zap"
)

type statusCheckCreate struct {
	ClientName string `json:"client_name"`
}

type StatusHandler struct {
	store pausa.StatusStore
	log   *zap.SugaredLogger
}

func NewStatusHandler(store pausa.StatusStore, log *zap.SugaredLogger) *StatusHandler {
	return &StatusHandler{
		store: store,
		log:   log,
	}
}

// Create records a status check and echoes it back with the server-assigned
// id and timestamp.
func (sh StatusHandler) Create(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input statusCheckCreate
	if err := decode(r, &input); err != nil {
		sh.log.Errorw("Create", "error", err.Error())
		respondErr(ctx, rw, http.StatusBadRequest, err)
		return
	}
	if input.ClientName == "" {
		respondErr(ctx, rw, http.StatusBadRequest, errors.New("client_name is required"))
		return
	}

	check := pausa.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: input.ClientName,
		Timestamp:  time.Now().UTC(),
	}

	if err := sh.store.CreateStatusCheck(ctx, check); err != nil {
		sh.log.Errorw("Create", "error", err.Error())
		respondErr(ctx, rw, http.StatusInternalServerError, err)
		return
	}

	respond(ctx, rw, http.StatusOK, check)
}

// List returns the stored status checks, up to the backend's cap, in
// insertion order. Backends without durable storage answer an empty list.
func (sh StatusHandler) List(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks, err := sh.store.ListStatusChecks(ctx)
	if err != nil {
		sh.log.Errorw("List", "error", err.Error())
		respondErr(ctx, rw, http.StatusInternalServerError, err)
		return
	}
	if checks == nil {
		checks = []pausa.StatusCheck{}
	}

	respond(ctx, rw, http.StatusOK, checks)
}
