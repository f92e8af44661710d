package sheets

import (
	"context"

	pausa "github.com/projetopausa/Site-Pausa-V1"
)

// StatusLog is the status-check store for webhook deployments, which have
// no durable storage of their own. Writes are accepted and dropped so the
// probe endpoint still echoes a created record; reads list nothing.
type StatusLog struct{}

func NewStatusLog() *StatusLog {
	return &StatusLog{}
}

func (sl *StatusLog) CreateStatusCheck(ctx context.Context, check pausa.StatusCheck) error {
	return nil
}

func (sl *StatusLog) ListStatusChecks(ctx context.Context) ([]pausa.StatusCheck, error) {
	return []pausa.StatusCheck{}, nil
}
