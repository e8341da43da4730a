// Package audit turns session events into an access trail: one structured log
// line and one counter increment per transition.
package audit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/libraryhub/portal/internal/api/metrics"
	"github.com/libraryhub/portal/internal/core/domain"
	"github.com/libraryhub/portal/internal/core/ports"
)

type Recorder struct {
	log zerolog.Logger
}

var _ ports.SessionEventHandler = (*Recorder)(nil)

func NewRecorder(log zerolog.Logger) *Recorder {
	return &Recorder{log: log}
}

func (r *Recorder) Handle(_ context.Context, e domain.SessionEvent) error {
	role := e.Role.String()
	if role == "" {
		role = "none"
	}
	metrics.SessionTransitionsTotal.WithLabelValues(string(e.Reason), role).Inc()

	r.log.Info().
		Str("context_id", e.ContextID).
		Str("reason", string(e.Reason)).
		Str("role", role).
		Time("at", e.At).
		Msg("session audit")
	return nil
}
