package ports

import (
	"context"

	"github.com/libraryhub/portal/internal/core/domain"
)

// SessionEventPublisher fans session transitions out to observers.
type SessionEventPublisher interface {
	Publish(event domain.SessionEvent)
}

// SessionEventHandler observes one session event.
type SessionEventHandler interface {
	Handle(ctx context.Context, event domain.SessionEvent) error
}
