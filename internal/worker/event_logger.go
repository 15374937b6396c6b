package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/incident-service/internal/events"
)

// StartEventLogger subscribes a structured logger to every domain event, so
// the lifecycle of each incident is traceable from the service logs.
func StartEventLogger(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventIncidentCreated,
		events.EventIncidentStatusChanged,
		events.EventIncidentAssigned,
		events.EventIncidentCommentAdded,
	} {
		dispatcher.Subscribe(eventType, logEvent(logger))
	}
}

func logEvent(logger *zap.Logger) events.EventHandler {
	return func(_ context.Context, event events.Event) error {
		logger.Info("domain event",
			zap.String("type", string(event.Type)),
			zap.String("incident_id", event.IncidentID),
			zap.String("actor_id", event.ActorID),
			zap.Any("payload", event.Payload))
		return nil
	}
}
