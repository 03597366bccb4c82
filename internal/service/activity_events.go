package service

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"exusiai.dev/activity-backend/internal/infra"
	"exusiai.dev/activity-backend/internal/pkg/jetstream"
	"exusiai.dev/activity-backend/internal/pkg/observability"
)

const (
	EventActivityCreated = "created"
	EventActivityUpdated = "updated"
	EventActivityDeleted = "deleted"
)

type ActivityEvent struct {
	ID         string    `json:"id"`
	Event      string    `json:"event"`
	ActivityID int64     `json:"activityId"`
	UserID     *int64    `json:"userId"`
	At         time.Time `json:"at"`
}

// ActivityEvents publishes committed activity changes to JetStream. It is a
// no-op when NATS is not configured.
type ActivityEvents struct {
	js nats.JetStreamContext
}

func NewActivityEvents(js nats.JetStreamContext) *ActivityEvents {
	return &ActivityEvents{js: js}
}

func (s *ActivityEvents) Enabled() bool {
	return s != nil && s.js != nil
}

// Publish never fails the caller; errors are logged and counted.
func (s *ActivityEvents) Publish(ctx context.Context, event string, activityID int64, actor Actor) {
	if !s.Enabled() {
		return
	}

	ev := ActivityEvent{
		ID:         jetstream.NewMessageID(),
		Event:      event,
		ActivityID: activityID,
		UserID:     actor.UserID(),
		At:         time.Now(),
	}
	subject := infra.ActivitySubjectPrefix + "." + event

	if _, err := jetstream.PublishJSON(ctx, s.js, subject, ev.ID, ev); err != nil {
		observability.ActivityEventPublishFailures.WithLabelValues(event).Inc()
		log.Error().
			Str("evt.name", "activity.event.publish_failed").
			Err(err).
			Str("subject", subject).
			Int64("activityId", activityID).
			Msg("failed to publish activity event")
		return
	}

	if l := log.Trace(); l.Enabled() {
		l.Str("evt.name", "activity.event.published").
			Str("subject", subject).
			Str("msgId", ev.ID).
			Msg("activity event published")
	}
}
