package infra

import (
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"exusiai.dev/activity-backend/internal/app/appconfig"
)

const (
	ActivityStreamName    = "activities"
	ActivitySubjectPrefix = "ACTIVITY"
)

// NATS connects to the event broker. With no NatsURL configured both returned
// values are nil and activity change events are not published.
func NATS(conf *appconfig.Config) (*nats.Conn, nats.JetStreamContext, error) {
	if conf.NatsURL == "" {
		log.Info().
			Str("evt.name", "infra.nats.disabled").
			Msg("NATS is disabled due to missing URL, activity events will not be published")
		return nil, nil, nil
	}

	errorHandler := func(conn *nats.Conn, sub *nats.Subscription, err error) {
		ev := log.Error().
			Str("evt.name", "nats.error").
			Err(err).
			Str("conn.url", conn.ConnectedUrlRedacted())
		if sub != nil {
			ev = ev.Str("sub.subject", sub.Subject)
		}
		ev.Msg("nats error")
	}

	nc, err := nats.Connect(conf.NatsURL,
		nats.Name("activity-backend"),
		nats.PingInterval(time.Second*20),
		nats.ErrorHandler(errorHandler),
	)
	if err != nil {
		log.Error().Err(err).Msg("infra: nats: failed to connect to NATS")
		return nil, nil, err
	}

	js, err := nc.JetStream(nats.PublishAsyncMaxPending(128))
	if err != nil {
		log.Error().Err(err).Msg("infra: nats: failed to initialize NATS JetStream")
		return nil, nil, err
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name: ActivityStreamName,
		Subjects: []string{
			ActivitySubjectPrefix + ".*",
		},
		Retention:  nats.LimitsPolicy,
		Discard:    nats.DiscardOld,
		Storage:    nats.FileStorage,
		MaxAge:     time.Hour * 24 * 7,
		Replicas:   1,
		Duplicates: time.Minute * 10,
	})
	if err != nil {
		log.Warn().Err(err).Msg("infra: nats: failed to create jetstream stream: is it already created?")
	}

	return nc, js, nil
}
