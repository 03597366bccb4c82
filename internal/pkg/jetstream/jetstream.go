// Package jetstream holds NATS JetStream publishing helpers.
package jetstream

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
)

// NewMessageID returns a message id for JetStream deduplication.
func NewMessageID() string {
	return ulid.Make().String()
}

// PublishJSON encodes v as JSON and publishes it on subject. msgID is used by
// the stream to drop duplicates within its duplicate window.
func PublishJSON(ctx context.Context, js nats.JetStreamContext, subject, msgID string, v any) (*nats.PubAck, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "jetstream: failed to encode message")
	}

	ack, err := js.Publish(subject, data, nats.MsgId(msgID), nats.Context(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "jetstream: failed to publish to %s", subject)
	}
	return ack, nil
}
