// Package outbox implements the transactional outbox pattern on top of
// PostgreSQL and Kafka.
//
// Producers write messages into the `_outbox` table inside the caller's
// database transaction, so an event is stored if and only if the business
// mutation commits. A separate worker forwards stored messages to Kafka.
package outbox

import (
	"context"
	"encoding/json"

	"github.com/code19m/errx"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Producer stores messages in the outbox table within an ongoing transaction.
type Producer interface {
	// Produce marshals event to JSON and stores it in the outbox table.
	// idb must be a bun.Tx so the write shares the caller's transaction.
	Produce(ctx context.Context, idb bun.IDB, topic, key string, event any) error
}

// NewProducer creates a new outbox producer.
func NewProducer() Producer {
	return &outboxProducer{
		tableName: outboxTableName,
	}
}

type outboxProducer struct {
	tableName string
}

func (op *outboxProducer) Produce(
	ctx context.Context,
	idb bun.IDB,
	topic, key string,
	event any,
) error {
	if _, ok := idb.(bun.Tx); !ok {
		return errx.New("idb must be bun.Tx instance")
	}

	msgBytes, err := json.Marshal(event)
	if err != nil {
		return errx.Wrap(err)
	}

	envelope := &messageEnvelope{
		DestinationTopic: topic,
		UUID:             uuid.NewString(),
		Payload:          msgBytes,
		Metadata: map[string]string{
			"partition_key": key,
		},
	}

	// inject tracing headers into message envelope
	injectTracingHeaders(ctx, envelope)

	envelopeBytes, err := json.Marshal(envelope)
	if err != nil {
		return errx.Wrap(err)
	}

	outBoxData := outboxMsg{
		UUID:     envelope.UUID,
		Payload:  envelopeBytes,
		Metadata: envelope.Metadata,
	}

	_, err = idb.NewInsert().
		ModelTableExpr(op.tableName).
		Model(&outBoxData).
		Value("transaction_id", "pg_current_xact_id()"). // Current transaction ID
		Exec(ctx)

	return errx.Wrap(err)
}

func injectTracingHeaders(ctx context.Context, envelope *messageEnvelope) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	for k, v := range carrier {
		envelope.Metadata[k] = v
	}
}

// messageEnvelope wraps a Watermill message and contains the destination topic.
type messageEnvelope struct {
	DestinationTopic string            `json:"destination_topic"`
	UUID             string            `json:"uuid"`
	Payload          []byte            `json:"payload"`
	Metadata         map[string]string `json:"metadata"`
}

// outboxMsg is a struct that represents the single outbox message to be stored in the database.
type outboxMsg struct {
	UUID     string            `bun:"uuid"`
	Payload  any               `bun:"payload"`
	Metadata map[string]string `bun:"metadata"`
}
