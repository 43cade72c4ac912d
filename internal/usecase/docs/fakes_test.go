package docs_test

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

// passTxRunner invokes the callback directly with a zero transaction.
// The in-memory catalog never touches the transaction handle.
type passTxRunner struct{}

func (passTxRunner) RunInTx(
	ctx context.Context,
	_ *sql.TxOptions,
	fn func(ctx context.Context, tx bun.Tx) error,
) error {
	return fn(ctx, bun.Tx{})
}

// recordedEvent is one captured outbox publication.
type recordedEvent struct {
	Topic string
	Key   string
	Event any
}

type fakeProducer struct {
	events []recordedEvent
}

func (p *fakeProducer) Produce(_ context.Context, _ bun.IDB, topic, key string, event any) error {
	p.events = append(p.events, recordedEvent{Topic: topic, Key: key, Event: event})
	return nil
}
