// Package docs contains the document use cases: upload, download,
// version listing, file listing, and deletion.
package docs

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

// Upload result statuses.
const (
	StatusCreated   = "CREATED"
	StatusDuplicate = "DUPLICATE"
)

// TxRunner runs a function within a database transaction. *bun.DB satisfies
// it directly; tests supply a pass-through fake.
type TxRunner interface {
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error
}
