package docs

import (
	"context"

	"github.com/code19m/errx"
	"github.com/uptrace/bun"

	"github.com/rise-and-shine/docstore/internal/catalog"
)

type DeleteInput struct {
	TenantID string `meta:"tenant_id" validate:"required"`
	FileID   int64  `params:"file_id" validate:"required"`
}

// Delete soft-deletes a logical file. The file and its versions stay in the
// catalog and the stored content is kept; the file just stops resolving.
type Delete struct {
	db      TxRunner
	catalog catalog.Catalog
}

func NewDelete(db TxRunner, cat catalog.Catalog) *Delete {
	return &Delete{
		db:      db,
		catalog: cat,
	}
}

func (uc *Delete) OperationID() string {
	return "docs.delete"
}

func (uc *Delete) Execute(ctx context.Context, in *DeleteInput) error {
	err := uc.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return uc.catalog.SoftDelete(ctx, tx, in.FileID, in.TenantID)
	})
	if err != nil {
		return errx.Wrap(err)
	}

	return nil
}
