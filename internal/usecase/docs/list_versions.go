package docs

import (
	"context"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/docstore/internal/catalog"
	"github.com/rise-and-shine/docstore/sorter"
	"github.com/rise-and-shine/docstore/ucdef"
)

type ListVersionsInput struct {
	TenantID string `meta:"tenant_id" validate:"required"`
	FileID   int64  `params:"file_id" validate:"required"`
}

type ListVersionsOutput struct {
	Versions []VersionDTO `json:"versions"`
}

// ListVersions returns the full version history of a file in creation order,
// oldest first. Exactly one returned version carries is_last=true.
type ListVersions struct {
	catalog catalog.Catalog
}

var _ ucdef.UserAction[*ListVersionsInput, *ListVersionsOutput] = (*ListVersions)(nil)

func NewListVersions(cat catalog.Catalog) *ListVersions {
	return &ListVersions{catalog: cat}
}

func (uc *ListVersions) OperationID() string {
	return "docs.list-versions"
}

func (uc *ListVersions) Execute(ctx context.Context, in *ListVersionsInput) (*ListVersionsOutput, error) {
	// Resolving the file first keeps unknown and cross-tenant files on the
	// same not-found path as an empty history would otherwise mask.
	if _, err := uc.catalog.FindFile(ctx, nil, in.FileID, in.TenantID); err != nil {
		return nil, errx.Wrap(err)
	}

	sort := sorter.Make(sorter.Opt{F: "fv.id", D: sorter.Asc})

	versions, err := uc.catalog.FindVersions(ctx, in.FileID, in.TenantID, sort)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return &ListVersionsOutput{Versions: toVersionDTOs(versions)}, nil
}
