package docs

import (
	"context"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/docstore/internal/catalog"
	"github.com/rise-and-shine/docstore/internal/domain"
	"github.com/rise-and-shine/docstore/pagination"
	"github.com/rise-and-shine/docstore/sorter"
	"github.com/rise-and-shine/docstore/ucdef"
)

type ListFilesInput struct {
	pagination.Request

	TenantID     string `meta:"tenant_id"          validate:"required"`
	Sort         string `query:"sort"`
	Name         string `query:"name"`
	DocumentType string `query:"document_type"     validate:"omitempty,oneof=word cell slide pdf image other"`
}

type ListFilesOutput = pagination.Response[FileDTO]

// ListFiles returns a page of the tenant's live files.
type ListFiles struct {
	catalog catalog.Catalog
}

var _ ucdef.UserAction[*ListFilesInput, *ListFilesOutput] = (*ListFiles)(nil)

func NewListFiles(cat catalog.Catalog) *ListFiles {
	return &ListFiles{catalog: cat}
}

func (uc *ListFiles) OperationID() string {
	return "docs.list-files"
}

func (uc *ListFiles) Execute(ctx context.Context, in *ListFilesInput) (*ListFilesOutput, error) {
	in.Request.Normalize()

	sort := sorter.MakeFromStr(in.Sort, "name", "extension", "created_at", "updated_at")
	if len(sort) == 0 {
		sort = sorter.Make(sorter.Opt{F: "lower(name)", D: sorter.Asc})
	}

	filter := catalog.ListFilter{
		Name:         in.Name,
		DocumentType: domain.DocumentType(in.DocumentType),
	}

	files, total, err := uc.catalog.ListFiles(ctx, in.TenantID, filter, sort, &in.Request)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	resp := pagination.NewResponse(toFileDTOs(files), int64(total), in.Request)

	return &resp, nil
}
