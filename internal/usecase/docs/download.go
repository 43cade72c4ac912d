package docs

import (
	"context"
	"io"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/docstore/internal/catalog"
	"github.com/rise-and-shine/docstore/internal/content"
	"github.com/rise-and-shine/docstore/internal/domain"
	"github.com/rise-and-shine/docstore/logger"
	"github.com/rise-and-shine/docstore/ucdef"
)

// DownloadInput identifies the file to stream. VersionID zero means the
// current version.
type DownloadInput struct {
	TenantID  string `validate:"required"`
	FileID    int64  `params:"file_id" validate:"required"`
	VersionID int64  `query:"version_id"`
}

// DownloadOutput carries the byte stream and its presentation metadata.
// The caller owns Stream and must close it.
type DownloadOutput struct {
	Stream      io.ReadCloser
	ContentType string
	FileName    string
	Size        int64
}

// Download resolves a file (and optionally an explicit version) to its
// stored content and streams it. Every resolution failure collapses to the
// single externally visible not-found outcome; internal distinctions are
// logged only, so callers cannot probe tenant or file existence.
type Download struct {
	catalog catalog.Catalog
	content *content.Store
}

var _ ucdef.UserAction[*DownloadInput, *DownloadOutput] = (*Download)(nil)

func NewDownload(cat catalog.Catalog, cnt *content.Store) *Download {
	return &Download{
		catalog: cat,
		content: cnt,
	}
}

func (uc *Download) OperationID() string {
	return "docs.download"
}

func (uc *Download) Execute(ctx context.Context, in *DownloadInput) (*DownloadOutput, error) {
	log := logger.Named("docs.download").WithContext(ctx).
		With("file_id", in.FileID)

	file, err := uc.catalog.FindFile(ctx, nil, in.FileID, in.TenantID)
	if err != nil {
		log.With("cause", err.Error()).Warn("file resolution failed")
		return nil, domain.ErrFileNotFound()
	}

	var version *domain.FileVersion
	if in.VersionID != 0 {
		version, err = uc.catalog.FindVersionByID(ctx, in.FileID, in.VersionID, in.TenantID)
	} else {
		version, err = uc.catalog.FindCurrent(ctx, in.FileID, in.TenantID)
	}
	if err != nil {
		log.With("version_id", in.VersionID).
			With("cause", err.Error()).
			Warn("version resolution failed")
		return nil, domain.ErrFileNotFound()
	}

	stored, err := uc.content.Get(ctx, version.StorageKey, version.StoreVersionID)
	if err != nil {
		// Already collapsed to the uniform unavailable error by the store.
		return nil, errx.Wrap(err)
	}

	return &DownloadOutput{
		Stream:      stored.Content,
		ContentType: version.MimeType,
		FileName:    file.DisplayName(),
		Size:        version.SizeBytes,
	}, nil
}
