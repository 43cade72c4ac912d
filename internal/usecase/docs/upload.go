package docs

import (
	"context"
	"net/http"
	"time"

	"github.com/code19m/errx"
	"github.com/uptrace/bun"

	"github.com/rise-and-shine/docstore/hasher"
	"github.com/rise-and-shine/docstore/internal/catalog"
	"github.com/rise-and-shine/docstore/internal/content"
	"github.com/rise-and-shine/docstore/internal/domain"
	"github.com/rise-and-shine/docstore/logger"
	"github.com/rise-and-shine/docstore/outbox"
	"github.com/rise-and-shine/docstore/ucdef"
)

// UploadInput carries an upload request. TargetFileID is zero for fresh
// uploads; the editor save path sets it to commit the bytes as a revision
// of an existing file.
type UploadInput struct {
	TenantID     string `validate:"required"`
	ActorID      int64
	FileName     string `validate:"required"`
	MimeType     string
	Data         []byte `validate:"required"`
	TargetFileID int64
}

// UploadOutput reports whether the content was newly committed or already
// the file's current content.
type UploadOutput struct {
	Status  string     `json:"status"`
	File    FileDTO    `json:"file"`
	Version VersionDTO `json:"version"`
}

// Upload implements the upload pipeline: digest the bytes, dedup against
// the tenant's catalog by content hash, and commit storage plus catalog
// state with the storage write strictly preceding the catalog transaction.
type Upload struct {
	db       TxRunner
	catalog  catalog.Catalog
	content  *content.Store
	producer outbox.Producer
}

var _ ucdef.UserAction[*UploadInput, *UploadOutput] = (*Upload)(nil)

func NewUpload(db TxRunner, cat catalog.Catalog, cnt *content.Store, producer outbox.Producer) *Upload {
	return &Upload{
		db:       db,
		catalog:  cat,
		content:  cnt,
		producer: producer,
	}
}

func (uc *Upload) OperationID() string {
	return "docs.upload"
}

//nolint:funlen // the pipeline reads best as one sequence
func (uc *Upload) Execute(ctx context.Context, in *UploadInput) (*UploadOutput, error) {
	log := logger.Named("docs.upload").WithContext(ctx)

	hash := hasher.Sum(in.Data)

	existing, err := uc.catalog.FindByHash(ctx, hash, in.TenantID)
	if err != nil && !domain.IsNotFound(err) {
		return nil, errx.Wrap(err)
	}

	// Same logical file's current content: no storage write, no new version.
	// A revision must be compared against the target file's own current
	// version; the newest row carrying the hash may belong to a sibling
	// file that committed the same bytes later.
	if in.TargetFileID != 0 {
		current, curErr := uc.catalog.FindCurrent(ctx, in.TargetFileID, in.TenantID)
		if curErr != nil {
			return nil, errx.Wrap(curErr)
		}
		if current.ContentHash == hash {
			file, fErr := uc.catalog.FindFile(ctx, nil, in.TargetFileID, in.TenantID)
			if fErr != nil {
				return nil, errx.Wrap(fErr)
			}
			return &UploadOutput{
				Status:  StatusDuplicate,
				File:    toFileDTO(file),
				Version: toVersionDTO(*current),
			}, nil
		}
	} else if existing != nil && existing.IsLast {
		return &UploadOutput{
			Status:  StatusDuplicate,
			File:    toFileDTO(existing.File),
			Version: toVersionDTO(*existing),
		}, nil
	}

	mimeType := in.MimeType
	if mimeType == "" {
		mimeType = http.DetectContentType(in.Data)
	}

	version := &domain.FileVersion{
		ContentHash: hash,
		SizeBytes:   int64(len(in.Data)),
		MimeType:    mimeType,
	}

	// Exactly one storage write per distinct content per tenant: reuse the
	// stored object when the hash is already known under another file.
	wroteContent := false
	if existing == nil {
		info, putErr := uc.content.Put(ctx, in.TenantID, hash, in.Data, mimeType)
		if putErr != nil {
			return nil, errx.Wrap(putErr)
		}
		version.StorageKey = info.Key
		version.StoreVersionID = info.VersionID
		wroteContent = true

		if content.IsImage(mimeType) {
			uc.content.StorePreview(ctx, in.TenantID, hash, in.Data)
		}
	} else {
		version.StorageKey = existing.StorageKey
		version.StoreVersionID = existing.StoreVersionID
	}

	var file *domain.LogicalFile

	err = uc.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if in.TargetFileID == 0 {
			name, ext := domain.SplitFileName(in.FileName)
			file = &domain.LogicalFile{
				TenantID:     in.TenantID,
				Name:         name,
				Extension:    ext,
				DocumentType: domain.DocumentTypeForExtension(ext),
				OwnerUserID:  in.ActorID,
			}
			if err := uc.catalog.CreateFile(ctx, tx, file, version); err != nil {
				return errx.Wrap(err)
			}
		} else {
			if err := uc.catalog.AppendVersion(ctx, tx, in.TargetFileID, in.TenantID, version); err != nil {
				return errx.Wrap(err)
			}
			f, err := uc.catalog.FindFile(ctx, tx, in.TargetFileID, in.TenantID)
			if err != nil {
				return errx.Wrap(err)
			}
			file = f
		}

		event := domain.VersionCommitted{
			TenantID:    in.TenantID,
			FileID:      file.ID,
			VersionID:   version.ID,
			ContentHash: hash,
			SizeBytes:   version.SizeBytes,
			MimeType:    mimeType,
			Initial:     in.TargetFileID == 0,
			CommittedAt: time.Now(),
		}
		return errx.Wrap(uc.producer.Produce(ctx, tx, domain.TopicFileVersionCreated, event.PartitionKey(), event))
	})
	if err != nil {
		// Catalog consistency is the source of truth; an unreferenced
		// object is left for future garbage collection.
		if wroteContent {
			log.With("storage_key", version.StorageKey).
				With("content_hash", hash).
				Warn("catalog commit failed, stored object orphaned")
		}
		return nil, errx.Wrap(err)
	}

	return &UploadOutput{
		Status:  StatusCreated,
		File:    toFileDTO(file),
		Version: toVersionDTO(*version),
	}, nil
}
