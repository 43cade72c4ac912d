// Package content adds content addressing on top of a filestore backend.
//
// Objects are stored under tenant-scoped keys derived from the SHA-256
// digest of their bytes, so byte-identical uploads within a tenant resolve
// to the same key. Keys are never overwritten: content at a key is immutable
// and only superseded by new content under a new key. Hash scoping is
// per tenant on purpose; two tenants uploading identical bytes get
// independent objects.
package content

import (
	"bytes"
	"context"
	"fmt"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/docstore/filestore"
	"github.com/rise-and-shine/docstore/internal/domain"
	"github.com/rise-and-shine/docstore/logger"
)

// Store provides content-addressed access to the underlying filestore.
type Store struct {
	fs filestore.FileStore
}

// NewStore creates a content Store over the given filestore backend.
func NewStore(fs filestore.FileStore) *Store {
	return &Store{fs: fs}
}

// Key derives the tenant-scoped storage key for a content hash.
func Key(tenantID, hash string) string {
	return fmt.Sprintf("tenants/%s/%s/%s", tenantID, hash[:2], hash)
}

// Put writes content under its tenant-scoped hash key. If an object already
// exists at the key it is left untouched and its info is returned; bytes at
// an existing key are never rewritten.
func (s *Store) Put(
	ctx context.Context,
	tenantID, hash string,
	data []byte,
	contentType string,
) (*filestore.FileInfo, error) {
	key := Key(tenantID, hash)

	exists, err := s.fs.Exists(ctx, key)
	if err != nil {
		return nil, errx.Wrap(err,
			errx.WithCode(domain.CodeStorageWriteFailure),
		)
	}
	if exists {
		return &filestore.FileInfo{
			Key:         key,
			Size:        int64(len(data)),
			ContentType: contentType,
		}, nil
	}

	info, err := s.fs.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return nil, errx.Wrap(err,
			errx.WithCode(domain.CodeStorageWriteFailure),
		)
	}

	return info, nil
}

// Get streams content from the given storage key. An optional store version
// id pins the exact stored object. Retrieval failures for valid metadata
// collapse to the uniform file-unavailable error; the internal cause is
// logged, never surfaced.
func (s *Store) Get(ctx context.Context, storageKey, storeVersionID string) (*filestore.File, error) {
	file, err := s.fs.Get(ctx, storageKey, storeVersionID)
	if err != nil {
		logger.Named("content").WithContext(ctx).
			With("storage_key", storageKey).
			With("store_version_id", storeVersionID).
			With("cause", err.Error()).
			Warn("content retrieval failed")
		return nil, domain.ErrFileUnavailable()
	}

	return file, nil
}
