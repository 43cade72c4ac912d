// Package catalog implements the per-tenant record of logical files and
// their ordered version history on PostgreSQL via the Bun ORM.
//
// Every operation is tenant-scoped: queries for a file outside the caller's
// tenant return not-found, never a cross-tenant leak. Soft-deleted files are
// excluded from every query through a single shared predicate.
package catalog

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/rise-and-shine/docstore/internal/domain"
	"github.com/rise-and-shine/docstore/pagination"
	"github.com/rise-and-shine/docstore/sorter"
)

// Catalog defines the file catalog operations.
//
// Mutating methods accept a bun.IDB so callers may supply an inherited
// transaction: multi-step mutations compose under a caller-owned unit of
// work instead of opening their own.
type Catalog interface {
	// FindFile resolves a logical file by id within a tenant.
	// Absent, soft-deleted, and wrong-tenant files all yield not-found.
	FindFile(ctx context.Context, idb bun.IDB, fileID int64, tenantID string) (*domain.LogicalFile, error)

	// FindVersions returns all versions of a file in the given explicit
	// sort order.
	FindVersions(ctx context.Context, fileID int64, tenantID string, sort sorter.SortOpts) ([]domain.FileVersion, error)

	// FindCurrent returns the version currently marked is_last.
	FindCurrent(ctx context.Context, fileID int64, tenantID string) (*domain.FileVersion, error)

	// FindVersionByID returns one specific version of a file.
	FindVersionByID(ctx context.Context, fileID, versionID int64, tenantID string) (*domain.FileVersion, error)

	// FindByHash returns the most recent live version carrying the given
	// content hash within a tenant, with its owning file loaded.
	// Returns not-found when the hash is unknown to the tenant.
	FindByHash(ctx context.Context, hash, tenantID string) (*domain.FileVersion, error)

	// CreateFile inserts a new logical file together with its initial
	// version (is_last=true).
	CreateFile(ctx context.Context, idb bun.IDB, file *domain.LogicalFile, version *domain.FileVersion) error

	// AppendVersion appends a version to an existing file and atomically
	// flips the is_last flag from the previous holder to the new row.
	// The operation is linearizable per file: it takes a row lock on the
	// logical file, so concurrent appends to the same file serialize.
	// idb must be a transaction.
	AppendVersion(
		ctx context.Context, idb bun.IDB, fileID int64, tenantID string, version *domain.FileVersion,
	) error

	// SoftDelete marks a file deleted. Already-deleted and unknown files
	// yield not-found.
	SoftDelete(ctx context.Context, idb bun.IDB, fileID int64, tenantID string) error

	// ListFiles returns a page of the tenant's live files matching the
	// filter, in the given explicit sort order, plus the total count.
	ListFiles(
		ctx context.Context, tenantID string, filter ListFilter, sort sorter.SortOpts, page *pagination.Request,
	) ([]domain.LogicalFile, int, error)
}

// ListFilter narrows ListFiles results. Zero fields match everything.
type ListFilter struct {
	// Name matches case-insensitively as a substring of the file name.
	Name string

	// DocumentType restricts results to one classification.
	DocumentType domain.DocumentType
}
