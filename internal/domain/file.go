// Package domain holds the core entities of the document catalog:
// logical files and their immutable content versions.
package domain

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/rise-and-shine/docstore/pg"
)

// LogicalFile is the stable, user-facing identity of a document within a
// tenant, independent of its content over time. It owns an ordered,
// append-only sequence of FileVersion records and is never physically purged;
// deletion is a soft lifecycle transition recorded in DeletedAt.
type LogicalFile struct {
	bun.BaseModel `bun:"table:logical_files,alias:lf"`

	ID           int64        `bun:"id,pk,autoincrement"       json:"id"`
	TenantID     string       `bun:"tenant_id,notnull"         json:"tenant_id"`
	Name         string       `bun:"name,notnull"              json:"name"`
	Extension    string       `bun:"extension,notnull"         json:"extension"`
	DocumentType DocumentType `bun:"document_type,notnull"     json:"document_type"`
	OwnerUserID  int64        `bun:"owner_user_id,notnull"     json:"owner_user_id"`
	DeletedAt    *time.Time   `bun:"deleted_at,nullzero"       json:"-"`

	pg.Timestamps

	Versions []*FileVersion `bun:"rel:has-many,join:id=file_id" json:"versions,omitempty"`
}

// Deleted reports whether the file has been soft deleted.
func (f *LogicalFile) Deleted() bool {
	return f.DeletedAt != nil
}

// DisplayName reconstructs the user-facing filename from name and extension.
func (f *LogicalFile) DisplayName() string {
	if f.Extension == "" {
		return f.Name
	}
	return f.Name + "." + f.Extension
}

// FileVersion is one immutable content snapshot of a LogicalFile. Versions
// are totally ordered by creation time and exactly one version per file
// carries IsLast=true (the current version). A version is never mutated once
// created; editing a document always produces a new version.
type FileVersion struct {
	bun.BaseModel `bun:"table:file_versions,alias:fv"`

	ID             int64     `bun:"id,pk,autoincrement"                                 json:"id"`
	FileID         int64     `bun:"file_id,notnull"                                     json:"file_id"`
	ContentHash    string    `bun:"content_hash,notnull"                                json:"content_hash"`
	StorageKey     string    `bun:"storage_key,notnull"                                 json:"-"`
	StoreVersionID string    `bun:"store_version_id"                                    json:"-"`
	SizeBytes      int64     `bun:"size_bytes,notnull"                                  json:"size_bytes"`
	MimeType       string    `bun:"mime_type,notnull"                                   json:"mime_type"`
	IsLast         bool      `bun:"is_last,notnull"                                     json:"is_last"`
	CreatedAt      time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`

	File *LogicalFile `bun:"rel:belongs-to,join:file_id=id" json:"-"`
}
