package docs

import (
	"time"

	"github.com/samber/lo"

	"github.com/rise-and-shine/docstore/internal/domain"
)

// FileDTO is the external representation of a logical file.
type FileDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Extension    string `json:"extension"`
	DisplayName  string `json:"display_name"`
	DocumentType string `json:"document_type"`
	OwnerUserID  int64  `json:"owner_user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VersionDTO is the external representation of a file version.
type VersionDTO struct {
	ID          int64     `json:"id"`
	FileID      int64     `json:"file_id"`
	ContentHash string    `json:"content_hash"`
	SizeBytes   int64     `json:"size_bytes"`
	MimeType    string    `json:"mime_type"`
	IsLast      bool      `json:"is_last"`
	CreatedAt   time.Time `json:"created_at"`
}

func toFileDTO(f *domain.LogicalFile) FileDTO {
	return FileDTO{
		ID:           f.ID,
		Name:         f.Name,
		Extension:    f.Extension,
		DisplayName:  f.DisplayName(),
		DocumentType: string(f.DocumentType),
		OwnerUserID:  f.OwnerUserID,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

func toVersionDTO(v domain.FileVersion) VersionDTO {
	return VersionDTO{
		ID:          v.ID,
		FileID:      v.FileID,
		ContentHash: v.ContentHash,
		SizeBytes:   v.SizeBytes,
		MimeType:    v.MimeType,
		IsLast:      v.IsLast,
		CreatedAt:   v.CreatedAt,
	}
}

func toVersionDTOs(versions []domain.FileVersion) []VersionDTO {
	return lo.Map(versions, func(v domain.FileVersion, _ int) VersionDTO {
		return toVersionDTO(v)
	})
}

func toFileDTOs(files []domain.LogicalFile) []FileDTO {
	return lo.Map(files, func(f domain.LogicalFile, _ int) FileDTO {
		return toFileDTO(&f)
	})
}
