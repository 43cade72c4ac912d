// Package catalogtest provides an in-memory Catalog for tests.
package catalogtest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/uptrace/bun"

	"github.com/rise-and-shine/docstore/internal/catalog"
	"github.com/rise-and-shine/docstore/internal/domain"
	"github.com/rise-and-shine/docstore/pagination"
	"github.com/rise-and-shine/docstore/sorter"
)

// Memory is an in-memory catalog.Catalog with the same tenant scoping,
// soft-delete, and exclusive is_last semantics as the persistent one.
// Sort options are ignored; files and versions keep creation order.
type Memory struct {
	mu       sync.Mutex
	files    map[int64]*domain.LogicalFile
	versions []*domain.FileVersion

	nextFileID    int64
	nextVersionID int64
}

var _ catalog.Catalog = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{files: make(map[int64]*domain.LogicalFile)}
}

// Versions returns a snapshot of every stored version across all files.
func (c *Memory) Versions() []domain.FileVersion {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.FileVersion, 0, len(c.versions))
	for _, v := range c.versions {
		out = append(out, *v)
	}
	return out
}

func (c *Memory) liveFile(fileID int64, tenantID string) *domain.LogicalFile {
	f, ok := c.files[fileID]
	if !ok || f.TenantID != tenantID || f.Deleted() {
		return nil
	}
	return f
}

func (c *Memory) FindFile(
	_ context.Context, _ bun.IDB, fileID int64, tenantID string,
) (*domain.LogicalFile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f := c.liveFile(fileID, tenantID)
	if f == nil {
		return nil, domain.ErrFileNotFound()
	}
	return f, nil
}

func (c *Memory) FindVersions(
	_ context.Context, fileID int64, tenantID string, _ sorter.SortOpts,
) ([]domain.FileVersion, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.liveFile(fileID, tenantID) == nil {
		return nil, domain.ErrFileNotFound()
	}

	var out []domain.FileVersion
	for _, v := range c.versions {
		if v.FileID == fileID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (c *Memory) FindCurrent(_ context.Context, fileID int64, tenantID string) (*domain.FileVersion, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.liveFile(fileID, tenantID) == nil {
		return nil, domain.ErrFileNotFound()
	}
	for _, v := range c.versions {
		if v.FileID == fileID && v.IsLast {
			cp := *v
			return &cp, nil
		}
	}
	return nil, domain.ErrFileNotFound()
}

func (c *Memory) FindVersionByID(
	_ context.Context, fileID, versionID int64, tenantID string,
) (*domain.FileVersion, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.liveFile(fileID, tenantID) == nil {
		return nil, domain.ErrFileNotFound()
	}
	for _, v := range c.versions {
		if v.FileID == fileID && v.ID == versionID {
			cp := *v
			return &cp, nil
		}
	}
	return nil, domain.ErrFileNotFound()
}

func (c *Memory) FindByHash(_ context.Context, hash, tenantID string) (*domain.FileVersion, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := len(c.versions) - 1; i >= 0; i-- {
		v := c.versions[i]
		if v.ContentHash != hash {
			continue
		}
		f := c.liveFile(v.FileID, tenantID)
		if f == nil {
			continue
		}
		cp := *v
		cp.File = f
		return &cp, nil
	}
	return nil, domain.ErrFileNotFound()
}

func (c *Memory) CreateFile(
	_ context.Context, _ bun.IDB, file *domain.LogicalFile, version *domain.FileVersion,
) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextFileID++
	file.ID = c.nextFileID
	file.CreatedAt = time.Now()
	file.UpdatedAt = file.CreatedAt
	c.files[file.ID] = file

	c.appendLocked(file.ID, version)
	return nil
}

func (c *Memory) AppendVersion(
	_ context.Context, _ bun.IDB, fileID int64, tenantID string, version *domain.FileVersion,
) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.liveFile(fileID, tenantID) == nil {
		return domain.ErrFileNotFound()
	}
	for _, v := range c.versions {
		if v.FileID == fileID {
			v.IsLast = false
		}
	}

	c.appendLocked(fileID, version)
	return nil
}

func (c *Memory) appendLocked(fileID int64, version *domain.FileVersion) {
	c.nextVersionID++
	version.ID = c.nextVersionID
	version.FileID = fileID
	version.IsLast = true
	version.CreatedAt = time.Now()
	c.versions = append(c.versions, version)
}

func (c *Memory) SoftDelete(_ context.Context, _ bun.IDB, fileID int64, tenantID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f := c.liveFile(fileID, tenantID)
	if f == nil {
		return domain.ErrFileNotFound()
	}
	now := time.Now()
	f.DeletedAt = &now
	return nil
}

func (c *Memory) ListFiles(
	_ context.Context, tenantID string, filter catalog.ListFilter, _ sorter.SortOpts, page *pagination.Request,
) ([]domain.LogicalFile, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var all []domain.LogicalFile
	for id := int64(1); id <= c.nextFileID; id++ {
		f := c.liveFile(id, tenantID)
		if f == nil {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(f.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.DocumentType != "" && f.DocumentType != filter.DocumentType {
			continue
		}
		all = append(all, *f)
	}

	total := len(all)
	start := min(page.Offset(), total)
	end := min(start+page.Limit(), total)
	return all[start:end], total, nil
}
