package catalog

import (
	"context"

	"github.com/code19m/errx"
	"github.com/uptrace/bun"

	"github.com/rise-and-shine/docstore/internal/domain"
	"github.com/rise-and-shine/docstore/pagination"
	"github.com/rise-and-shine/docstore/pg"
	"github.com/rise-and-shine/docstore/sorter"
)

// New creates a Catalog backed by the given Bun database.
func New(db *bun.DB) Catalog {
	return &bunCatalog{db: db}
}

type bunCatalog struct {
	db *bun.DB
}

var _ Catalog = (*bunCatalog)(nil)

// scopeTenant applies the tenant and liveness predicates every file query
// must carry. All reads and the append lock go through it.
func scopeTenant(q *bun.SelectQuery, tenantID string) *bun.SelectQuery {
	return q.
		Where("lf.tenant_id = ?", tenantID).
		Where("lf.deleted_at IS NULL")
}

func (c *bunCatalog) FindFile(
	ctx context.Context,
	idb bun.IDB,
	fileID int64,
	tenantID string,
) (*domain.LogicalFile, error) {
	if idb == nil {
		idb = c.db
	}

	file := new(domain.LogicalFile)
	err := scopeTenant(idb.NewSelect().Model(file), tenantID).
		Where("lf.id = ?", fileID).
		Scan(ctx)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, domain.ErrFileNotFound()
		}
		return nil, errx.Wrap(err)
	}

	return file, nil
}

func (c *bunCatalog) FindVersions(
	ctx context.Context,
	fileID int64,
	tenantID string,
	sort sorter.SortOpts,
) ([]domain.FileVersion, error) {
	if _, err := c.FindFile(ctx, nil, fileID, tenantID); err != nil {
		return nil, errx.Wrap(err)
	}

	var versions []domain.FileVersion
	q := c.db.NewSelect().
		Model(&versions).
		Where("fv.file_id = ?", fileID)

	for _, opt := range sort {
		q = q.OrderExpr(opt.ToSQL())
	}

	if err := q.Scan(ctx); err != nil {
		return nil, errx.Wrap(err)
	}

	return versions, nil
}

func (c *bunCatalog) FindCurrent(
	ctx context.Context,
	fileID int64,
	tenantID string,
) (*domain.FileVersion, error) {
	if _, err := c.FindFile(ctx, nil, fileID, tenantID); err != nil {
		return nil, errx.Wrap(err)
	}

	version := new(domain.FileVersion)
	err := c.db.NewSelect().
		Model(version).
		Where("fv.file_id = ?", fileID).
		Where("fv.is_last").
		Scan(ctx)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, domain.ErrFileNotFound()
		}
		return nil, errx.Wrap(err)
	}

	return version, nil
}

func (c *bunCatalog) FindVersionByID(
	ctx context.Context,
	fileID, versionID int64,
	tenantID string,
) (*domain.FileVersion, error) {
	if _, err := c.FindFile(ctx, nil, fileID, tenantID); err != nil {
		return nil, errx.Wrap(err)
	}

	version := new(domain.FileVersion)
	err := c.db.NewSelect().
		Model(version).
		Where("fv.id = ?", versionID).
		Where("fv.file_id = ?", fileID).
		Scan(ctx)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, domain.ErrFileNotFound()
		}
		return nil, errx.Wrap(err)
	}

	return version, nil
}

func (c *bunCatalog) FindByHash(ctx context.Context, hash, tenantID string) (*domain.FileVersion, error) {
	version := new(domain.FileVersion)
	err := c.db.NewSelect().
		Model(version).
		Join("JOIN logical_files AS lf ON lf.id = fv.file_id").
		Where("fv.content_hash = ?", hash).
		Where("lf.tenant_id = ?", tenantID).
		Where("lf.deleted_at IS NULL").
		OrderExpr("fv.id DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, domain.ErrFileNotFound()
		}
		return nil, errx.Wrap(err)
	}

	file, err := c.FindFile(ctx, nil, version.FileID, tenantID)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	version.File = file

	return version, nil
}

func (c *bunCatalog) CreateFile(
	ctx context.Context,
	idb bun.IDB,
	file *domain.LogicalFile,
	version *domain.FileVersion,
) error {
	if _, ok := idb.(bun.Tx); !ok {
		return errx.New("idb must be bun.Tx instance")
	}

	if _, err := idb.NewInsert().Model(file).Exec(ctx); err != nil {
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, nil)))
	}

	version.FileID = file.ID
	version.IsLast = true

	if _, err := idb.NewInsert().Model(version).Exec(ctx); err != nil {
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, nil)))
	}

	return nil
}

func (c *bunCatalog) AppendVersion(
	ctx context.Context,
	idb bun.IDB,
	fileID int64,
	tenantID string,
	version *domain.FileVersion,
) error {
	if _, ok := idb.(bun.Tx); !ok {
		return errx.New("idb must be bun.Tx instance")
	}

	// Row lock on the logical file serializes concurrent appends.
	file := new(domain.LogicalFile)
	err := scopeTenant(idb.NewSelect().Model(file), tenantID).
		Where("lf.id = ?", fileID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if pg.IsNotFound(err) {
			return domain.ErrFileNotFound()
		}
		return errx.Wrap(err)
	}

	_, err = idb.NewUpdate().
		Model((*domain.FileVersion)(nil)).
		Set("is_last = FALSE").
		Where("file_id = ?", fileID).
		Where("is_last").
		Exec(ctx)
	if err != nil {
		return errx.Wrap(err)
	}

	version.FileID = fileID
	version.IsLast = true

	if _, err = idb.NewInsert().Model(version).Exec(ctx); err != nil {
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, nil)))
	}

	return nil
}

func (c *bunCatalog) SoftDelete(ctx context.Context, idb bun.IDB, fileID int64, tenantID string) error {
	if idb == nil {
		idb = c.db
	}

	res, err := idb.NewUpdate().
		Model((*domain.LogicalFile)(nil)).
		Set("deleted_at = now()").
		Set("updated_at = now()").
		Where("id = ?", fileID).
		Where("tenant_id = ?", tenantID).
		Where("deleted_at IS NULL").
		Exec(ctx)
	if err != nil {
		return errx.Wrap(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errx.Wrap(err)
	}
	if affected == 0 {
		return domain.ErrFileNotFound()
	}

	return nil
}

func (c *bunCatalog) ListFiles(
	ctx context.Context,
	tenantID string,
	filter ListFilter,
	sort sorter.SortOpts,
	page *pagination.Request,
) ([]domain.LogicalFile, int, error) {
	var files []domain.LogicalFile

	q := scopeTenant(c.db.NewSelect().Model(&files), tenantID)

	if filter.Name != "" {
		q = q.Where("lf.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.DocumentType != "" {
		q = q.Where("lf.document_type = ?", filter.DocumentType)
	}

	for _, opt := range sort {
		q = q.OrderExpr(opt.ToSQL())
	}

	total, err := q.
		Limit(page.Limit()).
		Offset(page.Offset()).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errx.Wrap(err)
	}

	return files, total, nil
}
