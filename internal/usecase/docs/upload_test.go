package docs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/docstore/filestore/filestoretest"
	"github.com/rise-and-shine/docstore/hasher"
	"github.com/rise-and-shine/docstore/internal/catalog/catalogtest"
	"github.com/rise-and-shine/docstore/internal/content"
	"github.com/rise-and-shine/docstore/internal/domain"
	"github.com/rise-and-shine/docstore/internal/usecase/docs"
)

type uploadEnv struct {
	fs       *filestoretest.MemStore
	catalog  *catalogtest.Memory
	producer *fakeProducer
	upload   *docs.Upload
}

func newUploadEnv() *uploadEnv {
	fs := filestoretest.NewMemStore()
	cat := catalogtest.NewMemory()
	producer := &fakeProducer{}

	return &uploadEnv{
		fs:       fs,
		catalog:  cat,
		producer: producer,
		upload:   docs.NewUpload(passTxRunner{}, cat, content.NewStore(fs), producer),
	}
}

func TestUpload_NewContentCreatesFile(t *testing.T) {
	t.Parallel()

	env := newUploadEnv()
	data := []byte("quarterly report")

	out, err := env.upload.Execute(context.Background(), &docs.UploadInput{
		TenantID: "acme",
		ActorID:  7,
		FileName: "report.docx",
		Data:     data,
	})
	require.NoError(t, err)

	assert.Equal(t, docs.StatusCreated, out.Status)
	assert.Equal(t, "report", out.File.Name)
	assert.Equal(t, "docx", out.File.Extension)
	assert.Equal(t, "report.docx", out.File.DisplayName)
	assert.Equal(t, string(domain.DocumentTypeWord), out.File.DocumentType)
	assert.Equal(t, int64(7), out.File.OwnerUserID)

	assert.Equal(t, hasher.Sum(data), out.Version.ContentHash)
	assert.Equal(t, int64(len(data)), out.Version.SizeBytes)
	assert.True(t, out.Version.IsLast)
	assert.Equal(t, 1, env.fs.Puts())

	require.Len(t, env.producer.events, 1)
	assert.Equal(t, domain.TopicFileVersionCreated, env.producer.events[0].Topic)
	assert.Equal(t, "acme", env.producer.events[0].Key)

	event, ok := env.producer.events[0].Event.(domain.VersionCommitted)
	require.True(t, ok)
	assert.Equal(t, out.File.ID, event.FileID)
	assert.True(t, event.Initial)
}

func TestUpload_SameBytesIsDuplicate(t *testing.T) {
	t.Parallel()

	env := newUploadEnv()
	data := []byte("same bytes twice")
	ctx := context.Background()

	first, err := env.upload.Execute(ctx, &docs.UploadInput{
		TenantID: "acme",
		FileName: "a.pdf",
		Data:     data,
	})
	require.NoError(t, err)
	require.Equal(t, docs.StatusCreated, first.Status)

	second, err := env.upload.Execute(ctx, &docs.UploadInput{
		TenantID: "acme",
		FileName: "b.pdf",
		Data:     data,
	})
	require.NoError(t, err)

	assert.Equal(t, docs.StatusDuplicate, second.Status)
	assert.Equal(t, first.File.ID, second.File.ID)
	assert.Equal(t, first.Version.ID, second.Version.ID)

	// No second storage write, no second version, no second event.
	assert.Equal(t, 1, env.fs.Puts())
	assert.Len(t, env.catalog.Versions(), 1)
	assert.Len(t, env.producer.events, 1)
}

func TestUpload_NoCrossTenantDedup(t *testing.T) {
	t.Parallel()

	env := newUploadEnv()
	data := []byte("shared across tenants")
	ctx := context.Background()

	first, err := env.upload.Execute(ctx, &docs.UploadInput{
		TenantID: "acme",
		FileName: "a.txt",
		Data:     data,
	})
	require.NoError(t, err)

	second, err := env.upload.Execute(ctx, &docs.UploadInput{
		TenantID: "globex",
		FileName: "a.txt",
		Data:     data,
	})
	require.NoError(t, err)

	assert.Equal(t, docs.StatusCreated, first.Status)
	assert.Equal(t, docs.StatusCreated, second.Status)
	assert.NotEqual(t, first.File.ID, second.File.ID)
	assert.Equal(t, 2, env.fs.Puts())
}

func TestUpload_RevisionAppendFlipsCurrent(t *testing.T) {
	t.Parallel()

	env := newUploadEnv()
	ctx := context.Background()

	first, err := env.upload.Execute(ctx, &docs.UploadInput{
		TenantID: "acme",
		FileName: "notes.docx",
		Data:     []byte("draft one"),
	})
	require.NoError(t, err)

	second, err := env.upload.Execute(ctx, &docs.UploadInput{
		TenantID:     "acme",
		FileName:     "notes.docx",
		Data:         []byte("draft two"),
		TargetFileID: first.File.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, docs.StatusCreated, second.Status)
	assert.Equal(t, first.File.ID, second.File.ID)
	assert.True(t, second.Version.IsLast)

	versions, err := env.catalog.FindVersions(ctx, first.File.ID, "acme", nil)
	require.NoError(t, err)
	require.Len(t, versions, 2)

	currentCount := 0
	for _, v := range versions {
		if v.IsLast {
			currentCount++
			assert.Equal(t, second.Version.ID, v.ID)
		}
	}
	assert.Equal(t, 1, currentCount)

	require.Len(t, env.producer.events, 2)
	event, ok := env.producer.events[1].Event.(domain.VersionCommitted)
	require.True(t, ok)
	assert.False(t, event.Initial)
}

func TestUpload_RevisionWithCurrentContentIsDuplicate(t *testing.T) {
	t.Parallel()

	env := newUploadEnv()
	ctx := context.Background()
	data := []byte("unchanged body")

	first, err := env.upload.Execute(ctx, &docs.UploadInput{
		TenantID: "acme",
		FileName: "a.docx",
		Data:     data,
	})
	require.NoError(t, err)

	out, err := env.upload.Execute(ctx, &docs.UploadInput{
		TenantID:     "acme",
		FileName:     "a.docx",
		Data:         data,
		TargetFileID: first.File.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, docs.StatusDuplicate, out.Status)
	assert.Len(t, env.catalog.Versions(), 1)
}

func TestUpload_KnownHashUnderOtherFileReusesObject(t *testing.T) {
	t.Parallel()

	env := newUploadEnv()
	ctx := context.Background()
	shared := []byte("content shared by two files")

	first, err := env.upload.Execute(ctx, &docs.UploadInput{
		TenantID: "acme",
		FileName: "a.txt",
		Data:     shared,
	})
	require.NoError(t, err)

	other, err := env.upload.Execute(ctx, &docs.UploadInput{
		TenantID: "acme",
		FileName: "b.txt",
		Data:     []byte("diverged"),
	})
	require.NoError(t, err)

	// Committing the shared bytes as a revision of the second file must
	// reuse the stored object instead of writing it again.
	out, err := env.upload.Execute(ctx, &docs.UploadInput{
		TenantID:     "acme",
		FileName:     "b.txt",
		Data:         shared,
		TargetFileID: other.File.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, docs.StatusCreated, out.Status)
	assert.Equal(t, first.Version.ContentHash, out.Version.ContentHash)
	assert.Equal(t, 2, env.fs.Puts())
}

func TestUpload_RevisionOfUnknownFileFails(t *testing.T) {
	t.Parallel()

	env := newUploadEnv()

	_, err := env.upload.Execute(context.Background(), &docs.UploadInput{
		TenantID:     "acme",
		FileName:     "a.docx",
		Data:         []byte("anything"),
		TargetFileID: 404,
	})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestUpload_RevisionDedupUnaffectedBySiblingWithSameHash(t *testing.T) {
	t.Parallel()

	env := newUploadEnv()
	ctx := context.Background()
	shared := []byte("shared body")

	a, err := env.upload.Execute(ctx, &docs.UploadInput{
		TenantID: "acme",
		FileName: "a.docx",
		Data:     shared,
	})
	require.NoError(t, err)

	b, err := env.upload.Execute(ctx, &docs.UploadInput{
		TenantID: "acme",
		FileName: "b.docx",
		Data:     []byte("b original"),
	})
	require.NoError(t, err)

	// B revises to the shared content, so the newest version carrying the
	// hash now belongs to B.
	out, err := env.upload.Execute(ctx, &docs.UploadInput{
		TenantID:     "acme",
		FileName:     "b.docx",
		Data:         shared,
		TargetFileID: b.File.ID,
	})
	require.NoError(t, err)
	require.Equal(t, docs.StatusCreated, out.Status)

	// A re-saving its unchanged content must still be a duplicate against
	// its own current version, not against B's.
	out, err = env.upload.Execute(ctx, &docs.UploadInput{
		TenantID:     "acme",
		FileName:     "a.docx",
		Data:         shared,
		TargetFileID: a.File.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, docs.StatusDuplicate, out.Status)
	assert.Equal(t, a.File.ID, out.File.ID)

	versions, err := env.catalog.FindVersions(ctx, a.File.ID, "acme", nil)
	require.NoError(t, err)
	assert.Len(t, versions, 1)
}
