package docs_test

import (
	"context"
	"io"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/docstore/internal/content"
	"github.com/rise-and-shine/docstore/internal/domain"
	"github.com/rise-and-shine/docstore/internal/usecase/docs"
)

type downloadEnv struct {
	*uploadEnv

	download *docs.Download
}

func newDownloadEnv() *downloadEnv {
	env := newUploadEnv()
	return &downloadEnv{
		uploadEnv: env,
		download:  docs.NewDownload(env.catalog, content.NewStore(env.fs)),
	}
}

func (e *downloadEnv) mustUpload(t *testing.T, tenantID, fileName string, data []byte) *docs.UploadOutput {
	t.Helper()

	out, err := e.upload.Execute(context.Background(), &docs.UploadInput{
		TenantID: tenantID,
		FileName: fileName,
		Data:     data,
	})
	require.NoError(t, err)
	return out
}

func readAll(t *testing.T, rc io.ReadCloser) []byte {
	t.Helper()

	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return data
}

func TestDownload_CurrentVersion(t *testing.T) {
	t.Parallel()

	env := newDownloadEnv()
	ctx := context.Background()

	uploaded := env.mustUpload(t, "acme", "report.docx", []byte("draft one"))

	_, err := env.upload.Execute(ctx, &docs.UploadInput{
		TenantID:     "acme",
		FileName:     "report.docx",
		Data:         []byte("draft two"),
		TargetFileID: uploaded.File.ID,
	})
	require.NoError(t, err)

	out, err := env.download.Execute(ctx, &docs.DownloadInput{
		TenantID: "acme",
		FileID:   uploaded.File.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, []byte("draft two"), readAll(t, out.Stream))
	assert.Equal(t, "report.docx", out.FileName)
	assert.Equal(t, int64(len("draft two")), out.Size)
}

func TestDownload_ExplicitVersion(t *testing.T) {
	t.Parallel()

	env := newDownloadEnv()
	ctx := context.Background()

	uploaded := env.mustUpload(t, "acme", "report.docx", []byte("draft one"))

	_, err := env.upload.Execute(ctx, &docs.UploadInput{
		TenantID:     "acme",
		FileName:     "report.docx",
		Data:         []byte("draft two"),
		TargetFileID: uploaded.File.ID,
	})
	require.NoError(t, err)

	out, err := env.download.Execute(ctx, &docs.DownloadInput{
		TenantID:  "acme",
		FileID:    uploaded.File.ID,
		VersionID: uploaded.Version.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, []byte("draft one"), readAll(t, out.Stream))
}

func TestDownload_FailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	env := newDownloadEnv()
	ctx := context.Background()

	uploaded := env.mustUpload(t, "acme", "report.docx", []byte("body"))

	// Break storage underneath valid catalog metadata.
	broken := env.mustUpload(t, "acme", "broken.docx", []byte("gone"))
	require.NoError(t, env.fs.Delete(ctx, env.catalog.Versions()[1].StorageKey))

	cases := []struct {
		name string
		in   *docs.DownloadInput
	}{
		{"unknown file", &docs.DownloadInput{TenantID: "acme", FileID: 404}},
		{"wrong tenant", &docs.DownloadInput{TenantID: "globex", FileID: uploaded.File.ID}},
		{"unknown version", &docs.DownloadInput{TenantID: "acme", FileID: uploaded.File.ID, VersionID: 404}},
		{"storage failure", &docs.DownloadInput{TenantID: "acme", FileID: broken.File.ID}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := env.download.Execute(ctx, tc.in)
			require.Error(t, err)
			assert.Equal(t, errx.T_NotFound, errx.AsErrorX(err).Type())
		})
	}
}

func TestDownload_DeletedFileNotFound(t *testing.T) {
	t.Parallel()

	env := newDownloadEnv()
	ctx := context.Background()

	uploaded := env.mustUpload(t, "acme", "report.docx", []byte("body"))

	del := docs.NewDelete(passTxRunner{}, env.catalog)
	require.NoError(t, del.Execute(ctx, &docs.DeleteInput{TenantID: "acme", FileID: uploaded.File.ID}))

	_, err := env.download.Execute(ctx, &docs.DownloadInput{
		TenantID: "acme",
		FileID:   uploaded.File.ID,
	})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}
