package editor_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/docstore/internal/usecase/docs"
	"github.com/rise-and-shine/docstore/internal/usecase/editor"
)

// Full lifecycle: upload, duplicate upload, editor session, timeout save,
// and version-pinned downloads.
func TestEditorSave_EndToEnd(t *testing.T) {
	t.Parallel()

	env := newCallbackEnv(t)
	ctx := context.Background()

	original := []byte("original pdf bytes")
	edited := []byte("edited pdf bytes")

	uploaded, err := env.upload.Execute(ctx, &docs.UploadInput{
		TenantID: "acme",
		ActorID:  7,
		FileName: "report.pdf",
		Data:     original,
	})
	require.NoError(t, err)
	require.Equal(t, docs.StatusCreated, uploaded.Status)
	require.True(t, uploaded.Version.IsLast)

	// Identical re-upload changes nothing.
	dup, err := env.upload.Execute(ctx, &docs.UploadInput{
		TenantID: "acme",
		ActorID:  7,
		FileName: "report.pdf",
		Data:     original,
	})
	require.NoError(t, err)
	require.Equal(t, docs.StatusDuplicate, dup.Status)
	require.Equal(t, uploaded.Version.ID, dup.Version.ID)

	// Open an editor session and let the editor force-save new content.
	session, err := editor.NewIssueSession(testConfig(), env.catalog, env.tokens).
		Execute(ctx, &editor.IssueSessionInput{
			TenantID: "acme",
			ActorID:  7,
			FileID:   uploaded.File.ID,
		})
	require.NoError(t, err)

	env.fetcher.docs["https://editor.example.com/doc"] = edited

	out, err := env.callback.Execute(ctx, &editor.CallbackInput{
		TenantID: "acme",
		FileID:   uploaded.File.ID,
		Token:    session.Token,
		Key:      session.DocumentKey,
		Status:   editor.StatusForceSave,
		URL:      "https://editor.example.com/doc",
	})
	require.NoError(t, err)
	require.Equal(t, 0, out.Error)

	versions := env.catalog.Versions()
	require.Len(t, versions, 2)
	assert.False(t, versions[0].IsLast)
	assert.True(t, versions[1].IsLast)

	// Default download streams the saved content.
	current, err := env.download.Execute(ctx, &docs.DownloadInput{
		TenantID: "acme",
		FileID:   uploaded.File.ID,
	})
	require.NoError(t, err)
	got, err := io.ReadAll(current.Stream)
	require.NoError(t, err)
	require.NoError(t, current.Stream.Close())
	assert.Equal(t, edited, got)
	assert.Equal(t, "report.pdf", current.FileName)

	// Pinning the first version still streams the original bytes.
	first, err := env.download.Execute(ctx, &docs.DownloadInput{
		TenantID:  "acme",
		FileID:    uploaded.File.ID,
		VersionID: uploaded.Version.ID,
	})
	require.NoError(t, err)
	got, err = io.ReadAll(first.Stream)
	require.NoError(t, err)
	require.NoError(t, first.Stream.Close())
	assert.Equal(t, original, got)
}
