package editor_test

import (
	"context"
	"database/sql"
	"strconv"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/rise-and-shine/docstore/filestore/filestoretest"
	"github.com/rise-and-shine/docstore/internal/catalog/catalogtest"
	"github.com/rise-and-shine/docstore/internal/content"
	"github.com/rise-and-shine/docstore/internal/usecase/docs"
	"github.com/rise-and-shine/docstore/internal/usecase/editor"
	"github.com/rise-and-shine/docstore/token"
)

type passTxRunner struct{}

func (passTxRunner) RunInTx(
	ctx context.Context,
	_ *sql.TxOptions,
	fn func(ctx context.Context, tx bun.Tx) error,
) error {
	return fn(ctx, bun.Tx{})
}

type noopProducer struct{}

func (noopProducer) Produce(_ context.Context, _ bun.IDB, _, _ string, _ any) error {
	return nil
}

// fakeFetcher serves canned document bytes per URL.
type fakeFetcher struct {
	docs map[string][]byte
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	data, ok := f.docs[url]
	if !ok {
		return nil, errx.New("no such document")
	}
	return data, nil
}

// countingUploader records upload pipeline invocations.
type countingUploader struct {
	calls []*docs.UploadInput
}

func (u *countingUploader) Execute(_ context.Context, in *docs.UploadInput) (*docs.UploadOutput, error) {
	u.calls = append(u.calls, in)
	return &docs.UploadOutput{Status: docs.StatusCreated}, nil
}

type callbackEnv struct {
	catalog  *catalogtest.Memory
	fs       *filestoretest.MemStore
	tokens   *token.JWTMaker
	fetcher  *fakeFetcher
	upload   *docs.Upload
	download *docs.Download
	callback *editor.Callback
}

// newCallbackEnv wires the callback handler over the real upload pipeline.
func newCallbackEnv(t *testing.T) *callbackEnv {
	t.Helper()

	cat := catalogtest.NewMemory()
	fs := filestoretest.NewMemStore()
	store := content.NewStore(fs)
	fetcher := &fakeFetcher{docs: make(map[string][]byte)}
	upload := docs.NewUpload(passTxRunner{}, cat, store, noopProducer{})

	return &callbackEnv{
		catalog:  cat,
		fs:       fs,
		tokens:   newTokens(t),
		fetcher:  fetcher,
		upload:   upload,
		download: docs.NewDownload(cat, store),
		callback: editor.NewCallback(cat, newTokens(t), fetcher, upload),
	}
}

func (e *callbackEnv) mintToken(t *testing.T, tenantID string, fileID int64) string {
	t.Helper()

	tok, _, err := e.tokens.CreateToken("7", time.Hour, map[string]any{
		token.ClaimTenantID: tenantID,
		token.ClaimFileID:   strconv.FormatInt(fileID, 10),
	})
	require.NoError(t, err)
	return tok
}

func TestCallback_KeyValidation(t *testing.T) {
	t.Parallel()

	env := newCallbackEnv(t)
	ctx := context.Background()
	file := seedFile(t, env.catalog, "acme", "report.docx")
	tok := env.mintToken(t, "acme", file.ID)

	for _, key := range []string{"", "acme", "acme_0", "globex_" + strconv.FormatInt(file.ID, 10)} {
		out, err := env.callback.Execute(ctx, &editor.CallbackInput{
			TenantID: "acme",
			FileID:   file.ID,
			Token:    tok,
			Key:      key,
			Status:   editor.StatusForceSave,
			URL:      "https://editor.example.com/doc",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Error, "key %q must be rejected", key)
	}

	// No catalog mutation happened for any rejected callback.
	assert.Len(t, env.catalog.Versions(), 1)
}

func TestCallback_TokenValidation(t *testing.T) {
	t.Parallel()

	env := newCallbackEnv(t)
	ctx := context.Background()
	file := seedFile(t, env.catalog, "acme", "report.docx")
	otherFile := seedFile(t, env.catalog, "acme", "other.docx")

	expired, _, err := env.tokens.CreateToken("7", -time.Minute, map[string]any{
		token.ClaimTenantID: "acme",
		token.ClaimFileID:   strconv.FormatInt(file.ID, 10),
	})
	require.NoError(t, err)

	cases := []struct {
		name string
		tok  string
	}{
		{"garbage token", "not-a-jwt"},
		{"expired token", expired},
		{"token for another file", env.mintToken(t, "acme", otherFile.ID)},
		{"token for another tenant", env.mintToken(t, "globex", file.ID)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, err := env.callback.Execute(ctx, &editor.CallbackInput{
				TenantID: "acme",
				FileID:   file.ID,
				Token:    tc.tok,
				Key:      editor.CallbackKey("acme", file.ID),
				Status:   editor.StatusForceSave,
				URL:      "https://editor.example.com/doc",
			})
			require.NoError(t, err)
			assert.Equal(t, 1, out.Error)
		})
	}
}

func TestCallback_StatusRouting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	cases := []struct {
		status    int
		wantError int
		wantSaves int
	}{
		{editor.StatusEditing, 0, 0},
		{editor.StatusReady, 0, 0},
		{editor.StatusClosedNoChanges, 0, 0},
		{editor.StatusAutosave, 0, 0},
		{editor.StatusSaveOnError, 0, 1},
		{editor.StatusForceSave, 0, 1},
		{editor.StatusSaveError, 1, 0},
		{99, 0, 0},
	}

	for _, tc := range cases {
		t.Run(strconv.Itoa(tc.status), func(t *testing.T) {
			t.Parallel()

			env := newCallbackEnv(t)
			file := seedFile(t, env.catalog, "acme", "report.docx")
			uploader := &countingUploader{}
			cb := editor.NewCallback(env.catalog, env.tokens, env.fetcher, uploader)
			env.fetcher.docs["https://editor.example.com/doc"] = []byte("saved body")

			out, err := cb.Execute(ctx, &editor.CallbackInput{
				TenantID: "acme",
				FileID:   file.ID,
				Token:    env.mintToken(t, "acme", file.ID),
				Key:      editor.CallbackKey("acme", file.ID),
				Status:   tc.status,
				URL:      "https://editor.example.com/doc",
			})
			require.NoError(t, err)

			assert.Equal(t, tc.wantError, out.Error)
			require.Len(t, uploader.calls, tc.wantSaves)
			if tc.wantSaves == 1 {
				in := uploader.calls[0]
				assert.Equal(t, file.ID, in.TargetFileID)
				assert.Equal(t, "acme", in.TenantID)
				assert.Equal(t, []byte("saved body"), in.Data)
			}
		})
	}
}

func TestCallback_FetchFailureIsFailurePayload(t *testing.T) {
	t.Parallel()

	env := newCallbackEnv(t)
	file := seedFile(t, env.catalog, "acme", "report.docx")

	out, err := env.callback.Execute(context.Background(), &editor.CallbackInput{
		TenantID: "acme",
		FileID:   file.ID,
		Token:    env.mintToken(t, "acme", file.ID),
		Key:      editor.CallbackKey("acme", file.ID),
		Status:   editor.StatusForceSave,
		URL:      "https://editor.example.com/missing",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Error)
	assert.Len(t, env.catalog.Versions(), 1)
}

func TestCallback_NonNumericSubjectStillSaves(t *testing.T) {
	t.Parallel()

	env := newCallbackEnv(t)
	ctx := context.Background()
	file := seedFile(t, env.catalog, "acme", "report.docx")

	tok, _, err := env.tokens.CreateToken("svc-editor", time.Hour, map[string]any{
		token.ClaimTenantID: "acme",
		token.ClaimFileID:   strconv.FormatInt(file.ID, 10),
	})
	require.NoError(t, err)

	env.fetcher.docs["https://editor.example.com/doc"] = []byte("edited by service account")

	out, err := env.callback.Execute(ctx, &editor.CallbackInput{
		TenantID: "acme",
		FileID:   file.ID,
		Token:    tok,
		Key:      editor.CallbackKey("acme", file.ID),
		Status:   editor.StatusForceSave,
		URL:      "https://editor.example.com/doc",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Error)
	assert.Len(t, env.catalog.Versions(), 2)
}

func TestCallback_DuplicateDeliveryCreatesOneVersion(t *testing.T) {
	t.Parallel()

	env := newCallbackEnv(t)
	ctx := context.Background()

	uploaded, err := env.upload.Execute(ctx, &docs.UploadInput{
		TenantID: "acme",
		FileName: "report.docx",
		Data:     []byte("original"),
	})
	require.NoError(t, err)

	env.fetcher.docs["https://editor.example.com/doc"] = []byte("edited")
	in := &editor.CallbackInput{
		TenantID: "acme",
		FileID:   uploaded.File.ID,
		Token:    env.mintToken(t, "acme", uploaded.File.ID),
		Key:      editor.CallbackKey("acme", uploaded.File.ID),
		Status:   editor.StatusForceSave,
		URL:      "https://editor.example.com/doc",
	}

	for range 2 {
		out, err := env.callback.Execute(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, 0, out.Error)
	}

	// The redelivered save dedups by content hash instead of appending again.
	assert.Len(t, env.catalog.Versions(), 2)
}
