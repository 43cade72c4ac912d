package http_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/rise-and-shine/docstore/filestore/filestoretest"
	"github.com/rise-and-shine/docstore/http/server"
	"github.com/rise-and-shine/docstore/http/server/middleware"
	apihttp "github.com/rise-and-shine/docstore/internal/api/http"
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

type fakeFetcher struct {
	docs map[string][]byte
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	data, ok := f.docs[url]
	if !ok {
		return nil, fmt.Errorf("no such document: %s", url)
	}
	return data, nil
}

type testAPI struct {
	app     *fiber.App
	catalog *catalogtest.Memory
	fs      *filestoretest.MemStore
	fetcher *fakeFetcher
	tokens  *token.JWTMaker
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	cat := catalogtest.NewMemory()
	fs := filestoretest.NewMemStore()
	store := content.NewStore(fs)
	fetcher := &fakeFetcher{docs: make(map[string][]byte)}

	tokens, err := token.NewJWTMaker("test-secret-0123456789")
	require.NoError(t, err)

	editorCfg := editor.Config{
		BaseURL:         "https://editor.example.com/launch",
		CallbackBaseURL: "https://docs.example.com",
		TokenSecret:     "test-secret-0123456789",
		SessionTTL:      8 * time.Hour,
	}

	upload := docs.NewUpload(passTxRunner{}, cat, store, noopProducer{})
	rt := apihttp.NewRouter(
		upload,
		docs.NewDownload(cat, store),
		docs.NewListFiles(cat),
		docs.NewListVersions(cat),
		docs.NewDelete(passTxRunner{}, cat),
		editor.NewIssueSession(editorCfg, cat, tokens),
		editor.NewCallback(cat, tokens, fetcher, upload),
	)

	srv := server.NewHTTPServer(server.Config{}, []server.Middleware{
		middleware.NewErrorHandlerMW(false),
		apihttp.NewTenantResolveMW(),
	})

	var app *fiber.App
	srv.RegisterRouter(func(r fiber.Router) {
		a, ok := r.(*fiber.App)
		require.True(t, ok)
		app = a
		rt.Register(r)
	})

	return &testAPI{app: app, catalog: cat, fs: fs, fetcher: fetcher, tokens: tokens}
}

func (a *testAPI) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (a *testAPI) uploadFile(t *testing.T, tenant, fileName string, data []byte) docs.UploadOutput {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "http://"+tenant+".docs.example.com/v1/files", bytes.NewReader(data))
	req.Header.Set("X-File-Name", fileName)
	req.Header.Set("X-User-ID", "7")

	resp := a.do(t, req)
	defer resp.Body.Close()
	require.Contains(t, []int{http.StatusOK, http.StatusCreated}, resp.StatusCode)

	var out docs.UploadOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestUploadEndpoint(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	data := []byte("uploaded bytes")

	req := httptest.NewRequest(http.MethodPost, "http://acme.docs.example.com/v1/files", bytes.NewReader(data))
	req.Header.Set("X-File-Name", "report.docx")
	req.Header.Set("X-User-ID", "7")

	resp := api.do(t, req)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var out docs.UploadOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, docs.StatusCreated, out.Status)
	assert.Equal(t, int64(7), out.File.OwnerUserID)

	// An identical upload answers 200 with the duplicate status.
	dup := api.uploadFile(t, "acme", "report.docx", data)
	assert.Equal(t, docs.StatusDuplicate, dup.Status)
}

func TestUploadEndpoint_RequiresFileName(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "http://acme.docs.example.com/v1/files", bytes.NewReader([]byte("x")))
	resp := api.do(t, req)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTenantResolution(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	// No subdomain and no header: the request is rejected.
	req := httptest.NewRequest(http.MethodGet, "http://localhost/v1/files", nil)
	resp := api.do(t, req)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// An explicit header overrides the host.
	req = httptest.NewRequest(http.MethodGet, "http://localhost/v1/files", nil)
	req.Header.Set("X-Tenant-ID", "acme")
	resp2 := api.do(t, req)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestDownloadEndpoint(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	data := []byte("downloadable bytes")
	uploaded := api.uploadFile(t, "acme", "report.pdf", data)

	url := fmt.Sprintf("http://acme.docs.example.com/v1/files/%d/download", uploaded.File.ID)
	resp := api.do(t, httptest.NewRequest(http.MethodGet, url, nil))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="report.pdf"`)

	// The same file id under another tenant yields 404.
	other := fmt.Sprintf("http://globex.docs.example.com/v1/files/%d/download", uploaded.File.ID)
	resp2 := api.do(t, httptest.NewRequest(http.MethodGet, other, nil))
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestListAndDeleteEndpoints(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	uploaded := api.uploadFile(t, "acme", "report.docx", []byte("v1"))

	versionsURL := fmt.Sprintf("http://acme.docs.example.com/v1/files/%d/versions", uploaded.File.ID)
	resp := api.do(t, httptest.NewRequest(http.MethodGet, versionsURL, nil))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var versions docs.ListVersionsOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&versions))
	require.Len(t, versions.Versions, 1)
	assert.True(t, versions.Versions[0].IsLast)

	deleteURL := fmt.Sprintf("http://acme.docs.example.com/v1/files/%d", uploaded.File.ID)
	resp2 := api.do(t, httptest.NewRequest(http.MethodDelete, deleteURL, nil))
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	listURL := "http://acme.docs.example.com/v1/files"
	resp3 := api.do(t, httptest.NewRequest(http.MethodGet, listURL, nil))
	defer resp3.Body.Close()
	require.Equal(t, http.StatusOK, resp3.StatusCode)

	var list docs.ListFilesOutput
	require.NoError(t, json.NewDecoder(resp3.Body).Decode(&list))
	assert.Equal(t, int64(0), list.TotalCount)
}

func TestEditorCallbackEndpoint_WireContract(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	uploaded := api.uploadFile(t, "acme", "report.docx", []byte("original"))

	sessionURL := fmt.Sprintf("http://acme.docs.example.com/v1/files/%d/editor-session", uploaded.File.ID)
	req := httptest.NewRequest(http.MethodPost, sessionURL, nil)
	req.Header.Set("X-User-ID", "7")
	resp := api.do(t, req)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session editor.IssueSessionOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))

	api.fetcher.docs["https://editor.example.com/doc"] = []byte("edited")

	callbackURL := fmt.Sprintf(
		"http://docs.example.com/v1/editor/callback/acme/%d?token=%s",
		uploaded.File.ID, session.Token,
	)
	body := fmt.Sprintf(`{"key":%q,"status":6,"url":"https://editor.example.com/doc"}`, session.DocumentKey)

	req = httptest.NewRequest(http.MethodPost, callbackURL, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp2 := api.do(t, req)
	defer resp2.Body.Close()

	require.Equal(t, http.StatusOK, resp2.StatusCode)
	payload, err := io.ReadAll(resp2.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"error":0}`, string(payload))
	assert.Len(t, api.catalog.Versions(), 2)

	// A forged key still answers HTTP 200 but with the failure payload.
	forged := `{"key":"acme_0","status":6,"url":"https://editor.example.com/doc"}`
	req = httptest.NewRequest(http.MethodPost, callbackURL, bytes.NewReader([]byte(forged)))
	req.Header.Set("Content-Type", "application/json")
	resp3 := api.do(t, req)
	defer resp3.Body.Close()

	require.Equal(t, http.StatusOK, resp3.StatusCode)
	payload, err = io.ReadAll(resp3.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"error":1}`, string(payload))
	assert.Len(t, api.catalog.Versions(), 2)
}

func TestEditorCallbackEndpoint_MalformedRequests(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	cases := []struct {
		name string
		url  string
		body string
	}{
		{"bad file id", "http://docs.example.com/v1/editor/callback/acme/abc", `{"status":6}`},
		{"bad json", "http://docs.example.com/v1/editor/callback/acme/1", `{not json`},
		{"missing token", "http://docs.example.com/v1/editor/callback/acme/1", `{"status":6,"key":"acme_1"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, tc.url, bytes.NewReader([]byte(tc.body)))
			req.Header.Set("Content-Type", "application/json")
			resp := api.do(t, req)
			defer resp.Body.Close()

			require.Equal(t, http.StatusOK, resp.StatusCode)
			payload, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, `{"error":1}`, string(payload))
		})
	}
}

func TestDownloadEndpoint_ExplicitVersion(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	uploaded := api.uploadFile(t, "acme", "notes.docx", []byte("v1"))

	url := fmt.Sprintf(
		"http://acme.docs.example.com/v1/files/%d/download?version_id=%s",
		uploaded.File.ID, strconv.FormatInt(uploaded.Version.ID, 10),
	)
	resp := api.do(t, httptest.NewRequest(http.MethodGet, url, nil))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)
}
