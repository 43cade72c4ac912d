package editor_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/docstore/internal/catalog/catalogtest"
	"github.com/rise-and-shine/docstore/internal/domain"
	"github.com/rise-and-shine/docstore/internal/usecase/editor"
	"github.com/rise-and-shine/docstore/token"
)

func testConfig() editor.Config {
	return editor.Config{
		BaseURL:         "https://editor.example.com/launch",
		CallbackBaseURL: "https://docs.example.com",
		TokenSecret:     "test-secret-0123456789",
		SessionTTL:      8 * time.Hour,
	}
}

func newTokens(t *testing.T) *token.JWTMaker {
	t.Helper()

	tokens, err := token.NewJWTMaker(testConfig().TokenSecret)
	require.NoError(t, err)
	return tokens
}

func seedFile(t *testing.T, cat *catalogtest.Memory, tenantID, fileName string) *domain.LogicalFile {
	t.Helper()

	name, ext := domain.SplitFileName(fileName)
	file := &domain.LogicalFile{
		TenantID:     tenantID,
		Name:         name,
		Extension:    ext,
		DocumentType: domain.DocumentTypeForExtension(ext),
		OwnerUserID:  7,
	}
	err := cat.CreateFile(context.Background(), nil, file, &domain.FileVersion{
		ContentHash: "seed-hash",
		StorageKey:  "tenants/" + tenantID + "/se/seed-hash",
		SizeBytes:   4,
		MimeType:    "application/octet-stream",
	})
	require.NoError(t, err)
	return file
}

func TestIssueSession_MintsScopedToken(t *testing.T) {
	t.Parallel()

	cat := catalogtest.NewMemory()
	tokens := newTokens(t)
	file := seedFile(t, cat, "acme", "notes.docx")

	uc := editor.NewIssueSession(testConfig(), cat, tokens)
	out, err := uc.Execute(context.Background(), &editor.IssueSessionInput{
		TenantID: "acme",
		ActorID:  7,
		FileID:   file.ID,
	})
	require.NoError(t, err)

	payload, err := tokens.VerifyToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, "7", payload.Subject)
	assert.Equal(t, "acme", payload.CustomString(token.ClaimTenantID))
	assert.Equal(t, strconv.FormatInt(file.ID, 10), payload.CustomString(token.ClaimFileID))

	assert.Equal(t, editor.CallbackKey("acme", file.ID), out.DocumentKey)
	assert.Equal(t, "notes.docx", out.FileName)
	assert.Equal(t, string(domain.DocumentTypeWord), out.DocumentType)
	assert.Contains(t, out.LaunchURL, testConfig().BaseURL)
	assert.Contains(t, out.LaunchURL, out.Token)
	assert.Contains(t, out.CallbackURL, "/v1/editor/callback/acme/")
	assert.Contains(t, out.CallbackURL, out.Token)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), out.ExpiresAt, time.Minute)
}

func TestIssueSession_UnknownFile(t *testing.T) {
	t.Parallel()

	uc := editor.NewIssueSession(testConfig(), catalogtest.NewMemory(), newTokens(t))
	_, err := uc.Execute(context.Background(), &editor.IssueSessionInput{
		TenantID: "acme",
		ActorID:  7,
		FileID:   404,
	})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestIssueSession_WrongTenant(t *testing.T) {
	t.Parallel()

	cat := catalogtest.NewMemory()
	file := seedFile(t, cat, "acme", "notes.docx")

	uc := editor.NewIssueSession(testConfig(), cat, newTokens(t))
	_, err := uc.Execute(context.Background(), &editor.IssueSessionInput{
		TenantID: "globex",
		ActorID:  7,
		FileID:   file.ID,
	})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestCallbackKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "acme_42", editor.CallbackKey("acme", 42))
}
