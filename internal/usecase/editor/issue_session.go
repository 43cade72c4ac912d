package editor

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/docstore/internal/catalog"
	"github.com/rise-and-shine/docstore/token"
	"github.com/rise-and-shine/docstore/ucdef"
)

type IssueSessionInput struct {
	TenantID string `meta:"tenant_id" validate:"required"`
	ActorID  int64  `meta:"actor_id"  validate:"required"`
	FileID   int64  `params:"file_id" validate:"required"`
}

// IssueSessionOutput is the launch bundle handed to the frontend: where to
// open the editor, where the editor must report back, and the credential
// both URLs embed.
type IssueSessionOutput struct {
	LaunchURL    string    `json:"launch_url"`
	CallbackURL  string    `json:"callback_url"`
	Token        string    `json:"token"`
	DocumentKey  string    `json:"document_key"`
	DocumentType string    `json:"document_type"`
	FileName     string    `json:"file_name"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// IssueSession mints a time-limited editor credential scoped to a single
// file within a tenant. No session state is persisted; everything the
// callback handler needs is re-derived from the credential and the catalog.
type IssueSession struct {
	cfg     Config
	catalog catalog.Catalog
	tokens  *token.JWTMaker
}

var _ ucdef.UserAction[*IssueSessionInput, *IssueSessionOutput] = (*IssueSession)(nil)

func NewIssueSession(cfg Config, cat catalog.Catalog, tokens *token.JWTMaker) *IssueSession {
	return &IssueSession{
		cfg:     cfg,
		catalog: cat,
		tokens:  tokens,
	}
}

func (uc *IssueSession) OperationID() string {
	return "editor.issue-session"
}

func (uc *IssueSession) Execute(ctx context.Context, in *IssueSessionInput) (*IssueSessionOutput, error) {
	file, err := uc.catalog.FindFile(ctx, nil, in.FileID, in.TenantID)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	sessionToken, payload, err := uc.tokens.CreateToken(
		strconv.FormatInt(in.ActorID, 10),
		uc.cfg.SessionTTL,
		map[string]any{
			token.ClaimTenantID: in.TenantID,
			token.ClaimFileID:   strconv.FormatInt(in.FileID, 10),
		},
	)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	callbackURL := fmt.Sprintf(
		"%s/v1/editor/callback/%s/%d?token=%s",
		uc.cfg.CallbackBaseURL, url.PathEscape(in.TenantID), in.FileID, url.QueryEscape(sessionToken),
	)
	launchURL := fmt.Sprintf(
		"%s?file_id=%d&token=%s",
		uc.cfg.BaseURL, in.FileID, url.QueryEscape(sessionToken),
	)

	return &IssueSessionOutput{
		LaunchURL:    launchURL,
		CallbackURL:  callbackURL,
		Token:        sessionToken,
		DocumentKey:  CallbackKey(in.TenantID, in.FileID),
		DocumentType: string(file.DocumentType),
		FileName:     file.DisplayName(),
		ExpiresAt:    payload.ExpiresAt.Time,
	}, nil
}
