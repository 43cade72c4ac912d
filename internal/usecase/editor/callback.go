package editor

import (
	"context"
	"strconv"

	"github.com/rise-and-shine/docstore/internal/catalog"
	"github.com/rise-and-shine/docstore/internal/domain"
	"github.com/rise-and-shine/docstore/internal/usecase/docs"
	"github.com/rise-and-shine/docstore/logger"
	"github.com/rise-and-shine/docstore/token"
	"github.com/rise-and-shine/docstore/ucdef"
)

// CallbackInput is the editor's status report for one session. TenantID and
// FileID come from the callback URL path, Token from its query string; Key,
// Status, and URL are the editor's own payload.
type CallbackInput struct {
	TenantID string `params:"tenant_id" validate:"required"`
	FileID   int64  `params:"file_id"   validate:"required"`
	Token    string `query:"token"      validate:"required"`

	Key    string `json:"key"`
	Status int    `json:"status"`
	URL    string `json:"url"`
}

// CallbackOutput is the fixed two-state wire contract of the editor
// protocol. Error is 0 on success and 1 on failure; no other shape is
// ever returned.
type CallbackOutput struct {
	Error int `json:"error"`
}

// Uploader commits fetched document bytes through the upload pipeline.
// Satisfied by docs.Upload.
type Uploader interface {
	Execute(ctx context.Context, in *docs.UploadInput) (*docs.UploadOutput, error)
}

// Callback reconciles editor session callbacks against the catalog. It
// never returns an application error: every outcome, including invalid
// credentials and failed saves, collapses into the fixed success or failure
// payload, because that two-valued response is all the editor understands.
type Callback struct {
	catalog catalog.Catalog
	tokens  *token.JWTMaker
	fetcher DocumentFetcher
	upload  Uploader
}

var _ ucdef.UserAction[*CallbackInput, *CallbackOutput] = (*Callback)(nil)

func NewCallback(cat catalog.Catalog, tokens *token.JWTMaker, fetcher DocumentFetcher, upload Uploader) *Callback {
	return &Callback{
		catalog: cat,
		tokens:  tokens,
		fetcher: fetcher,
		upload:  upload,
	}
}

func (uc *Callback) OperationID() string {
	return "editor.callback"
}

func (uc *Callback) Execute(ctx context.Context, in *CallbackInput) (*CallbackOutput, error) {
	log := logger.Named("editor.callback").WithContext(ctx).
		With("file_id", in.FileID).
		With("status", in.Status)

	payload, ok := uc.validateCredential(in, log)
	if !ok {
		return failure(), nil
	}

	switch in.Status {
	case StatusEditing, StatusReady, StatusClosedNoChanges, StatusAutosave:
		log.Info("editor session status received")
		return success(), nil

	case StatusSaveOnError, StatusForceSave:
		return uc.save(ctx, in, payload, log), nil

	case StatusSaveError:
		log.Warn("editor reported unrecoverable error, no save attempted")
		return failure(), nil

	default:
		// Unknown future codes must not break the handshake.
		log.Warn("unrecognized editor status, ignored")
		return success(), nil
	}
}

// validateCredential checks the session token's signature, expiry, and
// scope claims, and requires the callback key to be the exact deterministic
// key for this file. A valid token for a different file fails here.
func (uc *Callback) validateCredential(in *CallbackInput, log logger.Logger) (*token.Payload, bool) {
	log = log.With("code", domain.CodeInvalidCallbackCredential)

	payload, err := uc.tokens.VerifyToken(in.Token)
	if err != nil {
		log.With("cause", err.Error()).Warn("callback token rejected")
		return nil, false
	}

	if payload.CustomString(token.ClaimTenantID) != in.TenantID ||
		payload.CustomString(token.ClaimFileID) != strconv.FormatInt(in.FileID, 10) {
		log.Warn("callback token scope mismatch")
		return nil, false
	}

	if in.Key != CallbackKey(in.TenantID, in.FileID) {
		log.With("key", in.Key).Warn("callback key mismatch")
		return nil, false
	}

	return payload, true
}

// save fetches the document the editor points at and commits it as a new
// version of the session's file. Re-delivered callbacks for the same saved
// content dedup to DUPLICATE inside the upload pipeline, so no second
// version appears.
func (uc *Callback) save(
	ctx context.Context,
	in *CallbackInput,
	payload *token.Payload,
	log logger.Logger,
) *CallbackOutput {
	file, err := uc.catalog.FindFile(ctx, nil, in.FileID, in.TenantID)
	if err != nil {
		log.With("cause", err.Error()).Warn("callback file resolution failed")
		return failure()
	}

	data, err := uc.fetcher.Fetch(ctx, in.URL)
	if err != nil {
		log.With("cause", err.Error()).Warn("document fetch failed")
		return failure()
	}

	actorID, err := strconv.ParseInt(payload.Subject, 10, 64)
	if err != nil {
		// The save still proceeds; the version is just left unattributed.
		log.With("subject", payload.Subject).Warn("session subject is not a user id")
	}

	out, err := uc.upload.Execute(ctx, &docs.UploadInput{
		TenantID:     in.TenantID,
		ActorID:      actorID,
		FileName:     file.DisplayName(),
		Data:         data,
		TargetFileID: in.FileID,
	})
	if err != nil {
		log.With("cause", err.Error()).Warn("save commit failed")
		return failure()
	}

	log.With("result", out.Status).
		With("version_id", out.Version.ID).
		Info("editor save processed")
	return success()
}

func success() *CallbackOutput {
	return &CallbackOutput{Error: 0}
}

func failure() *CallbackOutput {
	return &CallbackOutput{Error: 1}
}
