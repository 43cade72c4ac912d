package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"

	"github.com/rise-and-shine/docstore/internal/usecase/docs"
	"github.com/rise-and-shine/docstore/internal/usecase/editor"
	"github.com/rise-and-shine/docstore/logger"
	"github.com/rise-and-shine/docstore/meta"
	"github.com/rise-and-shine/docstore/val"
)

const (
	headerFileName = "X-File-Name"

	codeMissingFileName = "MISSING_FILE_NAME"
	codeInvalidFileID   = "INVALID_FILE_ID"
)

// handleUpload accepts the document as the raw request body. The filename
// comes from the X-File-Name header and the declared mime type from
// Content-Type; the transport's body limit bounds the document size.
func (rt *Router) handleUpload(c *fiber.Ctx) error {
	fileName := c.Get(headerFileName)
	if fileName == "" {
		return errx.New(
			"missing "+headerFileName+" header",
			errx.WithCode(codeMissingFileName),
			errx.WithType(errx.T_Validation),
		)
	}

	ctx := c.UserContext()
	in := &docs.UploadInput{
		TenantID: meta.GetTenantID(ctx),
		ActorID:  cast.ToInt64(meta.GetActorID(ctx)),
		FileName: fileName,
		MimeType: c.Get(fiber.HeaderContentType),
		Data:     c.Body(),
	}
	if err := val.ValidateSchema(in); err != nil {
		return errx.Wrap(err)
	}

	out, err := rt.upload.Execute(ctx, in)
	if err != nil {
		return errx.Wrap(err)
	}

	status := fiber.StatusOK
	if out.Status == docs.StatusCreated {
		status = fiber.StatusCreated
	}
	return errx.Wrap(c.Status(status).JSON(out))
}

// handleDownload streams the resolved version's bytes with attachment
// disposition.
func (rt *Router) handleDownload(c *fiber.Ctx) error {
	fileID, err := strconv.ParseInt(c.Params("file_id"), 10, 64)
	if err != nil {
		return errx.New(
			"invalid file id",
			errx.WithCode(codeInvalidFileID),
			errx.WithType(errx.T_Validation),
		)
	}

	ctx := c.UserContext()
	in := &docs.DownloadInput{
		TenantID:  meta.GetTenantID(ctx),
		FileID:    fileID,
		VersionID: cast.ToInt64(c.Query("version_id")),
	}
	if err := val.ValidateSchema(in); err != nil {
		return errx.Wrap(err)
	}

	out, err := rt.download.Execute(ctx, in)
	if err != nil {
		return errx.Wrap(err)
	}

	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, attachmentDisposition(out.FileName))
	return errx.Wrap(c.SendStream(out.Stream, int(out.Size)))
}

// handleEditorCallback answers the external editor's status callbacks.
// The response is always HTTP 200 with the protocol's two-state payload;
// even malformed requests get {"error":1} instead of an HTTP error, because
// that payload is all the editor understands.
func (rt *Router) handleEditorCallback(c *fiber.Ctx) error {
	log := logger.Named("editor.callback").WithContext(c.UserContext())

	in := &editor.CallbackInput{}
	if err := c.BodyParser(in); err != nil {
		log.With("cause", err.Error()).Warn("malformed callback body")
		return errx.Wrap(c.JSON(editor.CallbackOutput{Error: 1}))
	}

	fileID, err := strconv.ParseInt(c.Params("file_id"), 10, 64)
	if err != nil {
		log.Warn("malformed callback file id")
		return errx.Wrap(c.JSON(editor.CallbackOutput{Error: 1}))
	}

	in.TenantID = c.Params("tenant_id")
	in.FileID = fileID
	in.Token = c.Query("token")

	out, err := rt.callback.Execute(c.UserContext(), in)
	if err != nil {
		// The callback use case swallows its own failures; anything that
		// reaches here is unexpected but still must not break the contract.
		log.With("cause", err.Error()).Error("callback handling failed")
		return errx.Wrap(c.JSON(editor.CallbackOutput{Error: 1}))
	}

	return errx.Wrap(c.JSON(out))
}

func attachmentDisposition(fileName string) string {
	sanitized := strings.NewReplacer(`"`, "", "\r", "", "\n", "").Replace(fileName)
	return fmt.Sprintf("attachment; filename=%q", sanitized)
}
