// Package http exposes the document core over HTTP: upload, download,
// listing, deletion, and the editor session endpoints.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/docstore/http/server/forward"
	"github.com/rise-and-shine/docstore/internal/usecase/docs"
	"github.com/rise-and-shine/docstore/internal/usecase/editor"
)

// Router wires the document and editor use cases into the HTTP surface.
type Router struct {
	upload       *docs.Upload
	download     *docs.Download
	listFiles    *docs.ListFiles
	listVersions *docs.ListVersions
	delete       *docs.Delete
	issueSession *editor.IssueSession
	callback     *editor.Callback
}

func NewRouter(
	upload *docs.Upload,
	download *docs.Download,
	listFiles *docs.ListFiles,
	listVersions *docs.ListVersions,
	del *docs.Delete,
	issueSession *editor.IssueSession,
	callback *editor.Callback,
) *Router {
	return &Router{
		upload:       upload,
		download:     download,
		listFiles:    listFiles,
		listVersions: listVersions,
		delete:       del,
		issueSession: issueSession,
		callback:     callback,
	}
}

// Register mounts all routes. Upload, download, and the editor callback get
// hand-written handlers (raw body, streaming, and a fixed wire contract
// respectively); the rest go through the generic forwarder.
func (rt *Router) Register(r fiber.Router) {
	v1 := r.Group("/v1")

	v1.Post("/files", rt.handleUpload)
	v1.Get("/files", forward.ToUseCase(rt.listFiles.Execute))
	v1.Get("/files/:file_id/versions", forward.ToUseCase(rt.listVersions.Execute))
	v1.Get("/files/:file_id/download", rt.handleDownload)
	v1.Delete("/files/:file_id", forward.ToUseCaseNoResp(rt.delete.Execute))
	v1.Post("/files/:file_id/editor-session", forward.ToUseCase(rt.issueSession.Execute))

	v1.Post("/editor/callback/:tenant_id/:file_id", rt.handleEditorCallback)
}
