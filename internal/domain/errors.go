package domain

import "github.com/code19m/errx"

// Error codes shared across the document core.
const (
	// CodeFileNotFound is returned when a file or version does not exist or
	// does not belong to the caller's tenant. Surfaced as a generic 404 with
	// no detail on cause.
	CodeFileNotFound = "FILE_NOT_FOUND"

	// CodeFileUnavailable is returned when storage retrieval fails for an
	// otherwise-valid metadata record. Surfaced identically to
	// CodeFileNotFound so callers cannot distinguish "exists but broken"
	// from "never existed".
	CodeFileUnavailable = "FILE_UNAVAILABLE"

	// CodeInvalidCallbackCredential is used internally when an editor
	// callback fails key or token validation. Never surfaced as an HTTP
	// error; the callback endpoint answers with its fixed failure payload.
	CodeInvalidCallbackCredential = "INVALID_CALLBACK_CREDENTIAL"

	// CodeStorageWriteFailure is returned when writing content to the
	// object store fails. No catalog state is committed in that case.
	CodeStorageWriteFailure = "STORAGE_WRITE_FAILURE"
)

// ErrFileNotFound builds the uniform not-found error for files and versions.
func ErrFileNotFound() error {
	return errx.New(
		"file not found",
		errx.WithCode(CodeFileNotFound),
		errx.WithType(errx.T_NotFound),
	)
}

// ErrFileUnavailable builds the uniform retrieval-failure error. It carries
// the not-found type on purpose: availability problems must look identical
// to absence from the outside.
func ErrFileUnavailable() error {
	return errx.New(
		"file unavailable",
		errx.WithCode(CodeFileUnavailable),
		errx.WithType(errx.T_NotFound),
	)
}

// IsNotFound reports whether err carries the not-found error type.
func IsNotFound(err error) bool {
	return err != nil && errx.AsErrorX(err).Type() == errx.T_NotFound
}
