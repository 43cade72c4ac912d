// Package editor brokers access between the document core and the external
// collaborative editor: it issues short-lived session credentials scoped to
// a single file and reconciles the editor's asynchronous status callbacks
// against the catalog.
package editor

import (
	"fmt"
	"time"
)

// Config carries the editor integration settings.
type Config struct {
	// BaseURL is the external editor's launch endpoint.
	BaseURL string `yaml:"base_url" validate:"required"`

	// CallbackBaseURL is the publicly reachable base URL of this service,
	// used to build the callback endpoint handed to the editor.
	CallbackBaseURL string `yaml:"callback_base_url" validate:"required"`

	// TokenSecret signs editor session tokens.
	TokenSecret string `yaml:"token_secret" validate:"required" mask:"true"`

	// SessionTTL bounds the editor credential lifetime.
	SessionTTL time.Duration `yaml:"session_ttl" default:"8h"`
}

// Editor session status codes, defined by the external editor's protocol.
const (
	StatusEditing         = 0 // document is being edited
	StatusReady           = 1 // document ready, not yet saved
	StatusSaveOnError     = 2 // error state delivering a document to save
	StatusClosedNoChanges = 3 // session closed without changes
	StatusAutosave        = 4 // interim autosave, editing continues
	StatusForceSave       = 6 // timeout-triggered save
	StatusSaveError       = 7 // unrecoverable editing error
)

// CallbackKey builds the deterministic key the editor must echo back on
// every callback for the given file.
func CallbackKey(tenantID string, fileID int64) string {
	return fmt.Sprintf("%s_%d", tenantID, fileID)
}
