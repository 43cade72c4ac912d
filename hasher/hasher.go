// Package hasher computes content digests used for content-addressed storage.
//
// The digest is the identity key of uploaded bytes within a tenant: two
// uploads with the same digest are treated as the same content. SHA-256 is
// used for its collision resistance; the hex form is stored in the catalog
// and embedded in storage keys.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"io"

	"github.com/code19m/errx"
)

// Size is the length of a hex-encoded digest.
const Size = sha256.Size * 2

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// SumReader consumes r fully and returns the hex-encoded SHA-256 digest of
// everything read.
func SumReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", errx.Wrap(err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Valid reports whether s looks like a hex-encoded SHA-256 digest.
func Valid(s string) bool {
	if len(s) != Size {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
