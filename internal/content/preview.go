package content

import (
	"bytes"
	"context"

	"github.com/disintegration/imaging"

	"github.com/rise-and-shine/docstore/filestore"
	"github.com/rise-and-shine/docstore/logger"
)

const (
	previewMaxSide = 320
	previewSuffix  = "/preview"
)

// PreviewKey derives the storage key of a content object's preview image.
func PreviewKey(tenantID, hash string) string {
	return Key(tenantID, hash) + previewSuffix
}

// IsImage reports whether the content type is a raster image format the
// preview pipeline can decode.
func IsImage(contentType string) bool {
	switch contentType {
	case filestore.ContentTypeJPEG,
		filestore.ContentTypePNG,
		filestore.ContentTypeGIF,
		filestore.ContentTypeBMP,
		filestore.ContentTypeTIFF:
		return true
	default:
		return false
	}
}

// StorePreview generates and stores a downscaled JPEG preview for image
// content. Preview generation is best effort: failures are logged and never
// affect the upload that triggered them.
func (s *Store) StorePreview(ctx context.Context, tenantID, hash string, data []byte) {
	log := logger.Named("content.preview").WithContext(ctx).
		With("content_hash", hash)

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		log.With("cause", err.Error()).Warn("preview decode failed")
		return
	}

	thumb := imaging.Fit(img, previewMaxSide, previewMaxSide, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		log.With("cause", err.Error()).Warn("preview encode failed")
		return
	}

	key := PreviewKey(tenantID, hash)
	if _, err := s.fs.Put(ctx, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), filestore.ContentTypeJPEG); err != nil {
		log.With("cause", err.Error()).Warn("preview store failed")
	}
}
