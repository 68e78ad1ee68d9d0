package campaign

import (
	"strings"

	apperrors "causajusta/internal/errors"
)

const (
	// MaxImages is the campaign image limit.
	MaxImages = 5
	// MaxImageSize is the per-file limit in bytes.
	MaxImageSize = 5 << 20
)

// ImageMeta describes a file queued for upload, before any bytes travel.
type ImageMeta struct {
	Name string
	Size int64
	MIME string
}

// AllowedImageType reports whether a MIME type is accepted for campaign
// images. The jpg alias appears in the wild even though it is not a
// registered type.
func AllowedImageType(mime string) bool {
	switch strings.ToLower(strings.TrimSpace(mime)) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif":
		return true
	default:
		return false
	}
}

// ValidateImages checks the incoming files against the count, size and type
// limits given how many images are already queued. It runs before any network
// call so a rejected batch costs nothing.
func ValidateImages(alreadyQueued int, incoming []ImageMeta) error {
	if alreadyQueued+len(incoming) > MaxImages {
		return apperrors.ErrImageLimitExceeded
	}
	for _, img := range incoming {
		if img.Size > MaxImageSize {
			return apperrors.ErrImageTooLarge
		}
		if !AllowedImageType(img.MIME) {
			return apperrors.ErrImageTypeInvalid
		}
	}
	return nil
}
