package campaign

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "causajusta/internal/errors"
)

func TestValidateImages(t *testing.T) {
	valid := func(name string) ImageMeta {
		return ImageMeta{Name: name, Size: 1 << 20, MIME: "image/jpeg"}
	}

	tests := []struct {
		name          string
		alreadyQueued int
		incoming      []ImageMeta
		expectedError error
	}{
		{
			name:     "single valid image",
			incoming: []ImageMeta{valid("a.jpg")},
		},
		{
			name:     "five images at the limit",
			incoming: []ImageMeta{valid("a.jpg"), valid("b.jpg"), valid("c.jpg"), valid("d.jpg"), valid("e.jpg")},
		},
		{
			name:          "sixth image rejected",
			alreadyQueued: 5,
			incoming:      []ImageMeta{valid("f.jpg")},
			expectedError: apperrors.ErrImageLimitExceeded,
		},
		{
			name:          "count limit considers the queue",
			alreadyQueued: 3,
			incoming:      []ImageMeta{valid("a.jpg"), valid("b.jpg"), valid("c.jpg")},
			expectedError: apperrors.ErrImageLimitExceeded,
		},
		{
			name:          "oversized file",
			incoming:      []ImageMeta{{Name: "big.png", Size: 5<<20 + 1, MIME: "image/png"}},
			expectedError: apperrors.ErrImageTooLarge,
		},
		{
			name:     "file exactly at the size limit",
			incoming: []ImageMeta{{Name: "edge.png", Size: 5 << 20, MIME: "image/png"}},
		},
		{
			name:          "unsupported type",
			incoming:      []ImageMeta{{Name: "doc.pdf", Size: 1024, MIME: "application/pdf"}},
			expectedError: apperrors.ErrImageTypeInvalid,
		},
		{
			name:     "empty batch",
			incoming: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImages(tt.alreadyQueued, tt.incoming)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAllowedImageType(t *testing.T) {
	allowed := []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "IMAGE/PNG", " image/jpeg "}
	for _, mime := range allowed {
		assert.True(t, AllowedImageType(mime), mime)
	}

	rejected := []string{"image/webp", "image/svg+xml", "application/pdf", "video/mp4", ""}
	for _, mime := range rejected {
		assert.False(t, AllowedImageType(mime), mime)
	}
}
