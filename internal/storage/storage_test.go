package storage

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadPolicy_Check(t *testing.T) {
	tests := []struct {
		name        string
		policy      UploadPolicy
		filename    string
		contentType string
		size        int64
		wantType    string
		wantExt     string
		wantErr     error
	}{
		{"png image", ProductImages, "a.png", "image/png", 10, "image/png", ".png", nil},
		{"jpg alias", ProductImages, "a.jpg", "image/jpg", 10, "image/jpeg", ".jpg", nil},
		{"type from extension", ProductImages, "photo.JPEG", "application/octet-stream", 10, "image/jpeg", ".jpg", nil},
		{"pdf rejected for products", ProductImages, "a.pdf", "application/pdf", 10, "", "", ErrUnsupportedType},
		{"pdf document", Documents, "a.pdf", "application/pdf", 10, "application/pdf", ".pdf", nil},
		{"params stripped", Documents, "a.pdf", "application/pdf; charset=binary", 10, "application/pdf", ".pdf", nil},
		{"empty", Documents, "a.pdf", "application/pdf", 0, "", "", ErrEmptyFile},
		{"image limit", ProductImages, "a.png", "image/png", 4<<20 + 1, "", "", ErrTooLarge},
		{"document limit ok", Documents, "a.pdf", "application/pdf", 10 << 20, "application/pdf", ".pdf", nil},
		{"text rejected", Documents, "a.txt", "text/plain", 10, "", "", ErrUnsupportedType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, ext, err := tt.policy.Check(tt.filename, tt.contentType, tt.size)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantType, ct)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestUploadPolicy_Key(t *testing.T) {
	uuidRe := `[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`

	assert.Regexp(t, regexp.MustCompile(`^products/`+uuidRe+`\.png$`), ProductImages.Key("", ".png"))
	assert.Regexp(t, regexp.MustCompile(`^documents/org-1/`+uuidRe+`\.pdf$`), Documents.Key("org-1", ".pdf"))
	assert.NotEqual(t, Documents.Key("o", ".pdf"), Documents.Key("o", ".pdf"))
}

func TestDownloadName(t *testing.T) {
	_, ok := DownloadName(context.Background())
	assert.False(t, ok)

	name, ok := DownloadName(WithDownloadName(context.Background(), "report.pdf"))
	assert.True(t, ok)
	assert.Equal(t, "report.pdf", name)
}
