package media_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"skillswap/backend/internal/media"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/png", "image"},
		{"image/jpeg", "image"},
		{"video/mp4", "video"},
		{"audio/mpeg", "audio"},
		{"application/pdf", ""},
		{"text/plain", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, media.Classify(tt.contentType))
		})
	}
}

func TestDiskStore_SaveKeepsExtension(t *testing.T) {
	dir := t.TempDir()
	store, err := media.NewDiskStore(dir, "http://localhost:8080/uploads/message-uploads/")
	assert.NoError(t, err)

	url, err := store.Save(bytes.NewReader([]byte("fake png bytes")), "holiday.png")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/message-uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	assert.NoError(t, err)
	assert.Equal(t, "fake png bytes", string(data))
}

func TestDiskStore_RejectsOversizedUpload(t *testing.T) {
	dir := t.TempDir()
	store, err := media.NewDiskStore(dir, "http://localhost:8080/uploads")
	assert.NoError(t, err)

	// One byte over the 10 MiB ceiling.
	big := bytes.NewReader(make([]byte, media.MaxUploadSize+1))
	_, err = store.Save(big, "huge.bin")
	assert.ErrorIs(t, err, media.ErrTooLarge)

	entries, readErr := os.ReadDir(dir)
	assert.NoError(t, readErr)
	assert.Empty(t, entries, "an oversized upload must leave nothing behind")
}
