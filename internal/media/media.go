// Package media is the glue to the external blob-storage collaborator used
// for chat attachments. The rest of the system treats a stored file as an
// opaque URL plus a coarse type.
package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadSize is the ceiling for a single chat attachment.
const MaxUploadSize = 10 << 20 // 10 MiB

// ErrTooLarge is returned for uploads over MaxUploadSize.
var ErrTooLarge = errors.New("file exceeds the 10 MiB upload limit")

// Store saves an uploaded file and returns its public URL.
type Store interface {
	Save(r io.Reader, originalName string) (url string, err error)
}

// Classify maps a declared content type onto the media kinds the chat
// understands. Unknown types come back as "" and are stored untyped.
func Classify(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image"):
		return "image"
	case strings.HasPrefix(contentType, "video"):
		return "video"
	case strings.HasPrefix(contentType, "audio"):
		return "audio"
	default:
		return ""
	}
}

// DiskStore writes uploads to a local directory served as static files.
// It stands in for the real blob-storage service in development.
type DiskStore struct {
	Dir     string
	BaseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &DiskStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save streams the file to disk under a fresh UUID name, keeping the
// original extension. Copy is capped one byte past the limit so oversized
// uploads fail without buffering the whole file.
func (d *DiskStore) Save(r io.Reader, originalName string) (string, error) {
	name := uuid.New().String() + filepath.Ext(originalName)
	path := filepath.Join(d.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		os.Remove(path)
		return "", err
	}
	if n > MaxUploadSize {
		os.Remove(path)
		return "", ErrTooLarge
	}

	return d.BaseURL + "/" + name, nil
}
