// Package storage implements the server-managed directory for uploaded
// article images. Files are stored flat under one directory with
// UUID-derived names and exposed by the HTTP layer at /uploads/<name>.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/securecontent/workspace-api/internal/api/metrics"
	"github.com/securecontent/workspace-api/internal/core/domain"
)

// allowedImageTypes maps the accepted sniffed content types to the stored
// file extension.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

const sniffLen = 512

// LocalStore writes uploads to a local directory.
type LocalStore struct {
	dir      string
	maxBytes int64
	log      zerolog.Logger
}

// NewLocalStore creates dir if needed and returns a store enforcing
// maxBytes per file.
func NewLocalStore(dir string, maxBytes int64, log zerolog.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, maxBytes: maxBytes, log: log}, nil
}

// Save stores the uploaded file under a fresh UUID name and returns that
// name. The content type is sniffed from the first bytes, not trusted from
// the client's headers. Rejects with domain.KindPayloadTooLarge or
// domain.KindUnsupportedMedia on constraint violations.
func (s *LocalStore) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.maxBytes {
		return "", domain.E(domain.KindPayloadTooLarge,
			fmt.Sprintf("image exceeds the maximum size of %d bytes", s.maxBytes))
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	// ReadFull so a short non-EOF read cannot truncate the sniff window.
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	ext, ok := allowedImageTypes[http.DetectContentType(head)]
	if !ok {
		return "", domain.E(domain.KindUnsupportedMedia,
			"unsupported image type: only jpeg, png, gif and webp are accepted")
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := dst.Write(head); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	metrics.UploadsStoredTotal.Inc()
	return name, nil
}

// Remove deletes a stored file best-effort: a failure is logged, never
// returned, so cleanup can never mask the error that triggered it.
func (s *LocalStore) Remove(name string) {
	if name == "" {
		return
	}
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.Remove(path); err != nil {
		s.log.Warn().Err(err).Str("file", name).Msg("failed to delete uploaded file")
	}
}

// Dir returns the directory served at /uploads.
func (s *LocalStore) Dir() string { return s.dir }
