package storage

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/securecontent/workspace-api/internal/core/domain"
)

// pngHeader is the PNG magic number; enough for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	h.Set("Content-Type", "application/octet-stream")
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	return form.File["image"][0]
}

func newTestStore(t *testing.T, maxBytes int64) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir(), maxBytes, zerolog.Nop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestLocalStore_SaveAndRemove(t *testing.T) {
	store := newTestStore(t, 1<<20)
	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)

	name, err := store.Save(fileHeader(t, "photo.png", content))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if filepath.Ext(name) != ".png" {
		t.Fatalf("expected .png extension, got %s", name)
	}

	path := filepath.Join(store.Dir(), name)
	saved, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if !bytes.Equal(saved, content) {
		t.Fatalf("stored content differs from upload")
	}

	store.Remove(name)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file still present after remove")
	}
}

func TestLocalStore_AcceptsImageSmallerThanSniffWindow(t *testing.T) {
	store := newTestStore(t, 1<<20)

	// 8 bytes of content, far below the 512-byte sniff window; the short
	// read must not fail or truncate the stored file.
	name, err := store.Save(fileHeader(t, "tiny.png", pngHeader))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	stored, err := os.ReadFile(filepath.Join(store.Dir(), name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if !bytes.Equal(stored, pngHeader) {
		t.Fatalf("stored content mismatch: got %d bytes", len(stored))
	}
}

func TestLocalStore_UniqueNames(t *testing.T) {
	store := newTestStore(t, 1<<20)
	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 16)...)

	n1, err := store.Save(fileHeader(t, "a.png", content))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	n2, err := store.Save(fileHeader(t, "a.png", content))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if n1 == n2 {
		t.Fatalf("expected unique stored names, got %s twice", n1)
	}
}

func TestLocalStore_RejectsOversize(t *testing.T) {
	store := newTestStore(t, 32)
	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)

	_, err := store.Save(fileHeader(t, "big.png", content))
	var appErr *domain.Error
	if !errors.As(err, &appErr) || appErr.Kind != domain.KindPayloadTooLarge {
		t.Fatalf("expected KindPayloadTooLarge, got %v", err)
	}
}

func TestLocalStore_RejectsNonImage(t *testing.T) {
	store := newTestStore(t, 1<<20)

	_, err := store.Save(fileHeader(t, "notes.txt", []byte("just some plain text content")))
	var appErr *domain.Error
	if !errors.As(err, &appErr) || appErr.Kind != domain.KindUnsupportedMedia {
		t.Fatalf("expected KindUnsupportedMedia, got %v", err)
	}

	entries, err := os.ReadDir(store.Dir())
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("rejected upload left %d files behind", len(entries))
	}
}

func TestLocalStore_RemoveMissingIsSilent(t *testing.T) {
	store := newTestStore(t, 1<<20)
	// Must not panic or error; the failure is only logged.
	store.Remove("does-not-exist.png")
}
