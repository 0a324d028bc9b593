package uploads

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"strings"
	"testing"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestSaveImage(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	url, err := s.Save(testPNG(t))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(url, URLPrefix) || !strings.HasSuffix(url, ".jpg") {
		t.Errorf("url = %q, want %s<hash>.jpg", url, URLPrefix)
	}

	again, err := s.Save(testPNG(t))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if again != url {
		t.Errorf("identical content stored as %q and %q", url, again)
	}

	path, ok := s.Path(strings.TrimPrefix(url, URLPrefix))
	if !ok {
		t.Fatalf("Path rejected %q", url)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("stored file missing: %v", err)
	}
}

func TestSavePDF(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	pdf := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n%%EOF\n")
	url, err := s.Save(pdf)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(url, ".pdf") {
		t.Errorf("url = %q, want .pdf", url)
	}

	path, _ := s.Path(strings.TrimPrefix(url, URLPrefix))
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading stored pdf: %v", err)
	}
	if !bytes.Equal(got, pdf) {
		t.Error("PDF was modified on save")
	}
}

func TestSaveRejects(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := s.Save([]byte("plain text")); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
	if _, err := s.Save(make([]byte, MaxSize+1)); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestPathRejectsTraversal(t *testing.T) {
	s := &Store{dir: t.TempDir()}
	for _, name := range []string{"../secret", "abc.jpg", "", "0123456789abcdef0123456789abcdef.exe"} {
		if _, ok := s.Path(name); ok {
			t.Errorf("Path(%q) accepted", name)
		}
	}
}
