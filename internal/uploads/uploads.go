// Package uploads stores item photos and receipts on disk under
// content-addressed names.
package uploads

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"

	"golang.org/x/crypto/blake2b"

	"github.com/erazemk/shramba/internal/imaging"
)

// MaxSize is the largest accepted upload in bytes.
const MaxSize = 10 << 20

// URLPrefix is the path under which stored files are served.
const URLPrefix = "/uploads/"

var (
	// ErrUnsupported is returned for files that are neither images nor PDFs.
	ErrUnsupported = errors.New("only JPEG, PNG and PDF files are accepted")
	// ErrTooLarge is returned for files over MaxSize.
	ErrTooLarge = errors.New("file exceeds 10 MB")
	// ErrInvalidImage is returned for images that cannot be decoded.
	ErrInvalidImage = errors.New("invalid image")
)

var namePattern = regexp.MustCompile(`^[0-9a-f]{32}\.(jpg|pdf)$`)

// Store writes uploads into a directory.
type Store struct {
	dir string
}

// New returns a store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save stores data and returns the URL it is served under. Images are
// normalized through the imaging package; PDFs are kept byte for byte.
// Saving identical content twice yields the same URL.
func (s *Store) Save(data []byte) (string, error) {
	if len(data) > MaxSize {
		return "", ErrTooLarge
	}

	var ext string
	switch {
	case imaging.IsImage(data):
		photo, err := imaging.Process(data)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidImage, err)
		}
		data, ext = photo.Data, ".jpg"
	case http.DetectContentType(data) == "application/pdf":
		ext = ".pdf"
	default:
		return "", ErrUnsupported
	}

	sum := blake2b.Sum256(data)
	name := hex.EncodeToString(sum[:16]) + ext
	path := filepath.Join(s.dir, name)

	if _, err := os.Stat(path); err == nil {
		return URLPrefix + name, nil
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("storing upload: %w", err)
	}
	return URLPrefix + name, nil
}

// Path returns the file path of a stored upload. It reports false for
// names that Save could not have produced.
func (s *Store) Path(name string) (string, bool) {
	if !namePattern.MatchString(name) {
		return "", false
	}
	return filepath.Join(s.dir, name), true
}
