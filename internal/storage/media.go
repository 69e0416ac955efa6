package storage

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MediaStore writes uploaded files under a root directory, one subdirectory
// per upload category (product_images, products, profile_pics). Stored paths
// are relative to the root and served back under /media/.
type MediaStore struct {
	root string
}

func NewMediaStore(root string) (*MediaStore, error) {
	if root == "" {
		return nil, errors.New("media root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &MediaStore{root: root}, nil
}

// Root returns the absolute directory files are stored under.
func (s *MediaStore) Root() string {
	return s.root
}

// sanitizeName keeps the original filename readable while stripping path
// separators and awkward characters.
func sanitizeName(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}

// Save persists the upload under subdir and returns the stored path relative
// to the media root. A random prefix avoids collisions between same-named
// uploads.
func (s *MediaStore) Save(subdir string, fh *multipart.FileHeader) (string, error) {
	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString()[:8] + "_" + sanitizeName(fh.Filename)
	dst := filepath.Join(dir, name)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", err
	}

	return filepath.ToSlash(filepath.Join(subdir, name)), nil
}

// Remove deletes a stored file by its relative path. Missing files are not an
// error; the row pointing at them is already gone or going.
func (s *MediaStore) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(relPath)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
