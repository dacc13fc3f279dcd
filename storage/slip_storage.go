// Package storage keeps uploaded transaction slips on local disk, one file
// per donation, named after the donation's order number.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

var ErrBadExtension = errors.New("transaction slip must be a JPG, JPEG, PNG, or PDF file")

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

type SlipStore struct {
	Dir string
}

func NewSlipStore(dir string) (*SlipStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create slip directory %s: %w", dir, err)
	}
	return &SlipStore{Dir: dir}, nil
}

// Save validates the uploaded file's extension and writes it to
// <dir>/<orderNumber><ext>, returning the stored filename.
func (s *SlipStore) Save(file *multipart.FileHeader, orderNumber string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", ErrBadExtension
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded slip: %w", err)
	}
	defer src.Close()

	name := orderNumber + ext
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to store slip: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write slip: %w", err)
	}
	return name, nil
}

// Path resolves a stored slip filename to its absolute location on disk.
func (s *SlipStore) Path(name string) string {
	return filepath.Join(s.Dir, filepath.Base(name))
}
