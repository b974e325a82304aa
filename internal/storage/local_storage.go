package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage holds uploaded files on disk until they are handed to the
// media host.
type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, err
	}
	return &LocalStorage{basePath: basePath}, nil
}

// SaveUpload writes data under a fresh name that keeps the extension of the
// client supplied filename, and returns the path it was written to.
func (ls *LocalStorage) SaveUpload(filename string, data io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	filePath := filepath.Join(ls.basePath, uuid.NewString()+ext)

	file, err := os.Create(filePath)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(file, data); err != nil {
		file.Close()
		os.Remove(filePath)
		return "", fmt.Errorf("writing %s: %w", filePath, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(filePath)
		return "", err
	}

	return filePath, nil
}

// Remove deletes a staged file. Paths outside the staging directory are
// refused; a file that is already gone is not an error.
func (ls *LocalStorage) Remove(path string) error {
	if path == "" {
		return nil
	}
	if filepath.Dir(filepath.Clean(path)) != filepath.Clean(ls.basePath) {
		return fmt.Errorf("%s is not a staged file", path)
	}

	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
