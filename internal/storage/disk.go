package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// URLPrefix is the path the API serves disk-backed uploads from.
const URLPrefix = "/uploads/"

// Disk stores objects as files below a root directory.
type Disk struct {
	root string
}

// NewDisk creates the root directory if needed and returns a Disk backend.
func NewDisk(root string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", root, err)
	}
	return &Disk{root: root}, nil
}

// Root returns the directory files are written to.
func (d *Disk) Root() string { return d.root }

// Put writes the object to a temp file first and renames it into place, so
// readers never see a partial image.
func (d *Disk) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	path, err := d.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("disk put %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("disk put %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("disk write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("disk write %s: %w", key, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("disk rename %s: %w", key, err)
	}
	return URLPrefix + key, nil
}

// Remove deletes the file behind a /uploads/ URL. A missing file is not an error.
func (d *Disk) Remove(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, URLPrefix)
	if !ok {
		return nil
	}
	path, err := d.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disk delete %s: %w", key, err)
	}
	return nil
}

// path maps a key to a file below root, rejecting keys that escape it.
func (d *Disk) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(d.root, filepath.FromSlash(clean)), nil
}
