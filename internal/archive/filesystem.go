package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cr-go/internal/rec"
)

// FileSystemArchive is a filesystem-based implementation of the Archive
// interface. Archived recordings are stored as flat files under the
// archive root, written atomically (temp file + rename) so a crash never
// leaves a truncated recording.
type FileSystemArchive struct {
	name string
	root string
}

// NewFileSystemArchive creates a new filesystem archive rooted at the given path.
func NewFileSystemArchive(name, root string) (*FileSystemArchive, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	return &FileSystemArchive{
		name: name,
		root: root,
	}, nil
}

// Put stores an archived recording under the given name.
// Storing the same name twice overwrites the previous copy.
func (a *FileSystemArchive) Put(name string, r io.Reader, size int64) error {
	destPath := filepath.Join(a.root, name)

	tmpFile, err := os.CreateTemp(a.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write recording: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if written != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// ValidateSetup verifies that the archive root is accessible.
func (a *FileSystemArchive) ValidateSetup() error {
	info, err := os.Stat(a.root)
	if err != nil {
		return fmt.Errorf("archive root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("archive root is not a directory: %s", a.root)
	}
	return nil
}

// Compile-time check that FileSystemArchive implements the Archive interface
var _ rec.Archive = (*FileSystemArchive)(nil)
