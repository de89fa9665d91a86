package archive_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cr-go/internal/archive"
	"cr-go/internal/config"
)

func TestMemoryArchive(t *testing.T) {
	t.Run("stores and returns objects", func(t *testing.T) {
		t.Parallel()
		a := archive.NewMemoryArchive("test")

		if err := a.Put("rec.json", strings.NewReader("data"), 4); err != nil {
			t.Fatalf("Put() error = %v", err)
		}

		got, ok := a.Object("rec.json")
		if !ok {
			t.Fatal("Object() not found")
		}
		if string(got) != "data" {
			t.Errorf("Object() = %q, want %q", got, "data")
		}
		if a.Len() != 1 {
			t.Errorf("Len() = %d, want 1", a.Len())
		}
	})

	t.Run("rejects size mismatch", func(t *testing.T) {
		t.Parallel()
		a := archive.NewMemoryArchive("test")

		if err := a.Put("rec.json", strings.NewReader("data"), 99); err == nil {
			t.Error("Put() expected error for size mismatch")
		}
	})

	t.Run("validates trivially", func(t *testing.T) {
		t.Parallel()
		if err := archive.NewMemoryArchive("test").ValidateSetup(); err != nil {
			t.Errorf("ValidateSetup() error = %v", err)
		}
	})
}

func TestFileSystemArchive(t *testing.T) {
	t.Run("writes recordings under the root", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		a, err := archive.NewFileSystemArchive("local", root)
		if err != nil {
			t.Fatalf("NewFileSystemArchive() error = %v", err)
		}

		if err := a.Put("rec.json", strings.NewReader("data"), 4); err != nil {
			t.Fatalf("Put() error = %v", err)
		}

		got, err := os.ReadFile(filepath.Join(root, "rec.json"))
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != "data" {
			t.Errorf("content = %q, want %q", got, "data")
		}
	})

	t.Run("overwrites an existing recording", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		a, _ := archive.NewFileSystemArchive("local", root)

		a.Put("rec.json", strings.NewReader("old"), 3)
		if err := a.Put("rec.json", strings.NewReader("newer"), 5); err != nil {
			t.Fatalf("Put() error = %v", err)
		}

		got, _ := os.ReadFile(filepath.Join(root, "rec.json"))
		if string(got) != "newer" {
			t.Errorf("content = %q, want %q", got, "newer")
		}
	})

	t.Run("size mismatch leaves no file behind", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		a, _ := archive.NewFileSystemArchive("local", root)

		if err := a.Put("rec.json", strings.NewReader("data"), 99); err == nil {
			t.Fatal("Put() expected error for size mismatch")
		}
		entries, _ := os.ReadDir(root)
		if len(entries) != 0 {
			t.Errorf("root not empty: %d entries", len(entries))
		}
	})

	t.Run("creates the root directory", func(t *testing.T) {
		t.Parallel()
		root := filepath.Join(t.TempDir(), "nested", "archive")
		a, err := archive.NewFileSystemArchive("local", root)
		if err != nil {
			t.Fatalf("NewFileSystemArchive() error = %v", err)
		}
		if err := a.ValidateSetup(); err != nil {
			t.Errorf("ValidateSetup() error = %v", err)
		}
	})
}

func TestNewArchiveFromConfig(t *testing.T) {
	t.Run("creates memory archive", func(t *testing.T) {
		t.Parallel()
		a, err := archive.NewArchiveFromConfig(config.ArchiveConfig{Type: "memory", Name: "m"})
		if err != nil {
			t.Fatalf("NewArchiveFromConfig() error = %v", err)
		}
		if _, ok := a.(*archive.MemoryArchive); !ok {
			t.Errorf("type = %T, want *MemoryArchive", a)
		}
	})

	t.Run("creates filesystem archive", func(t *testing.T) {
		t.Parallel()
		a, err := archive.NewArchiveFromConfig(config.ArchiveConfig{
			Type:          "filesystem",
			Name:          "local",
			FSArchiveRoot: t.TempDir(),
		})
		if err != nil {
			t.Fatalf("NewArchiveFromConfig() error = %v", err)
		}
		if _, ok := a.(*archive.FileSystemArchive); !ok {
			t.Errorf("type = %T, want *FileSystemArchive", a)
		}
	})

	t.Run("requires a root for filesystem", func(t *testing.T) {
		t.Parallel()
		if _, err := archive.NewArchiveFromConfig(config.ArchiveConfig{Type: "filesystem"}); err == nil {
			t.Error("expected error for missing fs_archive_root")
		}
	})

	t.Run("requires a bucket for s3", func(t *testing.T) {
		t.Parallel()
		if _, err := archive.NewArchiveFromConfig(config.ArchiveConfig{Type: "s3"}); err == nil {
			t.Error("expected error for missing s3_bucket")
		}
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		t.Parallel()
		if _, err := archive.NewArchiveFromConfig(config.ArchiveConfig{Type: "tape"}); err == nil {
			t.Error("expected error for unknown type")
		}
	})
}
