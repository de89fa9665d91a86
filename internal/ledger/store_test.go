package ledger_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cr-go/internal/ledger"
	"cr-go/internal/model"
	"cr-go/internal/testutil"
)

func newStore(t *testing.T) *ledger.Store {
	t.Helper()
	return ledger.NewStore(t.TempDir(), testutil.FixedClock())
}

func TestStore_Load(t *testing.T) {
	t.Run("missing file yields a fresh empty ledger", func(t *testing.T) {
		t.Parallel()
		s := newStore(t)

		l := s.Load()
		if len(l.Files) != 0 {
			t.Errorf("len(Files) = %d, want 0", len(l.Files))
		}
		if l.Metadata.TotalFiles != 0 {
			t.Errorf("TotalFiles = %d, want 0", l.Metadata.TotalFiles)
		}
		if l.CreatedAt != "2024-01-15T10:30:00Z" {
			t.Errorf("CreatedAt = %q", l.CreatedAt)
		}
	})

	t.Run("corrupt file yields a fresh empty ledger", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		s := ledger.NewStore(dir, testutil.FixedClock())
		if err := os.WriteFile(s.Path(), []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}

		l := s.Load()
		if len(l.Files) != 0 {
			t.Errorf("len(Files) = %d, want 0", len(l.Files))
		}
	})
}

func TestStore_Append(t *testing.T) {
	t.Run("assigns sequential ids starting at 1", func(t *testing.T) {
		t.Parallel()
		s := newStore(t)

		for i, path := range []string{"a.txt", "b.txt", "c.txt"} {
			rec, err := s.Append(model.FileRecord{FilePath: path, FileType: "txt"})
			if err != nil {
				t.Fatalf("Append(%q) error = %v", path, err)
			}
			if rec.ID != i+1 {
				t.Errorf("ID = %d, want %d", rec.ID, i+1)
			}
		}

		l := s.Load()
		if l.Metadata.TotalFiles != 3 {
			t.Errorf("TotalFiles = %d, want 3", l.Metadata.TotalFiles)
		}
	})

	t.Run("defaults tags to empty slice and stamps created_at", func(t *testing.T) {
		t.Parallel()
		s := newStore(t)

		rec, err := s.Append(model.FileRecord{FilePath: "a.txt"})
		if err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		if rec.Tags == nil || len(rec.Tags) != 0 {
			t.Errorf("Tags = %v, want empty slice", rec.Tags)
		}
		if rec.CreatedAt != "2024-01-15T10:30:00Z" {
			t.Errorf("CreatedAt = %q", rec.CreatedAt)
		}
	})

	t.Run("ids are not reclaimed after deletion", func(t *testing.T) {
		t.Parallel()
		s := newStore(t)

		s.Append(model.FileRecord{FilePath: "a.txt"})
		s.Append(model.FileRecord{FilePath: "b.txt"})
		if err := s.Remove("a.txt"); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}

		rec, err := s.Append(model.FileRecord{FilePath: "c.txt"})
		if err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		// One record remains, so the next id is 2; b.txt already holds 2.
		// Gappy and even colliding ids are the documented contract.
		if rec.ID != 2 {
			t.Errorf("ID = %d, want 2", rec.ID)
		}

		l := s.Load()
		if l.Metadata.TotalFiles != 2 {
			t.Errorf("TotalFiles = %d, want 2", l.Metadata.TotalFiles)
		}
	})
}

func TestStore_Find(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	s.Append(model.FileRecord{FilePath: "a.txt", Description: "first"})
	s.Append(model.FileRecord{FilePath: "a.txt", Description: "second"})

	got := s.Find("a.txt")
	if got == nil {
		t.Fatal("Find() = nil")
	}
	if got.Description != "first" {
		t.Errorf("Description = %q, want %q", got.Description, "first")
	}

	if s.Find("missing.txt") != nil {
		t.Error("Find(missing) expected nil")
	}
}

func TestStore_UpdateDescription(t *testing.T) {
	t.Run("updates first match and stamps updated_at", func(t *testing.T) {
		t.Parallel()
		clock := testutil.FixedClock()
		s := ledger.NewStore(t.TempDir(), clock)
		s.Append(model.FileRecord{FilePath: "a.txt", Description: "old"})

		clock.Advance(2 * time.Minute)
		if err := s.UpdateDescription("a.txt", "new"); err != nil {
			t.Fatalf("UpdateDescription() error = %v", err)
		}

		got := s.Find("a.txt")
		if got.Description != "new" {
			t.Errorf("Description = %q, want %q", got.Description, "new")
		}
		if got.UpdatedAt != "2024-01-15T10:32:00Z" {
			t.Errorf("UpdatedAt = %q", got.UpdatedAt)
		}
	})

	t.Run("miss is a silent no-op", func(t *testing.T) {
		t.Parallel()
		s := newStore(t)
		s.Append(model.FileRecord{FilePath: "a.txt", Description: "old"})

		if err := s.UpdateDescription("missing.txt", "new"); err != nil {
			t.Fatalf("UpdateDescription() error = %v", err)
		}
		if got := s.Find("a.txt"); got.Description != "old" {
			t.Errorf("Description = %q, want %q", got.Description, "old")
		}
	})
}

func TestStore_Remove(t *testing.T) {
	t.Run("removes every matching record and recounts", func(t *testing.T) {
		t.Parallel()
		s := newStore(t)
		s.Append(model.FileRecord{FilePath: "a.txt"})
		s.Append(model.FileRecord{FilePath: "b.txt"})
		s.Append(model.FileRecord{FilePath: "a.txt"})

		if err := s.Remove("a.txt"); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}

		l := s.Load()
		if len(l.Files) != 1 {
			t.Fatalf("len(Files) = %d, want 1", len(l.Files))
		}
		if l.Files[0].FilePath != "b.txt" {
			t.Errorf("remaining = %q, want %q", l.Files[0].FilePath, "b.txt")
		}
		if l.Metadata.TotalFiles != 1 {
			t.Errorf("TotalFiles = %d, want 1", l.Metadata.TotalFiles)
		}
	})

	t.Run("leaves the file on disk untouched", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		s := ledger.NewStore(dir, testutil.FixedClock())
		if _, err := s.CreateFile("a.txt", "content", "", "txt", nil); err != nil {
			t.Fatalf("CreateFile() error = %v", err)
		}

		if err := s.Remove("a.txt"); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "a.txt")); err != nil {
			t.Errorf("file should remain on disk: %v", err)
		}
	})
}

func TestStore_Filter(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	s.Append(model.FileRecord{FilePath: "a.txt", FileType: "txt", Tags: []string{"notes"}})
	s.Append(model.FileRecord{FilePath: "b.md", FileType: "markdown", Tags: []string{"notes", "工具"}})
	s.Append(model.FileRecord{FilePath: "c.md", FileType: "markdown"})

	t.Run("empty predicates pass everything", func(t *testing.T) {
		if got := s.Filter("", ""); len(got) != 3 {
			t.Errorf("len = %d, want 3", len(got))
		}
	})

	t.Run("filters by file type", func(t *testing.T) {
		got := s.Filter("markdown", "")
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
	})

	t.Run("filters by tag membership", func(t *testing.T) {
		got := s.Filter("", "工具")
		if len(got) != 1 || got[0].FilePath != "b.md" {
			t.Errorf("got = %+v, want b.md only", got)
		}
	})

	t.Run("predicates are conjunctive", func(t *testing.T) {
		got := s.Filter("markdown", "notes")
		if len(got) != 1 || got[0].FilePath != "b.md" {
			t.Errorf("got = %+v, want b.md only", got)
		}
	})
}

func TestStore_CreateFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	s := ledger.NewStore(dir, testutil.FixedClock())

	rec, err := s.CreateFile("notes/today.md", "# Today\n", "daily notes", "markdown", []string{"notes"})
	if err != nil {
		t.Fatalf("CreateFile() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "notes", "today.md"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "# Today\n" {
		t.Errorf("content = %q", data)
	}
	if rec.SizeBytes != int64(len("# Today\n")) {
		t.Errorf("SizeBytes = %d, want %d", rec.SizeBytes, len("# Today\n"))
	}
	if rec.ID != 1 {
		t.Errorf("ID = %d, want 1", rec.ID)
	}
}

func TestStore_RenderReport(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	s.Append(model.FileRecord{FilePath: "a.txt", FileType: "txt", SizeBytes: 12})
	s.Append(model.FileRecord{FilePath: "b.md", Description: "notes", FileType: "markdown", Tags: []string{"notes", "daily"}})

	report := s.RenderReport()

	for _, want := range []string{
		"# File Records Report",
		"- Total files: 2",
		"### 1. a.txt",
		"- **Description**: (none)",
		"- **Tags**: notes, daily",
		"### 2. b.md",
		"- **Size**: 12 bytes",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q\n%s", want, report)
		}
	}
}
