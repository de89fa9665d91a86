// Package ledger implements the JSON-backed record of files written by the
// tool. The ledger is one document per base directory, read in full and
// rewritten in full on every mutation. It is single-process, single-writer:
// two simultaneous appenders may compute the same id and lose a write, an
// accepted contract limitation.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cr-go/internal/model"
	"cr-go/internal/rec"
)

// ledgerFile is the document name within the base directory.
const ledgerFile = "file_records.json"

// Store is an explicit handle on one ledger document, scoped to a single
// command invocation.
type Store struct {
	baseDir string
	path    string
	clock   rec.Clock
}

// NewStore creates a Store for the ledger under baseDir.
func NewStore(baseDir string, clock rec.Clock) *Store {
	return &Store{
		baseDir: baseDir,
		path:    filepath.Join(baseDir, ledgerFile),
		clock:   clock,
	}
}

// Path returns the ledger document path.
func (s *Store) Path() string { return s.path }

// Load reads the ledger document. A missing or unparsable file yields a
// freshly initialized empty ledger, never an error: no prior state existed
// to lose.
func (s *Store) Load() *model.Ledger {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return s.freshLedger()
	}

	var l model.Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		return s.freshLedger()
	}
	return &l
}

// Save stamps last_updated and overwrites the ledger document atomically
// (temp file + rename) so a crash never leaves a truncated ledger.
// I/O errors propagate to the caller.
func (s *Store) Save(l *model.Ledger) error {
	l.Metadata.LastUpdated = s.timestamp()

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.baseDir, ".tmp-ledger-*")
	if err != nil {
		return fmt.Errorf("creating temp ledger file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp ledger file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replacing ledger file: %w", err)
	}

	success = true
	return nil
}

// Append assigns the next id (1 + the number of existing records), appends
// the record, recounts, and saves. Ids are never reclaimed after deletion,
// so they may be non-contiguous.
func (s *Store) Append(record model.FileRecord) (model.FileRecord, error) {
	l := s.Load()

	record.ID = len(l.Files) + 1
	if record.Tags == nil {
		record.Tags = []string{}
	}
	if record.CreatedAt == "" {
		record.CreatedAt = s.timestamp()
	}

	l.Files = append(l.Files, record)
	l.Metadata.TotalFiles = len(l.Files)

	if err := s.Save(l); err != nil {
		return model.FileRecord{}, err
	}
	return record, nil
}

// Find returns the first record whose file_path matches exactly, or nil.
func (s *Store) Find(filePath string) *model.FileRecord {
	l := s.Load()
	for i := range l.Files {
		if l.Files[i].FilePath == filePath {
			return &l.Files[i]
		}
	}
	return nil
}

// UpdateDescription replaces the description of the first matching record
// and stamps its updated_at. A miss is a silent no-op; the ledger is saved
// either way.
func (s *Store) UpdateDescription(filePath, description string) error {
	l := s.Load()
	for i := range l.Files {
		if l.Files[i].FilePath == filePath {
			l.Files[i].Description = description
			l.Files[i].UpdatedAt = s.timestamp()
			break
		}
	}
	return s.Save(l)
}

// Remove deletes every record matching file_path from the ledger and
// recounts. The underlying file on disk is untouched.
func (s *Store) Remove(filePath string) error {
	l := s.Load()

	kept := l.Files[:0]
	for _, f := range l.Files {
		if f.FilePath != filePath {
			kept = append(kept, f)
		}
	}
	l.Files = kept
	l.Metadata.TotalFiles = len(l.Files)

	return s.Save(l)
}

// Filter returns the records matching all supplied predicates: exact match
// on file type, membership test on tag. An empty predicate passes
// everything through.
func (s *Store) Filter(fileType, tag string) []model.FileRecord {
	l := s.Load()

	out := []model.FileRecord{}
	for _, f := range l.Files {
		if fileType != "" && f.FileType != fileType {
			continue
		}
		if tag != "" && !hasTag(f.Tags, tag) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// CreateFile writes content to filePath (relative to the base directory),
// creating parent directories as needed, then appends a ledger record with
// the file's size snapshotted at creation time.
func (s *Store) CreateFile(filePath, content, description, fileType string, tags []string) (model.FileRecord, error) {
	fullPath := filepath.Join(s.baseDir, filePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return model.FileRecord{}, fmt.Errorf("creating parent directory: %w", err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		return model.FileRecord{}, fmt.Errorf("writing file: %w", err)
	}

	var size int64
	if info, err := os.Stat(fullPath); err == nil {
		size = info.Size()
	}

	return s.Append(model.FileRecord{
		FilePath:    filePath,
		Description: description,
		FileType:    fileType,
		Tags:        tags,
		SizeBytes:   size,
	})
}

// RenderReport produces a deterministic human-readable summary of the
// ledger: counts first, then one block per record in ledger order.
// Pure function of ledger state, no side effects.
func (s *Store) RenderReport() string {
	l := s.Load()

	var b strings.Builder
	b.WriteString("# File Records Report\n\n")
	b.WriteString("## Summary\n")
	fmt.Fprintf(&b, "- Total files: %d\n", l.Metadata.TotalFiles)
	fmt.Fprintf(&b, "- Ledger created: %s\n", l.CreatedAt)
	fmt.Fprintf(&b, "- Last updated: %s\n", l.Metadata.LastUpdated)
	b.WriteString("\n## Files\n")

	for _, f := range l.Files {
		fmt.Fprintf(&b, "\n### %d. %s\n", f.ID, f.FilePath)
		fmt.Fprintf(&b, "- **Description**: %s\n", orNone(f.Description))
		fmt.Fprintf(&b, "- **Type**: %s\n", f.FileType)
		fmt.Fprintf(&b, "- **Tags**: %s\n", orNone(strings.Join(f.Tags, ", ")))
		fmt.Fprintf(&b, "- **Created**: %s\n", f.CreatedAt)
		fmt.Fprintf(&b, "- **Size**: %d bytes\n", f.SizeBytes)
	}

	return b.String()
}

func (s *Store) freshLedger() *model.Ledger {
	now := s.timestamp()
	return &model.Ledger{
		CreatedAt: now,
		Files:     []model.FileRecord{},
		Metadata: model.LedgerMetadata{
			TotalFiles:  0,
			LastUpdated: now,
		},
	}
}

func (s *Store) timestamp() string {
	return s.clock.Now().Format(time.RFC3339)
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
