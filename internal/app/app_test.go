package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cr-go/internal/adapter"
	"cr-go/internal/config"
	"cr-go/internal/rec"
)

func newTestApp(t *testing.T, operation string) *App {
	t.Helper()
	base := t.TempDir()
	cfg := config.NewConfig("test-host", base)
	cfg.History = config.HistoryConfig{Type: "memory"}

	a, err := NewApp(cfg, operation)
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestApp_RecordChannel_Demo(t *testing.T) {
	a := newTestApp(t, "RecordChannel")

	count, err := a.RecordChannel(context.Background(), "demo", adapter.Options{}, rec.RecordOptions{Channel: "general"})
	if err != nil {
		t.Fatalf("RecordChannel() error = %v", err)
	}
	if count != 4 {
		t.Errorf("count = %d, want 4", count)
	}
	if a.BufferLen() != 4 {
		t.Errorf("BufferLen() = %d, want 4", a.BufferLen())
	}

	path, err := a.Flush("json", "session.json")
	if err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "dev-team") {
		t.Errorf("output missing demo messages: %q", data)
	}

	ops, err := a.GetHistory(10)
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(ops) != 1 {
		t.Fatalf("len(ops) = %d, want 1", len(ops))
	}
	if ops[0].Operation != "RecordChannel" || ops[0].Parameters != "demo general" {
		t.Errorf("op = %+v", ops[0])
	}
}

func TestApp_RecordChannel_UnknownPlatform(t *testing.T) {
	a := newTestApp(t, "RecordChannel")

	if _, err := a.RecordChannel(context.Background(), "telegram", adapter.Options{}, rec.RecordOptions{}); err == nil {
		t.Error("RecordChannel() expected error for unknown platform")
	}
	if a.op.Status != "error" {
		t.Errorf("Status = %q, want %q", a.op.Status, "error")
	}
}

func TestApp_LedgerOperations(t *testing.T) {
	a := newTestApp(t, "CreateFile")

	record, err := a.CreateFile("notes/today.md", "# Today\n", "daily notes", "markdown", []string{"notes"})
	if err != nil {
		t.Fatalf("CreateFile() error = %v", err)
	}
	if record.ID != 1 {
		t.Errorf("ID = %d, want 1", record.ID)
	}
	if _, err := os.Stat(filepath.Join(a.cfg.LedgerDir, "notes", "today.md")); err != nil {
		t.Errorf("created file missing: %v", err)
	}

	if info := a.FileInfo("notes/today.md"); info == nil || info.Description != "daily notes" {
		t.Errorf("FileInfo() = %+v", info)
	}

	if got := a.ListFiles("markdown", ""); len(got) != 1 {
		t.Errorf("ListFiles() len = %d, want 1", len(got))
	}
	if got := a.ListFiles("txt", ""); len(got) != 0 {
		t.Errorf("ListFiles(txt) len = %d, want 0", len(got))
	}

	if err := a.UpdateFileDescription("notes/today.md", "updated"); err != nil {
		t.Fatalf("UpdateFileDescription() error = %v", err)
	}
	if info := a.FileInfo("notes/today.md"); info.Description != "updated" {
		t.Errorf("Description = %q, want %q", info.Description, "updated")
	}

	report := a.Report()
	if !strings.Contains(report, "notes/today.md") {
		t.Errorf("report missing record:\n%s", report)
	}

	if err := a.DeleteFileRecord("notes/today.md"); err != nil {
		t.Fatalf("DeleteFileRecord() error = %v", err)
	}
	if a.FileInfo("notes/today.md") != nil {
		t.Error("record still present after delete")
	}
	if _, err := os.Stat(filepath.Join(a.cfg.LedgerDir, "notes", "today.md")); err != nil {
		t.Errorf("file on disk should survive delete: %v", err)
	}
}

func TestNewApp_EncryptionRequiresKeys(t *testing.T) {
	base := t.TempDir()
	cfg := config.NewConfig("test-host", base)
	cfg.History = config.HistoryConfig{Type: "memory"}
	cfg.Archives = []config.ArchiveConfig{{Type: "memory", Name: "m", Encrypt: true}}

	if _, err := NewApp(cfg, "RecordChannel"); err == nil {
		t.Error("NewApp() expected error when encryption keys are missing")
	}
}
