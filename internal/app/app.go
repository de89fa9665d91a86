package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"cr-go/internal/adapter"
	"cr-go/internal/archive"
	"cr-go/internal/config"
	"cr-go/internal/encryption"
	"cr-go/internal/history"
	"cr-go/internal/ledger"
	"cr-go/internal/model"
	"cr-go/internal/rec"
)

// App is the application layer between the CLI and the two pipelines.
// It constructs all dependencies from config, exposes high-level operations,
// and manages the history store lifecycle on Close.
type App struct {
	cfg     *config.Config
	clock   rec.Clock
	history rec.History
	archive rec.Archive // nil when no archive is configured
	service *rec.RecordService
	ledger  *ledger.Store
	op      *Operation
	logFile *os.File
	logger  rec.Logger
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "RecordChannel",
// "CreateFile"). The caller must call Close when done.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	clock := rec.RealClock{}

	hist, err := history.NewHistoryFromConfig(cfg.History, cfg.HostID, clock)
	if err != nil {
		return nil, fmt.Errorf("creating history: %w", err)
	}

	// At most one archive is used; additional entries would need content
	// fan-out and per-archive failure handling.
	var arch rec.Archive
	var enc rec.Encryptor
	if len(cfg.Archives) > 0 {
		ac := cfg.Archives[0]
		arch, err = archive.NewArchiveFromConfig(ac)
		if err != nil {
			hist.Close()
			return nil, fmt.Errorf("creating archive: %w", err)
		}
		if ac.Encrypt {
			enc, err = encryption.NewEncryptorFromConfig(cfg.Encryption)
			if err != nil {
				hist.Close()
				return nil, fmt.Errorf("creating encryptor: %w", err)
			}
			if !enc.IsConfigured() {
				hist.Close()
				return nil, fmt.Errorf("archive encryption enabled but keys are missing: run `cr config keygen`")
			}
		}
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	slogger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		hist.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	buffer := rec.NewBuffer(os.Stdout)
	svc := rec.NewRecordService(cfg.OutputDir, buffer, arch, enc, logger, clock)
	led := ledger.NewStore(cfg.LedgerDir, clock)

	return &App{
		cfg:     cfg,
		clock:   clock,
		history: hist,
		archive: arch,
		service: svc,
		ledger:  led,
		op:      NewOperation(operation, ""),
		logFile: logFile,
		logger:  logger,
	}, nil
}

// persistOperation saves the operation to the history store, giving it an
// auto-increment ID. This should only be called for mutating commands.
func (a *App) persistOperation() error {
	if a.op.Persisted() {
		return nil // already persisted
	}
	op, err := a.history.CreateOperation(a.op.Operation, a.op.Parameters)
	if err != nil {
		return fmt.Errorf("persisting operation: %w", err)
	}
	a.op.ID = op.ID
	return nil
}

// RecordChannel runs one recording session on the named platform and
// returns the number of messages buffered.
func (a *App) RecordChannel(ctx context.Context, platform string, opts adapter.Options, ropts rec.RecordOptions) (int, error) {
	a.op.Parameters = platform + " " + ropts.Channel
	if err := a.persistOperation(); err != nil {
		return 0, err
	}

	if opts.Nick == "" {
		opts.Nick = a.cfg.IRC.Nick
	}

	ad, err := adapter.New(platform, opts, a.clock)
	if err != nil {
		a.op.Status = "error"
		return 0, err
	}

	count, err := a.service.Record(ctx, ad, ropts)
	if err != nil {
		a.op.Status = "error"
	}
	return count, err
}

// Flush serializes the buffered messages to the named format.
// Returns the path of the written file.
func (a *App) Flush(format, filename string) (string, error) {
	path, err := a.service.Flush(format, filename)
	if err != nil {
		a.op.Status = "error"
	}
	return path, err
}

// BufferLen returns the number of buffered messages.
func (a *App) BufferLen() int {
	return a.service.Buffer().Len()
}

// CreateFile writes a file under the ledger base directory and records it.
func (a *App) CreateFile(filePath, content, description, fileType string, tags []string) (model.FileRecord, error) {
	a.op.Parameters = filePath
	if err := a.persistOperation(); err != nil {
		return model.FileRecord{}, err
	}

	record, err := a.ledger.CreateFile(filePath, content, description, fileType, tags)
	if err != nil {
		a.op.Status = "error"
	}
	return record, err
}

// ListFiles returns the ledger records matching the supplied filters.
func (a *App) ListFiles(fileType, tag string) []model.FileRecord {
	return a.ledger.Filter(fileType, tag)
}

// FileInfo returns the first ledger record for the given path, or nil.
func (a *App) FileInfo(filePath string) *model.FileRecord {
	return a.ledger.Find(filePath)
}

// UpdateFileDescription replaces the description of a ledger record.
// A missing record is a silent no-op.
func (a *App) UpdateFileDescription(filePath, description string) error {
	a.op.Parameters = filePath
	if err := a.persistOperation(); err != nil {
		return err
	}

	if err := a.ledger.UpdateDescription(filePath, description); err != nil {
		a.op.Status = "error"
		return err
	}
	return nil
}

// DeleteFileRecord removes a path's records from the ledger.
// The file on disk is untouched.
func (a *App) DeleteFileRecord(filePath string) error {
	a.op.Parameters = filePath
	if err := a.persistOperation(); err != nil {
		return err
	}

	if err := a.ledger.Remove(filePath); err != nil {
		a.op.Status = "error"
		return err
	}
	return nil
}

// Report renders the ledger report.
func (a *App) Report() string {
	return a.ledger.RenderReport()
}

// GetHistory returns the most recent operations.
func (a *App) GetHistory(limit int) ([]*model.Operation, error) {
	return a.history.ListOperations(limit)
}

// Close finalizes the operation record and closes all resources.
func (a *App) Close() error {
	var firstErr error

	if a.op.Persisted() {
		if err := a.history.FinishOperation(a.op.ID, a.op.Status); err != nil {
			firstErr = fmt.Errorf("finishing operation: %w", err)
		}
	}

	if err := a.history.Close(); err != nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("closing history: %w", err)
		}
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
