package rec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"cr-go/internal/format"
)

// RecordService is the orchestration layer between the CLI and the
// recording pipeline: adapter -> buffer -> format writer -> output file,
// with an optional copy into the archive.
type RecordService struct {
	outputDir string
	buffer    *Buffer
	archive   Archive   // nil when no archive is configured
	encryptor Encryptor // nil when archive encryption is disabled
	logger    Logger
	clock     Clock
}

// NewRecordService creates a RecordService with the provided dependencies.
// archive and encryptor may be nil; an encryptor without an archive is
// never consulted.
func NewRecordService(outputDir string, buffer *Buffer, archive Archive, encryptor Encryptor, logger Logger, clock Clock) *RecordService {
	return &RecordService{
		outputDir: outputDir,
		buffer:    buffer,
		archive:   archive,
		encryptor: encryptor,
		logger:    logger,
		clock:     clock,
	}
}

// Buffer returns the message buffer owned by this service.
func (s *RecordService) Buffer() *Buffer { return s.buffer }

// Record runs one recording session on the given adapter.
// The adapter's availability is checked once, up front; an unavailable
// adapter aborts before any network work. Network or protocol errors during
// the session are logged and end the session gracefully; messages buffered
// before the failure are kept and the count is still returned.
func (s *RecordService) Record(ctx context.Context, adapter Adapter, opts RecordOptions) (int, error) {
	if err := adapter.Available(); err != nil {
		return 0, fmt.Errorf("%s adapter unavailable: %w", adapter.Name(), err)
	}

	before := s.buffer.Len()
	s.logger.Info("recording session started", "platform", adapter.Name(), "channel", opts.Channel)

	if err := adapter.Record(ctx, s.buffer, opts); err != nil {
		s.logger.Warn("recording session ended early", "platform", adapter.Name(), "error", err)
	}

	added := s.buffer.Len() - before
	s.logger.Info("recording session finished", "platform", adapter.Name(), "messages", added)
	return added, nil
}

// Flush serializes the entire current buffer to the named format and writes
// it under the output directory. The buffer is not cleared. If filename is
// empty, one is synthesized from the current timestamp.
// Returns the path of the written file.
func (s *RecordService) Flush(formatName, filename string) (string, error) {
	w, err := format.New(formatName)
	if err != nil {
		return "", err
	}
	if filename == "" {
		filename = format.Filename(w, s.clock.Now())
	}

	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(s.outputDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating output file: %w", err)
	}

	if err := w.Write(f, s.buffer.Messages(), s.clock.Now()); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s output: %w", formatName, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing output file: %w", err)
	}

	s.logger.Info("saved messages", "count", s.buffer.Len(), "path", path)

	if s.archive != nil {
		if err := s.archiveFile(path, filename); err != nil {
			return path, fmt.Errorf("archiving recording: %w", err)
		}
	}

	return path, nil
}

// Clear empties the message buffer. Already-written files are untouched.
func (s *RecordService) Clear() {
	s.buffer.Clear()
}

// archiveFile copies a flushed output file into the archive, encrypting it
// first when an encryptor is configured. Local output files stay plaintext;
// only the archived copy is encrypted.
func (s *RecordService) archiveFile(path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening recording for archive: %w", err)
	}
	defer f.Close()

	if s.encryptor != nil {
		var ciphertext bytes.Buffer
		if err := s.encryptor.Encrypt(f, &ciphertext); err != nil {
			return fmt.Errorf("encrypting recording: %w", err)
		}
		name += ".age"
		if err := s.archive.Put(name, &ciphertext, int64(ciphertext.Len())); err != nil {
			return err
		}
		s.logger.Info("archived recording", "name", name, "encrypted", true)
		return nil
	}

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat recording: %w", err)
	}
	if err := s.archive.Put(name, f, info.Size()); err != nil {
		return err
	}
	s.logger.Info("archived recording", "name", name, "encrypted", false)
	return nil
}
