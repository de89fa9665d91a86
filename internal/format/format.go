// Package format serializes a recorded message sequence to one of the
// supported flat file formats.
package format

import (
	"fmt"
	"io"
	"time"

	"cr-go/internal/model"
)

// Writer serializes a full message sequence, once, to one output format.
// generatedAt is stamped into formats that carry a generation header.
type Writer interface {
	// Extension returns the file extension for this format, without dot.
	Extension() string

	// Write serializes messages in order to w. An empty sequence still
	// produces a well-formed document.
	Write(w io.Writer, messages []model.ChannelMessage, generatedAt time.Time) error
}

// New creates a Writer for the named format.
func New(name string) (Writer, error) {
	switch name {
	case "json":
		return JSONWriter{}, nil
	case "csv":
		return CSVWriter{}, nil
	case "markdown":
		return MarkdownWriter{}, nil
	case "txt":
		return TextWriter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %q", name)
	}
}

// Filename synthesizes a collision-avoiding default output filename,
// messages_<YYYYMMDD_HHMMSS>.<ext>, for successive runs.
func Filename(w Writer, now time.Time) string {
	return fmt.Sprintf("messages_%s.%s", now.Format("20060102_150405"), w.Extension())
}
