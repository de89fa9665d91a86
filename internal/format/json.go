package format

import (
	"encoding/json"
	"io"
	"time"

	"cr-go/internal/model"
)

// JSONWriter writes the buffer as a human-indented JSON array with every
// message field included.
type JSONWriter struct{}

func (JSONWriter) Extension() string { return "json" }

func (JSONWriter) Write(w io.Writer, messages []model.ChannelMessage, _ time.Time) error {
	if messages == nil {
		messages = []model.ChannelMessage{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(messages)
}
