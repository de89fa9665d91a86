package format

import (
	"encoding/csv"
	"io"
	"time"

	"cr-go/internal/model"
)

var csvHeader = []string{"timestamp", "channel", "user", "content", "message_id"}

// CSVWriter writes one row per message under a fixed five-column header.
// Metadata has no natural flat representation and is dropped entirely;
// this is a deliberate lossy projection.
type CSVWriter struct{}

func (CSVWriter) Extension() string { return "csv" }

func (CSVWriter) Write(w io.Writer, messages []model.ChannelMessage, _ time.Time) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, msg := range messages {
		row := []string{msg.Timestamp, msg.Channel, msg.User, msg.Content, msg.MessageID}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
