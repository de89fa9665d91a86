package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"cr-go/internal/model"
)

// TextWriter writes one line per message under a fixed-width banner,
// with no grouping.
type TextWriter struct{}

func (TextWriter) Extension() string { return "txt" }

func (TextWriter) Write(w io.Writer, messages []model.ChannelMessage, generatedAt time.Time) error {
	if _, err := fmt.Fprintf(w, "Channel Messages Record - Generated: %s\n", generatedAt.Format("2006-01-02 15:04:05")); err != nil {
		return err
	}
	fmt.Fprint(w, strings.Repeat("=", 70)+"\n\n")

	for _, msg := range messages {
		if _, err := fmt.Fprintf(w, "[%s] #%s <%s>: %s\n", msg.Timestamp, msg.Channel, msg.User, msg.Content); err != nil {
			return err
		}
	}
	return nil
}
