package format

import (
	"fmt"
	"io"
	"time"

	"cr-go/internal/model"
)

// MarkdownWriter groups messages into contiguous runs by channel. A new
// heading is emitted whenever the channel differs from the immediately
// preceding message's channel, so a channel that reappears non-adjacently
// gets a second heading. This is not a global group-by.
type MarkdownWriter struct{}

func (MarkdownWriter) Extension() string { return "md" }

func (MarkdownWriter) Write(w io.Writer, messages []model.ChannelMessage, generatedAt time.Time) error {
	if _, err := fmt.Fprint(w, "# Channel Messages Record\n\n"); err != nil {
		return err
	}
	fmt.Fprintf(w, "**Generated**: %s\n", generatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "**Total Messages**: %d\n\n", len(messages))
	fmt.Fprint(w, "---\n\n")

	currentChannel := ""
	haveChannel := false
	for _, msg := range messages {
		if !haveChannel || msg.Channel != currentChannel {
			currentChannel = msg.Channel
			haveChannel = true
			if _, err := fmt.Fprintf(w, "## Channel: #%s\n\n", msg.Channel); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "**%s** - **%s**: %s\n\n", msg.Timestamp, msg.User, msg.Content); err != nil {
			return err
		}
	}
	return nil
}
