package rec

import (
	"fmt"
	"io"

	"cr-go/internal/model"
)

// Buffer accumulates channel messages in insertion order until a flush.
// It is single-writer: adapters append sequentially from one read loop.
type Buffer struct {
	echo     io.Writer
	messages []model.ChannelMessage
}

// NewBuffer creates an empty buffer. Each added message is echoed as a
// one-line summary to echo for live monitoring; pass io.Discard to silence.
func NewBuffer(echo io.Writer) *Buffer {
	if echo == nil {
		echo = io.Discard
	}
	return &Buffer{echo: echo}
}

// Add appends a message to the buffer and echoes a one-line summary.
// The echo is an observable side effect only, not part of any persisted
// format.
func (b *Buffer) Add(msg model.ChannelMessage) {
	b.messages = append(b.messages, msg)
	fmt.Fprintf(b.echo, "[%s] #%s <%s>: %s\n", msg.Timestamp, msg.Channel, msg.User, msg.Content)
}

// Messages returns the buffered messages in insertion order.
// The returned slice is a copy; mutating it does not affect the buffer.
func (b *Buffer) Messages() []model.ChannelMessage {
	out := make([]model.ChannelMessage, len(b.messages))
	copy(out, b.messages)
	return out
}

// Len returns the number of buffered messages.
func (b *Buffer) Len() int { return len(b.messages) }

// Clear empties the buffer. Files already written from it are untouched.
func (b *Buffer) Clear() {
	b.messages = nil
}
