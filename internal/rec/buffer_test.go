package rec_test

import (
	"bytes"
	"testing"

	"cr-go/internal/model"
	"cr-go/internal/rec"
)

func TestBuffer_Add(t *testing.T) {
	t.Run("appends in insertion order", func(t *testing.T) {
		t.Parallel()
		b := rec.NewBuffer(nil)

		b.Add(model.ChannelMessage{Channel: "general", User: "alice", Content: "one"})
		b.Add(model.ChannelMessage{Channel: "general", User: "bob", Content: "two"})

		msgs := b.Messages()
		if len(msgs) != 2 {
			t.Fatalf("len = %d, want 2", len(msgs))
		}
		if msgs[0].Content != "one" || msgs[1].Content != "two" {
			t.Errorf("messages out of order: %+v", msgs)
		}
		if b.Len() != 2 {
			t.Errorf("Len() = %d, want 2", b.Len())
		}
	})

	t.Run("echoes a one-line summary", func(t *testing.T) {
		t.Parallel()
		var echo bytes.Buffer
		b := rec.NewBuffer(&echo)

		b.Add(model.ChannelMessage{
			Timestamp: "2024-01-15T10:30:00Z",
			Channel:   "general",
			User:      "alice",
			Content:   "hello",
		})

		want := "[2024-01-15T10:30:00Z] #general <alice>: hello\n"
		if echo.String() != want {
			t.Errorf("echo = %q, want %q", echo.String(), want)
		}
	})
}

func TestBuffer_Messages_ReturnsCopy(t *testing.T) {
	t.Parallel()
	b := rec.NewBuffer(nil)
	b.Add(model.ChannelMessage{Content: "original"})

	msgs := b.Messages()
	msgs[0].Content = "mutated"

	if got := b.Messages()[0].Content; got != "original" {
		t.Errorf("Content = %q, want %q", got, "original")
	}
}

func TestBuffer_Clear(t *testing.T) {
	t.Parallel()
	b := rec.NewBuffer(nil)
	b.Add(model.ChannelMessage{Content: "one"})
	b.Add(model.ChannelMessage{Content: "two"})

	b.Clear()

	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
	if len(b.Messages()) != 0 {
		t.Errorf("Messages() not empty after Clear()")
	}
}
