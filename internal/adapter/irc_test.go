package adapter

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"cr-go/internal/rec"
	"cr-go/internal/testutil"
)

func TestIRCAdapter_Available(t *testing.T) {
	if err := NewIRCAdapter("", 6667, "bot", testutil.FixedClock()).Available(); err == nil {
		t.Error("Available() expected error without server")
	}
	if err := NewIRCAdapter("irc.example.org", 6667, "bot", testutil.FixedClock()).Available(); err != nil {
		t.Errorf("Available() error = %v", err)
	}
}

func TestIRCAdapter_Record(t *testing.T) {
	client, server := net.Pipe()

	a := NewIRCAdapter("irc.example.org", 6667, "recorder_bot", testutil.FixedClock())
	a.dial = func(network, addr string, timeout time.Duration) (net.Conn, error) {
		return client, nil
	}

	// Scripted server side: consume the handshake, answer with traffic,
	// then hang up.
	done := make(chan error, 1)
	go func() {
		defer server.Close()
		r := bufio.NewReader(server)

		for _, want := range []string{"NICK recorder_bot", "USER recorder_bot", "JOIN #general"} {
			line, err := r.ReadString('\n')
			if err != nil {
				done <- err
				return
			}
			if !strings.Contains(line, want) {
				t.Errorf("handshake line = %q, want %q", line, want)
			}
		}

		server.Write([]byte(":irc.example.org 001 recorder_bot :Welcome\r\n"))
		server.Write([]byte("PING :abc123\r\n"))

		pong, err := r.ReadString('\n')
		if err != nil {
			done <- err
			return
		}
		if !strings.Contains(pong, "PONG :abc123") {
			t.Errorf("pong = %q", pong)
		}

		server.Write([]byte(":alice!alice@host PRIVMSG #general :hello there\r\n"))
		server.Write([]byte(":bob!bob@host PRIVMSG #other :wrong channel\r\n"))
		server.Write([]byte(":carol!carol@host PRIVMSG #general :bye\r\n"))
		done <- nil
	}()

	buf := rec.NewBuffer(nil)
	err := a.Record(context.Background(), buf, rec.RecordOptions{
		Channel:  "#general",
		Duration: time.Minute,
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("scripted server error = %v", err)
	}

	msgs := buf.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len = %d, want 2", len(msgs))
	}
	if msgs[0].User != "alice" || msgs[0].Content != "hello there" {
		t.Errorf("first = %+v", msgs[0])
	}
	if msgs[0].Channel != "general" {
		t.Errorf("Channel = %q, want %q (hash stripped)", msgs[0].Channel, "general")
	}
	if msgs[1].User != "carol" || msgs[1].Content != "bye" {
		t.Errorf("second = %+v", msgs[1])
	}
}

func TestIRCAdapter_ParsePrivmsg(t *testing.T) {
	a := NewIRCAdapter("irc.example.org", 6667, "bot", testutil.FixedClock())

	t.Run("extracts user, channel and content", func(t *testing.T) {
		msg, ok := a.parsePrivmsg(":alice!alice@host PRIVMSG #general :hello there", "#general")
		if !ok {
			t.Fatal("parsePrivmsg() = false")
		}
		if msg.User != "alice" {
			t.Errorf("User = %q", msg.User)
		}
		if msg.Channel != "general" {
			t.Errorf("Channel = %q", msg.Channel)
		}
		if msg.Content != "hello there" {
			t.Errorf("Content = %q", msg.Content)
		}
		if msg.Timestamp != "2024-01-15T10:30:00Z" {
			t.Errorf("Timestamp = %q", msg.Timestamp)
		}
	})

	t.Run("skips other channels", func(t *testing.T) {
		if _, ok := a.parsePrivmsg(":alice!alice@host PRIVMSG #other :hi", "#general"); ok {
			t.Error("parsePrivmsg() = true for other channel")
		}
	})

	t.Run("skips non-PRIVMSG lines", func(t *testing.T) {
		if _, ok := a.parsePrivmsg(":irc.example.org 332 bot #general :topic", "#general"); ok {
			t.Error("parsePrivmsg() = true for numeric reply")
		}
	})
}
