package adapter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"cr-go/internal/model"
	"cr-go/internal/rec"
)

const (
	ircDialTimeout = 30 * time.Second

	// ircReadTimeout bounds each receive: a timeout means "no message this
	// tick", not an error, and the loop re-checks the session deadline.
	ircReadTimeout = time.Second
)

// IRCAdapter records a channel on an IRC server for a fixed wall-clock
// duration. It performs a minimal NICK/USER/JOIN handshake, answers PING
// with PONG inside the read loop, and extracts PRIVMSG lines addressed to
// the recorded channel. A closed connection ends the session gracefully.
type IRCAdapter struct {
	server string
	port   int
	nick   string
	clock  rec.Clock

	// dial is swappable so tests can run the loop over net.Pipe.
	dial func(network, addr string, timeout time.Duration) (net.Conn, error)
}

// NewIRCAdapter creates an IRC adapter for the given server and port.
func NewIRCAdapter(server string, port int, nick string, clock rec.Clock) *IRCAdapter {
	return &IRCAdapter{
		server: server,
		port:   port,
		nick:   nick,
		clock:  clock,
		dial:   net.DialTimeout,
	}
}

func (a *IRCAdapter) Name() string { return "irc" }

func (a *IRCAdapter) Available() error {
	if a.server == "" {
		return fmt.Errorf("irc recording requires a server address")
	}
	return nil
}

// Record joins opts.Channel and buffers PRIVMSG lines until opts.Duration
// has elapsed, the context is cancelled, or the connection closes.
func (a *IRCAdapter) Record(ctx context.Context, buf *rec.Buffer, opts rec.RecordOptions) error {
	addr := net.JoinHostPort(a.server, strconv.Itoa(a.port))
	conn, err := a.dial("tcp", addr, ircDialTimeout)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer conn.Close()

	// Handshake, then join the channel.
	if _, err := fmt.Fprintf(conn, "NICK %s\r\nUSER %s 0 * :%s\r\n", a.nick, a.nick, a.nick); err != nil {
		return fmt.Errorf("sending handshake: %w", err)
	}
	if _, err := fmt.Fprintf(conn, "JOIN %s\r\n", opts.Channel); err != nil {
		return fmt.Errorf("joining channel: %w", err)
	}

	deadline := a.clock.Now().Add(opts.Duration)
	reader := bufio.NewReader(conn)

	// Partial line carried across read timeouts.
	var pending strings.Builder

	for a.clock.Now().Before(deadline) {
		if ctx.Err() != nil {
			return nil
		}

		conn.SetReadDeadline(time.Now().Add(ircReadTimeout))
		chunk, err := reader.ReadString('\n')
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				// No message this tick; keep whatever partial line arrived.
				pending.WriteString(chunk)
				continue
			}
			if errors.Is(err, io.EOF) {
				// Server closed the connection; session ends gracefully.
				return nil
			}
			return fmt.Errorf("reading from server: %w", err)
		}

		line := strings.TrimRight(pending.String()+chunk, "\r\n")
		pending.Reset()

		if strings.HasPrefix(line, "PING") {
			token := strings.TrimSpace(strings.TrimPrefix(line, "PING"))
			if _, err := fmt.Fprintf(conn, "PONG %s\r\n", token); err != nil {
				return fmt.Errorf("answering ping: %w", err)
			}
			continue
		}

		if msg, ok := a.parsePrivmsg(line, opts.Channel); ok {
			buf.Add(msg)
		}
	}

	return nil
}

// parsePrivmsg extracts a channel message from one IRC line of the form
//
//	:nick!user@host PRIVMSG #channel :message text
//
// Lines for other channels, or non-PRIVMSG lines, are skipped.
func (a *IRCAdapter) parsePrivmsg(line, channel string) (model.ChannelMessage, bool) {
	if !strings.Contains(line, "PRIVMSG") || !strings.Contains(line, channel) {
		return model.ChannelMessage{}, false
	}

	parts := strings.SplitN(line, " ", 4)
	if len(parts) < 4 {
		return model.ChannelMessage{}, false
	}

	user := strings.TrimPrefix(strings.SplitN(parts[0], "!", 2)[0], ":")
	content := strings.TrimPrefix(parts[3], ":")

	return model.ChannelMessage{
		Timestamp: a.clock.Now().Format(time.RFC3339),
		Channel:   strings.TrimPrefix(channel, "#"),
		User:      user,
		Content:   content,
	}, true
}

var _ rec.Adapter = (*IRCAdapter)(nil)
