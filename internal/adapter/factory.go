package adapter

import (
	"fmt"

	"cr-go/internal/rec"
)

// Options carries the platform connection parameters collected from CLI
// flags and config. Each adapter reads only the fields it needs.
type Options struct {
	Token  string // Discord / Slack
	Server string // IRC
	Port   int    // IRC
	Nick   string // IRC
}

// New creates the adapter for the named platform.
// The returned adapter still needs its Available check before recording.
func New(platform string, opts Options, clock rec.Clock) (rec.Adapter, error) {
	switch platform {
	case "demo":
		return NewDemoAdapter(clock, rec.UUIDGenerator{}), nil
	case "discord":
		return NewDiscordAdapter(opts.Token), nil
	case "slack":
		return NewSlackAdapter(opts.Token), nil
	case "irc":
		nick := opts.Nick
		if nick == "" {
			nick = "recorder_bot"
		}
		return NewIRCAdapter(opts.Server, opts.Port, nick, clock), nil
	default:
		return nil, fmt.Errorf("unknown platform: %q", platform)
	}
}
