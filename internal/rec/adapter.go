package rec

import (
	"context"
	"time"
)

// RecordOptions carries the per-session parameters an adapter needs.
// Not every adapter uses every field: Limit bounds history fetches
// (Discord, Slack, demo), Duration bounds live sessions (IRC).
type RecordOptions struct {
	Channel  string
	Limit    int
	Duration time.Duration
}

// Adapter converts one platform's channel messages into ChannelMessage
// values appended to a buffer in chronological order.
//
// An adapter may be unavailable in a given deployment (missing token,
// missing server address). Available reports that once, before any network
// work; Record must not be called on an unavailable adapter.
//
// Record may deliver fewer messages than requested without error: a
// time-boxed session ending early, or a closed connection, ends the session
// gracefully with whatever was buffered so far.
type Adapter interface {
	Name() string
	Available() error
	Record(ctx context.Context, buf *Buffer, opts RecordOptions) error
}
