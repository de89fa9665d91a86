// Package adapter converts platform channels (Discord, Slack, IRC) into
// ChannelMessage sequences. Each adapter is constructed by the factory and
// availability-checked once before any network work.
package adapter

import (
	"context"
	"time"

	"cr-go/internal/model"
	"cr-go/internal/rec"
)

// DemoAdapter emits a fixed set of sample messages. It needs no credentials
// and no network, so it is always available.
type DemoAdapter struct {
	clock rec.Clock
	idgen rec.IDGenerator
}

// NewDemoAdapter creates a demo adapter stamping messages with clock time
// and synthesized message ids.
func NewDemoAdapter(clock rec.Clock, idgen rec.IDGenerator) *DemoAdapter {
	return &DemoAdapter{clock: clock, idgen: idgen}
}

func (a *DemoAdapter) Name() string { return "demo" }

func (a *DemoAdapter) Available() error { return nil }

// Record appends the sample messages to the buffer, capped at opts.Limit
// when it is positive.
func (a *DemoAdapter) Record(_ context.Context, buf *rec.Buffer, opts rec.RecordOptions) error {
	now := a.clock.Now().Format(time.RFC3339)

	demo := []model.ChannelMessage{
		{Timestamp: now, Channel: "general", User: "alice", Content: "Hello everyone! How's the project going?"},
		{Timestamp: now, Channel: "general", User: "bob", Content: "Great! Just finished the API integration."},
		{Timestamp: now, Channel: "dev-team", User: "charlie", Content: "Found a bug in the payment module, working on a fix."},
		{Timestamp: now, Channel: "dev-team", User: "alice", Content: "Thanks! Let me know if you need help testing it."},
	}

	if opts.Limit > 0 && opts.Limit < len(demo) {
		demo = demo[:opts.Limit]
	}

	for _, msg := range demo {
		msg.MessageID = a.idgen.New()
		buf.Add(msg)
	}
	return nil
}

var _ rec.Adapter = (*DemoAdapter)(nil)
