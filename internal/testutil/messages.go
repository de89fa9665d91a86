package testutil

import "cr-go/internal/model"

// SampleMessages returns a small fixed set of channel messages spanning
// two channels, suitable for exercising format writers.
func SampleMessages() []model.ChannelMessage {
	return []model.ChannelMessage{
		{
			Timestamp: "2024-01-15T10:30:00Z",
			Channel:   "general",
			User:      "alice",
			Content:   "hello world",
			MessageID: "m-1",
		},
		{
			Timestamp: "2024-01-15T10:31:00Z",
			Channel:   "general",
			User:      "bob",
			Content:   "hi alice",
			MessageID: "m-2",
			Metadata:  map[string]any{"edited": true},
		},
		{
			Timestamp: "2024-01-15T10:32:00Z",
			Channel:   "random",
			User:      "carol",
			Content:   "anyone around?",
			MessageID: "m-3",
		},
	}
}
