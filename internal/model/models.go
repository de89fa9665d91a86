package model

// ChannelMessage is one message captured from a chat channel.
// Timestamps are ISO-8601 strings as delivered by (or synthesized for) the
// source platform. A message is immutable once constructed.
type ChannelMessage struct {
	Timestamp string         `json:"timestamp"`
	Channel   string         `json:"channel"`
	User      string         `json:"user"`
	Content   string         `json:"content"`
	MessageID string         `json:"message_id"`
	Metadata  map[string]any `json:"metadata"`
}

// FileRecord is the ledger entry for one file written by the tool.
// ID is a 1-based sequence number assigned at append time; ids are never
// renumbered, so they may become non-contiguous after deletions.
type FileRecord struct {
	ID          int      `json:"id"`
	FilePath    string   `json:"file_path"`
	Description string   `json:"description"`
	FileType    string   `json:"file_type"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
	SizeBytes   int64    `json:"size_bytes"`
}

// Ledger is the full persisted document: one JSON file per base directory,
// read and rewritten whole on every mutation.
type Ledger struct {
	CreatedAt string         `json:"created_at"`
	Files     []FileRecord   `json:"files"`
	Metadata  LedgerMetadata `json:"metadata"`
}

// LedgerMetadata carries the ledger-level bookkeeping fields.
type LedgerMetadata struct {
	TotalFiles  int    `json:"total_files"`
	LastUpdated string `json:"last_updated"`
}
