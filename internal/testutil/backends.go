package testutil

import (
	"cr-go/internal/archive"
	"cr-go/internal/encryption"
	"cr-go/internal/history"
	"cr-go/internal/rec"
)

// NewTestArchive creates a new in-memory archive for testing.
func NewTestArchive() *archive.MemoryArchive {
	return archive.NewMemoryArchive("test-archive")
}

// NewTestEncryptor creates a new test encryptor for testing.
func NewTestEncryptor() rec.Encryptor {
	return encryption.NewTestEncryptor()
}

// NewTestHistory creates a new in-memory operation history for testing.
func NewTestHistory(clock rec.Clock) rec.History {
	return history.NewMemoryHistory(clock)
}
