package archive

import (
	"fmt"
	"io"
	"sync"

	"cr-go/internal/rec"
)

// MemoryArchive is an in-memory implementation of the Archive interface.
// It stores archived recordings in memory, making it useful for testing.
// This implementation is safe for concurrent use.
type MemoryArchive struct {
	name    string
	objects map[string][]byte // recording name -> bytes
	mu      sync.RWMutex
}

// NewMemoryArchive creates a new in-memory archive with the given name.
func NewMemoryArchive(name string) *MemoryArchive {
	return &MemoryArchive{
		name:    name,
		objects: make(map[string][]byte),
	}
}

// Put stores an archived recording under the given name.
func (m *MemoryArchive) Put(name string, r io.Reader, size int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read recording: %w", err)
	}

	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[name] = data
	return nil
}

// Object returns the stored bytes for a recording name, for test assertions.
func (m *MemoryArchive) Object(name string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.objects[name]
	return data, ok
}

// Len returns the number of archived recordings.
func (m *MemoryArchive) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

// ValidateSetup always succeeds for the in-memory archive.
func (m *MemoryArchive) ValidateSetup() error { return nil }

// Compile-time check that MemoryArchive implements the Archive interface
var _ rec.Archive = (*MemoryArchive)(nil)
