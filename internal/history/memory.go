package history

import (
	"sync"

	"cr-go/internal/model"
	"cr-go/internal/rec"
)

// MemoryHistory is an in-memory implementation of the History interface.
// It is useful for tests and for deployments that don't want a history
// database. Safe for concurrent use.
type MemoryHistory struct {
	mu     sync.Mutex
	nextID int64
	ops    []*model.Operation
	clock  rec.Clock
}

// NewMemoryHistory creates an empty in-memory history.
func NewMemoryHistory(clock rec.Clock) *MemoryHistory {
	return &MemoryHistory{nextID: 1, clock: clock}
}

func (h *MemoryHistory) CreateOperation(operation string, parameters string) (*model.Operation, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	op := &model.Operation{
		ID:         h.nextID,
		Operation:  operation,
		Parameters: parameters,
		Status:     "success",
		StartedAt:  h.clock.Now(),
	}
	h.nextID++
	h.ops = append(h.ops, op)
	return op, nil
}

func (h *MemoryHistory) FinishOperation(id int64, status string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, op := range h.ops {
		if op.ID == id {
			t := h.clock.Now()
			op.FinishedAt = &t
			op.Status = status
			return nil
		}
	}
	return nil
}

func (h *MemoryHistory) ListOperations(limit int) ([]*model.Operation, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := []*model.Operation{}
	for i := len(h.ops) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, h.ops[i])
	}
	return out, nil
}

func (h *MemoryHistory) Close() error { return nil }

// Compile-time check that MemoryHistory implements the History interface
var _ rec.History = (*MemoryHistory)(nil)
