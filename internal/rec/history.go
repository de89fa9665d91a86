package rec

import "cr-go/internal/model"

// History records mutating CLI operations for `cr history`.
// Implementations are single-process, single-writer.
type History interface {
	// CreateOperation inserts a new operation row and returns it with its
	// auto-increment ID assigned.
	CreateOperation(operation string, parameters string) (*model.Operation, error)

	// FinishOperation stamps the finish time and final status on an
	// operation.
	FinishOperation(id int64, status string) error

	// ListOperations returns up to limit operations, newest first.
	ListOperations(limit int) ([]*model.Operation, error)

	// Close closes the underlying store.
	Close() error
}
