package app

// Operation tracks a CLI run that may mutate state (a recording session or
// a ledger mutation). Operations are created in memory with ID=0. Only
// mutating commands persist them (giving them an auto-increment ID from the
// history store).
type Operation struct {
	ID         int64
	Operation  string
	Parameters string
	Status     string // "success" or "error"
}

// NewOperation creates a new in-memory operation.
func NewOperation(operation, parameters string) *Operation {
	return &Operation{
		Operation:  operation,
		Parameters: parameters,
		Status:     "success",
	}
}

// Persisted returns true if this operation has been saved to the history store.
func (op *Operation) Persisted() bool {
	return op.ID != 0
}
