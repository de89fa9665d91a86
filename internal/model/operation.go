package model

import "time"

// Operation is one row of the operation history: a single mutating CLI run
// (a recording session or a ledger mutation).
type Operation struct {
	ID         int64
	Operation  string
	Parameters string
	Status     string // "success" or "error"
	StartedAt  time.Time
	FinishedAt *time.Time // nil until the operation is finished
}
