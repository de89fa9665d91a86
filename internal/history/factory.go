package history

import (
	"fmt"
	"os"
	"path/filepath"

	"cr-go/internal/config"
	"cr-go/internal/rec"
)

// NewHistoryFromConfig creates a History implementation based on the history
// config type.
func NewHistoryFromConfig(cfg config.HistoryConfig, hostID string, clock rec.Clock) (rec.History, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite history")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating history data directory: %w", err)
		}
		dbPath := filepath.Join(cfg.DataDir, hostID+".db")
		return NewSQLiteHistory(dbPath, clock)
	case "memory":
		return NewMemoryHistory(clock), nil
	default:
		return nil, fmt.Errorf("unknown history type: %s", cfg.Type)
	}
}
