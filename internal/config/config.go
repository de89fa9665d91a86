package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for cr.
type Config struct {
	HostID     string           `toml:"host_id"`
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir"`
	OutputDir  string           `toml:"output_dir"` // where flushed recordings are written
	LedgerDir  string           `toml:"ledger_dir"` // base directory of the file ledger
	IRC        IRCConfig        `toml:"irc"`
	History    HistoryConfig    `toml:"history"`
	Archives   []ArchiveConfig  `toml:"archives"`
	Encryption EncryptionConfig `toml:"encryption"`
}

// IRCConfig holds IRC session settings.
type IRCConfig struct {
	Nick string `toml:"nick"`
}

// EncryptionConfig holds paths to the age key pair used to encrypt archived
// recordings.
type EncryptionConfig struct {
	Type           string `toml:"type"` // "age" (default) or "test"
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
}

// ArchiveConfig represents configuration for a recording archive backend.
// This uses a tagged union pattern - the Type field determines which other
// fields are relevant.
type ArchiveConfig struct {
	Type string `toml:"type"` // "memory", "s3", or "filesystem"
	Name string `toml:"name"`

	// Encrypt archived copies with the configured age key pair.
	Encrypt bool `toml:"encrypt"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket          string `toml:"s3_bucket,omitempty"`
	S3Prefix          string `toml:"s3_prefix,omitempty"`
	S3Region          string `toml:"s3_region,omitempty"`
	S3AccessKeyID     string `toml:"s3_access_key_id,omitempty"`
	S3SecretAccessKey string `toml:"s3_secret_access_key,omitempty"`

	// FileSystem-specific fields (only used when Type == "filesystem")
	FSArchiveRoot string `toml:"fs_archive_root,omitempty"`
}

// HistoryConfig represents configuration for the operation history store.
// This uses a tagged union pattern - the Type field determines which other
// fields are relevant.
type HistoryConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// NewConfig creates a new Config with the provided values and default paths.
func NewConfig(hostID, baseDir string) *Config {
	return &Config{
		HostID:    hostID,
		BaseDir:   baseDir,
		LogDir:    filepath.Join(baseDir, "log"),
		OutputDir: filepath.Join(baseDir, "recordings"),
		LedgerDir: filepath.Join(baseDir, "files"),
		IRC: IRCConfig{
			Nick: "recorder_bot",
		},
		History: HistoryConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "db"),
		},
		Encryption: EncryptionConfig{
			PublicKeyPath:  filepath.Join(baseDir, "keys", "cr.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "cr.key"),
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
