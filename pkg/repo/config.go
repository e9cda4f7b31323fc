package repo

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/loki9919/MyGit/pkg/fsys"
	"github.com/loki9919/MyGit/pkg/object"
)

const (
	CompressionZstd = "zstd"
	CompressionNone = "none"

	DefaultIgnoreFile = ".mygitignore"
)

// Config stores repository-local settings, persisted as .mygit/config.
type Config struct {
	Core CoreConfig `toml:"core"`
}

// CoreConfig holds object-store and work-tree settings.
type CoreConfig struct {
	Hash        string `toml:"hash"`
	Compression string `toml:"compression"`
	IgnoreFile  string `toml:"ignore_file"`
}

// DefaultConfig returns the settings a new repository starts with.
func DefaultConfig() *Config {
	return &Config{Core: CoreConfig{
		Hash:        string(object.DefaultAlgorithm),
		Compression: CompressionZstd,
		IgnoreFile:  DefaultIgnoreFile,
	}}
}

// Validate fills defaults and rejects unknown values.
func (c *Config) Validate() error {
	alg, err := object.ParseAlgorithm(c.Core.Hash)
	if err != nil {
		return fmt.Errorf("config: core.hash: %w", err)
	}
	c.Core.Hash = string(alg)

	switch c.Core.Compression {
	case "":
		c.Core.Compression = CompressionZstd
	case CompressionZstd, CompressionNone:
	default:
		return fmt.Errorf("config: core.compression: unsupported value %q", c.Core.Compression)
	}
	if c.Core.IgnoreFile == "" {
		c.Core.IgnoreFile = DefaultIgnoreFile
	}
	return nil
}

func (c *Config) storeOptions() object.Options {
	return object.Options{
		Algorithm: object.Algorithm(c.Core.Hash),
		Compress:  c.Core.Compression == CompressionZstd,
	}
}

func configPath(gitDir string) string {
	return fsys.Join(gitDir, "config")
}

// readConfig reads the config file. A missing file yields the defaults.
func readConfig(files fsys.FS, gitDir string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := files.ReadFile(configPath(gitDir))
	if err != nil {
		if fsys.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeConfig(files fsys.FS, gitDir string, cfg *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("write config: encode: %w", err)
	}
	if err := files.WriteFile(configPath(gitDir), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
