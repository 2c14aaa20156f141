package repo

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/odvcencio/dit/pkg/object"
	"github.com/spf13/afero"
)

// DefaultBranch is the branch a new repository starts on.
const DefaultBranch = "main"

// Config is the repository-local configuration stored in .dit/config.toml.
type Config struct {
	Core CoreConfig `toml:"core"`
	User UserConfig `toml:"user"`
}

type CoreConfig struct {
	Compression   object.Compression `toml:"compression"`
	DefaultBranch string             `toml:"default_branch"`
}

type UserConfig struct {
	Name string `toml:"name"`
}

// DefaultConfig returns the configuration of a repository with no config
// file.
func DefaultConfig() *Config {
	return &Config{
		Core: CoreConfig{
			Compression:   object.CompressionNone,
			DefaultBranch: DefaultBranch,
		},
	}
}

func (c *Config) validate() error {
	comp, err := object.ParseCompression(string(c.Core.Compression))
	if err != nil {
		return err
	}
	c.Core.Compression = comp
	if c.Core.DefaultBranch == "" {
		c.Core.DefaultBranch = DefaultBranch
	}
	return validBranchName(c.Core.DefaultBranch)
}

// ReadConfig reads the config file in ditDir. A missing file yields the
// defaults.
func ReadConfig(fsys afero.Fs, ditDir string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := afero.ReadFile(fsys, filepath.Join(ditDir, configFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("read config: decode: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}

// WriteConfig atomically replaces the repository config.
func (r *Repo) WriteConfig(cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("write config: encode: %w", err)
	}
	if err := r.writeFileAtomic(configFile, buf.Bytes()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	r.Config = cfg
	return nil
}
