package repo

import (
	"fmt"
	"path/filepath"

	"github.com/odvcencio/dit/pkg/object"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Exists reports whether path holds a .dit directory.
func Exists(fsys afero.Fs, path string) bool {
	ok, err := afero.DirExists(fsys, filepath.Join(path, DirName))
	return err == nil && ok
}

// Init creates a new dit repository at path:
//
//	.dit/objects/        object store
//	.dit/refs/<branch>   empty log of the default branch
//	.dit/info            current branch and head (NullHash)
//	.dit/staged          NullHash
//	.dit/deleted         empty
//	.dit/commit          empty message buffer
//	.dit/config.toml
//
// An existing repository is an error unless WithReinit is given, in which
// case it is removed first.
func Init(path string, opts ...Option) (*Repo, error) {
	o := newOptions(opts)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("init: abs path: %w", err)
	}
	ditDir := filepath.Join(abs, DirName)

	if Exists(o.fs, abs) {
		if !o.reinit {
			return nil, fmt.Errorf("init %s: %w", ditDir, ErrAlreadyInitialized)
		}
		o.log.Info("removing existing repository", zap.String("path", ditDir))
		if err := o.fs.RemoveAll(ditDir); err != nil {
			return nil, fmt.Errorf("init: remove %s: %w", ditDir, err)
		}
	}

	cfg := DefaultConfig()
	cfg.Core.Compression = o.compression
	cfg.Core.DefaultBranch = o.branch
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	for _, d := range []string{objectsDir, refsDir} {
		if err := o.fs.MkdirAll(filepath.Join(ditDir, d), 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	r := newRepo(abs, abs, cfg, o)
	if err := r.WriteConfig(cfg); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	if err := afero.WriteFile(r.fs, r.branchPath(cfg.Core.DefaultBranch), nil, 0o644); err != nil {
		return nil, fmt.Errorf("init: create branch log: %w", err)
	}
	if err := r.writeInfo(Info{Branch: cfg.Core.DefaultBranch, Head: object.NullHash}); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	if err := r.setStaged(object.NullHash); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	for _, name := range []string{deletedFile, messageFile} {
		if err := afero.WriteFile(r.fs, r.path(name), nil, 0o644); err != nil {
			return nil, fmt.Errorf("init: create %s: %w", name, err)
		}
	}

	r.log.Info("initialized repository",
		zap.String("root", abs),
		zap.String("branch", cfg.Core.DefaultBranch),
		zap.String("compression", string(cfg.Core.Compression)))
	return r, nil
}

// Open searches upward from path for a .dit directory and opens the
// repository. Relative paths given to later operations resolve against
// path itself. Returns ErrNotInitialized if no .dit directory is found.
func Open(path string, opts ...Option) (*Repo, error) {
	o := newOptions(opts)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		if Exists(o.fs, cur) {
			cfg, err := ReadConfig(o.fs, filepath.Join(cur, DirName))
			if err != nil {
				return nil, fmt.Errorf("open: %w", err)
			}
			return newRepo(cur, abs, cfg, o), nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("open %s: %w", abs, ErrNotInitialized)
		}
		cur = parent
	}
}
