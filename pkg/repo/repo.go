package repo

import (
	"path/filepath"

	"github.com/odvcencio/dit/pkg/object"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// DirName is the repository metadata directory at the working-tree root.
const DirName = ".dit"

// Files under DirName.
const (
	objectsDir  = "objects"
	refsDir     = "refs"
	infoFile    = "info"
	stagedFile  = "staged"
	deletedFile = "deleted"
	messageFile = "commit"
	configFile  = "config.toml"
	logsDir     = "logs"
	headLog     = "HEAD"
)

// Repo represents an opened dit repository. The root is resolved once, by
// Init or Open, and every operation works relative to it.
type Repo struct {
	RootDir string        // working directory root
	DitDir  string        // .dit/ directory
	WorkDir string        // directory relative paths are resolved against
	Store   *object.Store // content-addressed object store
	Config  *Config

	fs  afero.Fs
	log *zap.Logger
}

type options struct {
	fs          afero.Fs
	log         *zap.Logger
	compression object.Compression
	branch      string
	reinit      bool
}

// Option configures Init and Open.
type Option func(*options)

// WithFs sets the filesystem the repository lives on. Defaults to the OS
// filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		if fs != nil {
			o.fs = fs
		}
	}
}

// WithLogger sets the logger used by repository operations.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithCompression selects the object codec for a new repository. Ignored by
// Open, which uses the codec recorded in the config.
func WithCompression(c object.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithDefaultBranch names the branch a new repository starts on.
func WithDefaultBranch(name string) Option {
	return func(o *options) {
		o.branch = name
	}
}

// WithReinit lets Init replace an existing repository.
func WithReinit(reinit bool) Option {
	return func(o *options) {
		o.reinit = reinit
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		fs:          afero.NewOsFs(),
		log:         zap.NewNop(),
		compression: object.CompressionNone,
		branch:      DefaultBranch,
	}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

func newRepo(root, work string, cfg *Config, o *options) *Repo {
	ditDir := filepath.Join(root, DirName)
	return &Repo{
		RootDir: root,
		DitDir:  ditDir,
		WorkDir: work,
		Config:  cfg,
		Store: object.NewStore(o.fs, ditDir,
			object.WithCompression(cfg.Core.Compression),
			object.WithLogger(o.log.Named("store")),
		),
		fs:  o.fs,
		log: o.log,
	}
}

// Fs returns the filesystem the repository lives on.
func (r *Repo) Fs() afero.Fs { return r.fs }

func (r *Repo) path(elem ...string) string {
	return filepath.Join(append([]string{r.DitDir}, elem...)...)
}
