package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fid-go/internal/config"
	"fid-go/internal/fid"
	"fid-go/internal/fs"
	"fid-go/internal/metrics"
)

var (
	// ErrProtectedPath is returned by Remove for paths that must never be deleted.
	ErrProtectedPath = errors.New("protected path")
	// ErrNoHash is returned by Hash when the path is not a readable regular file.
	ErrNoHash = errors.New("no hash available")
)

// FidApp is the application layer between the CLI and fid.Entity.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw string paths, and flushes logs and metrics on Close.
type FidApp struct {
	cfg     *config.Config
	fsys    fid.Filesystem
	logger  *slog.Logger
	protect *fs.ProtectMatcher
	exact   map[string]bool
	metrics *metrics.Recorder
	op      *Operation
	logFile *os.File
	clock   Clock
}

// Options tunes NewFidApp beyond what the config file holds.
type Options struct {
	// Verbose forces debug level and echoes log records to stderr.
	Verbose bool
}

// NewFidApp creates a fully wired FidApp from the given config.
// operation identifies the CLI command being run (e.g. "Hash", "Remove").
// The caller must call Close when done.
func NewFidApp(cfg *config.Config, opts Options, operation string, params ...string) (*FidApp, error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		level = slog.LevelDebug
	}

	op := NewOperation(operation, params...)
	logger, logFile, err := newLogger(cfg.LogDir, op.ID, level, opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	patterns := append([]string{}, cfg.Remove.Protect...)
	if cfg.Remove.ProtectFile != "" {
		extra, err := fs.ParseProtectFile(cfg.Remove.ProtectFile)
		if err != nil {
			logFile.Close()
			return nil, fmt.Errorf("loading protect file: %w", err)
		}
		patterns = append(patterns, extra...)
	}

	a := newFidApp(cfg, fs.NewOSFilesystem(), logger, op, patterns)
	a.logFile = logFile
	return a, nil
}

// newFidApp wires an app around an existing filesystem and logger.
func newFidApp(cfg *config.Config, fsys fid.Filesystem, logger *slog.Logger, op *Operation, patterns []string) *FidApp {
	a := &FidApp{
		cfg:     cfg,
		fsys:    fsys,
		logger:  logger,
		protect: fs.NewProtectMatcher(patterns),
		exact:   defaultProtected(),
		metrics: metrics.NewRecorder(),
		op:      op,
		clock:   RealClock{},
	}
	a.logger.Debug("operation started", "operation", op.Name, "parameters", op.Parameters)
	return a
}

// defaultProtected returns paths that are refused regardless of config.
// They are matched exactly; their contents remain removable.
func defaultProtected() map[string]bool {
	exact := map[string]bool{string(filepath.Separator): true}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		exact[filepath.Clean(home)] = true
	}
	return exact
}

// Entity returns an Entity for rawPath on the app's filesystem.
func (a *FidApp) Entity(rawPath string) *fid.Entity {
	return fid.NewEntity(rawPath, a.fsys, &slogAdapter{l: a.logger})
}

// Describe returns a point-in-time description of rawPath.
func (a *FidApp) Describe(rawPath string) (*fid.Description, error) {
	d, err := a.Entity(rawPath).Describe()
	a.record("describe", err)
	if err != nil {
		return nil, err
	}
	if d.Type == fid.TypeFile {
		a.metrics.Hashed(d.Size)
	}
	return d, nil
}

// TypeOf reports whether rawPath is a directory and whether it is a regular file.
func (a *FidApp) TypeOf(rawPath string) (isDir, isFile bool) {
	e := a.Entity(rawPath)
	isDir, isFile = e.IsDirectory(), e.IsFile()
	a.record("type", nil)
	return isDir, isFile
}

// Size returns the byte length of rawPath's target.
func (a *FidApp) Size(rawPath string) (int64, error) {
	size, err := a.Entity(rawPath).Size()
	a.record("size", err)
	return size, err
}

// Hash returns the content hash of rawPath, or ErrNoHash if it has none.
func (a *FidApp) Hash(rawPath string) (string, error) {
	e := a.Entity(rawPath)
	sum := e.Hash()
	if sum == "" {
		err := fmt.Errorf("%s: %w", rawPath, ErrNoHash)
		a.record("hash", err)
		return "", err
	}
	if size, err := e.Size(); err == nil {
		a.metrics.Hashed(size)
	}
	a.logger.Debug("hashed", "path", rawPath, "hash", sum)
	a.record("hash", nil)
	return sum, nil
}

// Match compares two paths by hash, or byte for byte when deep is set.
func (a *FidApp) Match(rawA, rawB string, deep bool) bool {
	ea, eb := a.Entity(rawA), a.Entity(rawB)

	var matched bool
	if deep {
		matched = ea.IsDeepMatch(eb)
	} else {
		matched = ea.IsMatch(eb)
	}

	a.logger.Info("compared", "a", rawA, "b", rawB, "deep", deep, "match", matched)
	a.record("match", nil)
	return matched
}

// Remove deletes rawPath unless it is protected. Returns the type of the
// removed target, or fid.TypeMissing when there was nothing to remove.
func (a *FidApp) Remove(rawPath string) (string, error) {
	if err := a.CheckRemovable(rawPath); err != nil {
		a.record("remove", err)
		return "", err
	}

	e := a.Entity(rawPath)
	targetType := fid.TypeMissing
	switch {
	case e.IsFile():
		targetType = fid.TypeFile
	case e.IsDirectory():
		targetType = fid.TypeDirectory
	case e.Exists():
		targetType = fid.TypeOther
	}

	err := e.Remove()
	a.record("remove", err)
	if err != nil {
		a.logger.Error("remove failed", "path", rawPath, "error", err)
		return "", err
	}

	if targetType == fid.TypeFile || targetType == fid.TypeDirectory {
		a.metrics.Removed(targetType)
		a.logger.Info("removed", "path", rawPath, "type", targetType)
	}
	return targetType, nil
}

// CheckRemovable returns ErrProtectedPath if rawPath may not be removed.
func (a *FidApp) CheckRemovable(rawPath string) error {
	abs, err := filepath.Abs(rawPath)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	if a.exact[abs] || a.protect.Match(abs) {
		a.logger.Warn("refusing to remove protected path", "path", abs)
		return fmt.Errorf("%s: %w", abs, ErrProtectedPath)
	}
	if !a.Entity(abs).IsDirectory() {
		return nil
	}
	if inner, ok := a.protectedBeneath(abs); ok {
		a.logger.Warn("refusing to remove directory holding protected path", "path", abs, "protected", inner)
		return fmt.Errorf("%s contains %s: %w", abs, inner, ErrProtectedPath)
	}
	return nil
}

// protectedBeneath returns a protected path or pattern inside dir.
func (a *FidApp) protectedBeneath(dir string) (string, bool) {
	for p := range a.exact {
		if fs.IsAncestor(dir, p) {
			return p, true
		}
	}
	if a.protect.MatchBeneath(dir) {
		return "a protect pattern", true
	}
	return "", false
}

// ConfirmRemove reports whether removal should ask the user first.
func (a *FidApp) ConfirmRemove() bool {
	return a.cfg.Remove.Confirm
}

// Failed reports whether any step of the operation failed.
func (a *FidApp) Failed() bool {
	return a.op.Failed()
}

// record observes err on the operation and counts it.
func (a *FidApp) record(name string, err error) {
	a.op.Observe(err)
	a.metrics.Operation(name, err)
}

// Close finalizes the operation: writes the metrics textfile when
// configured and closes the log file.
func (a *FidApp) Close() error {
	var firstErr error

	a.logger.Debug("operation finished", "operation", a.op.Name, "status", a.op.Status)

	if path := a.cfg.Metrics.Textfile; path != "" {
		if err := a.metrics.WriteTextfile(path, a.clock.Now()); err != nil {
			a.logger.Warn("metrics not written", "path", path, "error", err)
			firstErr = err
		}
	}

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}

	return firstErr
}
