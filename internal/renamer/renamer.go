// Package renamer walks a directory tree and renames matching entries with a
// regular expression search and replace
package renamer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/73ai/rename-regex/internal/options"
)

// Reporter receives the console lines a run produces
type Reporter interface {
	Rename(path, newName string, pretend, exists bool)
	Error(format string, args ...interface{})
	Warning(format string, args ...interface{})
}

// Config holds the environment a Renamer runs against
type Config struct {
	Fs        afero.Fs                    // filesystem, the OS by default
	WorkDir   string                      // anchors relative patterns, os.Getwd by default
	LookupEnv func(string) (string, bool) // %VAR% expansion, os.LookupEnv by default
	Reporter  Reporter
	Logger    *log.Logger
}

// DefaultConfig returns a Config for the OS filesystem with logging discarded.
// Reporter must still be set.
func DefaultConfig() *Config {
	return &Config{
		Fs:        afero.NewOsFs(),
		LookupEnv: os.LookupEnv,
		Logger:    log.New(io.Discard),
	}
}

// Renamer applies one set of Options to a directory tree. It is single use:
// counters accumulate across Run calls.
type Renamer struct {
	opts     options.Options
	fs       afero.Fs
	root     string
	filter   *nameFilter
	replacer *replacer
	reporter Reporter
	logger   *log.Logger
	counters Counters
}

// New resolves the search root and compiles both expressions. An invalid
// search expression or a missing root is a fatal *Error.
func New(opts *options.Options, config *Config) (*Renamer, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if config.Fs == nil {
		config.Fs = afero.NewOsFs()
	}

	if config.LookupEnv == nil {
		config.LookupEnv = os.LookupEnv
	}

	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}

	if config.Reporter == nil {
		return nil, fmt.Errorf("renamer: reporter is required")
	}

	if config.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		config.WorkDir = wd
	}

	root, filter, err := resolveFilter(opts.FileMatch, opts.FileMatchIsRegex, config.WorkDir, config.LookupEnv)
	if err != nil {
		return nil, err
	}

	rep, err := newReplacer(opts.NameSearch, opts.NameReplace, opts.CaseInsensitive)
	if err != nil {
		return nil, err
	}

	fsys := config.Fs
	if opts.Pretend {
		fsys = afero.NewReadOnlyFs(fsys)
	}

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, newPathError(ErrInvalidRoot, root, "stat", err)
	}
	if !info.IsDir() {
		return nil, newPathError(ErrInvalidRoot, root, "stat", fmt.Errorf("not a directory"))
	}

	return &Renamer{
		opts:     *opts,
		fs:       fsys,
		root:     root,
		filter:   filter,
		replacer: rep,
		reporter: config.Reporter,
		logger:   config.Logger,
	}, nil
}

// Root returns the resolved search directory
func (r *Renamer) Root() string {
	return r.root
}

// pending is a directory waiting to be processed
type pending struct {
	dir   string
	level int
}

// Run processes the tree and returns the final counters. Only fatal
// conditions are returned as errors; per-entry failures are counted.
//
// Directories are processed depth first from an explicit stack. Each
// directory renames its own files and subdirectories before its children are
// listed and pushed, so a child is always entered under its new name.
func (r *Renamer) Run() (Counters, error) {
	stack := []pending{{dir: r.root}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children, err := r.processDir(p.dir, p.level)
		if err != nil {
			return r.counters, err
		}

		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, pending{dir: children[i], level: p.level + 1})
		}
	}

	return r.counters, nil
}

// processDir renames matching files, then matching directories, and returns
// the subdirectories to descend into when recursive.
func (r *Renamer) processDir(dir string, level int) ([]string, error) {
	r.logger.Debug("processing directory", "dir", r.display(dir), "level", level)

	if r.opts.IncludeFiles {
		if err := r.processEntries(dir, false, "Files"); err != nil {
			return nil, err
		}
	}

	if r.opts.IncludeDirs {
		if err := r.processEntries(dir, true, "Dirs"); err != nil {
			return nil, err
		}
	}

	if !r.opts.Recursive {
		return nil, nil
	}

	// listed again: the dirs pass may have renamed children
	infos, err := r.list(dir, "Recurse")
	if err != nil || infos == nil {
		return nil, err
	}

	var children []string
	for _, info := range infos {
		if info.IsDir() {
			children = append(children, filepath.Join(dir, info.Name()))
		}
	}
	return children, nil
}

func (r *Renamer) processEntries(dir string, dirs bool, what string) error {
	infos, err := r.list(dir, what)
	if err != nil || infos == nil {
		return err
	}

	for _, info := range infos {
		if info.IsDir() != dirs || !r.filter.Match(info.Name()) {
			continue
		}
		r.counters.record(r.processEntry(newEntry(dir, info)))
	}
	return nil
}

// list returns the entries of dir sorted by name. Access failures are
// counted and yield a nil slice; anything else is fatal.
func (r *Renamer) list(dir, what string) ([]os.FileInfo, error) {
	infos, err := afero.ReadDir(r.fs, dir)
	if err == nil {
		r.logger.Debug("listed directory", "dir", r.display(dir), "pass", what, "entries", len(infos))
		return infos, nil
	}

	if isAccessError(err) {
		r.counters.Errors++
		r.reporter.Error("%s access: %v", what, err)
		return nil, nil
	}

	return nil, newPathError(ErrIO, dir, "listing", err)
}

// display returns path relative to the search root
func (r *Renamer) display(path string) string {
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return path
	}
	return rel
}
