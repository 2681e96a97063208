package renamer

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// OutcomeKind is the terminal state of one entry
type OutcomeKind int

const (
	OutcomeUnchanged    OutcomeKind = iota // new name equals old name
	OutcomePretended                       // announced only
	OutcomeCollision                       // target exists and force is off
	OutcomeDeleteDenied                    // force was on but the target could not be removed
	OutcomeMoveDenied                      // permission denied on the move
	OutcomeMoveFailed                      // any other move failure
	OutcomeInvalidName                     // replacement produced an unusable name
	OutcomeRenamed
)

var outcomeNames = map[OutcomeKind]string{
	OutcomeUnchanged:    "unchanged",
	OutcomePretended:    "pretended",
	OutcomeCollision:    "collision",
	OutcomeDeleteDenied: "delete-denied",
	OutcomeMoveDenied:   "move-denied",
	OutcomeMoveFailed:   "move-failed",
	OutcomeInvalidName:  "invalid-name",
	OutcomeRenamed:      "renamed",
}

func (k OutcomeKind) String() string {
	if s, ok := outcomeNames[k]; ok {
		return s
	}
	return "unknown"
}

// Outcome is the result of processing one entry
type Outcome struct {
	Kind    OutcomeKind
	Source  string // full path before
	Target  string // full path after
	Existed bool   // an entry already sat at Target when it was announced
	Err     error
}

// Entry is a transient view of one file or directory under consideration
type Entry struct {
	Path  string
	Dir   string
	Name  string
	Ext   string // empty for directories
	IsDir bool
	Info  os.FileInfo
}

func newEntry(dir string, info os.FileInfo) Entry {
	e := Entry{
		Path:  filepath.Join(dir, info.Name()),
		Dir:   dir,
		Name:  info.Name(),
		IsDir: info.IsDir(),
		Info:  info,
	}
	if !e.IsDir {
		e.Ext = filepath.Ext(e.Name)
	}
	return e
}

// newName computes the replacement name. Directories and files without
// preserve-extension are replaced as a whole; otherwise only the stem is.
func (r *Renamer) newName(e Entry) string {
	if e.IsDir || !r.opts.PreserveExt {
		return r.replacer.Apply(e.Name)
	}
	stem := strings.TrimSuffix(e.Name, e.Ext)
	return r.replacer.Apply(stem) + e.Ext
}

// processEntry runs the rename algorithm for one entry. It never returns an
// error: every anticipated failure becomes an Outcome.
func (r *Renamer) processEntry(e Entry) Outcome {
	after := r.newName(e)
	if after == e.Name {
		return Outcome{Kind: OutcomeUnchanged, Source: e.Path, Target: e.Path}
	}

	if !validName(after) {
		r.reporter.Warning("Invalid new name %q for %q", after, r.display(e.Path))
		return Outcome{Kind: OutcomeInvalidName, Source: e.Path}
	}

	out := Outcome{Source: e.Path, Target: filepath.Join(e.Dir, after)}
	out.Existed = r.collides(e, out.Target)

	r.reporter.Rename(r.display(e.Path), after, r.opts.Pretend, out.Existed)

	if r.opts.Pretend {
		out.Kind = OutcomePretended
		return out
	}

	if out.Existed {
		if !r.opts.Force {
			r.logger.Debug("target exists, use --force to overwrite", "target", r.display(out.Target))
			out.Kind = OutcomeCollision
			return out
		}
		if err := r.fs.Remove(out.Target); err != nil {
			r.reporter.Error("Delete access: %v", err)
			out.Kind = OutcomeDeleteDenied
			out.Err = err
			return out
		}
	}

	if err := r.fs.Rename(out.Source, out.Target); err != nil {
		out.Err = err
		if errors.Is(err, fs.ErrPermission) {
			r.reporter.Error("Move access: %v", err)
			out.Kind = OutcomeMoveDenied
			return out
		}
		r.reporter.Warning("Could not move %q to %q", out.Source, after)
		out.Kind = OutcomeMoveFailed
		return out
	}

	out.Kind = OutcomeRenamed
	return out
}

// collides reports whether something other than the entry itself already
// exists at target. A case-only rename on a case-insensitive filesystem
// finds the entry itself there, which is not a collision.
func (r *Renamer) collides(e Entry, target string) bool {
	info, err := lstat(r.fs, target)
	if err != nil {
		return false
	}
	if strings.EqualFold(e.Path, target) && e.Info != nil && os.SameFile(e.Info, info) {
		return false
	}
	return true
}

func lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fsys.Stat(path)
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/"+string(os.PathSeparator)+"\x00")
}
