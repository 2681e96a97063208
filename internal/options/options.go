// Package options turns command-line tokens into a validated rename configuration
package options

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag names. pflag normalizes every name to lower case, so lookups through
// viper or the flag set must use these spellings.
const (
	FlagPretend          = "pretend"
	FlagRecursive        = "recursive"
	FlagCaseInsensitive  = "case-insensitive"
	FlagForce            = "force"
	FlagPreserveExt      = "preserve-extension"
	FlagIncludeFiles     = "files"
	FlagIncludeDirs      = "dirs"
	FlagFileMatchIsRegex = "file-match-regex"
	FlagVerbose          = "verbose"
	FlagColor            = "color"
)

// ColorMode controls colored console output
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Options holds everything a rename run needs. It is filled once from the
// command line and never modified afterwards.
type Options struct {
	// Positional arguments
	FileMatch   string // glob, or regex when FileMatchIsRegex is set
	NameSearch  string // regex applied to each name
	NameReplace string // replacement template, may reference capture groups

	Pretend          bool // report only, no filesystem mutation
	Recursive        bool // descend into subdirectories
	CaseInsensitive  bool // ignore case in NameSearch
	Force            bool // delete an existing target before moving
	PreserveExt      bool // keep the file extension out of the replace
	IncludeFiles     bool
	IncludeDirs      bool
	FileMatchIsRegex bool

	Verbose bool
	Color   ColorMode
}

// UsageError reports a command line that cannot be turned into Options.
// The entry point prints usage text for it.
type UsageError struct {
	Message string
	Cause   error
}

func (e *UsageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *UsageError) Unwrap() error {
	return e.Cause
}

// NewUsageError creates a usage error with an optional cause
func NewUsageError(message string, cause error) *UsageError {
	return &UsageError{Message: message, Cause: cause}
}

// IsUsageError reports whether err is, or wraps, a *UsageError
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// BindFlags registers every rename flag on fs and makes flag names
// case-insensitive.
func BindFlags(fs *pflag.FlagSet) {
	fs.SetNormalizeFunc(NormalizeFlagName)

	fs.BoolP(FlagPretend, "p", false, "Only show what would be renamed")
	fs.BoolP(FlagRecursive, "r", false, "Descend into every subdirectory, whether or not it matches file-match")
	fs.BoolP(FlagCaseInsensitive, "c", false, "Case insensitive search")
	fs.BoolP(FlagForce, "f", false, "Overwrite an existing target")
	fs.BoolP(FlagPreserveExt, "e", false, "Exclude the file extension from search and replace")
	fs.Bool(FlagIncludeFiles, false, "Include files (default when no include flag is given)")
	fs.BoolP(FlagIncludeDirs, "d", false, "Include directories")
	fs.BoolP(FlagFileMatchIsRegex, "x", false, "Treat file-match as a regular expression instead of a glob")
	fs.BoolP(FlagVerbose, "v", false, "Log traversal details to stderr")
	fs.String(FlagColor, string(ColorAuto), "When to use colors (never, auto, always)")
}

// NormalizeFlagName lower-cases flag names so --Pretend and --PRETEND both
// resolve to --pretend.
func NormalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ToLower(name))
}

// FromViper builds Options from flag values bound into v and the positional
// arguments left over after flag parsing.
func FromViper(v *viper.Viper, positionals []string) (*Options, error) {
	opts := &Options{
		Pretend:          v.GetBool(FlagPretend),
		Recursive:        v.GetBool(FlagRecursive),
		CaseInsensitive:  v.GetBool(FlagCaseInsensitive),
		Force:            v.GetBool(FlagForce),
		PreserveExt:      v.GetBool(FlagPreserveExt),
		IncludeFiles:     v.GetBool(FlagIncludeFiles),
		IncludeDirs:      v.GetBool(FlagIncludeDirs),
		FileMatchIsRegex: v.GetBool(FlagFileMatchIsRegex),
		Verbose:          v.GetBool(FlagVerbose),
		Color:            ColorMode(strings.ToLower(v.GetString(FlagColor))),
	}

	if err := opts.assign(positionals); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	// default: files only
	if !opts.IncludeFiles && !opts.IncludeDirs {
		opts.IncludeFiles = true
	}

	return opts, nil
}

// Parse parses a raw argument list (flags and positionals in any order) into
// Options. Legacy slash options such as /p are accepted, and any token that
// names no flag is positional even when it starts with a dash.
func Parse(args []string) (*Options, error) {
	fs := pflag.NewFlagSet("rr", pflag.ContinueOnError)
	fs.SetInterspersed(true)
	fs.Usage = func() {}
	BindFlags(fs)

	if err := fs.Parse(NormalizeArgs(fs, args)); err != nil {
		return nil, NewUsageError("invalid flag", err)
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	return FromViper(v, fs.Args())
}

// Ready reports whether the file match and search are set. An empty
// replacement is valid and deletes the matched text.
func (o *Options) Ready() bool {
	return o.FileMatch != "" && o.NameSearch != ""
}

// assign fills FileMatch, NameSearch and NameReplace in order
func (o *Options) assign(positionals []string) error {
	for i, arg := range positionals {
		switch i {
		case 0:
			o.FileMatch = arg
		case 1:
			o.NameSearch = arg
		case 2:
			o.NameReplace = arg
		default:
			return NewUsageError(fmt.Sprintf("unknown option: %q", arg), nil)
		}
	}

	if len(positionals) < 3 {
		return NewUsageError("file-match, search and replace are required", nil)
	}
	return nil
}

func (o *Options) validate() error {
	if !o.Ready() {
		return NewUsageError("file-match and search must not be empty", nil)
	}

	switch o.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return NewUsageError(fmt.Sprintf("invalid --color value %q", o.Color), nil)
	}

	if o.FileMatchIsRegex {
		if _, err := regexp.Compile(o.FileMatch); err != nil {
			return NewUsageError("file match is not a regular expression", err)
		}
	}

	return nil
}
