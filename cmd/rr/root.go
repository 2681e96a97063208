package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/73ai/rename-regex/internal/options"
	"github.com/73ai/rename-regex/internal/output"
	"github.com/73ai/rename-regex/internal/renamer"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Process exit codes
const (
	exitOK        = 0
	exitUsage     = 1
	exitNoMatches = 2
	exitFatal     = 3
)

// errNoMatches ends a run whose filter matched nothing
var errNoMatches = errors.New("no files or directories match")

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "rr [flags] FILE-MATCH SEARCH REPLACE",
		Short: "Rename files and directories with a regular expression",
		Long: `rr renames every file (and optionally directory) matching FILE-MATCH by
replacing SEARCH with REPLACE in its name. SEARCH is a regular expression and
REPLACE may reference its capture groups as $1, ${1} or ${name}. A reference to
a group that does not exist expands to nothing; write $$ for a literal $.

FILE-MATCH is a glob such as *.jpg, optionally prefixed with a directory
(photos/*.jpg); %VAR% tokens are expanded from the environment. With
--file-match-regex it is a regular expression tested against every name in the
working directory instead, which lists each directory in full.

With --recursive every subdirectory is visited, whether or not its name matches
FILE-MATCH. Any argument that is not a known flag is positional, so patterns
such as -draft need no quoting; "--" ends flag parsing for the rest.

EXAMPLES:
    rr "*.jpg" "^IMG_" "holiday_" --pretend
    rr "*.txt" "(\d{4})-(\d{2})" "$2-$1" -r
    rr "*" " " "_" --dirs --files -r
    rr "^draft" "draft" "final" --file-match-regex -c
    rr "*.txt" -draft -final`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(v, args, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return options.NewUsageError("invalid flag", err)
	})

	options.BindFlags(cmd.Flags())
	cmd.SetGlobalNormalizationFunc(options.NormalizeFlagName)
	// registered now so NormalizeArgs recognizes them
	cmd.InitDefaultHelpFlag()
	cmd.InitDefaultVersionFlag()
	v.BindPFlags(cmd.Flags())

	return cmd
}

func runRename(v *viper.Viper, args []string, stdout, stderr io.Writer) error {
	opts, err := options.FromViper(v, args)
	if err != nil {
		return err
	}

	reporter := output.NewTextReporter(output.Config{
		Writer:     stdout,
		ErrWriter:  stderr,
		ShowColors: output.ShouldColor(opts.Color, stdout),
	})

	r, err := renamer.New(opts, &renamer.Config{
		Reporter: reporter,
		Logger:   output.NewLogger(stderr, opts.Verbose),
	})
	if err != nil {
		return err
	}

	counters, err := r.Run()
	if err != nil {
		return err
	}

	if counters.Listed == 0 {
		reporter.NoMatches()
		return errNoMatches
	}

	reporter.Summary(counters.Summary())
	return nil
}

// execute runs the command line and maps the outcome to an exit code
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(options.NormalizeArgs(cmd.Flags(), args))

	err := cmd.Execute()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errNoMatches):
		return exitNoMatches
	case options.IsUsageError(err):
		fmt.Fprintf(stderr, "ERROR: %v\n\n", err)
		fmt.Fprint(stderr, cmd.UsageString())
		return exitUsage
	default:
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitFatal
	}
}

// Execute runs rr against the process arguments
func Execute() int {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}
