package options

import (
	"strings"

	"github.com/spf13/pflag"
)

// legacyFlags maps the Windows-style slash options to their
// long flag spellings.
var legacyFlags = map[string]string{
	"/p":     FlagPretend,
	"/r":     FlagRecursive,
	"/c":     FlagCaseInsensitive,
	"/f":     FlagForce,
	"/e":     FlagPreserveExt,
	"/files": FlagIncludeFiles,
	"/dirs":  FlagIncludeDirs,
	"/fr":    FlagFileMatchIsRegex,
}

// NormalizeArgs rewrites a raw command line so that flag parsing only ever
// sees flags registered on fs. Legacy slash options (any case) become long
// flags. Every other token is positional, including ones like "-draft" that
// start with a dash but name no flag, and is moved behind a "--" terminator
// in its original order. Tokens after a "--" in args are positional too.
func NormalizeArgs(fs *pflag.FlagSet, args []string) []string {
	flags := make([]string, 0, len(args))
	var positionals []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if name, ok := legacyFlags[strings.ToLower(arg)]; ok {
			flags = append(flags, "--"+name)
			continue
		}

		flag, inline := lookupFlag(fs, arg)
		if flag == nil {
			positionals = append(positionals, arg)
			continue
		}
		flags = append(flags, arg)
		// a value flag without "=value" takes the next token
		if flag.NoOptDefVal == "" && !inline && i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}

	if len(positionals) == 0 {
		return flags
	}
	return append(append(flags, "--"), positionals...)
}

// lookupFlag resolves a "--name", "--name=value" or "-s" token against fs.
// Grouped shorthands such as "-rf" are not flags.
func lookupFlag(fs *pflag.FlagSet, arg string) (*pflag.Flag, bool) {
	switch {
	case strings.HasPrefix(arg, "--") && len(arg) > 2:
		name, _, inline := strings.Cut(arg[2:], "=")
		return fs.Lookup(name), inline
	case len(arg) == 2 && arg[0] == '-' && arg[1] != '-':
		return fs.ShorthandLookup(arg[1:]), false
	}
	return nil, false
}
