package renamer

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// envToken matches Windows style %VAR% references
var envToken = regexp.MustCompile(`%([^%\s]+)%`)

// nameFilter decides which directory entries are candidates for renaming.
// In glob mode the glob does all the work; in regex mode the glob is "*" and
// every name is also tested against the regex, so each directory is listed in
// full. That cost is inherent to regex matching.
type nameFilter struct {
	glob  string
	regex *regexp.Regexp
}

// Match reports whether name passes the filter
func (f *nameFilter) Match(name string) bool {
	ok, err := filepath.Match(f.glob, name)
	if err != nil || !ok {
		return false
	}
	return f.regex == nil || f.regex.MatchString(name)
}

// resolveFilter turns the file-match argument into a search root and a name
// filter. workDir anchors relative paths.
func resolveFilter(fileMatch string, isRegex bool, workDir string, lookupEnv func(string) (string, bool)) (string, *nameFilter, error) {
	if isRegex {
		re, err := regexp.Compile(fileMatch)
		if err != nil {
			return "", nil, newPatternError(ErrInvalidPattern, fileMatch, err)
		}
		return filepath.Clean(workDir), &nameFilter{glob: "*", regex: re}, nil
	}

	pattern := fileMatch
	if strings.Contains(pattern, "%") {
		pattern = expandEnvTokens(pattern, lookupEnv)
	}

	root := workDir
	glob := pattern

	if strings.ContainsAny(pattern, "/"+string(os.PathSeparator)) {
		dir, base := splitPattern(pattern)
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(workDir, dir)
		}
		root = dir
		glob = base
	}

	if _, err := filepath.Match(glob, ""); err != nil {
		return "", nil, newPatternError(ErrInvalidPattern, fileMatch, err)
	}

	return filepath.Clean(root), &nameFilter{glob: glob}, nil
}

// splitPattern separates the directory part of a pattern from its last
// segment. A pattern ending in a separator matches everything in that
// directory.
func splitPattern(pattern string) (dir, base string) {
	i := strings.LastIndexAny(pattern, "/"+string(os.PathSeparator))
	dir, base = pattern[:i], pattern[i+1:]
	if dir == "" {
		dir = pattern[:i+1]
	}
	if base == "" {
		base = "*"
	}
	return dir, base
}

// expandEnvTokens replaces %VAR% with the variable's value. Unknown variables
// are left verbatim, as cmd.exe does.
func expandEnvTokens(s string, lookupEnv func(string) (string, bool)) string {
	return envToken.ReplaceAllStringFunc(s, func(tok string) string {
		if v, ok := lookupEnv(tok[1 : len(tok)-1]); ok {
			return v
		}
		return tok
	})
}
