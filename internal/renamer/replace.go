package renamer

import (
	"regexp"
	"strings"
)

// replacer applies the search expression and replacement template to names
type replacer struct {
	pattern  *regexp.Regexp
	template string
}

func newReplacer(search, replace string, caseInsensitive bool) (*replacer, error) {
	pattern := search
	if caseInsensitive {
		pattern = "(?i)" + pattern
	}

	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return nil, newPatternError(ErrInvalidSearch, search, err)
	}

	return &replacer{
		pattern:  compiled,
		template: translateTemplate(replace),
	}, nil
}

// Apply replaces every match of the search expression in name
func (r *replacer) Apply(name string) string {
	return r.pattern.ReplaceAllString(name, r.template)
}

// translateTemplate rewrites numbered references into braced form. Go reads
// "$1x" as a group named "1x"; users mean group 1 followed by "x".
func translateTemplate(tmpl string) string {
	if !strings.Contains(tmpl, "$") {
		return tmpl
	}

	var b strings.Builder
	b.Grow(len(tmpl) + 4)

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '$' || i+1 >= len(tmpl) {
			b.WriteByte(c)
			continue
		}

		next := tmpl[i+1]
		switch {
		case next == '$':
			b.WriteString("$$")
			i++
		case isDigit(next):
			j := i + 1
			for j < len(tmpl) && isDigit(tmpl[j]) {
				j++
			}
			b.WriteString("${" + tmpl[i+1:j] + "}")
			i = j - 1
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
