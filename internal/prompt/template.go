package prompt

import (
	"os"
	"sort"
)

// Template is one loaded prompt file. Raw text is parsed once; the
// declared variable set is derived at load time so Info and missing
// variable reporting never have to rescan the text.
type Template struct {
	Category  string
	Name      string
	Path      string
	Raw       string
	Variables []string
}

// declaredVariables collects every ${name} (or bare $name) placeholder
// in the template text, deduplicated and sorted.
func declaredVariables(raw string) []string {
	seen := make(map[string]struct{})
	os.Expand(raw, func(name string) string {
		if name != "" {
			seen[name] = struct{}{}
		}
		return ""
	})

	vars := make([]string, 0, len(seen))
	for name := range seen {
		vars = append(vars, name)
	}
	sort.Strings(vars)
	return vars
}

// substitute renders the template against the supplied values. It
// returns the rendered text together with the placeholders that had no
// value and the supplied values that matched no placeholder.
func (t *Template) substitute(vars map[string]string) (string, []string, []string) {
	missing := make(map[string]struct{})
	used := make(map[string]struct{})

	rendered := os.Expand(t.Raw, func(name string) string {
		if val, ok := vars[name]; ok {
			used[name] = struct{}{}
			return val
		}
		missing[name] = struct{}{}
		return ""
	})

	var missingNames []string
	for name := range missing {
		missingNames = append(missingNames, name)
	}
	sort.Strings(missingNames)

	var unusedNames []string
	for name := range vars {
		if _, ok := used[name]; !ok {
			unusedNames = append(unusedNames, name)
		}
	}
	sort.Strings(unusedNames)

	return rendered, missingNames, unusedNames
}
