// Package template renders the emailer's subject and body templates by
// literal substitution of {name} placeholders from a string map. Rendering
// is lenient by default (unknown placeholders become empty strings, matching
// the CSV-driven workflow where columns vary by sector file); strict mode
// fails closed on any placeholder without a value.
package template

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Vars maps placeholder names to their values for one recipient.
type Vars map[string]string

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// Render substitutes every {name} placeholder with its value from vars.
// Unknown placeholders render as empty strings.
func Render(tmpl string, vars Vars) string {
	return placeholderRe.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[1 : len(match)-1]
		return vars[name]
	})
}

// RenderStrict substitutes placeholders like Render but returns an error
// naming every placeholder that has no value in vars.
func RenderStrict(tmpl string, vars Vars) (string, error) {
	var missing []string
	out := placeholderRe.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[1 : len(match)-1]
		val, ok := vars[name]
		if !ok {
			missing = append(missing, name)
			return ""
		}
		return val
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("unknown placeholders: %s", strings.Join(dedupe(missing), ", "))
	}
	return out, nil
}

// Placeholders returns the sorted set of placeholder names used in tmpl.
func Placeholders(tmpl string) []string {
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
		names = append(names, m[1])
	}
	names = dedupe(names)
	sort.Strings(names)
	return names
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0]
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
