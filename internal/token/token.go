// Package token expands [name] and [name:argument] placeholders in branch
// and commit message templates.
package token

import (
	"regexp"
	"sort"
	"strings"
)

// tokenRegex matches one balanced placeholder. Nested brackets are not tokens.
var tokenRegex = regexp.MustCompile(`\[([^\[\]]+)\]`)

// Func resolves a token. arg is the raw text after the first colon, or ""
// when the token has no argument.
type Func func(arg string) (string, error)

// Resolver maps token names to resolver functions.
type Resolver struct {
	funcs map[string]Func
}

// NewResolver returns an empty Resolver.
func NewResolver() *Resolver {
	return &Resolver{funcs: make(map[string]Func)}
}

// Register binds name to fn, replacing any earlier binding.
func (r *Resolver) Register(name string, fn Func) {
	r.funcs[name] = fn
}

// Names returns the registered token names, sorted.
func (r *Resolver) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve replaces every known token in s. Unknown tokens are left as
// written, and resolved text is not scanned again.
func (r *Resolver) Resolve(s string) (string, error) {
	matches := tokenRegex.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m[0]])
		last = m[1]

		name, arg, _ := strings.Cut(s[m[2]:m[3]], ":")
		fn, ok := r.funcs[name]
		if !ok {
			b.WriteString(s[m[0]:m[1]])
			continue
		}

		value, err := fn(arg)
		if err != nil {
			return "", err
		}
		b.WriteString(value)
	}
	b.WriteString(s[last:])

	return b.String(), nil
}

// Exists reports whether s contains at least one balanced [...] placeholder.
func Exists(s string) bool {
	return tokenRegex.MatchString(s)
}
