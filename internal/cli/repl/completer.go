package repl

import (
	"slices"
	"strings"
)

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over the given command names.
func NewCompleter(commands ...string) *Completer {
	sorted := slices.Clone(commands)
	slices.Sort(sorted)
	return &Completer{commands: slices.Compact(sorted)}
}

// Complete returns the commands starting with prefix, in sorted order.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}

// Suggest returns likely intended commands for an unknown word: prefix
// matches first, otherwise commands within one edit.
func (c *Completer) Suggest(word string) []string {
	if word == "" {
		return nil
	}
	if s := c.Complete(word); len(s) > 0 {
		return s
	}

	var suggestions []string
	for _, cmd := range c.commands {
		if withinOneEdit(word, cmd) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}

// withinOneEdit reports whether a and b differ by at most one insertion,
// deletion or substitution.
func withinOneEdit(a, b string) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	if len(b)-len(a) > 1 {
		return false
	}

	i, j, edits := 0, 0, 0
	for i < len(a) && j < len(b) {
		if a[i] == b[j] {
			i++
			j++
			continue
		}
		edits++
		if edits > 1 {
			return false
		}
		if len(a) == len(b) {
			i++
		}
		j++
	}
	return edits+(len(b)-j)+(len(a)-i) <= 1
}
