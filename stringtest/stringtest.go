// Package stringtest builds multi-line strings for test tables.
package stringtest

import "strings"

// Input dedents an indented raw string literal so YAML documents can be
// written inline in tests. One leading and one trailing newline are dropped,
// the indentation shared by all non-blank lines is removed, and blank lines
// are emptied.
//
//	doc := stringtest.Input(`
//		version: 5.2.0
//		elevators:
//		  DEFAULT: {}
//	`) // -> "version: 5.2.0\nelevators:\n  DEFAULT: {}"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")

	indent := -1

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		lines[i] = line[max(indent, 0):]
	}

	return strings.Join(lines, "\n")
}

// JoinLF joins lines with "\n", for expected output where exact line
// boundaries matter.
func JoinLF(lines ...string) string {
	return strings.Join(lines, "\n")
}
