// Package stringtest provides helpers for writing multi-line string fixtures
// in tests.
package stringtest

import "strings"

// Input normalizes an indented raw string literal for use as test input.
//
// One leading and one trailing newline are removed, then the indentation
// common to every non-blank line is stripped. Whitespace-only lines become
// empty. This lets YAML fixtures be written inline at the indentation of the
// surrounding test code:
//
//	in := stringtest.Input(`
//	    key: value
//	    nested:
//	      child: data`,
//	) // -> "key: value\nnested:\n  child: data"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")

	prefix := ""
	found := false

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !found {
			prefix = indent
			found = true

			continue
		}

		prefix = commonPrefix(prefix, indent)
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.Join(lines, "\n")
}

// JoinLF joins strings with LF line endings.
//
//	want := stringtest.JoinLF(
//		"a: 1",
//		"b: 2",
//		"",
//	) // -> "a: 1\nb: 2\n"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// JoinCRLF joins strings with CRLF line endings.
func JoinCRLF(ss ...string) string {
	return strings.Join(ss, "\r\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))

	i := 0
	for i < n && a[i] == b[i] {
		i++
	}

	return a[:i]
}
