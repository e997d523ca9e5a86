package yamlsort

import (
	"fmt"
	"strconv"
	"strings"
)

const delimiter = "---"

// Document is one document of a multi-document buffer together with the
// delimiter written before it.
type Document struct {
	// Delimiter precedes Text when documents are joined. It is empty for a
	// first document without a leading "---" line, "---\n" for a first
	// document with one, and "\n---\n" plus one "\n" per blank line that
	// preceded the delimiter for every later document.
	Delimiter string
	Text      string
}

// SplitDocuments splits text at delimiter lines. A delimiter line is "---"
// alone or followed by a space or tab. Anything after the marker on that
// line starts the following document's text.
//
// Directive lines ("%YAML 1.2") are removed. When the buffer starts with
// directives, the delimiter that ends them is removed as well.
func SplitDocuments(text string) []Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := stripDirectives(strings.Split(text, "\n"))

	docs := []Document{{}}

	var cur []string

	for _, line := range lines {
		rest, ok := delimiterLine(line)
		if !ok {
			cur = append(cur, line)

			continue
		}

		if len(docs) == 1 && docs[0].Delimiter == "" && blankLines(cur) == len(cur) {
			docs[0].Delimiter = delimiter + "\n"
		} else {
			blank := blankLines(cur)
			docs[len(docs)-1].Text = strings.Join(cur[:len(cur)-blank], "\n")
			docs = append(docs, Document{
				Delimiter: "\n" + strings.Repeat("\n", blank) + delimiter + "\n",
			})
		}

		cur = nil
		if rest != "" {
			cur = append(cur, rest)
		}
	}

	docs[len(docs)-1].Text = strings.Join(cur, "\n")

	return docs
}

// JoinDocuments reassembles documents split by [SplitDocuments]. Trailing
// newlines of each document are dropped and the result ends with exactly
// one newline, or is empty.
func JoinDocuments(docs []Document) string {
	var sb strings.Builder

	for _, d := range docs {
		delim := d.Delimiter
		if strings.HasSuffix(sb.String(), "\n") {
			delim = strings.TrimPrefix(delim, "\n")
		}

		sb.WriteString(delim)
		sb.WriteString(strings.TrimRight(d.Text, "\n"))
	}

	out := strings.TrimRight(sb.String(), "\n")
	if strings.TrimSpace(out) == "" {
		return ""
	}

	return out + "\n"
}

// delimiterLine reports whether line is a document delimiter and returns
// the text following the marker.
func delimiterLine(line string) (string, bool) {
	if line == delimiter {
		return "", true
	}

	if strings.HasPrefix(line, delimiter+" ") || strings.HasPrefix(line, delimiter+"\t") {
		return strings.TrimSpace(line[len(delimiter):]), true
	}

	return "", false
}

func stripDirectives(lines []string) []string {
	out := make([]string, 0, len(lines))
	leading := true
	dropDelimiter := false

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "%"):
			dropDelimiter = leading

			continue
		case dropDelimiter && strings.TrimSpace(line) == "":
			continue
		case dropDelimiter:
			dropDelimiter = false
			leading = false

			rest, ok := delimiterLine(line)
			if ok {
				if rest != "" {
					out = append(out, rest)
				}

				continue
			}
		}

		if strings.TrimSpace(line) != "" {
			leading = false
		}

		out = append(out, line)
	}

	return out
}

// blankLines counts the whitespace-only lines at the end of lines.
func blankLines(lines []string) int {
	n := 0
	for i := len(lines) - 1; i >= 0 && strings.TrimSpace(lines[i]) == ""; i-- {
		n++
	}

	return n
}

// LineRange is an inclusive range of 1-based line numbers. The zero value
// selects nothing.
type LineRange struct {
	Start int
	End   int
}

// ParseLineRange parses "START:END".
func ParseLineRange(s string) (LineRange, error) {
	startStr, endStr, ok := strings.Cut(s, ":")
	if !ok {
		return LineRange{}, fmt.Errorf("%w: %q is not START:END", ErrInvalidRange, s)
	}

	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return LineRange{}, fmt.Errorf("%w: start: %w", ErrInvalidRange, err)
	}

	end, err := strconv.Atoi(strings.TrimSpace(endStr))
	if err != nil {
		return LineRange{}, fmt.Errorf("%w: end: %w", ErrInvalidRange, err)
	}

	r := LineRange{Start: start, End: end}

	return r, r.Validate()
}

// Validate checks that the range is non-empty and starts at line 1 or
// later.
func (r LineRange) Validate() error {
	if r.Start < 1 {
		return fmt.Errorf("%w: start must be at least 1, got %d", ErrInvalidRange, r.Start)
	}

	if r.End < r.Start {
		return fmt.Errorf("%w: end %d is before start %d", ErrInvalidRange, r.End, r.Start)
	}

	return nil
}

// IsZero reports whether r selects nothing.
func (r LineRange) IsZero() bool {
	return r == LineRange{}
}

// String implements [fmt.Stringer] and [pflag.Value].
func (r *LineRange) String() string {
	if r.IsZero() {
		return ""
	}

	return fmt.Sprintf("%d:%d", r.Start, r.End)
}

// Set implements [pflag.Value].
func (r *LineRange) Set(s string) error {
	parsed, err := ParseLineRange(s)
	if err != nil {
		return err
	}

	*r = parsed

	return nil
}

// Type implements [pflag.Value].
func (r *LineRange) Type() string {
	return "range"
}

// apply replaces the selected lines of text with the output of fn. The
// indentation shared by the selected lines is removed before calling fn
// and restored afterwards.
func (r LineRange) apply(text string, fn func(string) (string, error)) (string, error) {
	err := r.Validate()
	if err != nil {
		return "", err
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	if r.End > len(lines) {
		return "", fmt.Errorf("%w: %d:%d exceeds %d lines", ErrInvalidRange, r.Start, r.End, len(lines))
	}

	selected := lines[r.Start-1 : r.End]
	indent := commonIndent(selected)

	dedented := make([]string, len(selected))
	for i, line := range selected {
		dedented[i] = strings.TrimPrefix(line, indent)
	}

	out, err := fn(strings.Join(dedented, "\n"))
	if err != nil {
		return "", err
	}

	replaced := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	for i, line := range replaced {
		if line != "" {
			replaced[i] = indent + line
		}
	}

	result := make([]string, 0, len(lines)-len(selected)+len(replaced))
	result = append(result, lines[:r.Start-1]...)
	result = append(result, replaced...)
	result = append(result, lines[r.End:]...)

	return strings.Join(result, "\n"), nil
}

// commonIndent returns the leading spaces shared by every non-blank line.
func commonIndent(lines []string) string {
	indent := ""
	found := false

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		cur := line[:indentOf(line)]
		if !found || len(cur) < len(indent) {
			indent = cur
			found = true
		}
	}

	return indent
}
