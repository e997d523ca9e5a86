package processor

import (
	"log/slog"
	"strings"
)

// Pair is a full-line comment and the line it was found above.
type Pair struct {
	Comment string
	// Anchor is the next non-blank line after the comment.
	Anchor string
	// EndOfDocument is set when no line followed the comment; Anchor is
	// empty in that case.
	EndOfDocument bool
}

// Comments extracts full-line comments from a document and reinserts them
// after the document has been rewritten.
type Comments struct {
	text    string
	current string
	lines   []string
	pairs   []Pair
}

// NewComments creates a [Comments] for text. Surrounding whitespace is
// trimmed.
func NewComments(text string) *Comments {
	text = strings.TrimSpace(text)

	return &Comments{
		text:  text,
		lines: strings.Split(text, "\n"),
	}
}

// IsComment reports whether line is a full-line comment: after leading
// spaces it starts with '#'. A comment after code on the same line does not
// count.
func IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " "), "#")
}

// FindComments records a [Pair] for every comment line, in order. Each line
// of a comment block becomes its own pair whose anchor is the following
// line, so reapplying the pairs rebuilds the block. Blank lines are skipped
// when choosing the anchor, since the serializer drops them and an empty
// anchor would match anywhere. A comment followed only by blank lines is
// anchored to the end of the document.
func (c *Comments) FindComments() {
	c.pairs = c.pairs[:0]

	for i, line := range c.lines {
		if !IsComment(line) {
			continue
		}

		pair := Pair{Comment: line, EndOfDocument: true}

		for _, next := range c.lines[i+1:] {
			if strings.TrimSpace(next) == "" {
				continue
			}

			pair.Anchor = next
			pair.EndOfDocument = false

			break
		}

		c.pairs = append(c.pairs, pair)
	}
}

// Pairs returns the recorded pairs in extraction order.
func (c *Comments) Pairs() []Pair {
	return c.pairs
}

// Text returns the document with every comment line removed.
func (c *Comments) Text() string {
	kept := make([]string, 0, len(c.lines))
	for _, line := range c.lines {
		if IsComment(line) {
			continue
		}

		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}

// ApplyComments reinserts every recorded comment into text and returns the
// result. Pairs are applied in reverse extraction order so earlier
// insertions do not move the anchors of later ones. A comment whose anchor
// cannot be found is dropped.
func (c *Comments) ApplyComments(text string) string {
	c.current = text

	for i := len(c.pairs) - 1; i >= 0; i-- {
		c.applyComment(c.pairs[i])
	}

	return c.current
}

func (c *Comments) applyComment(p Pair) {
	if p.EndOfDocument {
		c.appendComment(p.Comment)

		return
	}

	c.insertIfNotContained(p)
}

func (c *Comments) insertIfNotContained(p Pair) {
	if strings.Contains(c.current, p.Comment+"\n"+p.Anchor) {
		return
	}

	idx, ok := Search(c.current, p.Anchor)
	if !ok {
		slog.Debug("comment anchor not found",
			slog.String("comment", p.Comment),
			slog.String("anchor", p.Anchor),
		)

		return
	}

	c.insertAt(idx, p.Comment)
}

// insertAt places comment on its own line above the line containing idx.
func (c *Comments) insertAt(idx int, comment string) {
	lineStart := strings.LastIndexByte(c.current[:idx], '\n') + 1

	before, after := c.current[:lineStart], c.current[lineStart:]
	if strings.TrimSpace(after) == "" {
		c.appendComment(comment)

		return
	}

	c.current = before + comment + "\n" + after
}

func (c *Comments) appendComment(comment string) {
	if c.current == "" {
		c.current = comment

		return
	}

	c.current = strings.TrimRight(c.current, "\n") + "\n" + comment
}
