package yamlsort

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// A folded block scalar header at the end of a line, e.g. "key: >-".
var foldedHeader = regexp.MustCompile(`(^|\s)>[1-9]?[-+]?$`)

// wrapFolded breaks the content lines of folded block scalars that are
// longer than width. Lines are only broken at a single space between two
// non-space characters, where folding turns the line break back into that
// space. A width of zero or less disables wrapping.
func wrapFolded(text string, width int) string {
	if width <= 0 || !strings.Contains(text, ">") {
		return text
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		out = append(out, line)

		if !foldedHeader.MatchString(line) || strings.Contains(line, " #") {
			continue
		}

		headerIndent := indentOf(line)
		contentIndent := -1

		for i+1 < len(lines) {
			next := lines[i+1]
			if strings.TrimSpace(next) != "" && indentOf(next) <= headerIndent {
				break
			}

			i++

			if strings.TrimSpace(next) == "" {
				out = append(out, next)

				continue
			}

			if contentIndent < 0 {
				contentIndent = indentOf(next)
			}

			if indentOf(next) != contentIndent {
				out = append(out, next)

				continue
			}

			out = append(out, wrapLine(next, contentIndent, width)...)
		}
	}

	return strings.Join(out, "\n")
}

// wrapLine splits line into lines no longer than width where possible.
// A word longer than width stays on its own line.
func wrapLine(line string, indent, width int) []string {
	prefix := line[:indent]
	body := line[indent:]

	var out []string

	for indent+utf8.RuneCountInString(body) > width {
		cut := -1

		for i := 1; i < len(body)-1; i++ {
			if body[i] != ' ' || body[i-1] == ' ' || body[i+1] == ' ' {
				continue
			}

			if indent+utf8.RuneCountInString(body[:i]) > width && cut >= 0 {
				break
			}

			cut = i

			if indent+utf8.RuneCountInString(body[:i]) > width {
				break
			}
		}

		if cut < 0 {
			break
		}

		out = append(out, prefix+body[:cut])
		body = body[cut+1:]
	}

	return append(out, prefix+body)
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}
