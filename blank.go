package yamlsort

import (
	"fmt"
	"regexp"
	"strings"
)

// Top-level keys: a line starting with neither whitespace, '#' nor '-'.
var topLevelKey = regexp.MustCompile(`\n([^\s#-][^\n:]*:)`)

// replaceTabs replaces every tab with width spaces.
func replaceTabs(text string, width int) (string, error) {
	if width < 1 {
		return "", fmt.Errorf("%w: tab width must be at least 1, got %d", ErrInvalidOption, width)
	}

	return strings.ReplaceAll(text, "\t", strings.Repeat(" ", width)), nil
}

// effectiveIndent returns the indent the serializer actually writes. Widths
// outside 2..9 fall back to 2.
func effectiveIndent(indent int) int {
	if indent < 2 || indent > 9 {
		return 2
	}

	return indent
}

// addBlankLines inserts a blank line before every key nested less than
// levels deep. The first line of text is never preceded by a blank line.
func addBlankLines(text string, levels, indent int) string {
	for level := range levels {
		re := topLevelKey
		if level > 0 {
			re = regexp.MustCompile(fmt.Sprintf(`\n( {%d}[\w-]+:)`, level*indent))
		}

		text = re.ReplaceAllString(text, "\n\n${1}")
	}

	return text
}
