package processor

import "regexp"

// Token kinds.
const (
	KindArray = "array"
	KindHelm  = "helm"
	KindOctal = "octal"
)

var (
	// Inline sequence literal without nested brackets, e.g. "[ a, b ]".
	arrayPattern = regexp.MustCompile(`\[[^\[\]]*\]`)
	// Template expression without nested braces, e.g. "{{ .Values.x }}".
	helmPattern = regexp.MustCompile(`\{\{[^{}]*\}\}`)
	// Exactly four digits with a leading zero, e.g. "0755".
	octalPattern = regexp.MustCompile(`0[0-7]{3}`)
)

// NewArray returns a [Substitution] for inline sequence literals, so their
// element order and spacing survive sorting.
func NewArray() *Substitution {
	return New(KindArray, arrayPattern)
}

// NewHelm returns a [Substitution] for double-brace template expressions,
// which are not valid YAML scalars.
func NewHelm() *Substitution {
	return New(KindHelm, helmPattern)
}

// NewOctal returns a [Substitution] for four-digit numbers with a leading
// zero, which the serializer would otherwise treat as octal integers. A
// match touching another word character, '.', or '-' is ignored so that
// longer digit runs and UUID segments stay untouched.
func NewOctal() *Substitution {
	return New(KindOctal, octalPattern, WithMatchFilter(standalone))
}

// standalone reports whether text[start:end] is not glued to a longer word.
func standalone(text string, start, end int) bool {
	if start > 0 && isWordByte(text[start-1]) {
		return false
	}

	if end < len(text) && isWordByte(text[end]) {
		return false
	}

	return true
}

func isWordByte(b byte) bool {
	switch {
	case b >= '0' && b <= '9', b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z':
		return true
	case b == '_', b == '-', b == '.':
		return true
	}

	return false
}
