package processor

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Namespace prefixes every generated token.
const Namespace = "yamlsort"

type substitute struct {
	token    string
	original string
}

// Substitution replaces pattern matches with unique tokens and restores
// them later. A Substitution owns its token store; use one instance per
// document.
type Substitution struct {
	pattern *regexp.Regexp
	accept  func(text string, start, end int) bool
	kind    string
	store   []substitute
	next    int
}

// SubstitutionOption configures a [Substitution].
type SubstitutionOption func(*Substitution)

// WithMatchFilter discards matches for which accept returns false. accept
// receives the full text and the byte offsets of the match.
func WithMatchFilter(accept func(text string, start, end int) bool) SubstitutionOption {
	return func(s *Substitution) {
		s.accept = accept
	}
}

// New creates a [Substitution] whose tokens look like
// "yamlsort.<kind>.<n>".
func New(kind string, pattern *regexp.Regexp, opts ...SubstitutionOption) *Substitution {
	s := &Substitution{
		kind:    kind,
		pattern: pattern,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Kind returns the token kind.
func (s *Substitution) Kind() string {
	return s.kind
}

// Len returns the number of stored substitutes.
func (s *Substitution) Len() int {
	return len(s.store)
}

// Preprocess replaces every match of the pattern in text with a fresh
// token. Matches are taken in order of appearance and each one replaces the
// first remaining occurrence of the matched string.
func (s *Substitution) Preprocess(text string) string {
	var matches []string

	for _, loc := range s.pattern.FindAllStringIndex(text, -1) {
		if s.accept != nil && !s.accept(text, loc[0], loc[1]) {
			continue
		}

		matches = append(matches, text[loc[0]:loc[1]])
	}

	for _, m := range matches {
		token := s.newToken(text)
		text = strings.Replace(text, m, token, 1)
		s.store = append(s.store, substitute{token: token, original: m})
	}

	if len(matches) > 0 {
		slog.Debug("substituted",
			slog.String("kind", s.kind),
			slog.Int("count", len(matches)),
		)
	}

	return text
}

// Postprocess restores every stored substitute, in insertion order. Quote
// characters the serializer placed around a token are left in place.
func (s *Substitution) Postprocess(text string) string {
	for _, sub := range s.store {
		idx := s.indexToken(text, sub.token)
		if idx < 0 {
			slog.Debug("substitution token not found",
				slog.String("kind", s.kind),
				slog.String("token", sub.token),
			)

			continue
		}

		text = text[:idx] + sub.original + text[idx+len(sub.token):]
	}

	return text
}

// newToken returns a token not present in text and not yet stored.
func (s *Substitution) newToken(text string) string {
	for {
		token := fmt.Sprintf("%s.%s.%d", Namespace, s.kind, s.next)
		s.next++

		if !strings.Contains(text, token) {
			return token
		}
	}
}

// indexToken finds the first occurrence of token that is not the start of a
// longer stored token, e.g. "yamlsort.array.1" inside "yamlsort.array.12".
func (s *Substitution) indexToken(text, token string) int {
	offset := 0

	for {
		i := strings.Index(text[offset:], token)
		if i < 0 {
			return -1
		}

		idx := offset + i
		if !s.longerTokenAt(text, idx, token) {
			return idx
		}

		offset = idx + len(token)
	}
}

func (s *Substitution) longerTokenAt(text string, idx int, token string) bool {
	for _, sub := range s.store {
		if len(sub.token) > len(token) && strings.HasPrefix(text[idx:], sub.token) {
			return true
		}
	}

	return false
}
