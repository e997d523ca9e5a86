package compare

import (
	"log/slog"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Locale orders strings with the collation rules of a locale.
type Locale struct {
	collator *collate.Collator
	tag      language.Tag
	opts     options
}

// NewLocale creates a [Locale] for a BCP 47 identifier such as "en" or "sv".
// An identifier that cannot be parsed falls back to the root collation.
func NewLocale(locale string, opts ...Option) *Locale {
	tag, err := language.Parse(locale)
	if err != nil {
		slog.Debug("unknown locale, using root collation",
			slog.String("locale", locale),
			slog.Any("error", err),
		)

		tag = language.Und
	}

	return &Locale{
		collator: collate.New(tag),
		tag:      tag,
		opts:     newOptions(opts),
	}
}

// Tag returns the language tag used for collation.
func (l *Locale) Tag() language.Tag {
	return l.tag
}

// Compare implements [Func].
func (l *Locale) Compare(a, b string) int {
	return l.opts.apply(sign(l.collator.CompareString(a, b)))
}
