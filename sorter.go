package yamlsort

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"go.jacobcolvin.com/yamlsort/compare"
	"go.jacobcolvin.com/yamlsort/processor"
)

// Sorter sorts and formats YAML text with a fixed [Settings] snapshot.
type Sorter struct {
	settings Settings
	reverse  bool
}

// Option configures a [Sorter].
type Option func(*Sorter)

// WithReverse inverts the key order.
func WithReverse(reverse bool) Option {
	return func(s *Sorter) {
		s.reverse = reverse
	}
}

// New creates a [Sorter]. Comma-separated keyword entries are split into
// separate keywords before the settings are validated.
func New(settings Settings, opts ...Option) (*Sorter, error) {
	settings = settings.normalize()

	err := settings.Validate()
	if err != nil {
		return nil, err
	}

	s := &Sorter{settings: settings}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Settings returns the settings used by s.
func (s *Sorter) Settings() Settings {
	return s.settings
}

// Sort sorts every document in text. customOrder selects a custom keyword
// list (1 to 3), or locale order when 0.
func (s *Sorter) Sort(text string, customOrder int) (string, error) {
	out, err := s.sortBuffer(text, customOrder)
	if err != nil {
		return "", fmt.Errorf("sort: %w", err)
	}

	return s.withLeadingDashes(out), nil
}

// SortLines sorts only the lines selected by r. No leading delimiter is
// added.
func (s *Sorter) SortLines(text string, r LineRange, customOrder int) (string, error) {
	out, err := r.apply(text, func(selected string) (string, error) {
		return s.sortBuffer(selected, customOrder)
	})
	if err != nil {
		return "", fmt.Errorf("sort: %w", err)
	}

	return out, nil
}

// Format reformats every document in text without reordering keys.
func (s *Sorter) Format(text string) (string, error) {
	out, err := eachDocument(text, s.FormatDocument)
	if err != nil {
		return "", fmt.Errorf("format: %w", err)
	}

	return s.withLeadingDashes(out), nil
}

// FormatLines reformats only the lines selected by r. No leading delimiter
// is added.
func (s *Sorter) FormatLines(text string, r LineRange) (string, error) {
	out, err := r.apply(text, func(selected string) (string, error) {
		return eachDocument(selected, s.FormatDocument)
	})
	if err != nil {
		return "", fmt.Errorf("format: %w", err)
	}

	return out, nil
}

// SortDocument sorts a single document. Whitespace-only text is returned
// unchanged.
func (s *Sorter) SortDocument(text string, customOrder int) (string, error) {
	if customOrder < 0 || customOrder > 3 {
		return "", fmt.Errorf("%w: custom sort must be between 0 and 3, got %d",
			ErrInvalidOption, customOrder)
	}

	top, nested := s.comparators(customOrder)

	return s.transform(text, func(t *tree) {
		t.sortKeys(top, nested)
		t.fixAnchors()
	})
}

// FormatDocument reformats a single document without reordering keys.
// Whitespace-only text is returned unchanged.
func (s *Sorter) FormatDocument(text string) (string, error) {
	return s.transform(text, nil)
}

// comparators returns the comparator for the root mapping and for every
// other mapping. A custom order applies to the root only, unless custom
// sorting is recursive.
func (s *Sorter) comparators(customOrder int) (compare.Func, compare.Func) {
	opts := []compare.Option{compare.WithReverse(s.reverse)}
	keywords := s.settings.Keywords(customOrder)

	nested := compare.Select(s.settings.Locale, keywords, customOrder,
		s.settings.UseCustomSortRecursively, opts...)
	if customOrder == 0 || s.settings.UseCustomSortRecursively {
		return nested, nested
	}

	return compare.NewCustom(keywords, s.settings.Locale, opts...).Compare, nested
}

// transform runs the document pipeline. sortFn reorders the parsed tree;
// when it is nil the document is only reformatted and no blank lines are
// inserted.
func (s *Sorter) transform(text string, sortFn func(*tree)) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	text, err := replaceTabs(text, s.settings.Indent)
	if err != nil {
		return "", err
	}

	ctrl := processor.NewController(processor.ControllerConfig{
		Helm:  s.settings.UseHelmProcessor,
		Array: s.settings.UseArrayProcessor,
		Octal: s.settings.UseOctalProcessor,
	})
	text = ctrl.Preprocess(text)

	var comments *processor.Comments
	if s.settings.UseCommentProcessor {
		comments = processor.NewComments(text)
		comments.FindComments()
		text = comments.Text()
	}

	t, err := parseTree(text, s.settings.Schema)
	if err != nil {
		return "", err
	}

	var out string

	switch {
	case !t.empty():
		if sortFn != nil {
			sortFn(t)
		}

		t.applyStyles(styleOptions{
			quote:     s.quoteStyle(),
			force:     s.settings.ForceQuotes,
			lineWidth: s.settings.LineWidth,
		})

		out, err = t.encode(s.settings.Indent)
		if err != nil {
			return "", err
		}

		out = wrapFolded(out, s.settings.LineWidth)

		if sortFn != nil && s.settings.EmptyLinesUntilLevel > 0 {
			out = addBlankLines(out, s.settings.EmptyLinesUntilLevel, effectiveIndent(s.settings.Indent))
		}
	case comments == nil:
		// Comment-only text parses to nothing; keep it as written.
		out = strings.TrimSpace(text)
	}

	if comments != nil {
		out = comments.ApplyComments(out)
	}

	out = ctrl.Postprocess(out)

	out = strings.TrimRight(out, "\n")
	if out == "" {
		return "", nil
	}

	return out + "\n", nil
}

func (s *Sorter) quoteStyle() yaml.Style {
	if s.settings.QuotingType == QuoteDouble {
		return yaml.DoubleQuotedStyle
	}

	return yaml.SingleQuotedStyle
}

func (s *Sorter) withLeadingDashes(out string) string {
	if !s.settings.UseLeadingDashes || out == "" || strings.HasPrefix(out, delimiter+"\n") {
		return out
	}

	return delimiter + "\n" + out
}

func (s *Sorter) sortBuffer(text string, customOrder int) (string, error) {
	return eachDocument(text, func(doc string) (string, error) {
		return s.SortDocument(doc, customOrder)
	})
}

// eachDocument applies fn to every document in text and joins the results.
// Errors name the failing document when text holds more than one.
func eachDocument(text string, fn func(string) (string, error)) (string, error) {
	docs := SplitDocuments(text)

	for i := range docs {
		out, err := fn(docs[i].Text)
		if err != nil {
			if len(docs) > 1 {
				return "", fmt.Errorf("document %d: %w", i+1, err)
			}

			return "", err
		}

		docs[i].Text = out
	}

	return JoinDocuments(docs), nil
}
