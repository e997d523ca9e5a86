package yamlsort

import (
	"fmt"
	"slices"
	"strings"
)

// Quoting characters accepted by [Settings.QuotingType].
const (
	QuoteSingle = "'"
	QuoteDouble = `"`
)

// DefaultSettingsFile is the settings file read when none is given and it
// exists in the working directory.
const DefaultSettingsFile = ".yamlsort.yaml"

// Settings is the configuration snapshot used by a [Sorter].
type Settings struct {
	Locale                   string   `json:"locale,omitempty"                      jsonschema:"BCP 47 locale used to collate keys" koanf:"locale"`
	Schema                   Schema   `json:"schema,omitempty"                      jsonschema:"schema used to resolve scalars and tags" koanf:"schema"`
	QuotingType              string   `json:"quoting_type,omitempty"                jsonschema:"quote character for quoted scalars" koanf:"quoting_type"`
	CustomSortKeywords1      []string `json:"custom_sort_keywords_1,omitempty"      jsonschema:"keyword order used by custom sort 1" koanf:"custom_sort_keywords_1"`
	CustomSortKeywords2      []string `json:"custom_sort_keywords_2,omitempty"      jsonschema:"keyword order used by custom sort 2" koanf:"custom_sort_keywords_2"`
	CustomSortKeywords3      []string `json:"custom_sort_keywords_3,omitempty"      jsonschema:"keyword order used by custom sort 3" koanf:"custom_sort_keywords_3"`
	Indent                   int      `json:"indent,omitempty"                      jsonschema:"spaces per indentation level" koanf:"indent"`
	EmptyLinesUntilLevel     int      `json:"empty_lines_until_level,omitempty"     jsonschema:"insert a blank line before keys nested less than this depth" koanf:"empty_lines_until_level"`
	LineWidth                int      `json:"line_width,omitempty"                  jsonschema:"fold string values longer than this; 0 or less disables folding" koanf:"line_width"`
	UseCustomSortRecursively bool     `json:"use_custom_sort_recursively,omitempty" jsonschema:"apply the custom keyword order at every depth" koanf:"use_custom_sort_recursively"`
	ForceQuotes              bool     `json:"force_quotes,omitempty"                jsonschema:"quote every plain string value" koanf:"force_quotes"`
	UseLeadingDashes         bool     `json:"use_leading_dashes,omitempty"          jsonschema:"start the output with a document marker" koanf:"use_leading_dashes"`
	UseArrayProcessor        bool     `json:"use_array_processor,omitempty"         jsonschema:"keep inline arrays verbatim" koanf:"use_array_processor"`
	UseHelmProcessor         bool     `json:"use_helm_processor,omitempty"          jsonschema:"shield double-brace template expressions" koanf:"use_helm_processor"`
	UseOctalProcessor        bool     `json:"use_octal_processor,omitempty"         jsonschema:"keep octal-looking numbers verbatim" koanf:"use_octal_processor"`
	UseCommentProcessor      bool     `json:"use_comment_processor,omitempty"       jsonschema:"move full-line comments together with the line below them" koanf:"use_comment_processor"`
}

// DefaultSettings returns the default [Settings].
func DefaultSettings() Settings {
	return Settings{
		Locale:              "en",
		Indent:              2,
		Schema:              SchemaDefault,
		QuotingType:         QuoteSingle,
		LineWidth:           500,
		UseLeadingDashes:    true,
		UseArrayProcessor:   true,
		UseHelmProcessor:    true,
		UseCommentProcessor: true,
	}
}

// Validate reports the first invalid setting.
func (s Settings) Validate() error {
	if s.Indent < 1 {
		return fmt.Errorf("%w: indent must be at least 1, got %d", ErrInvalidOption, s.Indent)
	}

	if s.EmptyLinesUntilLevel < 0 {
		return fmt.Errorf("%w: empty_lines_until_level must not be negative, got %d",
			ErrInvalidOption, s.EmptyLinesUntilLevel)
	}

	if s.QuotingType != QuoteSingle && s.QuotingType != QuoteDouble {
		return fmt.Errorf("%w: quoting_type must be %s or %s, got %q",
			ErrInvalidOption, QuoteSingle, QuoteDouble, s.QuotingType)
	}

	if !slices.Contains(GetAllSchemaStrings(), string(s.Schema)) {
		return fmt.Errorf("%w: schema must be one of %s, got %q",
			ErrInvalidOption, GetAllSchemaStrings(), s.Schema)
	}

	return nil
}

// Keywords returns the keyword list for a custom sort slot (1, 2 or 3).
// Slot 0 and unknown slots have no keywords.
func (s Settings) Keywords(slot int) []string {
	switch slot {
	case 1:
		return s.CustomSortKeywords1
	case 2:
		return s.CustomSortKeywords2
	case 3:
		return s.CustomSortKeywords3
	}

	return nil
}

// normalize splits comma-separated keyword entries, as written in
// environment variables, into separate keywords.
func (s Settings) normalize() Settings {
	s.CustomSortKeywords1 = splitKeywords(s.CustomSortKeywords1)
	s.CustomSortKeywords2 = splitKeywords(s.CustomSortKeywords2)
	s.CustomSortKeywords3 = splitKeywords(s.CustomSortKeywords3)

	return s
}

func splitKeywords(in []string) []string {
	var out []string

	for _, entry := range in {
		for kw := range strings.SplitSeq(entry, ",") {
			kw = strings.TrimSpace(kw)
			if kw != "" {
				out = append(out, kw)
			}
		}
	}

	return out
}
