package yamlsort

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/yamlsort/config"
)

// EnvPrefix prefixes environment variables that override settings, e.g.
// YAMLSORT__INDENT=4.
const EnvPrefix = "YAMLSORT"

// Flags holds CLI flag names for sorter settings.
type Flags struct {
	SettingsFile             string
	Locale                   string
	Indent                   string
	Schema                   string
	QuotingType              string
	ForceQuotes              string
	LineWidth                string
	EmptyLinesUntilLevel     string
	UseLeadingDashes         string
	UseCustomSortRecursively string
	CustomSortKeywords1      string
	CustomSortKeywords2      string
	CustomSortKeywords3      string
	UseArrayProcessor        string
	UseHelmProcessor         string
	UseOctalProcessor        string
	UseCommentProcessor      string
	Reverse                  string
}

// NewConfig creates a new [Config] using these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f, Settings: DefaultSettings()}
}

// Config holds CLI flag values for sorter settings.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Flags only override the settings file and
// environment when they are set explicitly. Use [Config.NewSorter] to
// create a [Sorter].
type Config struct {
	Flags        Flags
	SettingsFile string
	Settings     Settings
	Reverse      bool
}

// NewConfig returns a [Config] with default flag names.
func NewConfig() *Config {
	return Flags{
		SettingsFile:             "settings",
		Locale:                   "locale",
		Indent:                   "indent",
		Schema:                   "schema",
		QuotingType:              "quoting-type",
		ForceQuotes:              "force-quotes",
		LineWidth:                "line-width",
		EmptyLinesUntilLevel:     "empty-lines-until-level",
		UseLeadingDashes:         "leading-dashes",
		UseCustomSortRecursively: "custom-sort-recursive",
		CustomSortKeywords1:      "keywords-1",
		CustomSortKeywords2:      "keywords-2",
		CustomSortKeywords3:      "keywords-3",
		UseArrayProcessor:        "array-processor",
		UseHelmProcessor:         "helm-processor",
		UseOctalProcessor:        "octal-processor",
		UseCommentProcessor:      "comment-processor",
		Reverse:                  "reverse",
	}.NewConfig()
}

// RegisterFlags adds settings flags to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	d := DefaultSettings()

	flags.StringVar(&c.SettingsFile, c.Flags.SettingsFile, "",
		fmt.Sprintf("settings file (default %s when present)", DefaultSettingsFile))
	flags.StringVar(&c.Settings.Locale, c.Flags.Locale, d.Locale,
		"locale used to collate keys")
	flags.IntVar(&c.Settings.Indent, c.Flags.Indent, d.Indent,
		"spaces per indentation level")
	flags.StringVar((*string)(&c.Settings.Schema), c.Flags.Schema, string(d.Schema),
		fmt.Sprintf("schema, one of: %s", GetAllSchemaStrings()))
	flags.StringVar(&c.Settings.QuotingType, c.Flags.QuotingType, d.QuotingType,
		"quote character for quoted scalars")
	flags.BoolVar(&c.Settings.ForceQuotes, c.Flags.ForceQuotes, d.ForceQuotes,
		"quote every plain string value")
	flags.IntVar(&c.Settings.LineWidth, c.Flags.LineWidth, d.LineWidth,
		"fold string values longer than this (0 disables)")
	flags.IntVar(&c.Settings.EmptyLinesUntilLevel, c.Flags.EmptyLinesUntilLevel, d.EmptyLinesUntilLevel,
		"insert blank lines before keys nested less than this depth")
	flags.BoolVar(&c.Settings.UseLeadingDashes, c.Flags.UseLeadingDashes, d.UseLeadingDashes,
		"start the output with a document marker")
	flags.BoolVar(&c.Settings.UseCustomSortRecursively, c.Flags.UseCustomSortRecursively,
		d.UseCustomSortRecursively, "apply the custom keyword order at every depth")
	flags.StringSliceVar(&c.Settings.CustomSortKeywords1, c.Flags.CustomSortKeywords1, nil,
		"keyword order for custom sort 1")
	flags.StringSliceVar(&c.Settings.CustomSortKeywords2, c.Flags.CustomSortKeywords2, nil,
		"keyword order for custom sort 2")
	flags.StringSliceVar(&c.Settings.CustomSortKeywords3, c.Flags.CustomSortKeywords3, nil,
		"keyword order for custom sort 3")
	flags.BoolVar(&c.Settings.UseArrayProcessor, c.Flags.UseArrayProcessor, d.UseArrayProcessor,
		"keep inline arrays verbatim")
	flags.BoolVar(&c.Settings.UseHelmProcessor, c.Flags.UseHelmProcessor, d.UseHelmProcessor,
		"shield double-brace template expressions")
	flags.BoolVar(&c.Settings.UseOctalProcessor, c.Flags.UseOctalProcessor, d.UseOctalProcessor,
		"keep octal-looking numbers verbatim")
	flags.BoolVar(&c.Settings.UseCommentProcessor, c.Flags.UseCommentProcessor, d.UseCommentProcessor,
		"move full-line comments together with the line below them")
	flags.BoolVar(&c.Reverse, c.Flags.Reverse, false,
		"reverse the key order")
}

// RegisterCompletions registers shell completions for the settings flags
// on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Schema,
		cobra.FixedCompletions(GetAllSchemaStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Schema, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.QuotingType,
		cobra.FixedCompletions([]string{QuoteSingle, QuoteDouble}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.QuotingType, err)
	}

	err = cmd.MarkFlagFilename(c.Flags.SettingsFile, "yaml", "yml")
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.SettingsFile, err)
	}

	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{
		c.Flags.Locale,
		c.Flags.Indent,
		c.Flags.LineWidth,
		c.Flags.EmptyLinesUntilLevel,
		c.Flags.CustomSortKeywords1,
		c.Flags.CustomSortKeywords2,
		c.Flags.CustomSortKeywords3,
	} {
		regErr := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if regErr != nil {
			return fmt.Errorf("registering %s completion: %w", flag, regErr)
		}
	}

	return nil
}

// NewLoader loads settings from defaults, the settings file, the
// environment and explicitly set flags, in increasing priority.
func (c *Config) NewLoader(flags *pflag.FlagSet) (*config.Loader, error) {
	path := c.SettingsFile
	if path == "" {
		_, err := os.Stat(DefaultSettingsFile)
		switch {
		case err == nil:
			path = DefaultSettingsFile
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
		}
	}

	l := config.NewLoader(EnvPrefix)

	err := l.LoadWithDefaults(DefaultSettings(), path)
	if err != nil {
		return nil, err
	}

	err = l.LoadFlags(flags, c.flagKeys())
	if err != nil {
		return nil, err
	}

	return l, nil
}

// Load returns the validated settings.
func (c *Config) Load(flags *pflag.FlagSet) (Settings, error) {
	l, err := c.NewLoader(flags)
	if err != nil {
		return Settings{}, err
	}

	var s Settings

	err = l.UnmarshalAndValidate("", &s)
	if err != nil {
		return Settings{}, err
	}

	return s.normalize(), nil
}

// NewSorter creates a [Sorter] from the loaded settings.
func (c *Config) NewSorter(flags *pflag.FlagSet) (*Sorter, error) {
	s, err := c.Load(flags)
	if err != nil {
		return nil, err
	}

	return New(s, WithReverse(c.Reverse))
}

// flagKeys maps flag names to settings keys.
func (c *Config) flagKeys() map[string]string {
	return map[string]string{
		c.Flags.Locale:                   "locale",
		c.Flags.Indent:                   "indent",
		c.Flags.Schema:                   "schema",
		c.Flags.QuotingType:              "quoting_type",
		c.Flags.ForceQuotes:              "force_quotes",
		c.Flags.LineWidth:                "line_width",
		c.Flags.EmptyLinesUntilLevel:     "empty_lines_until_level",
		c.Flags.UseLeadingDashes:         "use_leading_dashes",
		c.Flags.UseCustomSortRecursively: "use_custom_sort_recursively",
		c.Flags.CustomSortKeywords1:      "custom_sort_keywords_1",
		c.Flags.CustomSortKeywords2:      "custom_sort_keywords_2",
		c.Flags.CustomSortKeywords3:      "custom_sort_keywords_3",
		c.Flags.UseArrayProcessor:        "use_array_processor",
		c.Flags.UseHelmProcessor:         "use_helm_processor",
		c.Flags.UseOctalProcessor:        "use_octal_processor",
		c.Flags.UseCommentProcessor:      "use_comment_processor",
	}
}
