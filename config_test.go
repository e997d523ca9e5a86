package yamlsort_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/yamlsort"
)

func parseFlags(t *testing.T, args ...string) (*yamlsort.Config, *pflag.FlagSet) {
	t.Helper()

	cfg := yamlsort.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)
	require.NoError(t, flags.Parse(args))

	return cfg, flags
}

func TestConfigLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, flags := parseFlags(t)

	got, err := cfg.Load(flags)
	require.NoError(t, err)
	assert.Equal(t, yamlsort.DefaultSettings(), got)
}

func TestConfigLoadLayers(t *testing.T) {
	t.Setenv("YAMLSORT__SCHEMA", "json")
	t.Setenv("YAMLSORT__INDENT", "6")
	t.Setenv("YAMLSORT__CUSTOM_SORT_KEYWORDS_3", "spec,status")

	settingsFile := filepath.Join("testdata", "settings.yaml")

	cfg, flags := parseFlags(t,
		"--settings="+settingsFile,
		"--indent=3",
		"--keywords-1=kind,metadata",
		"--octal-processor",
		"--reverse",
	)

	got, err := cfg.Load(flags)
	require.NoError(t, err)

	// File.
	assert.Equal(t, "sv", got.Locale)
	assert.Equal(t, []string{"kind", "data"}, got.CustomSortKeywords2)
	assert.False(t, got.UseLeadingDashes)
	// Environment.
	assert.Equal(t, yamlsort.SchemaJSON, got.Schema)
	assert.Equal(t, []string{"spec", "status"}, got.CustomSortKeywords3)
	// Flags.
	assert.Equal(t, 3, got.Indent)
	assert.Equal(t, []string{"kind", "metadata"}, got.CustomSortKeywords1)
	assert.True(t, got.UseOctalProcessor)
	// Defaults.
	assert.True(t, got.UseCommentProcessor)
	assert.Equal(t, 500, got.LineWidth)

	sorter, err := cfg.NewSorter(flags)
	require.NoError(t, err)

	out, err := sorter.Sort("a: 1\nb: 2", 0)
	require.NoError(t, err)
	assert.Equal(t, "b: 2\na: 1\n", out)
}

func TestConfigLoadInvalid(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		args []string
	}{
		"quoting type": {args: []string{"--quoting-type=x"}},
		"indent":       {args: []string{"--indent=0"}},
		"schema":       {args: []string{"--schema=yaml11"}},
		"missing file": {args: []string{"--settings=testdata/missing.yaml"}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg, flags := parseFlags(t, tc.args...)

			_, err := cfg.NewSorter(flags)
			require.Error(t, err)
		})
	}
}

func TestConfigDumpYAML(t *testing.T) {
	t.Parallel()

	cfg, flags := parseFlags(t, "--locale=de")

	l, err := cfg.NewLoader(flags)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, l.DumpYAML(&buf))
	assert.Contains(t, buf.String(), "locale: de\n")
	assert.Contains(t, buf.String(), "schema: default\n")
}

func TestConfigRegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := yamlsort.NewConfig()
	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())

	require.NoError(t, cfg.RegisterCompletions(cmd))
}
