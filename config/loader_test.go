package config_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/yamlsort/config"
)

type testLogSettings struct {
	Level string `koanf:"level"`
}

type testSettings struct {
	Locale   string          `koanf:"locale"`
	Keywords []string        `koanf:"custom_sort_keywords_1"`
	Log      testLogSettings `koanf:"log"`
	Indent   int             `koanf:"indent"`
	Reverse  bool            `koanf:"reverse"`
}

var errIndent = errors.New("indent must be at least 1")

func (s *testSettings) Validate() error {
	if s.Indent < 1 {
		return errIndent
	}

	return nil
}

func testDefaults() testSettings {
	return testSettings{
		Locale: "en",
		Indent: 2,
		Log:    testLogSettings{Level: "info"},
	}
}

func load(t *testing.T, path string) testSettings {
	t.Helper()

	l := config.NewLoader("YAMLSORT_TEST")
	require.NoError(t, l.LoadWithDefaults(testDefaults(), path))

	var s testSettings
	require.NoError(t, l.Unmarshal("", &s))

	return s
}

func TestLoaderDefaults(t *testing.T) {
	t.Parallel()

	s := load(t, "")
	assert.Equal(t, "en", s.Locale)
	assert.Equal(t, 2, s.Indent)
	assert.Equal(t, "info", s.Log.Level)
	assert.Empty(t, s.Keywords)
}

func TestLoaderFileOverridesDefaults(t *testing.T) {
	t.Parallel()

	s := load(t, filepath.Join("testdata", "settings.yaml"))
	assert.Equal(t, 4, s.Indent)
	assert.Equal(t, "sv", s.Locale)
	assert.Equal(t, []string{"kind", "data"}, s.Keywords)
	assert.Equal(t, "debug", s.Log.Level)
	assert.False(t, s.Reverse)
}

func TestLoaderMissingFile(t *testing.T) {
	t.Parallel()

	l := config.NewLoader("YAMLSORT_TEST")
	err := l.LoadWithDefaults(testDefaults(), filepath.Join("testdata", "missing.yaml"))
	require.ErrorIs(t, err, config.ErrFileNotFound)
}

func TestLoaderEnvOverridesFile(t *testing.T) {
	t.Setenv("YAMLSORT_TEST__INDENT", "8")
	t.Setenv("YAMLSORT_TEST__LOG__LEVEL", "warn")

	s := load(t, filepath.Join("testdata", "settings.yaml"))
	assert.Equal(t, 8, s.Indent)
	assert.Equal(t, "warn", s.Log.Level)
	assert.Equal(t, "sv", s.Locale)
}

func TestLoaderFlags(t *testing.T) {
	t.Setenv("YAMLSORT_TEST__INDENT", "8")

	tcs := map[string]struct {
		args []string
		want testSettings
	}{
		"set flags override env": {
			args: []string{"--indent=3", "--keywords=kind,data", "--reverse"},
			want: testSettings{
				Locale:   "en",
				Indent:   3,
				Keywords: []string{"kind", "data"},
				Log:      testLogSettings{Level: "info"},
				Reverse:  true,
			},
		},
		"unset flags do not override": {
			args: nil,
			want: testSettings{
				Locale: "en",
				Indent: 8,
				Log:    testLogSettings{Level: "info"},
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
			flags.Int("indent", 2, "")
			flags.StringSlice("keywords", nil, "")
			flags.Bool("reverse", false, "")
			flags.String("unmapped", "", "")
			require.NoError(t, flags.Parse(tc.args))

			l := config.NewLoader("YAMLSORT_TEST")
			require.NoError(t, l.LoadWithDefaults(testDefaults(), ""))
			require.NoError(t, l.LoadFlags(flags, map[string]string{
				"indent":   "indent",
				"keywords": "custom_sort_keywords_1",
				"reverse":  "reverse",
			}))

			var got testSettings
			require.NoError(t, l.Unmarshal("", &got))
			assert.Equal(t, tc.want.Locale, got.Locale)
			assert.Equal(t, tc.want.Indent, got.Indent)
			assert.Equal(t, tc.want.Log, got.Log)
			assert.Equal(t, tc.want.Reverse, got.Reverse)

			if tc.want.Keywords == nil {
				assert.Empty(t, got.Keywords)
			} else {
				assert.Equal(t, tc.want.Keywords, got.Keywords)
			}
		})
	}
}

func TestLoaderUnmarshalAndValidate(t *testing.T) {
	t.Parallel()

	l := config.NewLoader("YAMLSORT_TEST")
	require.NoError(t, l.LoadWithDefaults(testDefaults(), ""))

	var ok testSettings
	require.NoError(t, l.UnmarshalAndValidate("", &ok))

	require.NoError(t, l.Set("indent", 0))

	var bad testSettings
	require.ErrorIs(t, l.UnmarshalAndValidate("", &bad), errIndent)
}

func TestLoaderDumpYAML(t *testing.T) {
	t.Parallel()

	l := config.NewLoader("YAMLSORT_TEST")
	require.NoError(t, l.LoadWithDefaults(testDefaults(), ""))

	var buf bytes.Buffer
	require.NoError(t, l.DumpYAML(&buf))
	assert.Contains(t, buf.String(), "indent: 2\n")
	assert.Contains(t, buf.String(), "log:\n  level: info\n")
	assert.Equal(t, "en", l.Raw()["locale"])
}
