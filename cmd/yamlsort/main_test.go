package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/yamlsort"
	"go.jacobcolvin.com/yamlsort/stringtest"
)

type result struct {
	err    error
	stdout string
	stderr string
}

func execute(t *testing.T, stdin string, terminal bool, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer

	a := &app{
		stdin:      strings.NewReader(stdin),
		stdout:     &stdout,
		stderr:     &stderr,
		isTerminal: func() bool { return terminal },
	}

	err := a.execute(args)

	return result{err: err, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(b)
}

func TestStdin(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		stdin string
		want  string
		args  []string
	}{
		"sort": {
			args:  []string{"sort"},
			stdin: "b: 1\na: 2\n",
			want:  "---\na: 2\nb: 1\n",
		},
		"sort dash argument": {
			args:  []string{"sort", "--leading-dashes=false", "-"},
			stdin: "b: 1\na: 2\n",
			want:  "a: 2\nb: 1\n",
		},
		"sort custom keywords": {
			args:  []string{"sort", "--custom=1", "--keywords-1=kind,metadata", "--leading-dashes=false"},
			stdin: "a: 1\nmetadata: {}\nkind: x\n",
			want:  "kind: x\nmetadata: {}\na: 1\n",
		},
		"sort reverse": {
			args:  []string{"sort", "--reverse", "--leading-dashes=false"},
			stdin: "a: 1\nb: 2\n",
			want:  "b: 2\na: 1\n",
		},
		"sort range": {
			args:  []string{"sort", "--range=2:3"},
			stdin: "z: 1\nb: 1\na: 1\n",
			want:  "z: 1\na: 1\nb: 1\n",
		},
		"format": {
			args:  []string{"format", "--indent=4", "--leading-dashes=false"},
			stdin: "b:\n  c: 1\na: 2\n",
			want: stringtest.JoinLF(
				"b:",
				"    c: 1",
				"a: 2",
				"",
			),
		},
		"write ignored for stdin": {
			args:  []string{"format", "-w"},
			stdin: "a: 1\n",
			want:  "---\na: 1\n",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res := execute(t, tc.stdin, false, tc.args...)
			require.NoError(t, res.err, res.stderr)
			assert.Equal(t, tc.want, res.stdout)
		})
	}
}

func TestNoInput(t *testing.T) {
	t.Parallel()

	res := execute(t, "", true, "sort")
	require.ErrorIs(t, res.err, ErrNoInput)
}

func TestInvalidSettings(t *testing.T) {
	t.Parallel()

	res := execute(t, "a: 1\n", false, "sort", "--quoting-type=x")
	require.ErrorIs(t, res.err, yamlsort.ErrInvalidOption)

	res = execute(t, "a: 1\n", false, "sort", "--log-level=loud")
	require.Error(t, res.err)
}

func TestWriteDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	unsorted := filepath.Join(dir, "a.yaml")
	sorted := filepath.Join(dir, "nested", "b.yml")
	ignored := filepath.Join(dir, "c.txt")

	writeFile(t, unsorted, "b: 1\na: 1\n")
	writeFile(t, sorted, "a: 1\nb: 1\n")
	writeFile(t, ignored, "b: 1\na: 1\n")

	res := execute(t, "", true, "sort", "--leading-dashes=false", "-l", dir)
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, unsorted+"\n", res.stdout)
	assert.Equal(t, "b: 1\na: 1\n", readFile(t, unsorted))

	res = execute(t, "", true, "sort", "--leading-dashes=false", "-w", dir)
	require.NoError(t, res.err, res.stderr)
	assert.Empty(t, res.stdout)
	assert.Equal(t, "a: 1\nb: 1\n", readFile(t, unsorted))
	assert.Equal(t, "a: 1\nb: 1\n", readFile(t, sorted))
	assert.Equal(t, "b: 1\na: 1\n", readFile(t, ignored))
}

func TestContinueOnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	good := filepath.Join(dir, "good.yaml")

	writeFile(t, bad, "a: 1\na: 2\n")
	writeFile(t, good, "b: 1\na: 1\n")

	res := execute(t, "", true, "sort", "--leading-dashes=false", "--log-format=json", bad, good)
	require.ErrorIs(t, res.err, ErrFailed)
	assert.Equal(t, "a: 1\nb: 1\n", res.stdout)
	assert.Contains(t, res.stderr, `"path":"`+filepath.ToSlash(bad)+`"`)
	assert.Contains(t, res.stderr, "duplicate key")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	res := execute(t, "a: {{ .Values.a }}\nb: [ 1, 2 ]\n", false, "validate")
	require.NoError(t, res.err, res.stderr)
	assert.Empty(t, res.stdout)

	res = execute(t, "a: [\n", false, "validate")
	require.ErrorIs(t, res.err, ErrFailed)
	assert.Contains(t, res.stderr, "invalid yaml")

	res = execute(t, "", true, "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, res.err, ErrFailed)
	assert.Contains(t, res.stderr, "read input")
}

func TestMissingArgumentContinues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.yaml")
	good := filepath.Join(dir, "good.yaml")

	writeFile(t, good, "b: 1\na: 2\n")

	res := execute(t, "", true, "sort", "--leading-dashes=false", "--log-format=json", "-w", missing, good)
	require.ErrorIs(t, res.err, ErrFailed)
	assert.Contains(t, res.err.Error(), "1 of 2 inputs")
	assert.Contains(t, res.stderr, `"path":"`+filepath.ToSlash(missing)+`"`)
	assert.Equal(t, "a: 2\nb: 1\n", readFile(t, good))
}

func TestWriteKeepsPermissions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a.yaml")
	writeFile(t, path, "b: 1\na: 2\n")
	require.NoError(t, os.Chmod(path, 0o600))

	res := execute(t, "", true, "sort", "--leading-dashes=false", "-w", path)
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "a: 2\nb: 1\n", readFile(t, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestConfigShow(t *testing.T) {
	t.Parallel()

	res := execute(t, "", true, "config", "show", "--indent=4", "--keywords-1=kind,data")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "indent: 4\n")
	assert.Contains(t, res.stdout, "custom_sort_keywords_1:\n  - kind\n  - data\n")
}

func TestConfigSchema(t *testing.T) {
	t.Parallel()

	res := execute(t, "", true, "config", "schema")
	require.NoError(t, res.err, res.stderr)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, "yamlsort settings", got["title"])
	assert.Contains(t, got["properties"], "locale")
}

func TestHeapProfile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "heap.prof")

	res := execute(t, "b: 1\na: 1\n", false, "sort", "--heap-profile="+path)
	require.NoError(t, res.err, res.stderr)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestVersion(t *testing.T) {
	t.Parallel()

	res := execute(t, "", true, "version")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "yamlsort "), res.stdout)

	res = execute(t, "", true, "version", "--json")
	require.NoError(t, res.err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.Contains(t, got, "revision")
}
