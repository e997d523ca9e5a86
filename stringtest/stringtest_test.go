package stringtest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/yamlsort/stringtest"
)

func TestInput(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"empty": {
			input: "",
			want:  "",
		},
		"mapping with nested block": {
			input: `
				persons:
				  bob:
				    age: 23
				animals:
				  kitty: {}`,
			want: "persons:\n  bob:\n    age: 23\nanimals:\n  kitty: {}",
		},
		"comment lines keep relative indent": {
			input: `
				# top
				a:
				  # nested
				  b: 1`,
			want: "# top\na:\n  # nested\n  b: 1",
		},
		"document delimiters": {
			input: `
				---
				a: 1
				---
				b: 2
			`,
			want: "---\na: 1\n---\nb: 2\n",
		},
		"whitespace-only lines become empty": {
			input: "\n    a: 1\n      \n    b: 2",
			want:  "a: 1\n\nb: 2",
		},
		"sequence under key": {
			input: `
			    list:
			      - one
			      - two`,
			want: "list:\n  - one\n  - two",
		},
		"only one surrounding newline is removed": {
			input: "\n\na: 1\n\n",
			want:  "\na: 1\n",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, stringtest.Input(tc.input))
		})
	}
}

func TestJoin(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		lf    string
		crlf  string
		input []string
	}{
		"nothing": {
			input: nil,
			lf:    "",
			crlf:  "",
		},
		"document with final newline": {
			input: []string{"a: 1", "b: 2", ""},
			lf:    "a: 1\nb: 2\n",
			crlf:  "a: 1\r\nb: 2\r\n",
		},
		"blank line between keys": {
			input: []string{"a: 1", "", "b: 2"},
			lf:    "a: 1\n\nb: 2",
			crlf:  "a: 1\r\n\r\nb: 2",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.lf, stringtest.JoinLF(tc.input...))
			assert.Equal(t, tc.crlf, stringtest.JoinCRLF(tc.input...))
		})
	}
}
