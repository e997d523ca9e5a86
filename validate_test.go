package yamlsort_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/yamlsort"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		wantErr error
		wantMsg string
	}{
		"valid": {
			input: "a: 1\nb:\n  - c",
		},
		"template expressions": {
			input: "image: {{ .Values.image }}\nargs: [ a, b ]",
		},
		"whitespace only": {
			input: "  \n",
		},
		"syntax error": {
			input:   "a: [\nb: 1",
			wantErr: yamlsort.ErrInvalidYAML,
			wantMsg: "validate: invalid yaml: ",
		},
		"duplicate key": {
			input:   "a: 1\na: 2",
			wantErr: yamlsort.ErrDuplicateKey,
			wantMsg: `mapping key "a" already defined at line 1`,
		},
		"unknown tag in second document": {
			input:   "a: 1\n---\nb: !custom x",
			wantErr: yamlsort.ErrUnknownTag,
			wantMsg: "validate: document 2: unknown tag: !custom",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			sorter := newSorter(t, yamlsort.DefaultSettings())

			err := sorter.Validate(tc.input)
			if tc.wantErr == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, tc.wantErr)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}
