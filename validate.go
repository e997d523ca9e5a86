package yamlsort

import (
	"fmt"
	"strings"

	goyaml "github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/parser"

	"go.jacobcolvin.com/yamlsort/processor"
)

// Validate checks every document in text without producing output. Syntax
// errors include an excerpt of the offending source. Duplicate keys and
// tags unknown to the schema are reported as they would be by [Sorter.Sort].
func (s *Sorter) Validate(text string) error {
	_, err := eachDocument(text, func(doc string) (string, error) {
		return doc, s.validateDocument(doc)
	})
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

func (s *Sorter) validateDocument(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	text, err := replaceTabs(text, s.settings.Indent)
	if err != nil {
		return err
	}

	text = processor.NewController(processor.ControllerConfig{
		Helm:  s.settings.UseHelmProcessor,
		Array: s.settings.UseArrayProcessor,
		Octal: s.settings.UseOctalProcessor,
	}).Preprocess(text)

	_, err = parser.ParseBytes([]byte(text), 0, parser.AllowDuplicateMapKey())
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidYAML, goyaml.FormatError(err, false, true))
	}

	_, err = parseTree(text, s.settings.Schema)

	return err
}
