package yamlsort

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"go.jacobcolvin.com/yamlsort/compare"
	"go.jacobcolvin.com/yamlsort/processor"
)

const quoteStyles = yaml.SingleQuotedStyle | yaml.DoubleQuotedStyle

// tree is one parsed document. root is nil when the text has no content.
type tree struct {
	root   *yaml.Node
	schema Schema
}

// parseTree parses text and checks it against schema.
func parseTree(text string, schema Schema) (*tree, error) {
	var doc yaml.Node

	err := yaml.Unmarshal([]byte(text), &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}

	t := &tree{schema: schema}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return t, nil
	}

	err = checkDuplicateKeys(&doc)
	if err != nil {
		return nil, err
	}

	err = schema.checkTags(&doc)
	if err != nil {
		return nil, err
	}

	t.root = &doc

	return t, nil
}

func (t *tree) empty() bool {
	return t.root == nil
}

// checkDuplicateKeys rejects a scalar key repeated within one mapping.
// Merge keys may repeat.
func checkDuplicateKeys(n *yaml.Node) error {
	if n.Kind == yaml.MappingNode {
		seen := make(map[string]*yaml.Node, len(n.Content)/2)

		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode || k.ShortTag() == "!!merge" {
				continue
			}

			id := k.ShortTag() + " " + k.Value
			if first, ok := seen[id]; ok {
				return fmt.Errorf("%w: mapping key %q already defined at line %d",
					ErrDuplicateKey, k.Value, first.Line)
			}

			seen[id] = k
		}
	}

	for _, c := range n.Content {
		err := checkDuplicateKeys(c)
		if err != nil {
			return err
		}
	}

	return nil
}

// sortKeys stably reorders the pairs of every mapping. The document's root
// mapping is ordered by top and every other mapping by nested. Sequences
// keep their order.
func (t *tree) sortKeys(top, nested compare.Func) {
	for _, c := range t.root.Content {
		sortNode(c, top, nested)
	}
}

func sortNode(n *yaml.Node, cmp, nested compare.Func) {
	switch n.Kind {
	case yaml.MappingNode:
		sortMapping(n, cmp)

		for _, c := range n.Content {
			sortNode(c, nested, nested)
		}
	case yaml.SequenceNode:
		for _, c := range n.Content {
			sortNode(c, nested, nested)
		}
	}
}

type pair struct {
	key   *yaml.Node
	value *yaml.Node
}

func sortMapping(n *yaml.Node, cmp compare.Func) {
	pairs := make([]pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		pairs = append(pairs, pair{key: n.Content[i], value: n.Content[i+1]})
	}

	slices.SortStableFunc(pairs, func(a, b pair) int {
		return cmp(a.key.Value, b.key.Value)
	})

	for i, p := range pairs {
		n.Content[2*i] = p.key
		n.Content[2*i+1] = p.value
	}
}

// fixAnchors moves anchor definitions so that no alias is emitted before
// its anchor. When an alias comes first, the alias position receives the
// definition and the old definition position becomes the alias.
func (t *tree) fixAnchors() {
	defined := make(map[string]bool)

	var walk func(n *yaml.Node)

	walk = func(n *yaml.Node) {
		if n.Kind == yaml.AliasNode {
			def := n.Alias
			if def == nil || def.Anchor == "" || defined[def.Anchor] {
				return
			}

			swapAnchor(n, def)
		}

		if n.Anchor != "" {
			defined[n.Anchor] = true
		}

		for _, c := range n.Content {
			walk(c)
		}
	}

	walk(t.root)
}

// swapAnchor exchanges an alias and its definition. Comments stay with
// their positions.
func swapAnchor(alias, def *yaml.Node) {
	a, d := *alias, *def

	*alias = d
	alias.HeadComment = a.HeadComment
	alias.LineComment = a.LineComment
	alias.FootComment = a.FootComment

	*def = yaml.Node{
		Kind:        yaml.AliasNode,
		Value:       d.Anchor,
		Alias:       alias,
		HeadComment: d.HeadComment,
		LineComment: d.LineComment,
		FootComment: d.FootComment,
		Line:        d.Line,
		Column:      d.Column,
	}
}

type styleOptions struct {
	quote     yaml.Style
	lineWidth int
	force     bool
}

// applyStyles rewrites scalar styles. Quoted scalars use the configured
// quote. With force set, plain string values are quoted as well. Plain
// string values longer than the line width are folded.
func (t *tree) applyStyles(o styleOptions) {
	var walk func(n *yaml.Node)

	walk = func(n *yaml.Node) {
		switch n.Kind {
		case yaml.DocumentNode, yaml.SequenceNode:
			for _, c := range n.Content {
				t.styleScalar(c, false, o)
				walk(c)
			}
		case yaml.MappingNode:
			for i, c := range n.Content {
				t.styleScalar(c, i%2 == 0, o)
				walk(c)
			}
		}
	}

	walk(t.root)
}

func (t *tree) styleScalar(n *yaml.Node, key bool, o styleOptions) {
	if n.Kind != yaml.ScalarNode {
		return
	}

	if n.Style&quoteStyles != 0 {
		n.Style = n.Style&^quoteStyles | o.quote

		return
	}

	if key || n.Style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
		return
	}

	if t.schema.resolve(n) != tagStr || shielded(n.Value) {
		return
	}

	switch {
	case o.lineWidth > 0 && utf8.RuneCountInString(n.Value) > o.lineWidth && !strings.Contains(n.Value, "\n"):
		n.Style |= yaml.FoldedStyle
	case o.force:
		n.Style |= o.quote
	}
}

// shielded reports whether value is a placeholder standing in for an inline
// array or template expression. Those must stay plain to be restored as
// structure.
func shielded(value string) bool {
	for _, kind := range []string{processor.KindArray, processor.KindHelm} {
		if strings.HasPrefix(value, processor.Namespace+"."+kind+".") {
			return true
		}
	}

	return false
}

// encode serializes the tree with the given indent.
func (t *tree) encode(indent int) (string, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)

	err := enc.Encode(t.root)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}

	err = enc.Close()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}

	return buf.String(), nil
}
