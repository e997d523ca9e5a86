package yamlsort

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Schema selects how scalars are resolved and which explicit tags are
// accepted.
type Schema string

// Schemas.
const (
	SchemaDefault        Schema = "default"
	SchemaCore           Schema = "core"
	SchemaFailsafe       Schema = "failsafe"
	SchemaJSON           Schema = "json"
	SchemaHomeAssistant  Schema = "homeassistant"
	SchemaCloudFormation Schema = "cloudformation"
)

const (
	tagStr   = "!!str"
	tagNull  = "!!null"
	tagBool  = "!!bool"
	tagInt   = "!!int"
	tagFloat = "!!float"
)

// GetAllSchemaStrings returns all schema names.
func GetAllSchemaStrings() []string {
	return []string{
		string(SchemaDefault),
		string(SchemaCore),
		string(SchemaFailsafe),
		string(SchemaJSON),
		string(SchemaHomeAssistant),
		string(SchemaCloudFormation),
	}
}

var (
	failsafeTags = []string{"!!str", "!!seq", "!!map"}
	jsonTags     = append(failsafeTags[:len(failsafeTags):len(failsafeTags)],
		tagNull, tagBool, tagInt, tagFloat)
	defaultTags = append(jsonTags[:len(jsonTags):len(jsonTags)],
		"!!binary", "!!timestamp", "!!omap", "!!pairs", "!!set", "!!merge")
	homeAssistantTags = []string{
		"!include",
		"!include_dir_list",
		"!include_dir_named",
		"!include_dir_merge_list",
		"!include_dir_merge_named",
		"!secret",
		"!env_var",
		"!input",
	}
	cloudFormationTags = []string{
		"!Ref", "!Sub", "!GetAtt", "!GetAZs", "!ImportValue", "!Join",
		"!Select", "!Split", "!FindInMap", "!Base64", "!Cidr", "!Condition",
		"!Transform", "!If", "!Equals", "!Not", "!And", "!Or",
	}
)

// tags returns the explicit tags accepted by s.
func (s Schema) tags() map[string]bool {
	var list []string

	switch s {
	case SchemaFailsafe:
		list = failsafeTags
	case SchemaCore, SchemaJSON:
		list = jsonTags
	case SchemaHomeAssistant:
		list = append(defaultTags[:len(defaultTags):len(defaultTags)], homeAssistantTags...)
	case SchemaCloudFormation:
		list = append(defaultTags[:len(defaultTags):len(defaultTags)], cloudFormationTags...)
	default:
		list = defaultTags
	}

	m := make(map[string]bool, len(list))
	for _, t := range list {
		m[t] = true
	}

	return m
}

var (
	jsonInt   = regexp.MustCompile(`^-?(0|[1-9][0-9]*)$`)
	jsonFloat = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]*)?([eE][-+]?[0-9]+)?$`)
	coreNull  = regexp.MustCompile(`^(~|null|Null|NULL)?$`)
	coreBool  = regexp.MustCompile(`^(true|True|TRUE|false|False|FALSE)$`)
	coreInt   = regexp.MustCompile(`^([-+]?[0-9]+|0o[0-7]+|0x[0-9a-fA-F]+)$`)
	coreFloat = regexp.MustCompile(
		`^([-+]?(\.[0-9]+|[0-9]+(\.[0-9]*)?)([eE][-+]?[0-9]+)?|[-+]?\.(inf|Inf|INF)|\.(nan|NaN|NAN))$`)
)

// resolve returns the short tag of a scalar node under s.
func (s Schema) resolve(n *yaml.Node) string {
	if n.Style&yaml.TaggedStyle != 0 {
		return n.ShortTag()
	}

	if n.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
		return tagStr
	}

	v := n.Value

	switch s {
	case SchemaFailsafe:
		return tagStr
	case SchemaJSON:
		switch {
		case v == "null":
			return tagNull
		case v == "true", v == "false":
			return tagBool
		case jsonInt.MatchString(v):
			return tagInt
		case jsonFloat.MatchString(v):
			return tagFloat
		}

		return tagStr
	case SchemaCore:
		switch {
		case coreNull.MatchString(v):
			return tagNull
		case coreBool.MatchString(v):
			return tagBool
		case coreInt.MatchString(v):
			return tagInt
		case coreFloat.MatchString(v):
			return tagFloat
		}

		return tagStr
	}

	return n.ShortTag()
}

// checkTags rejects explicit tags the schema does not know.
func (s Schema) checkTags(root *yaml.Node) error {
	allowed := s.tags()

	var walk func(n *yaml.Node) error

	walk = func(n *yaml.Node) error {
		if n.Style&yaml.TaggedStyle != 0 && n.Kind != yaml.DocumentNode && !allowed[n.Tag] {
			return fmt.Errorf("%w: %s at line %d is not part of the %s schema",
				ErrUnknownTag, n.Tag, n.Line, s)
		}

		for _, c := range n.Content {
			err := walk(c)
			if err != nil {
				return err
			}
		}

		return nil
	}

	return walk(root)
}
