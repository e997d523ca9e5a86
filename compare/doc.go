// Package compare provides the key orderings used when sorting YAML
// mappings.
//
// Two strategies exist. [Locale] orders keys with locale-aware collation
// (so "ä" sorts before "z" in English but after it in Swedish). [Custom]
// orders keys by their position in a keyword list, puts known keywords
// before unknown ones, and falls back to locale collation between two
// unknown keys. [Select] picks the strategy for one sort call.
//
// Comparators hold a collator with internal buffers and are not safe for
// concurrent use. Create one per sort call.
package compare
