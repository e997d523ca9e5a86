// Package yamlsort sorts and formats YAML documents without losing the
// text a YAML parser would discard.
//
// A [Sorter] runs each document of a buffer through a round-trip pipeline:
//
//  1. Tabs are replaced with spaces.
//  2. Template expressions, inline arrays and octal-looking numbers are
//     shielded with placeholder tokens (see the processor package).
//  3. Full-line comments are extracted together with the line they
//     preceded.
//  4. The remaining text is parsed, mapping keys are sorted, and the tree
//     is serialized again.
//  5. Blank lines are injected before keys up to a configured depth.
//  6. Comments are reinserted above their anchor lines and the shielded
//     text is restored.
//
// Keys are ordered by locale collation, or by one of three custom keyword
// lists, either at the top level only or at every depth.
//
// All state lives in per-call values; a [Sorter] can be shared between
// goroutines.
package yamlsort
