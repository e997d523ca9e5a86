// Package processor shields text that a YAML round trip would destroy or
// reorder.
//
// A [Substitution] replaces every match of a pattern with a unique token
// before parsing and puts the original text back after serialization.
// [NewArray], [NewHelm], and [NewOctal] configure it for inline sequence
// literals, double-brace template tags, and octal-looking numbers. The
// [Controller] runs the enabled substitutions in a fixed order and undoes
// them in reverse.
//
// [Comments] removes full-line comments before parsing and reinserts each
// one above the line that followed it, searching for that line with
// progressively looser [AnchorMatcher] strategies.
//
// # Known limitation
//
// [Substitution.Preprocess] replaces the first remaining occurrence of each
// matched string rather than the occurrence at the match position. When the
// same literal text also appears earlier without matching (for example
// "0755" inside "x-0755-y" before a bare 0755), the token lands on the
// earlier occurrence. The round trip is still lossless.
package processor
