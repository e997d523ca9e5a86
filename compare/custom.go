package compare

// Custom orders strings by their position in a keyword list.
//
// Keywords sort in list order and before every string not in the list.
// Strings absent from the list are ordered by locale collation.
type Custom struct {
	positions map[string]int
	fallback  *Locale
	opts      options
}

// NewCustom creates a [Custom] ordering for keywords. When a keyword is
// listed more than once its first position is used.
func NewCustom(keywords []string, locale string, opts ...Option) *Custom {
	positions := make(map[string]int, len(keywords))
	for i, k := range keywords {
		if _, ok := positions[k]; !ok {
			positions[k] = i
		}
	}

	return &Custom{
		positions: positions,
		fallback:  NewLocale(locale),
		opts:      newOptions(opts),
	}
}

// Position returns the index of s in the keyword list, or -1.
func (c *Custom) Position(s string) int {
	if i, ok := c.positions[s]; ok {
		return i
	}

	return -1
}

// Compare implements [Func].
func (c *Custom) Compare(a, b string) int {
	ia, ib := c.Position(a), c.Position(b)

	var n int

	switch {
	case ia >= 0 && ib >= 0:
		n = sign(ia - ib)
	case ia >= 0:
		n = -1
	case ib >= 0:
		n = 1
	default:
		n = c.fallback.Compare(a, b)
	}

	return c.opts.apply(n)
}
