package compare

// Func orders two mapping keys. It returns a negative number when a sorts
// before b, a positive number when a sorts after b, and zero when their
// order is not determined.
type Func func(a, b string) int

// Option configures a comparator.
type Option func(*options)

type options struct {
	reverse bool
}

// WithReverse inverts the final sign of every comparison.
func WithReverse(reverse bool) Option {
	return func(o *options) {
		o.reverse = reverse
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func (o options) apply(n int) int {
	if o.reverse {
		return -n
	}

	return n
}

// Select returns the comparator used for a sort call. The custom ordering is
// chosen only when customOrder is positive and recursive custom sorting is
// enabled. Every other combination sorts by locale.
func Select(locale string, keywords []string, customOrder int, recursive bool, opts ...Option) Func {
	if customOrder > 0 && recursive {
		return NewCustom(keywords, locale, opts...).Compare
	}

	return NewLocale(locale, opts...).Compare
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}

	return 0
}
