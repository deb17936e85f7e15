package dedupe

// Option applies a configuration option to the deduper.
type Option func(*ringDeduper)

// WithMaxSize bounds the number of remembered ids. Zero or negative keeps
// every id with no eviction.
func WithMaxSize(size int) Option {
	return func(d *ringDeduper) {
		d.maxSize = size
	}
}
