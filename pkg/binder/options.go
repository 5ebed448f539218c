package binder

// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20

// DefaultMaxJSONSize is the default maximum size for JSON request bodies (1MB).
const DefaultMaxJSONSize = 1 << 20

// Option tunes a single bind call.
type Option func(*options)

type options struct {
	maxMemory   int64
	maxJSONSize int64
}

func defaultOptions(opts []Option) options {
	o := options{maxMemory: DefaultMaxMemory, maxJSONSize: DefaultMaxJSONSize}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMaxMemory sets the memory limit for multipart parsing.
func WithMaxMemory(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxMemory = n
		}
	}
}

// WithMaxJSONSize sets the largest accepted JSON body.
func WithMaxJSONSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxJSONSize = n
		}
	}
}
