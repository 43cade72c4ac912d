package cfgloader

type options struct {
	silent bool
}

// Option is a functional option for configuring MustLoad behavior.
type Option func(*options)

// WithSilent disables printing the loaded config to stdout. Useful for
// tests and tooling that load config repeatedly.
func WithSilent() Option {
	return func(o *options) {
		o.silent = true
	}
}
