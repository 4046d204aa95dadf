package cfgloader

type options struct {
	silent bool
	dir    string
	env    string
}

// Option is a functional option for configuring Load and MustLoad behavior.
type Option func(*options)

// WithSilent disables printing the loaded config.
func WithSilent() Option {
	return func(o *options) {
		o.silent = true
	}
}

// WithDir sets the directory containing the ${ENVIRONMENT}.yaml files.
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithEnvironment overrides the ENVIRONMENT variable.
func WithEnvironment(env string) Option {
	return func(o *options) {
		o.env = env
	}
}

func buildOptions(opts []Option) options {
	o := options{dir: "./config"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
