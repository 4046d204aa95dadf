package invoker

import (
	"github.com/code19m/errx"
	"github.com/creasty/defaults"

	"github.com/rise-and-shine/invoker/dispatcher"
	"github.com/rise-and-shine/invoker/invoker/wrapper"
	"github.com/rise-and-shine/invoker/logger"
	"github.com/rise-and-shine/invoker/meta"
	"github.com/rise-and-shine/invoker/val"
)

// Config configures an Invoker built with NewFromConfig.
// It is meant to be embedded in an application config loaded with cfgloader.
type Config struct {
	// ServiceName identifies the embedding service in invocation metadata (required).
	ServiceName string `yaml:"service_name" validate:"required"`

	// ServiceVersion identifies the service version. Default: "dev".
	ServiceVersion string `yaml:"service_version" default:"dev"`

	// Logger configures the logger used by the logging and recovery middlewares
	// when NewFromConfig is not given one.
	Logger logger.Config `yaml:"logger"`

	// Middleware toggles the built-in invocation middlewares.
	Middleware MiddlewareConfig `yaml:"middleware"`

	// DefaultLanguage is the fallback language of Translations. Default: "en".
	DefaultLanguage string `yaml:"default_language" default:"en"`

	// Translations maps language -> source message -> translated message.
	// When set, error messages are translated with a meta.Catalog, using the
	// accept-language value of the invocation context.
	Translations map[string]map[string]string `yaml:"translations"`
}

// MiddlewareConfig toggles the built-in invocation middlewares.
// Logging and metadata injection are on unless disabled; recovery and tracing are opt-in.
type MiddlewareConfig struct {
	DisableLogging bool `yaml:"disable_logging"`
	DisableMeta    bool `yaml:"disable_meta"`
	EnableRecovery bool `yaml:"enable_recovery"`
	EnableTracing  bool `yaml:"enable_tracing"`
}

// NewFromConfig validates cfg and creates an Invoker with the configured middlewares.
// Wrappers are chained as tracing -> meta -> logging -> recovery, followed by any
// wrappers passed through opts. A nil log is built from cfg.Logger.
func NewFromConfig(cfg Config, log logger.Logger, opts ...Option) (*Invoker, error) {
	if err := defaults.Set(&cfg); err != nil {
		return nil, errx.Wrap(err)
	}
	if err := val.ValidateSchema(cfg); err != nil {
		return nil, errx.Wrap(err)
	}

	if log == nil {
		var err error
		log, err = logger.New(cfg.Logger)
		if err != nil {
			return nil, errx.Wrap(err)
		}
	}

	var wrappers []dispatcher.WrapFunc
	if cfg.Middleware.EnableTracing {
		wrappers = append(wrappers, wrapper.NewTracing(nil))
	}
	if !cfg.Middleware.DisableMeta {
		wrappers = append(wrappers, wrapper.NewMetaInject(cfg.ServiceName, cfg.ServiceVersion))
	}
	if !cfg.Middleware.DisableLogging {
		wrappers = append(wrappers, wrapper.NewLogger(log))
	}
	if cfg.Middleware.EnableRecovery {
		wrappers = append(wrappers, wrapper.NewRecovery(log))
	}

	base := []Option{WithWrappers(wrappers...)}
	if len(cfg.Translations) > 0 {
		base = append(base, WithTranslator(meta.NewCatalog(cfg.Translations, cfg.DefaultLanguage).Format))
	}

	return New(append(base, opts...)...), nil
}
