// Package cfgloader provides a simple way to load and validate configuration at the start of an application.
package cfgloader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rise-and-shine/invoker/val"
)

const (
	EnvProduction = "production"
	EnvStaging    = "staging"
	EnvDev        = "dev"
	EnvLocal      = "local"
	EnvTest       = "test"

	CodeInvalidEnvironment = "CFG_INVALID_ENVIRONMENT"
	CodeConfigNotFound     = "CFG_NOT_FOUND"
	CodeConfigUnreadable   = "CFG_UNREADABLE"
)

// Load loads and validates configuration from a YAML file based on the ENVIRONMENT variable.
// The file must be named ${ENVIRONMENT}.yaml and live in the config directory
// ("./config" unless WithDir is given). A .env file in the working directory is loaded first.
//
// ${VAR} references in the file are expanded from the environment.
// The configuration struct uses `yaml` tags for mapping, `default` tags for values applied
// to fields left unset, and `validate` tags (go-playground/validator) for validation.
//
// Example:
//
//	type Config struct {
//	    ServiceName string `yaml:"service_name" validate:"required"`
//	    Language    string `yaml:"language" default:"en"`
//	}
func Load[T any](opts ...Option) (T, error) {
	var config T

	if t := reflect.TypeOf(config); t == nil || t.Kind() != reflect.Struct {
		return config, errx.New("[cfgloader]: config type must be a non-pointer struct")
	}

	o := buildOptions(opts)

	_ = godotenv.Load()

	env := o.env
	if env == "" {
		env = os.Getenv("ENVIRONMENT")
	}
	if !slices.Contains([]string{EnvProduction, EnvStaging, EnvDev, EnvLocal, EnvTest}, env) {
		return config, errx.New(
			"[cfgloader]: ENVIRONMENT is not set or invalid. Choices are: production, staging, dev, local, test",
			errx.WithCode(CodeInvalidEnvironment),
			errx.WithDetails(errx.D{"environment": env}),
		)
	}

	path := filepath.Join(o.dir, env+".yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, errx.New("[cfgloader]: config file not found",
			errx.WithCode(CodeConfigNotFound),
			errx.WithDetails(errx.D{"path": path}),
		)
	}
	if err != nil {
		return config, errx.Wrap(err, errx.WithDetails(errx.D{"path": path}))
	}

	if err = yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &config); err != nil {
		return config, errx.New(fmt.Sprintf("[cfgloader]: failed to unmarshal %s config file", env),
			errx.WithCode(CodeConfigUnreadable),
			errx.WithDetails(errx.D{"path": path, "cause": err.Error()}),
		)
	}

	if err = defaults.Set(&config); err != nil {
		return config, errx.Wrap(err)
	}

	if err = val.ValidateSchema(config); err != nil {
		return config, errx.Wrap(err, errx.WithDetails(errx.D{"environment": env}))
	}

	if !o.silent {
		printConfig(config)
	}

	return config, nil
}

// MustLoad is like Load but logs the error and exits the process on failure.
func MustLoad[T any](opts ...Option) T {
	config, err := Load[T](opts...)
	if err != nil {
		e := errx.AsErrorX(err)
		slog.Error(err.Error(), "code", e.Code(), "fields", e.Fields(), "details", e.Details())
		os.Exit(1)
	}
	return config
}
