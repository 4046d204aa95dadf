// Command invoker-example registers a few callables on an Invoker built from config
// and invokes each code given on the command line.
//
//	ENVIRONMENT=local go run ./cmd/invoker-example greet login missing
package main

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/rise-and-shine/invoker/cfgloader"
	"github.com/rise-and-shine/invoker/codemap"
	"github.com/rise-and-shine/invoker/invoker"
	"github.com/rise-and-shine/invoker/logger"
	"github.com/rise-and-shine/invoker/meta"
	"github.com/rise-and-shine/invoker/registrar"
)

type Config struct {
	Invoker invoker.Config `yaml:"invoker"`

	Language string `yaml:"language" default:"en"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password" mask:"true"`
}

func main() {
	cfg := cfgloader.MustLoad[Config]()

	log, err := logger.New(cfg.Invoker.Logger)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	log = log.Named("invoker-example")

	inv, err := invoker.NewFromConfig(cfg.Invoker, log)
	if err != nil {
		log.Fatal(err)
	}

	err = inv.RegisterAll(registrar.Pairs(
		registrar.Pair{Code: "greet", Callable: greet},
		registrar.Pair{Code: "login", Callable: login},
	))
	if err != nil {
		log.Fatal(err)
	}

	ctx := meta.InjectMetaToContext(context.Background(), map[meta.ContextKey]string{
		meta.AcceptLanguage: cfg.Language,
	})

	codes := os.Args[1:]
	if len(codes) == 0 {
		codes = []string{"greet", "login", "missing"}
	}

	for _, code := range codes {
		res, err := inv.Invoke(ctx, codemap.Code(code), argsFor(code))

		var failure *invoker.InvocationFailure
		switch {
		case errors.As(err, &failure):
			log.With("command", string(failure.Command)).Warn(failure.Message)
		case err != nil:
			log.Errorx(err)
		default:
			log.With("code", code).Infof("result: %v", res)
		}
	}
}

func argsFor(code string) invoker.Args {
	switch code {
	case "greet":
		return invoker.List("World")
	case "login":
		return invoker.List(Credentials{Username: "admin", Password: "secret"})
	default:
		return invoker.List()
	}
}

func greet(_ context.Context, args []any) (any, error) {
	if len(args) == 0 {
		return "Hello!", nil
	}
	name, _ := args[0].(string)
	return "Hello, " + name, nil
}

func login(ctx context.Context, args []any) (any, error) {
	if len(args) == 0 {
		return nil, errors.New("credentials required")
	}
	creds, ok := args[0].(Credentials)
	if !ok {
		return nil, errors.New("unexpected credentials type")
	}
	if strings.TrimSpace(creds.Username) == "" {
		return nil, errors.New("username required")
	}
	return "logged in as " + creds.Username + " (trace " + meta.Find(ctx, meta.TraceID) + ")", nil
}
