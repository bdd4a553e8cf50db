package app

import (
	"context"
	"fmt"
	"github.com/bytepowered/goes"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
	"github.com/udprelay/udprelay"
	"github.com/udprelay/udprelay/helper"
	"runtime/debug"
)

// Configuration
var k = koanf.NewWithConf(koanf.Conf{
	Delim:       ".",
	StrictMerge: true,
})

func init() {
	goes.SetPanicHandler(func(ctx context.Context, r interface{}) {
		logrus.Errorf("goroutine panic %v: %s", r, debug.Stack())
	})
}

// RunServer loads the TOML config file and serves every enabled relay
// rule. With verifyOnly the config is resolved and validated and no
// socket is opened.
func RunServer(runCtx context.Context, args []string, verifyOnly bool) error {
	confpath := "config.toml"
	if len(args) > 0 {
		confpath = args[0]
	}
	if err := k.Load(file.Provider(confpath), toml.Parser()); err != nil {
		return fmt.Errorf("main: load config: %s. %w", confpath, err)
	}
	if err := setupLogger(); err != nil {
		return err
	}
	logrus.Infof("main: load: %s", confpath)
	runCtx = context.WithValue(runCtx, relay.CtxKeyConfiger, k)
	var relayConfig RelayConfig
	if err := relay.ConfigUnmarshalWith(runCtx, configPathRelay, &relayConfig); err != nil {
		return fmt.Errorf("main: unmarshal relay config. %w", err)
	}
	app := NewApp()
	if err := app.Init(runCtx, relayConfig.Rules); err != nil {
		return fmt.Errorf("main: app init. %w", err)
	}
	if verifyOnly {
		return nil
	}
	return helper.ErrIf(app.Serve(runCtx), "main: app serve. %w")
}

// RunForward serves a single relay assembled from positional arguments:
// the listener specification first, then one or more destinations.
func RunForward(runCtx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("main: missing listener specification")
	}
	if len(args) < 2 {
		return fmt.Errorf("main: missing destination address")
	}
	logrus.SetFormatter(textFormatter())
	app := NewApp()
	rule := RuleConfig{
		Description:  "cli",
		Listen:       args[0],
		Destinations: args[1:],
	}
	if err := app.Init(runCtx, []RuleConfig{rule}); err != nil {
		return fmt.Errorf("main: app init. %w", err)
	}
	return helper.ErrIf(app.Serve(runCtx), "main: app serve. %w")
}

func setupLogger() error {
	var logConfig LogConfig
	if err := k.UnmarshalWithConf(configPathLog, &logConfig, koanf.UnmarshalConf{Tag: "toml"}); err != nil {
		return fmt.Errorf("main: unmarshal log config. %w", err)
	}
	switch logConfig.Format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(textFormatter())
	}
	if logConfig.Level != "" {
		level, err := logrus.ParseLevel(logConfig.Level)
		if err != nil {
			return fmt.Errorf("main: invalid log level: %s. %w", logConfig.Level, err)
		}
		logrus.SetLevel(level)
	}
	logrus.SetReportCaller(false)
	return nil
}

func textFormatter() *logrus.TextFormatter {
	return &logrus.TextFormatter{
		DisableColors:    false,
		DisableTimestamp: false,
		FullTimestamp:    true,
	}
}
