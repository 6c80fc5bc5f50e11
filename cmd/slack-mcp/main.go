// Command slack-mcp serves Slack workspace tools over the Model Context
// Protocol. By default it speaks MCP on stdin/stdout; a websocket listener
// is available via configuration. The client and tools subcommands exist
// for debugging a running server and inspecting the catalog.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/atomcliadepter/slack-sub004/pkg/config"
	"github.com/atomcliadepter/slack-sub004/pkg/slack"
	"github.com/atomcliadepter/slack-sub004/pkg/slacktoolbox"
	"github.com/atomcliadepter/slack-sub004/pkg/tools/dispatch"
	"github.com/atomcliadepter/slack-sub004/pkg/tools/mcpserver"
	"github.com/atomcliadepter/slack-sub004/pkg/tools/schemaval"
)

func main() {
	// Handle subcommands before flag parsing.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "client":
			if err := runClient(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			return
		case "tools":
			if err := runTools(); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			return
		}
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: slack-mcp [flags]\n       slack-mcp <command> [flags]\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands:\n  client  Connect to a running MCP server and list or call tools\n  tools   Print the tool catalog without starting a server\n")
	}

	configPath := flag.String("config", "", "path to configuration file (default: built-in defaults plus SLACK_BOT_TOKEN)")
	envFile := flag.String("env", ".env", "path to .env file (ignored if missing)")
	flag.Parse()

	if err := loadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	d, err := newDispatcher(cfg, logger)
	if err != nil {
		return err
	}

	srv := mcpserver.New(cfg.Server.Name, cfg.Server.Version, d)

	logger.Info("server starting",
		zap.String("name", cfg.Server.Name),
		zap.String("version", cfg.Server.Version),
		zap.String("transport", cfg.Transport.Kind),
	)

	switch cfg.Transport.Kind {
	case config.TransportWebSocket:
		err = srv.ServeWebSocket(ctx, cfg.Transport.Addr)
	default:
		err = srv.Serve(ctx, os.Stdin, os.Stdout)
	}

	// A signal-cancelled context is a clean shutdown, not a failure.
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	logger.Info("server stopped")

	return err
}

// newDispatcher assembles the Slack toolbox and dispatch engine from config.
func newDispatcher(cfg config.Config, logger *zap.Logger) (*dispatch.Dispatcher, error) {
	timeout, err := cfg.SlackTimeout()
	if err != nil {
		return nil, err
	}

	clientOpts := []slack.Option{}
	if cfg.Slack.BaseURL != "" {
		clientOpts = append(clientOpts, slack.WithBaseURL(cfg.Slack.BaseURL))
	}
	if timeout > 0 {
		clientOpts = append(clientOpts, slack.WithHTTPClient(&http.Client{Timeout: timeout}))
	}

	tb, err := slacktoolbox.New(slack.New(cfg.Slack.Token, clientOpts...)).Tools()
	if err != nil {
		return nil, err
	}

	tb = tb.Filter(cfg.Server.Tools)

	opts := []dispatch.Option{dispatch.WithLogger(logger)}
	if cfg.ValidateArguments() {
		opts = append(opts, dispatch.WithValidator(schemaval.New()))
	}

	return dispatch.New(tb, opts...), nil
}

// loadConfig reads the config file when given, otherwise falls back to the
// built-in defaults (token from SLACK_BOT_TOKEN).
func loadConfig(path string) (config.Config, error) {
	cfg := config.Default()

	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// newLogger builds a logger writing to stderr. Stdout belongs to the stdio
// transport, so diagnostics must never go there.
func newLogger(level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		lvl = parsed
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	return zcfg.Build()
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}
