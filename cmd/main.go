package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mail-telegram-notifier/internal/config"
	"mail-telegram-notifier/internal/handler"
	imapclient "mail-telegram-notifier/internal/imap"
	"mail-telegram-notifier/internal/logging"
	"mail-telegram-notifier/internal/models"
	"mail-telegram-notifier/internal/runner"
	"mail-telegram-notifier/internal/telegram"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "mail-telegram-notifier",
		Usage: "forward unread mail from allow-listed senders to a Telegram chat",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "optional YAML configuration file, environment variables take precedence",
				EnvVars: []string{"CONFIG_FILE"},
			},
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "dotenv file loaded when present",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "check the mailbox once and print the result",
				Action: runOnce,
			},
			{
				Name:   "watch",
				Usage:  "check the mailbox every refresh interval until interrupted",
				Action: watch,
			},
			{
				Name:  "serve",
				Usage: "trigger checks over HTTP (POST /run)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Value:   ":8080",
						Usage:   "listen address",
						EnvVars: []string{"LISTEN_ADDR"},
					},
				},
				Action: serve,
			},
			{
				Name:   "check",
				Usage:  "validate the configuration and print a summary",
				Action: check,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logging.Log.Fatal(err)
	}
}

// loadConfig reads .env, the optional YAML file and the environment, then validates.
func loadConfig(cCtx *cli.Context) (*models.Config, error) {
	if err := config.LoadEnvFile(cCtx.String("env-file")); err != nil {
		return nil, err
	}

	cfg, err := config.Load(cCtx.String("config"))
	if err != nil {
		return nil, fmt.Errorf("error reading configuration: %w", err)
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRunner(cfg *models.Config) *runner.Runner {
	notifier := telegram.NewNotifier(telegram.NewClient(cfg.Telegram), logging.Log)
	newClient := func() imapclient.Client {
		return imapclient.NewStandardClient(cfg.Mailbox.UseTLS())
	}
	return runner.New(cfg, newClient, notifier, logging.Log)
}

func runOnce(cCtx *cli.Context) error {
	cfg, err := loadConfig(cCtx)
	if err != nil {
		return err
	}

	resp, status := handler.Invoke(cCtx.Context, newRunner(cfg), logging.Log)
	if err := json.NewEncoder(cCtx.App.Writer).Encode(resp); err != nil {
		return err
	}
	if status != http.StatusOK {
		return cli.Exit("", 1)
	}
	return nil
}

// watch runs a check immediately and then every refresh interval.
func watch(cCtx *cli.Context) error {
	cfg, err := loadConfig(cCtx)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cCtx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logging.Log.Infof("Starting email notifier, refresh every %s", cfg.RefreshTime)

	r := newRunner(cfg)
	ticker := time.NewTicker(cfg.RefreshTime)
	defer ticker.Stop()

	for {
		handler.Invoke(ctx, r, logging.Log)

		select {
		case <-ctx.Done():
			logging.Log.Info("Email notifier stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func serve(cCtx *cli.Context) error {
	cfg, err := loadConfig(cCtx)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cCtx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := handler.NewServer(newRunner(cfg), logging.Log)

	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 30*time.Second)
		defer done()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logging.Log.WithError(err).Warn("HTTP server shutdown error")
		}
	}()

	addr := cCtx.String("addr")
	logging.Log.Infof("Listening on %s", addr)
	return app.Listen(addr)
}

func check(cCtx *cli.Context) error {
	cfg, err := loadConfig(cCtx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cCtx.App.Writer, config.Summary(cfg))
	return err
}
