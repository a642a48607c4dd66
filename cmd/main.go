package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	cfg "github.com/satyadev-truss/truss-review/internal/config"
	"github.com/satyadev-truss/truss-review/internal/i18n"
	"github.com/satyadev-truss/truss-review/internal/infrastructure/ai/gemini"
	"github.com/satyadev-truss/truss-review/internal/infrastructure/httpclient"
	"github.com/satyadev-truss/truss-review/internal/infrastructure/media/giphy"
	"github.com/satyadev-truss/truss-review/internal/infrastructure/vcs/github"
	"github.com/satyadev-truss/truss-review/internal/logger"
	"github.com/satyadev-truss/truss-review/internal/server"
	"github.com/satyadev-truss/truss-review/internal/services"
	"github.com/satyadev-truss/truss-review/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error iniciando la cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func initializeApp() (*cli.Command, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("no se pudo obtener el directorio del usuario: %w", err)
	}

	configFlag := &cli.StringFlag{
		Name:  "config",
		Usage: "Ruta al archivo de configuración JSON",
	}
	debugFlag := &cli.BoolFlag{
		Name:  "debug",
		Usage: "Habilita logs de nivel debug",
	}

	loadApp := func(cmd *cli.Command) (*cfg.Config, *i18n.Translations, error) {
		path := cmd.String("config")
		if path == "" {
			path = homeDir
		}

		cfgApp, err := cfg.LoadConfig(path)
		if err != nil {
			return nil, nil, err
		}

		translations, err := i18n.NewTranslations(cfgApp.Language, "")
		if err != nil {
			return nil, nil, fmt.Errorf("error al cargar las traducciones: %w", err)
		}

		logger.Initialize(cmd.Bool("debug"), true)
		return cfgApp, translations, nil
	}

	translationsForHelp, err := i18n.NewTranslations("en", "")
	if err != nil {
		return nil, err
	}

	serveCommand := &cli.Command{
		Name:  "serve",
		Usage: translationsForHelp.GetMessage("serve_command_usage", 0, nil),
		Flags: []cli.Flag{configFlag, debugFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfgApp, translations, err := loadApp(cmd)
			if err != nil {
				return err
			}
			return runServer(ctx, cfgApp, translations)
		},
	}

	doctorCommand := &cli.Command{
		Name:  "doctor",
		Usage: translationsForHelp.GetMessage("doctor_command_usage", 0, nil),
		Flags: []cli.Flag{configFlag, debugFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfgApp, translations, err := loadApp(cmd)
			if err != nil {
				return err
			}
			if err := cfg.LoadSecrets(cfgApp); err != nil {
				return err
			}
			if _, err := cfg.LoadStyleGuide(cfgApp); err != nil {
				return err
			}
			fmt.Println(translations.GetMessage("doctor_ok", 0, nil))
			return nil
		},
	}

	return &cli.Command{
		Name:                  "truss-review",
		Usage:                 translationsForHelp.GetMessage("app_usage", 0, nil),
		Version:               version.Version,
		Description:           translationsForHelp.GetMessage("app_description", 0, nil),
		Commands:              []*cli.Command{serveCommand, doctorCommand},
		EnableShellCompletion: true,
	}, nil
}

func runServer(ctx context.Context, cfgApp *cfg.Config, translations *i18n.Translations) error {
	if err := cfg.LoadSecrets(cfgApp); err != nil {
		return err
	}

	styleGuide, err := cfg.LoadStyleGuide(cfgApp)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	roaster, err := gemini.NewGeminiRoaster(ctx, cfgApp, translations)
	if err != nil {
		return err
	}
	defer func() {
		if err := roaster.Close(); err != nil {
			logger.Warn(ctx, "error al cerrar el cliente de Gemini", "error", err)
		}
	}()

	vcsClient := github.NewGitHubClient(cfgApp.GitHubToken, translations)
	mediaSearcher := giphy.NewGiphyService(
		cfgApp.GiphyAPIKey,
		httpclient.NewDefaultHTTPClient(cfgApp.MediaTimeout()),
	)
	contexts := services.NewStaticContextProvider(cfgApp.Profiles, styleGuide)
	inflight := services.NewInFlightRegistry()

	roastService := services.NewRoastService(
		cfgApp,
		translations,
		vcsClient,
		roaster,
		mediaSearcher,
		contexts,
		inflight,
	)

	srv := server.New(cfgApp, roastService, translations)
	return srv.Run(ctx)
}
