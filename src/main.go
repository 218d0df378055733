package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/BielosX/wombat/pokedex/src/card"
	"github.com/BielosX/wombat/pokedex/src/config"
	"github.com/BielosX/wombat/pokedex/src/csv"
	"github.com/BielosX/wombat/pokedex/src/parquet"
	"github.com/BielosX/wombat/pokedex/src/pokeapi"
	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"github.com/BielosX/wombat/pokedex/src/s3"
	"github.com/BielosX/wombat/pokedex/src/session"
	"github.com/BielosX/wombat/pokedex/src/store"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"go.uber.org/zap"
)

const (
	exitOK      = 0
	exitFatal   = 1
	exitInvalid = 2
	// 128 + SIGINT, as a shell reports it.
	exitInterrupted = 130
)

type LookupRequest struct {
	Name string `json:"name"`
}

type LookupResult struct {
	Name       string `json:"name"`
	RecordPath string `json:"recordPath"`
	CardPath   string `json:"cardPath"`
	CardKey    string `json:"cardKey,omitempty"`
	RecordKey  string `json:"recordKey,omitempty"`
}

type application struct {
	cfg       config.Config
	sugar     *zap.SugaredLogger
	service   *pokedex.Service
	store     *store.JSONStore
	display   *card.Display
	publisher *s3.CardPublisher
}

func newApplication(ctx context.Context, cfg config.Config, sugar *zap.SugaredLogger, viewer string) (*application, error) {
	renderer, err := card.NewRenderer(sugar, card.DefaultLayout())
	if err != nil {
		return nil, err
	}
	app := &application{
		cfg:     cfg,
		sugar:   sugar,
		store:   store.NewJSONStore(sugar, cfg.OutputDir, cfg.RecordFile),
		display: card.NewDisplay(sugar, cfg.OutputDir, viewer),
	}
	opts := []pokedex.ServiceOption{pokedex.WithMoveLimit(cfg.MoveLimit)}
	if cfg.Exports(config.FormatParquet) {
		opts = append(opts, pokedex.WithExporters(parquet.NewExporter(sugar, cfg.OutputDir)))
	}
	if cfg.Exports(config.FormatCSV) {
		opts = append(opts, pokedex.WithExporters(csv.NewExporter(sugar, cfg.OutputDir)))
	}
	if cfg.Publishing() {
		var loadOpts []func(*awsconfig.LoadOptions) error
		if cfg.Region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("loading AWS config: %w", err)
		}
		app.publisher = s3.NewCardPublisher(sugar, s3.NewClient(awsCfg), cfg.BucketName)
		opts = append(opts, pokedex.WithPublisher(app.publisher))
	}
	client := pokeapi.NewClient(sugar,
		pokeapi.WithBaseUrl(cfg.BaseURL),
		pokeapi.WithTimeout(cfg.HTTPTimeout))
	app.service = pokedex.NewService(sugar, client, app.store, renderer, app.display, opts...)
	return app, nil
}

func (a *application) runInteractive(ctx context.Context) int {
	exitOnInvalid := a.cfg.InvalidNamePolicy == config.PolicyExit
	prompter := session.NewPrompter(a.sugar, a.service, os.Stdin, os.Stdout, exitOnInvalid)
	return exitCode(prompter.Run(ctx))
}

func (a *application) handleLookup(ctx context.Context, request LookupRequest) (*LookupResult, error) {
	a.sugar.Infof("Starting Lookup Handler, name: %s", request.Name)
	name, err := session.NormalizeName(request.Name)
	if err != nil {
		return nil, err
	}
	record, err := a.service.Lookup(ctx, name)
	if err != nil {
		a.sugar.Errorf("Lookup of %s failed: %s", name, err)
		return nil, err
	}
	result := &LookupResult{
		Name:       record.Name,
		RecordPath: a.store.Path(),
		CardPath:   a.display.CardPath(record),
	}
	if a.publisher != nil {
		published := a.publisher.Last()
		result.CardKey = published.CardKey
		result.RecordKey = published.RecordKey
	}
	return result, nil
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if _, ok := session.AsValidationError(err); ok {
		return exitInvalid
	}
	if errors.Is(err, context.Canceled) {
		return exitInterrupted
	}
	return exitFatal
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, cfgErr := config.Load()
	logger, _ := zap.NewDevelopment(zap.AddStacktrace(zap.FatalLevel), zap.IncreaseLevel(cfg.LogLevel))
	sugar := logger.Sugar()
	defer func() {
		_ = sugar.Sync()
	}()
	if cfgErr != nil {
		sugar.Errorf("Invalid configuration: %s", cfgErr)
		return exitFatal
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch cfg.Handler {
	case config.HandlerLookup:
		app, err := newApplication(ctx, cfg, sugar, card.ViewerNone)
		if err != nil {
			sugar.Errorf("Failed to start: %s", err)
			return exitFatal
		}
		lambda.Start(app.handleLookup)
		return exitOK
	case "":
		app, err := newApplication(ctx, cfg, sugar, cfg.CardViewer)
		if err != nil {
			sugar.Errorf("Failed to start: %s", err)
			return exitFatal
		}
		return app.runInteractive(ctx)
	default:
		sugar.Errorf("Unknown Handler %s", cfg.Handler)
		return exitFatal
	}
}
