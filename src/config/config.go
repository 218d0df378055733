package config

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap/zapcore"
)

const (
	envBaseURL           = "POKEAPI_BASE_URL"
	envHTTPTimeout       = "HTTP_TIMEOUT"
	envOutputDir         = "OUTPUT_DIR"
	envRecordFile        = "RECORD_FILE"
	envMoveLimit         = "MOVE_LIMIT"
	envCardViewer        = "CARD_VIEWER"
	envExportFormats     = "EXPORT_FORMATS"
	envInvalidNamePolicy = "INVALID_NAME_POLICY"
	envLogLevel          = "LOG_LEVEL"
	envBucketName        = "BUCKET_NAME"
	envRegion            = "AWS_REGION"
	envHandler           = "_HANDLER"

	defaultBaseURL     = "https://pokeapi.co/api/v2/pokemon"
	defaultHTTPTimeout = 10 * time.Second
	defaultOutputDir   = "pokedex"
	defaultRecordFile  = "pokemon.json"
	defaultMoveLimit   = 15
	defaultLogLevel    = "warn"
	lambdaLogLevel     = "info"

	FormatParquet = "parquet"
	FormatCSV     = "csv"

	PolicyExit     = "exit"
	PolicyReprompt = "reprompt"

	HandlerLookup = "lookup"
)

// Config holds runtime configuration for the CLI and the Lambda handler.
type Config struct {
	BaseURL           string
	HTTPTimeout       time.Duration
	OutputDir         string
	RecordFile        string
	MoveLimit         int
	CardViewer        string
	ExportFormats     []string
	InvalidNamePolicy string
	LogLevel          zapcore.Level
	BucketName        string
	Region            string
	Handler           string
}

// Load reads .env (if present) and then the environment.
func Load() (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	cfg := Config{
		BaseURL:           envOrDefault(envBaseURL, defaultBaseURL),
		HTTPTimeout:       durationEnvOrDefault(envHTTPTimeout, defaultHTTPTimeout),
		OutputDir:         envOrDefault(envOutputDir, defaultOutputDir),
		RecordFile:        envOrDefault(envRecordFile, defaultRecordFile),
		MoveLimit:         intEnvOrDefault(envMoveLimit, defaultMoveLimit),
		CardViewer:        envOrDefault(envCardViewer, ""),
		ExportFormats:     listEnv(envExportFormats),
		InvalidNamePolicy: envOrDefault(envInvalidNamePolicy, PolicyExit),
		BucketName:        envOrDefault(envBucketName, ""),
		Region:            envOrDefault(envRegion, ""),
		Handler:           envOrDefault(envHandler, ""),
	}
	// Interactive sessions share the terminal with the prompts.
	logLevel := defaultLogLevel
	if cfg.Handler != "" {
		logLevel = lambdaLogLevel
	}
	level, err := zapcore.ParseLevel(envOrDefault(envLogLevel, logLevel))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", envLogLevel, err)
	}
	cfg.LogLevel = level
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.InvalidNamePolicy != PolicyExit && c.InvalidNamePolicy != PolicyReprompt {
		return fmt.Errorf("%s must be %q or %q, got %q", envInvalidNamePolicy, PolicyExit, PolicyReprompt, c.InvalidNamePolicy)
	}
	for _, format := range c.ExportFormats {
		if format != FormatParquet && format != FormatCSV {
			return fmt.Errorf("%s: unknown format %q", envExportFormats, format)
		}
	}
	return nil
}

func (c Config) Exports(format string) bool {
	return slices.Contains(c.ExportFormats, format)
}

func (c Config) Publishing() bool {
	return c.BucketName != ""
}
