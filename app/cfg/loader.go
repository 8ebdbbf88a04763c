package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./data/macwatch.db" description:"Path to the SQLite database file"`

	// Application configuration
	ShopsDir          string `long:"shops-dir" env:"SHOPS_DIR" default:"./shops" description:"Directory containing shop configuration files"`
	OutputDir         string `long:"output-dir" env:"OUTPUT_DIR" default:"./output" description:"Directory for change report files"`
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"4" description:"Number of background workers for shop collection"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"3600" description:"Collection cycle interval in seconds"`
	APIAccessKey      string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Exchange rate configuration
	ExchangeRateURL      string  `long:"exchange-rate-url" env:"EXCHANGE_RATE_URL" default:"https://api.exchangerate-api.com/v4/latest/INR" description:"Exchange rate API endpoint (INR base)"`
	ExchangeRateFallback float64 `long:"exchange-rate-fallback" env:"EXCHANGE_RATE_FALLBACK" default:"298" description:"VND per INR rate used when the exchange rate API is unreachable"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"MacWatch/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Ho_Chi_Minh)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:               raw.DBPath,
		ShopsDir:             raw.ShopsDir,
		OutputDir:            raw.OutputDir,
		Port:                 raw.Port,
		WorkerCount:          raw.WorkerCount,
		SchedulerInterval:    raw.SchedulerInterval,
		APIAccessKey:         raw.APIAccessKey,
		ExchangeRateURL:      raw.ExchangeRateURL,
		ExchangeRateFallback: raw.ExchangeRateFallback,
		UserAgent:            raw.UserAgent,
		Timezone:             raw.Timezone,
		Debug:                raw.Debug,
		Version:              GetVersion(),
	}

	if cfg.ExchangeRateFallback <= 0 {
		return nil, fmt.Errorf("exchange rate fallback must be positive, got %v", cfg.ExchangeRateFallback)
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
