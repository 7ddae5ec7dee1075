package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Renderer names.
const (
	RendererNative = "native"
	RendererHTML   = "html"
)

// Converter names for the html renderer.
const (
	ConverterChromium    = "chromium"
	ConverterGotenberg   = "gotenberg"
	ConverterWkhtmltopdf = "wkhtmltopdf"
)

// Archive backends.
const (
	ArchiveNone    = "none"
	ArchiveMongoDB = "mongodb"
	ArchiveSheets  = "sheets"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Report  ReportConfig
	Archive ArchiveConfig
	Sheets  SheetsConfig
	MongoDB MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig holds logger options.
type LogConfig struct {
	Level string
}

// ReportConfig selects and tunes the report renderer.
type ReportConfig struct {
	Renderer       string
	Converter      string
	ChromiumBin    string
	ChromiumURL    string
	GotenbergURL   string
	WkhtmltopdfBin string
	ConvertTimeout time.Duration
	Language       string
	Timezone       string
	Filename       string
	TTL            time.Duration
	SweepSchedule  string
}

// ArchiveConfig selects where simulations are archived.
type ArchiveConfig struct {
	Backend string
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	convertTimeout, err := getDurationWithDefault("REPORT_CONVERT_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	ttl, err := getDurationWithDefault("REPORT_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Report: ReportConfig{
			Renderer:       strings.ToLower(getenvWithDefault("REPORT_RENDERER", RendererNative)),
			Converter:      strings.ToLower(getenvWithDefault("REPORT_CONVERTER", ConverterChromium)),
			ChromiumBin:    os.Getenv("REPORT_CHROMIUM_BIN"),
			ChromiumURL:    os.Getenv("REPORT_CHROMIUM_URL"),
			GotenbergURL:   os.Getenv("REPORT_GOTENBERG_URL"),
			WkhtmltopdfBin: os.Getenv("REPORT_WKHTMLTOPDF_BIN"),
			ConvertTimeout: convertTimeout,
			Language:       strings.ToLower(getenvWithDefault("REPORT_LANGUAGE", "pt")),
			Timezone:       getenvWithDefault("REPORT_TIMEZONE", "America/Sao_Paulo"),
			Filename:       getenvWithDefault("REPORT_FILENAME", "relatorio_inmilk.pdf"),
			TTL:            ttl,
			SweepSchedule:  getenvWithDefault("REPORT_SWEEP_SCHEDULE", "*/5 * * * *"),
		},
		Archive: ArchiveConfig{
			Backend: strings.ToLower(getenvWithDefault("ARCHIVE_BACKEND", ArchiveNone)),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			Range:           getenvWithDefault("GOOGLE_SHEET_RANGE", "Simulations!A:AC"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "inmilk"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if err := c.Report.validate(); err != nil {
		return err
	}

	switch c.Archive.Backend {
	case ArchiveNone:
	case ArchiveMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided when ARCHIVE_BACKEND=mongodb")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
	case ArchiveSheets:
		switch {
		case c.Sheets.CredentialsPath == "":
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when ARCHIVE_BACKEND=sheets")
		case c.Sheets.SpreadsheetID == "":
			return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided when ARCHIVE_BACKEND=sheets")
		case c.Sheets.Range == "":
			return errors.New("GOOGLE_SHEET_RANGE must not be empty")
		}
	default:
		return fmt.Errorf("ARCHIVE_BACKEND %q is not one of none, mongodb, sheets", c.Archive.Backend)
	}

	return nil
}

func (r ReportConfig) validate() error {
	switch r.Renderer {
	case RendererNative:
	case RendererHTML:
		switch r.Converter {
		case ConverterChromium:
		case ConverterGotenberg:
			if r.GotenbergURL == "" {
				return errors.New("REPORT_GOTENBERG_URL must be provided when REPORT_CONVERTER=gotenberg")
			}
		case ConverterWkhtmltopdf:
			if r.WkhtmltopdfBin == "" {
				return errors.New("REPORT_WKHTMLTOPDF_BIN must be provided when REPORT_CONVERTER=wkhtmltopdf")
			}
		default:
			return fmt.Errorf("REPORT_CONVERTER %q is not one of chromium, gotenberg, wkhtmltopdf", r.Converter)
		}
	default:
		return fmt.Errorf("REPORT_RENDERER %q is not one of native, html", r.Renderer)
	}

	if r.Language != "pt" && r.Language != "en" {
		return fmt.Errorf("REPORT_LANGUAGE %q is not one of pt, en", r.Language)
	}
	if _, err := time.LoadLocation(r.Timezone); err != nil {
		return fmt.Errorf("REPORT_TIMEZONE %q: %w", r.Timezone, err)
	}
	if r.Filename == "" {
		return errors.New("REPORT_FILENAME must not be empty")
	}
	if r.TTL <= 0 {
		return errors.New("REPORT_TTL must be positive")
	}
	if r.ConvertTimeout <= 0 {
		return errors.New("REPORT_CONVERT_TIMEOUT must be positive")
	}
	if r.SweepSchedule == "" {
		return errors.New("REPORT_SWEEP_SCHEDULE must be provided")
	}
	return nil
}

// Location returns the report time zone. Validate has already checked it loads.
func (r ReportConfig) Location() *time.Location {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationWithDefault(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
