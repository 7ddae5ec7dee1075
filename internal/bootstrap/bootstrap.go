// Package bootstrap builds configured components shared by the server and the CLI.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/inmilk/internal/config"
	"github.com/mamadbah2/inmilk/internal/repository/mongodb"
	"github.com/mamadbah2/inmilk/internal/repository/sheets"
	"github.com/mamadbah2/inmilk/internal/service/reporting"
	"github.com/mamadbah2/inmilk/internal/service/simulation"
	"github.com/mamadbah2/inmilk/pkg/clients/chromium"
	"github.com/mamadbah2/inmilk/pkg/clients/gotenberg"
	"github.com/mamadbah2/inmilk/pkg/clients/wkhtmltopdf"
)

const checkTimeout = 30 * time.Second

// Cleanup releases a component. It is never nil.
type Cleanup func()

func noop() {}

// NewRenderer returns the configured renderer. For the html renderer the
// converter is checked before returning, so a missing tool fails startup.
func NewRenderer(ctx context.Context, cfg config.ReportConfig, logger *zap.Logger) (reporting.Renderer, Cleanup, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.Renderer != config.RendererHTML {
		logger.Info("using native pdf renderer")
		return reporting.NewNativeRenderer(), noop, nil
	}

	converter, cleanup, err := newConverter(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("%s converter unavailable: %w", cfg.Converter, err)
	}

	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	if err := converter.Check(checkCtx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("%s converter unavailable: %w", converter.Name(), err)
	}

	renderer, err := reporting.NewHTMLRenderer(withTimeout(converter, cfg.ConvertTimeout))
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	logger.Info("using html pdf renderer", zap.String("converter", converter.Name()))
	return renderer, cleanup, nil
}

func newConverter(cfg config.ReportConfig) (reporting.Converter, Cleanup, error) {
	switch cfg.Converter {
	case config.ConverterChromium:
		c := chromium.New(chromium.Config{Bin: cfg.ChromiumBin, ControlURL: cfg.ChromiumURL})
		return c, func() { _ = c.Close() }, nil
	case config.ConverterGotenberg:
		c, err := gotenberg.NewClient(cfg.GotenbergURL, cfg.ConvertTimeout)
		if err != nil {
			return nil, nil, err
		}
		return c, noop, nil
	case config.ConverterWkhtmltopdf:
		c, err := wkhtmltopdf.New(cfg.WkhtmltopdfBin)
		if err != nil {
			return nil, nil, err
		}
		return c, noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown converter %q", cfg.Converter)
	}
}

// timeoutConverter bounds every conversion.
type timeoutConverter struct {
	reporting.Converter
	timeout time.Duration
}

func withTimeout(c reporting.Converter, timeout time.Duration) reporting.Converter {
	if timeout <= 0 {
		return c
	}
	return &timeoutConverter{Converter: c, timeout: timeout}
}

func (t *timeoutConverter) Convert(ctx context.Context, html []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Converter.Convert(ctx, html)
}

// NewArchive connects the configured archive backend. It returns a nil
// archive when archiving is disabled.
func NewArchive(ctx context.Context, cfg *config.Config, logger *zap.Logger) (simulation.Archive, Cleanup, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Archive.Backend {
	case config.ArchiveMongoDB:
		repo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, nil, fmt.Errorf("init mongodb archive: %w", err)
		}
		logger.Info("archiving simulations to mongodb", zap.String("db", cfg.MongoDB.DBName))
		return repo, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := repo.Close(closeCtx); err != nil {
				logger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}, nil
	case config.ArchiveSheets:
		repo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, logger.Named("repo.sheets"))
		if err != nil {
			return nil, nil, fmt.Errorf("init sheets archive: %w", err)
		}
		logger.Info("archiving simulations to google sheets", zap.String("range", cfg.Sheets.Range))
		return repo, noop, nil
	default:
		return nil, noop, nil
	}
}

// NewSimulationService assembles the simulation service from configuration.
// store may be nil when no downloads are served.
func NewSimulationService(cfg config.ReportConfig, renderer reporting.Renderer, store simulation.DownloadStore, archive simulation.Archive, logger *zap.Logger) (*simulation.Service, error) {
	labels, err := reporting.Catalog(cfg.Language)
	if err != nil {
		return nil, err
	}
	return simulation.NewService(renderer, store, archive, simulation.Options{
		Labels:   labels,
		Location: cfg.Location(),
		Filename: cfg.Filename,
		TTL:      cfg.TTL,
	}, logger), nil
}
