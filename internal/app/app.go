package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/specialistvlad/framegrid/internal/catalog"
	"github.com/specialistvlad/framegrid/internal/config"
	"github.com/specialistvlad/framegrid/internal/ctxlog"
	"github.com/specialistvlad/framegrid/internal/hcl"
	"github.com/specialistvlad/framegrid/internal/pipeline"
	"github.com/specialistvlad/framegrid/internal/plan"
	"github.com/specialistvlad/framegrid/internal/publish"
	"github.com/specialistvlad/framegrid/internal/report"
	"github.com/specialistvlad/framegrid/internal/transformer"
	"github.com/specialistvlad/framegrid/internal/yamlcatalog"
)

// Publisher sends the configuration state of a finished build somewhere.
type Publisher interface {
	Publish(ctx context.Context, st *report.State) error
}

// App encapsulates the application's dependencies, configuration and
// lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	loaders   []config.Loader
	publisher Publisher
	now       func() time.Time
}

// Option configures an App.
type Option func(*App)

// WithLoaders replaces the default HCL and YAML loaders.
func WithLoaders(loaders ...config.Loader) Option {
	return func(a *App) { a.loaders = loaders }
}

// WithPublisher replaces the socket.io publisher built from the config.
func WithPublisher(p Publisher) Option {
	return func(a *App) { a.publisher = p }
}

// WithClock sets the clock used to timestamp the report.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// NewApp creates an App writing its result to outW and its logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config, opts ...Option) (*App, error) {
	a := &App{
		outW:    outW,
		logger:  newLogger(cfg.LogLevel, cfg.LogFormat, logW),
		config:  cfg,
		loaders: []config.Loader{hcl.NewLoader(), yamlcatalog.NewLoader()},
		now:     time.Now,
	}
	if cfg.Publish.URL != "" {
		p, err := publish.New(cfg.Publish)
		if err != nil {
			return nil, err
		}
		a.publisher = p
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger.Debug("App configured.", "loaders", len(a.loaders), "publish", a.publisher != nil)
	return a, nil
}

// Run loads the declarations, builds the network and writes the outcome.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, err := a.load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if a.config.ExportCatalog != "" {
		if err := exportCatalog(a.config.ExportCatalog, model.Catalog); err != nil {
			return fmt.Errorf("failed to export catalog: %w", err)
		}
		a.logger.Info("Catalog exported.", "path", a.config.ExportCatalog)
	}

	cat, err := catalog.FromConfig(ctx, model.Catalog)
	if err != nil {
		return fmt.Errorf("failed to build transform catalog: %w", err)
	}
	p, err := plan.FromConfig(ctx, model)
	if err != nil {
		return fmt.Errorf("failed to build network: %w", err)
	}

	settings := transformer.DefaultSettings(cat)
	settings.Strict = !a.config.Lenient
	settings.Enabled = !a.config.DisableTransformer

	a.logger.Info("Building network.", "tasks", p.Len(), "strict", settings.Strict, "enabled", settings.Enabled)
	res, err := pipeline.New(settings, pipeline.WithClock(a.now)).Run(ctx, p)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("build produced an invalid network: %w", err)
	}

	if err := res.Deployable(); err != nil {
		if !a.config.AllowIncomplete {
			return fmt.Errorf("refusing to deploy: %w", err)
		}
		a.logger.Warn("Deploying an incomplete network.", "unresolved", len(res.Unresolved))
	}

	if err := writeDocument(a.outW, a.config.Output, newDocument(cat, p, res)); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if a.publisher != nil && res.Report != nil {
		if err := a.publisher.Publish(ctx, res.Report); err != nil {
			return fmt.Errorf("failed to publish configuration state: %w", err)
		}
	}

	a.logger.Info("Build finished.", "rounds", res.Rounds, "producers", res.Producers, "complete", res.Complete)
	return nil
}

func (a *App) load(ctx context.Context) (*config.Model, error) {
	paths := append([]string{a.config.NetworkPath}, a.config.CatalogPaths...)
	model := config.NewModel()
	for _, l := range a.loaders {
		m, err := l.Load(ctx, paths...)
		if err != nil {
			return nil, err
		}
		model.Merge(m)
	}
	a.logger.Debug("Configuration loaded and merged.", "paths", paths, "tasks", len(model.Tasks))
	return model, nil
}

// exportCatalog writes the merged catalog declarations to path as YAML.
func exportCatalog(path string, c *config.Catalog) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return yamlcatalog.Encode(f, c)
}
