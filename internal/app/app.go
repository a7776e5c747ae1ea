package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/qsirecon/internal/afq"
	"github.com/vk/qsirecon/internal/config"
	"github.com/vk/qsirecon/internal/ctxlog"
	"github.com/vk/qsirecon/internal/hcl"
	"github.com/vk/qsirecon/internal/pipeline"
	"github.com/vk/qsirecon/internal/registry"
	"github.com/vk/qsirecon/internal/workflows/recon"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	logger    *slog.Logger
	registry  *registry.Registry
	config    *config.Config
	schema    *afq.Provider
	converter config.Converter
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Log output goes to logW. A module that registers an interface twice is a
// programmer error and panics.
func NewApp(logW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	bootCtx := context.Background()

	cfg, err := loader.LoadProcessConfig(bootCtx, appConfig.ConfigPath, config.Default())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	appConfig.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := newLogger(cfg.Log.Level, cfg.Log.Format, logW)
	ctx := ctxlog.WithLogger(bootCtx, logger)
	logger.Debug("Logger configured successfully.")

	// Create and populate the registry with the compiled-in interfaces.
	reg := registry.New(loader)
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All interface modules registered.", "count", len(modules), "interfaces", reg.Len())

	if appConfig.InterfacesPath != "" {
		if err := reg.LoadManifestsRecursively(ctx, appConfig.InterfacesPath); err != nil {
			return nil, fmt.Errorf("failed to load interface manifests: %w", err)
		}
	}

	if err := reg.Validate(ctx); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.")

	return &App{
		logger:    logger,
		registry:  reg,
		config:    cfg,
		schema:    afq.NewProvider(loader, appConfig.SchemaPath),
		converter: hcl.NewConverter(),
	}, nil
}

// Context returns ctx carrying the application's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Registry returns the application's interface registry.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Config returns the effective process configuration.
func (a *App) Config() *config.Config {
	return a.config
}

// SchemaProvider returns the pyAFQ argument schema provider.
func (a *App) SchemaProvider() *afq.Provider {
	return a.schema
}

// Env returns the collaborators handed to workflow builders.
func (a *App) Env() recon.Env {
	return recon.Env{
		Config:    a.config,
		Registry:  a.registry,
		Schema:    a.schema,
		Converter: a.converter,
	}
}

// BuildPyAFQ assembles and validates the pyAFQ workflow.
func (a *App) BuildPyAFQ(ctx context.Context, opts recon.PyAFQOptions) (*pipeline.Workflow, error) {
	ctx = a.Context(ctx)
	wf, err := recon.InitPyAFQWorkflow(ctx, a.Env(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build pyAFQ workflow: %w", err)
	}
	if err := wf.Validate(ctx); err != nil {
		return nil, fmt.Errorf("pyAFQ workflow is invalid: %w", err)
	}
	a.logger.Info("Workflow assembled.", "workflow", wf.Name(), "nodes", len(wf.Nodes()), "connections", len(wf.Connections()))
	return wf, nil
}
