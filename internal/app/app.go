package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/memoria/internal/common"
	"github.com/ternarybob/memoria/internal/handlers"
	"github.com/ternarybob/memoria/internal/interfaces"
	"github.com/ternarybob/memoria/internal/services/compiler"
	"github.com/ternarybob/memoria/internal/services/financial"
	"github.com/ternarybob/memoria/internal/services/llm"
	"github.com/ternarybob/memoria/internal/services/market"
	"github.com/ternarybob/memoria/internal/services/narrative"
	"github.com/ternarybob/memoria/internal/services/renderer"
	"github.com/ternarybob/memoria/internal/services/retention"
	"github.com/ternarybob/memoria/internal/services/roi"
	badgerstorage "github.com/ternarybob/memoria/internal/storage/badger"
	"github.com/ternarybob/memoria/internal/templates"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Narrative backend (nil when no LLM provider is configured)
	TextGenerator interfaces.TextGenerator
	Synthesizer   interfaces.NarrativeSynthesizer

	// Pipeline services
	Compiler  interfaces.DocumentCompiler
	Renderer  interfaces.DocumentRenderer
	Templates interfaces.TemplateProvider

	// Draft retention sweeper
	Sweeper *retention.Sweeper

	// HTTP handlers
	CIMHandler      *handlers.CIMHandler
	TemplateHandler *handlers.TemplateHandler
	HealthHandler   *handlers.HealthHandler
}

// New wires all services and handlers. Components are initialized in
// dependency order: storage, templates, narrative backend, pipeline,
// retention, handlers.
func New(ctx context.Context, config *common.Config, logger arbor.ILogger) (*App, error) {
	a := &App{
		Config: config,
		Logger: logger,
	}

	// Storage
	storageManager := badgerstorage.NewManager(&config.Storage.Badger, logger)
	if err := storageManager.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("storage initialization: %w", err)
	}
	a.StorageManager = storageManager

	// Templates (embedded registry with optional user-override directory)
	a.Templates = templates.NewRegistry(config.Templates.Dir)

	// Narrative backend. A nil generator is a supported configuration,
	// the synthesizer runs deterministically in that case.
	generator, err := llm.NewTextGenerator(config, logger)
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("text generator initialization: %w", err)
	}
	a.TextGenerator = generator
	a.Synthesizer = narrative.NewSynthesizer(generator, logger)

	// Analysis pipeline
	a.Compiler = compiler.NewService(
		financial.NewAnalyzer(logger),
		market.NewAnalyzer(logger),
		roi.NewProjector(logger),
		a.Synthesizer,
		a.Templates,
		logger,
	)

	// Renderer
	a.Renderer = renderer.NewService(&config.Renderer, logger)

	// Retention sweeper
	sweeper, err := retention.NewSweeper(&config.Retention, storageManager.CIMStorage(), logger)
	if err != nil {
		a.closeBackend()
		return nil, fmt.Errorf("retention sweeper initialization: %w", err)
	}
	if err := sweeper.Start(); err != nil {
		a.closeBackend()
		return nil, fmt.Errorf("retention sweeper start: %w", err)
	}
	a.Sweeper = sweeper

	// HTTP handlers
	a.CIMHandler = handlers.NewCIMHandler(a.Compiler, a.Renderer, storageManager.CIMStorage(), logger)
	a.TemplateHandler = handlers.NewTemplateHandler(a.Templates, logger)
	a.HealthHandler = handlers.NewHealthHandler(storageManager.CIMStorage(), a.Renderer, a.Synthesizer, logger)

	logger.Info().
		Str("narrative_mode", a.Synthesizer.Mode()).
		Str("render_engine", a.Renderer.Engine()).
		Bool("retention_enabled", config.Retention.Enabled).
		Msg("Application initialized")

	return a, nil
}

// Close shuts down components in reverse initialization order.
func (a *App) Close() {
	if a.Sweeper != nil {
		a.Sweeper.Stop()
	}
	a.closeBackend()
	a.Logger.Info().Msg("Application closed")
}

func (a *App) closeBackend() {
	if a.TextGenerator != nil {
		if err := a.TextGenerator.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Text generator close failed")
		}
	}
	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Storage close failed")
		}
	}
}
