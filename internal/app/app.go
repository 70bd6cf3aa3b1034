// -----------------------------------------------------------------------
// Application - wires configuration, storage, pipeline services, and
// HTTP handlers into one composable unit
// -----------------------------------------------------------------------

package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lumen/internal/common"
	"github.com/ternarybob/lumen/internal/handlers"
	"github.com/ternarybob/lumen/internal/interfaces"
	"github.com/ternarybob/lumen/internal/services/dictionary"
	"github.com/ternarybob/lumen/internal/services/llm"
	"github.com/ternarybob/lumen/internal/services/objectstore"
	"github.com/ternarybob/lumen/internal/services/ocr"
	"github.com/ternarybob/lumen/internal/services/raster"
	"github.com/ternarybob/lumen/internal/services/summary"
	"github.com/ternarybob/lumen/internal/services/terms"
	"github.com/ternarybob/lumen/internal/services/uploads"
	badgerstorage "github.com/ternarybob/lumen/internal/storage/badger"
)

// App holds all initialized services and handlers
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Storage
	StorageManager interfaces.StorageManager

	// Services
	CompletionService interfaces.CompletionService
	UploadService     *uploads.Service
	SummaryService    *summary.Service

	// Handlers
	UploadHandler  *handlers.UploadHandler
	RecordHandler  *handlers.RecordHandler
	SummaryHandler *handlers.SummaryHandler
	HealthHandler  *handlers.HealthHandler
}

// New creates a fully wired application from configuration.
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	storageManager, err := badgerstorage.NewManager(logger, &config.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	completionService, err := llm.NewCompletionService(config, storageManager.KeyValueStorage(), logger)
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to initialize completion service: %w", err)
	}

	rasterizer, err := raster.NewService(&config.Raster, logger)
	if err != nil {
		completionService.Close()
		storageManager.Close()
		return nil, fmt.Errorf("failed to initialize rasterizer: %w", err)
	}

	ocrClient := ocr.NewClient(&config.OCR, logger)
	extractor := ocr.NewExtractor(rasterizer, ocrClient, config.OCR.Concurrency, logger)

	termExtractor := terms.NewExtractor(config.Terms.MinLength, logger)
	dictionaryClient := dictionary.NewClient(&config.Dictionary, logger)
	definitionService := dictionary.NewService(dictionaryClient, config.Dictionary.Concurrency, logger)

	objectStore := objectstore.NewClient(&config.ObjectStore, logger)

	uploadService := uploads.NewService(
		storageManager.UploadStorage(),
		objectStore,
		extractor,
		termExtractor,
		definitionService,
		logger,
	)
	summaryService := summary.NewService(completionService, logger)

	app := &App{
		Config:            config,
		Logger:            logger,
		StorageManager:    storageManager,
		CompletionService: completionService,
		UploadService:     uploadService,
		SummaryService:    summaryService,
		UploadHandler:     handlers.NewUploadHandler(uploadService, logger),
		RecordHandler:     handlers.NewRecordHandler(uploadService, logger),
		SummaryHandler:    handlers.NewSummaryHandler(uploadService, summaryService, logger),
		HealthHandler:     handlers.NewHealthHandler(storageManager, logger),
	}

	logger.Info().
		Str("provider", string(config.LLM.DefaultProvider)).
		Str("storage", config.Storage.Badger.Path).
		Msg("Application initialized")

	return app, nil
}

// Close shuts down services in reverse initialization order.
func (a *App) Close() error {
	var firstErr error

	if a.CompletionService != nil {
		if err := a.CompletionService.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	a.Logger.Info().Msg("Application closed")
	return firstErr
}
