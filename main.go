package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shin-college/config"
	"shin-college/providers"
	"shin-college/providers/bucket"
	"shin-college/providers/file"
	"shin-college/providers/httpjson"
	"shin-college/services"
	"shin-college/storage"
)

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	// Setup Database Connection
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logging.Fatal("Failed to connect to state database", zap.Error(err))
	}
	logging.Info("Successfully connected to state database.")

	state := storage.NewStateStore(db)
	logging.Info("Running database auto-migration...")
	if err := state.Migrate(); err != nil {
		logging.Fatal("Auto-migration failed", zap.Error(err))
	}

	// Setup Corpus Source
	source, err := newSource(context.Background(), cfg, logging)
	if err != nil {
		logging.Fatal("Corpus source setup failed", zap.Error(err))
	}
	corpusService := services.NewCorpusService(source, cfg.SortThemes, logging)
	if _, err := corpusService.Load(context.Background()); err != nil {
		logging.Fatal("Initial corpus load failed", zap.Error(err))
	}

	// Setup Cron
	scheduler, err := corpusService.ScheduleReload(cfg.CorpusReloadSchedule)
	if err != nil {
		logging.Fatal("Corpus reload schedule invalid", zap.Error(err))
	}
	if scheduler != nil {
		defer scheduler.Stop()
	}

	historyService := services.NewHistoryService(state, cfg.HistoryLimit, logging)
	preferenceService := services.NewPreferenceService(state, services.Locale(cfg.DefaultLocale))

	router := newRouter(cfg, corpusService, historyService, preferenceService, logging)

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort), zap.String("corpus_source", source.Name()))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

// newSource wählt die Korpus-Quelle anhand von CORPUS_SOURCE.
func newSource(ctx context.Context, cfg *config.Config, logging *zap.Logger) (providers.Source, error) {
	switch cfg.CorpusSource {
	case "http":
		return httpjson.NewFetcher(cfg.CorpusURL, logging), nil
	case "s3":
		client, err := storage.NewS3Client(ctx, storage.S3Options{
			URL:    cfg.S3URL,
			Region: cfg.S3Region,
			Key:    cfg.S3Key,
			Secret: cfg.S3Secret,
		})
		if err != nil {
			return nil, err
		}
		return bucket.NewFetcher(client, cfg.CorpusBucket, cfg.CorpusKey, logging), nil
	default:
		return file.NewFetcher(cfg.CorpusPath, logging), nil
	}
}

// newRouter baut die gin-Engine mit allen Routen auf.
func newRouter(cfg *config.Config, corpus *services.CorpusService, history *services.HistoryService, prefs *services.PreferenceService, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/health", func(c *gin.Context) {
		_, err := corpus.Snapshot()
		c.JSON(http.StatusOK, gin.H{"status": "ok", "corpus_loaded": err == nil})
	})

	setupCorpusRoutes(router, cfg, corpus, log)
	setupSearchRoutes(router, cfg, corpus)
	setupHistoryRoutes(router, corpus, history, log)
	setupPreferenceRoutes(router, prefs, log)
	return router
}
