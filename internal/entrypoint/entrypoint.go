package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrlokans/catalogdb/internal/config"
	"github.com/mrlokans/catalogdb/internal/database"
	"github.com/mrlokans/catalogdb/internal/database/loadruns"
	http_controllers "github.com/mrlokans/catalogdb/internal/http"
	"github.com/mrlokans/catalogdb/internal/loader"
	"github.com/mrlokans/catalogdb/internal/metrics"
	"github.com/mrlokans/catalogdb/internal/scheduler"
	"github.com/mrlokans/catalogdb/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// SIGKILL can't be caught, so only SIGINT and SIGTERM are handled.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop producers of new loads before the server goes away.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting catalogdb v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	m := metrics.NewMetrics()
	runs := loadruns.NewRepository(db.DB)
	// Nothing is loading yet, so any running row belongs to a previous process.
	if _, err := runs.IsRunning(cfg.Tasks.ReleaseAfter); err != nil {
		log.Printf("Failed to check for interrupted loads: %v", err)
	}
	catalogLoader := loader.NewLoader(db, runs, m, cfg.Load.BatchSize)

	cache, err := http_controllers.NewReportCache(cfg.Cache.Size, m)
	if err != nil {
		log.Fatalf("Failed to initialize report cache: %v", err)
	}
	if cache != nil {
		catalogLoader.SetCacheInvalidator(cache)
	} else {
		log.Printf("Report cache disabled")
	}

	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			BooksPath:       cfg.Input.BooksPath,
			ReviewsPath:     cfg.Input.ReviewsPath,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg, catalogLoader)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	} else {
		log.Printf("Task queue disabled - load endpoints are not registered")
	}

	var reloadScheduler *scheduler.ReloadScheduler
	if cfg.Schedule.Enabled {
		if taskClient == nil {
			log.Printf("WARNING: LOAD_SCHEDULE_ENABLED is set but the task queue is disabled; scheduled reloads are off")
		} else {
			reloadScheduler = scheduler.NewReloadScheduler(taskClient, cfg.Schedule.Cron)
			if err := reloadScheduler.Start(context.Background()); err != nil {
				log.Fatalf("Failed to start reload scheduler: %v", err)
			}
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Database: db,
		Reports:  db,
		Cache:    cache,
		Metrics:  m,
		LoadRuns: runs,
		Version:  version,
	}
	// A nil *tasks.Client in the interface field would not compare equal to nil.
	if taskClient != nil {
		routerCfg.LoadQueue = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if reloadScheduler != nil {
			reloadScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
