package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arttttt/Bealin/config"
	issuerepo "github.com/arttttt/Bealin/internal/issues/repository"
	issueusecase "github.com/arttttt/Bealin/internal/issues/usecase"
	"github.com/arttttt/Bealin/internal/projects/service"
	projectusecase "github.com/arttttt/Bealin/internal/projects/usecase"
	"github.com/arttttt/Bealin/internal/watcher"
)

const (
	ServiceName     = "bealin-api"
	shutdownTimeout = 10 * time.Second
)

// App is the composed API server: config store, use cases, watcher and the
// HTTP listener.
type App struct {
	log        *zap.Logger
	server     *http.Server
	watcher    *watcher.BeadsWatcher
	scheduler  *watcher.Scheduler
	resyncSpec string
	closeStore func() error
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	configService := service.NewConfigService(store)
	projects := projectusecase.NewSet(configService)
	issues := issueusecase.NewSet(configService, issuerepo.NewJSONLRepository())

	w, err := watcher.New(logger, cfg.Watch.Debounce)
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	router := BuildRouter(RouterDeps{
		ServiceName: ServiceName,
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      logger,
		Store:       store,
		Projects:    projects,
		Issues:      issues,
		Watcher:     w,
		Changes:     w,
	})

	return &App{
		log: logger,
		server: &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		watcher:    w,
		scheduler:  watcher.NewScheduler(w, configService, logger),
		resyncSpec: cfg.Watch.ResyncSpec,
		closeStore: closeStore,
	}, nil
}

// Run serves until ctx is cancelled, then shuts the listener down
// gracefully. The watcher is pointed at the active project before the first
// request is accepted.
func (a *App) Run(ctx context.Context) error {
	if err := a.scheduler.Sync(ctx); err != nil {
		a.log.Warn("initial watcher sync failed", zap.Error(err))
	}
	if err := a.scheduler.Start(a.resyncSpec); err != nil {
		return err
	}
	defer a.scheduler.Stop()

	// open event streams only end when their feed closes
	a.server.RegisterOnShutdown(func() { _ = a.watcher.Close() })

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		a.log.Info("shutting down server")
		return a.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close releases the watcher and the config store.
func (a *App) Close() error {
	return errors.Join(a.watcher.Close(), a.closeStore())
}
