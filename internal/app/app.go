package app

import (
	"context"
	"errors"
	"fmt"
	"goalTracker/internal/config"
	"goalTracker/internal/handlers"
	"goalTracker/internal/logger"
	"goalTracker/internal/middleware"
	"goalTracker/internal/repository/kv"
	"goalTracker/internal/service"
	"goalTracker/internal/storage"
	"goalTracker/internal/view"
	"goalTracker/internal/worker"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	store     *service.GoalStore
	worker    *worker.RolloverWorker
	shutdowns []func() // выполняются в обратном порядке
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

// Init wires storage, the goal store, templates and the router. On error
// everything opened so far is closed again.
func (a *App) Init(ctx context.Context) (*App, error) {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return nil, fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	backend, err := kv.Open(ctx, a.config)
	if err != nil {
		a.Shutdown()
		return nil, fmt.Errorf("инициализация хранилища: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		if err := backend.Close(); err != nil {
			logger.Error("Ошибка закрытия хранилища", err)
		}
	})

	adapter := storage.New(backend, storage.Keys{
		Active:    a.config.Storage.ActiveKey,
		Completed: a.config.Storage.CompletedKey,
	})
	a.store = service.NewGoalStore(adapter)
	if _, err := a.store.Initialize(ctx); err != nil {
		a.Shutdown()
		return nil, fmt.Errorf("загрузка целей: %w", err)
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		a.Shutdown()
		return nil, err
	}

	interval := a.config.Worker.RolloverInterval
	a.worker = worker.NewRolloverWorker(a.store, &interval)

	a.router = a.newRouter(handlers.NewGoalHandler(a.store, renderer))
	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      otelhttp.NewHandler(a.router, "goal-tracker"),
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	return a, nil
}

func (a *App) newRouter(h *handlers.GoalHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Timeout(a.config.Server.RequestTimeout))
	r.Use(middleware.RateLimit(a.config.Server.RateLimit))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.config.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	h.Register(r)
	return r
}

func (a *App) Router() http.Handler {
	return a.router
}

// Run serves HTTP and the rollover worker until ctx is cancelled or the
// server fails, then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	defer a.Shutdown()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP сервер: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		a.worker.Start(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Остановка сервера...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("остановка HTTP сервера: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func (a *App) Shutdown() {
	for _, fn := range slices.Backward(a.shutdowns) {
		fn()
	}
	a.shutdowns = nil
}
