package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/storeease/storeease/internal/cache"
	"github.com/storeease/storeease/internal/config"
	"github.com/storeease/storeease/internal/database"
	"github.com/storeease/storeease/internal/filestorage"
	"github.com/storeease/storeease/internal/firebase"
	"github.com/storeease/storeease/internal/queue"
	"github.com/storeease/storeease/internal/usecase"
)

// Service is the application layer the handlers call.
type Service interface {
	// Health returns a map of health status information.
	Health() map[string]string

	VerifyIDToken(context.Context, string) (string, error)

	ListStores(context.Context) ([]usecase.Store, error)
	GetStoreByID(context.Context, uuid.UUID) (usecase.Store, error)
	CreateStore(context.Context, usecase.Store) (usecase.Store, error)
	UpdateStore(context.Context, usecase.Store) (usecase.Store, error)
	DeleteStore(context.Context, uuid.UUID) error

	ListBillboards(context.Context, uuid.UUID) ([]usecase.Billboard, error)
	GetBillboardByID(context.Context, uuid.UUID) (usecase.Billboard, error)
	CreateBillboard(context.Context, uuid.UUID, usecase.Billboard) (usecase.Billboard, error)
	UpdateBillboard(context.Context, uuid.UUID, usecase.Billboard) (usecase.Billboard, error)
	DeleteBillboard(context.Context, uuid.UUID, uuid.UUID) (usecase.AssetCleanup, error)

	ListCategories(context.Context, uuid.UUID) ([]usecase.Category, error)
	GetCategoryByID(context.Context, uuid.UUID) (usecase.Category, error)
	CreateCategory(context.Context, uuid.UUID, usecase.Category) (usecase.Category, error)
	UpdateCategory(context.Context, uuid.UUID, usecase.Category) (usecase.Category, error)
	DeleteCategory(context.Context, uuid.UUID, uuid.UUID) error

	ListSizes(context.Context, uuid.UUID) ([]usecase.Size, error)
	GetSizeByID(context.Context, uuid.UUID) (usecase.Size, error)
	CreateSize(context.Context, uuid.UUID, usecase.Size) (usecase.Size, error)
	UpdateSize(context.Context, uuid.UUID, usecase.Size) (usecase.Size, error)
	DeleteSize(context.Context, uuid.UUID, uuid.UUID) error

	ListColors(context.Context, uuid.UUID) ([]usecase.Color, error)
	GetColorByID(context.Context, uuid.UUID) (usecase.Color, error)
	CreateColor(context.Context, uuid.UUID, usecase.Color) (usecase.Color, error)
	UpdateColor(context.Context, uuid.UUID, usecase.Color) (usecase.Color, error)
	DeleteColor(context.Context, uuid.UUID, uuid.UUID) error

	ListProducts(context.Context, usecase.ListProductsOption) ([]usecase.Product, error)
	GetProductByID(context.Context, uuid.UUID) (usecase.Product, error)
	CreateProduct(context.Context, uuid.UUID, usecase.Product) (usecase.Product, error)
	UpdateProduct(context.Context, uuid.UUID, usecase.Product) (usecase.Product, error)
	DeleteProduct(context.Context, uuid.UUID, uuid.UUID) (usecase.AssetCleanup, error)

	UploadAsset(context.Context, string, io.Reader) (usecase.Asset, error)
	DeleteAsset(context.Context, string) (usecase.AssetDeleteResult, error)
}

type Options struct {
	Logger      *slog.Logger
	ServiceName string
	// Local trusts the X-User-Id header instead of verifying a token.
	Local bool
	// RateLimit is the sustained requests per second allowed per caller on
	// mutating routes; zero disables limiting.
	RateLimit float64
}

type Server struct {
	server    Service
	validator *validator.Validate
	logger    *slog.Logger
	opts      Options
}

func NewServer(svc Service, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Server{
		server:    svc,
		validator: validator.New(),
		logger:    opts.Logger,
		opts:      opts,
	}
}

// App owns the HTTP server and every connection it was built with.
type App struct {
	httpServer *http.Server
	closers    []func() error
}

// NewApp wires the providers selected by cfg into a ready to serve App.
func NewApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	app := &App{}

	db, err := database.Open(cfg.DB, logger, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, sqlDB.Close)

	var (
		c  database.Cache
		aq usecase.AssetQueue
		ip usecase.IdentityProvider
	)

	if addr := cfg.Redis.Addr(); addr != "" {
		rc := cache.NewRedis(addr, cfg.Redis.Password, 0)
		if err := rc.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, list cache disabled", slog.String("err", err.Error()))
		} else {
			c = rc
		}
		app.closers = append(app.closers, rc.Close)

		qc := queue.NewClient(addr, cfg.Redis.Password)
		aq = qc
		app.closers = append(app.closers, qc.Close)
	}

	if cfg.FirebaseKeyPath != "" {
		fb, err := firebase.New(ctx, cfg.FirebaseKeyPath)
		if err != nil {
			return nil, errors.Join(err, app.close())
		}
		ip = fb
	}

	as, err := filestorage.New(ctx, cfg)
	if err != nil {
		return nil, errors.Join(err, app.close())
	}

	repo, err := database.New(db, c)
	if err != nil {
		return nil, errors.Join(err, app.close())
	}

	uc := usecase.New(repo, ip, as, aq)

	s := NewServer(uc, Options{
		Logger:      logger,
		ServiceName: cfg.Otel.ServiceName,
		Local:       cfg.IsLocal(),
		RateLimit:   cfg.RateLimit,
	})

	app.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return app, nil
}

func (a *App) Addr() string {
	return a.httpServer.Addr
}

func (a *App) ListenAndServe() error {
	err := a.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests, then closes the connections.
func (a *App) Shutdown(ctx context.Context) error {
	return errors.Join(a.httpServer.Shutdown(ctx), a.close())
}

func (a *App) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}
