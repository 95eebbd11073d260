// Package server assembles the application: configuration, database, cache,
// storage, queue, services, controllers and the HTTP stack, all constructed
// explicitly at startup and torn down on shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/showroom/app/controllers"
	"github.com/shashiranjanraj/showroom/app/jobs"
	"github.com/shashiranjanraj/showroom/app/repositories"
	"github.com/shashiranjanraj/showroom/app/routes"
	"github.com/shashiranjanraj/showroom/app/services"
	"github.com/shashiranjanraj/showroom/config"
	"github.com/shashiranjanraj/showroom/pkg/auth"
	"github.com/shashiranjanraj/showroom/pkg/cache"
	"github.com/shashiranjanraj/showroom/pkg/database"
	"github.com/shashiranjanraj/showroom/pkg/logger"
	"github.com/shashiranjanraj/showroom/pkg/mail"
	"github.com/shashiranjanraj/showroom/pkg/metrics"
	"github.com/shashiranjanraj/showroom/pkg/middleware"
	"github.com/shashiranjanraj/showroom/pkg/queue"
	"github.com/shashiranjanraj/showroom/pkg/reqid"
	"github.com/shashiranjanraj/showroom/pkg/router"
	"github.com/shashiranjanraj/showroom/pkg/storage"
)

const queueWorkers = 4

// App owns every long-lived resource.
type App struct {
	cfg       *config.Config
	db        *gorm.DB
	store     *cache.Store
	queue     *queue.Manager
	router    *router.Router
	logCloser func()
}

// New builds the whole application graph. Redis is optional: when it is not
// reachable the catalog runs uncached and the queue falls back to the
// in-memory driver.
func New(cfg *config.Config) (*App, error) {
	logClose, err := logger.Setup(logger.Options{
		Env:             cfg.AppEnv(),
		MongoURI:        cfg.LogMongoURI(),
		MongoDatabase:   cfg.LogMongoDatabase(),
		MongoCollection: cfg.LogMongoCollection(),
	})
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	db, err := database.Connect(cfg.DatabaseDriver(), cfg.DatabaseDSN())
	if err != nil {
		logClose()
		return nil, err
	}

	var store *cache.Store
	if s, err := cache.Connect(context.Background(), cfg.RedisAddr(), cfg.RedisPassword()); err != nil {
		logger.Warn("redis unavailable, continuing without cache", "addr", cfg.RedisAddr(), "error", err)
	} else {
		store = s
	}

	var driver queue.Driver = queue.NewMemoryDriver()
	if store != nil {
		driver = queue.NewRedisDriver(store.Client())
	}
	q := queue.NewManager(driver, logger.L)

	mailer := mail.New(mail.SMTP{
		Host:     cfg.MailHost(),
		Port:     cfg.MailPort(),
		Username: cfg.MailUsername(),
		Password: cfg.MailPassword(),
		From:     cfg.MailFrom(),
	})
	jobs.RegisterOrderConfirmation(q, mailer)

	disk, err := storage.FromConfig(cfg)
	if err != nil {
		logClose()
		return nil, err
	}

	tokens := auth.NewManager(cfg.JWTSecret())

	userRepo := repositories.NewUserRepository(db)
	vehicleRepo := repositories.NewVehicleRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)

	pageSize := cfg.PageSize()
	catalogSvc := services.NewCatalogService(vehicleRepo, store, pageSize)
	cartSvc := services.NewCartService(cartRepo, vehicleRepo)
	orderSvc := services.NewOrderService(db, orderRepo, cartRepo, vehicleRepo, userRepo, q)
	reviewSvc := services.NewReviewService(db, reviewRepo, vehicleRepo, orderRepo)
	authSvc := services.NewAuthService(userRepo, tokens)
	userSvc := services.NewUserService(userRepo)

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(120, time.Minute),
	)

	resolve := func(ctx context.Context, userID uint) (string, error) {
		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			return "", err
		}
		return user.Role, nil
	}

	routes.Register(r, routes.Controllers{
		Auth:    controllers.NewAuthController(authSvc),
		Catalog: controllers.NewCatalogController(catalogSvc),
		Cart:    controllers.NewCartController(cartSvc),
		Order:   controllers.NewOrderController(orderSvc, pageSize),
		Review:  controllers.NewReviewController(reviewSvc, pageSize),
		User:    controllers.NewUserController(userSvc, pageSize),
		Upload:  controllers.NewUploadController(disk),
	}, tokens, resolve)

	return &App{
		cfg:       cfg,
		db:        db,
		store:     store,
		queue:     q,
		router:    r,
		logCloser: logClose,
	}, nil
}

// Router exposes the assembled router (route listing, tests).
func (a *App) Router() *router.Router { return a.router }

// Run serves HTTP until ctx is cancelled, then drains in-flight requests and
// releases every resource.
func (a *App) Run(ctx context.Context) error {
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	a.queue.StartWorkers(workerCtx, queueWorkers)

	srv := &http.Server{
		Addr:              ":" + a.cfg.AppPort(),
		Handler:           a.router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", a.cfg.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		stopWorkers()
		a.close()
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)

	stopWorkers()
	a.queue.Wait()
	a.close()

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			logger.Warn("closing redis", "error", err)
		}
	}
	if err := database.Close(a.db); err != nil {
		logger.Warn("closing database", "error", err)
	}
	a.logCloser()
}
