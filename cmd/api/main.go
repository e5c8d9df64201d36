package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Videoclub-api/internal/application/rental"
	"github.com/jhoicas/Videoclub-api/internal/application/usecase"
	"github.com/jhoicas/Videoclub-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Videoclub-api/internal/infrastructure/sqldb"
	httpRouter "github.com/jhoicas/Videoclub-api/internal/interfaces/http"
	"github.com/jhoicas/Videoclub-api/pkg/config"
	"github.com/jhoicas/Videoclub-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	strategy, err := rental.ParseStrategy(cfg.Rental.Strategy)
	if err != nil {
		log.Fatal().Err(err).Msg("estrategia de alquiler")
	}

	ctx := context.Background()
	db, err := sqldb.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer db.Close()

	if err := sqldb.EnsureSchema(ctx, db, strategy.RequiresOpenRentalIndex()); err != nil {
		log.Fatal().Err(err).Msg("esquema")
	}

	observer := metrics.NewPrometheusObserver()

	txRunner := sqldb.NewTxRunner(db)
	allocationEngine := rental.NewAllocationEngine(txRunner, rental.Config{
		Strategy:     strategy,
		MaxAttempts:  cfg.Rental.MaxAttempts,
		RetryBackoff: time.Duration(cfg.Rental.RetryBackoffMs) * time.Millisecond,
	}, log.With().Str("component", "rental").Logger()).WithObserver(observer)
	returnUC := rental.NewReturnUseCase(txRunner)

	searchUC := usecase.NewSearchUseCase(
		sqldb.NewSearchRepository(db.SQL, db.Dialect),
		sqldb.NewStoreRepository(db.SQL, db.Dialect),
		sqldb.NewCustomerRepository(db.SQL, db.Dialect),
		sqldb.NewStaffRepository(db.SQL, db.Dialect),
		cfg.Search.MaxResults,
	).WithObserver(observer)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.With().Str("component", "http").Logger(), observer))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Videoclub API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := db.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "rental_strategy": allocationEngine.Strategy()})
	})
	app.Get("/metrics", adaptor.HTTPHandler(observer.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Allocator: allocationEngine,
		Returner:  returnUC,
		Search:    searchUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
