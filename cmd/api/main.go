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

	"github.com/ghulammujtaba153/Dairy/internal/application/inventory"
	"github.com/ghulammujtaba153/Dairy/internal/application/production"
	"github.com/ghulammujtaba153/Dairy/internal/domain/repository"
	"github.com/ghulammujtaba153/Dairy/internal/infrastructure/memory"
	"github.com/ghulammujtaba153/Dairy/internal/infrastructure/metrics"
	"github.com/ghulammujtaba153/Dairy/internal/infrastructure/postgres"
	httpRouter "github.com/ghulammujtaba153/Dairy/internal/interfaces/http"
	"github.com/ghulammujtaba153/Dairy/pkg/config"
	"github.com/ghulammujtaba153/Dairy/pkg/logger"
)

// storage agrupa los puertos de persistencia del backend elegido.
type storage struct {
	tx          inventory.TxRunner
	ledger      repository.LedgerRepository
	movements   repository.StockMovementRepository
	productions repository.ProductionRepository
	db          httpRouter.Pinger
	close       func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == "memory" {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &storage{
			tx:          store,
			ledger:      store.Ledger(),
			movements:   store.Movements(),
			productions: store.Production(),
			db:          store,
			close:       func() {},
		}, nil
	}

	if cfg.Storage.Migrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Zerolog()); err != nil {
			return nil, err
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		tx:          postgres.NewTxRunner(pool),
		ledger:      postgres.NewLedgerRepository(pool),
		movements:   postgres.NewStockMovementRepository(pool),
		productions: postgres.NewProductionRepository(pool),
		db:          pool,
		close:       pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Bool("allow_negative_seed", cfg.Ledger.AllowNegativeSeed).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	reg := metrics.New("dairy")
	engine := inventory.NewEngine(cfg.Ledger.AllowNegativeSeed)
	movementUC := inventory.NewMovementUseCase(
		store.tx, store.ledger, store.movements, engine, reg, log.Zerolog(), cfg.Ledger.RecentLimit,
	)
	replenishmentUC := inventory.NewReplenishmentUseCase(store.ledger)
	productionUC := production.NewUseCase(store.tx, store.productions, engine, reg, log.Zerolog())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog(), reg))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Docs.SwaggerPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.SwaggerPath,
			Path:     "docs",
			Title:    "Dairy Ledger API",
		}))
	} else {
		log.Warn().Str("path", cfg.Docs.SwaggerPath).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", httpRouter.HealthHandler(cfg.App.Name, store.db))
	app.Get("/metrics", adaptor.HTTPHandler(reg.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Movements:     movementUC,
		Replenishment: replenishmentUC,
		Production:    productionUC,
		Validator:     httpRouter.NewValidator(),
		Log:           log.Zerolog(),
		JWTSecret:     cfg.JWT.Secret,
	})
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: /api sin autenticación")
	}

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
