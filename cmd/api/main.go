package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/jhoicas/smartshelf-api/internal/application/analytics"
	"github.com/jhoicas/smartshelf-api/internal/application/auth"
	"github.com/jhoicas/smartshelf-api/internal/application/inventory"
	"github.com/jhoicas/smartshelf-api/internal/application/purchasing"
	"github.com/jhoicas/smartshelf-api/internal/application/sales"
	"github.com/jhoicas/smartshelf-api/internal/application/usecase"
	"github.com/jhoicas/smartshelf-api/internal/domain/repository"
	infracache "github.com/jhoicas/smartshelf-api/internal/infrastructure/cache"
	"github.com/jhoicas/smartshelf-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/smartshelf-api/internal/infrastructure/pdf"
	"github.com/jhoicas/smartshelf-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/smartshelf-api/internal/interfaces/http"
	"github.com/jhoicas/smartshelf-api/pkg/config"
	"github.com/jhoicas/smartshelf-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// repositories agrupa los adaptadores de persistencia elegidos por DB_DRIVER.
type repositories struct {
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	orders    repository.PurchaseOrderRepository
	sales     repository.SaleRepository
	users     repository.UserRepository
	txRunner  inventory.TxRunner
	close     func()
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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	// Montos como números JSON (no strings).
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer repos.close()

	// Caché del reporte de analítica: solo si REDIS_ADDR está definido.
	var reportCache analytics.ReportCache
	if client := infracache.NewRedisClient(cfg.Redis); client != nil {
		defer client.Close()
		reportCache = infracache.NewRedisReportCache(client, cfg.Analytics.CacheTTL, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de analítica en Redis habilitada")
	}

	adjuster := inventory.NewAdjuster()
	reportUC := analytics.NewReportUseCase(repos.sales, repos.orders, reportCache, cfg.Analytics.TopProducts)
	forecastUC := inventory.NewForecastUseCase(repos.products, repos.sales, cfg.Forecast.WindowDays, cfg.Forecast.HorizonDays)
	productUC := usecase.NewProductUseCase(repos.products, repos.txRunner, adjuster, reportUC)
	supplierUC := usecase.NewSupplierUseCase(repos.suppliers)
	userUC := usecase.NewUserUseCase(repos.users)
	purchasingUC := purchasing.NewUseCase(repos.txRunner, adjuster, repos.orders, repos.products, reportUC)

	// PDF del reporte de ventas, montos con formato es (1.234,50)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(language.Spanish)
	salesUC := sales.NewUseCase(repos.txRunner, adjuster, repos.sales, reportUC, pdfGenerator)

	authUC := auth.NewAuthUseCase(repos.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "SmartShelf API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		SupplierUC:   supplierUC,
		UserUC:       userUC,
		PurchasingUC: purchasingUC,
		SalesUC:      salesUC,
		ReportUC:     reportUC,
		ForecastUC:   forecastUC,
		JWTSecret:    cfg.JWT.Secret,
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

// openRepositories abre PostgreSQL (aplicando migraciones si DB_AUTO_MIGRATE) o el store en memoria.
func openRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &repositories{
			products:  store.Products(),
			suppliers: store.Suppliers(),
			orders:    store.PurchaseOrders(),
			sales:     store.Sales(),
			users:     store.Users(),
			txRunner:  store,
			close:     func() {},
		}, nil
	}

	if cfg.DB.AutoMigrate {
		if err := migrateUp(cfg.DB.ConnectionString(), log); err != nil {
			return nil, err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &repositories{
		products:  postgres.NewProductRepository(pool),
		suppliers: postgres.NewSupplierRepository(pool),
		orders:    postgres.NewPurchaseOrderRepository(pool),
		sales:     postgres.NewSaleRepository(pool),
		users:     postgres.NewUserRepository(pool),
		txRunner:  postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}

func migrateUp(dsn string, log *logger.Logger) error {
	mg, err := postgres.NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer func() {
		if err := mg.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar migrador")
		}
	}()
	if err := mg.Up(); err != nil {
		return err
	}
	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("migraciones aplicadas")
	return nil
}
