package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/jhoicas/boutique-api/internal/application/auth"
	"github.com/jhoicas/boutique-api/internal/application/catalog"
	"github.com/jhoicas/boutique-api/internal/application/finance"
	"github.com/jhoicas/boutique-api/internal/application/inventory"
	"github.com/jhoicas/boutique-api/internal/application/order"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/application/settings"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/internal/infrastructure/cache"
	"github.com/jhoicas/boutique-api/internal/infrastructure/memory"
	"github.com/jhoicas/boutique-api/internal/infrastructure/metrics"
	"github.com/jhoicas/boutique-api/internal/infrastructure/outbox"
	infrapdf "github.com/jhoicas/boutique-api/internal/infrastructure/pdf"
	"github.com/jhoicas/boutique-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/boutique-api/internal/interfaces/http"
	"github.com/jhoicas/boutique-api/pkg/config"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Almacenamiento: PostgreSQL en producción, memoria para demos y desarrollo local.
	var (
		txRunner     ports.TxRunner
		repos        ports.Repos
		settingsRepo repository.SettingsRepository
		userRepo     repository.UserRepository
	)
	switch cfg.App.StorageDriver {
	case "memory":
		store := memory.NewStore()
		txRunner, repos, settingsRepo, userRepo = memory.NewTxRunner(store), store.Repos(), store.Settings(), store.Users()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		if cfg.DB.AutoMigrate {
			if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner, repos = postgres.NewTxRunner(pool), postgres.NewRepos(pool)
		settingsRepo, userRepo = postgres.NewSettingsRepository(pool), postgres.NewUserRepository(pool)
	}

	// Caché de ajustes (opcional). Si Redis no responde se sigue sin caché.
	var settingsCache ports.SettingsCache
	if cfg.Redis.Enabled() {
		rc := cache.NewRedisSettingsCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, ajustes sin caché")
			_ = rc.Close()
		} else {
			settingsCache = rc
			defer rc.Close()
		}
		cancel()
	}

	settingsProvider, err := settings.NewProvider(settingsRepo, settingsCache, entity.StoreSettings{
		ShippingFee:           cfg.Store.ShippingFee,
		FreeShippingThreshold: cfg.Store.FreeShippingThreshold,
		VATRate:               cfg.Store.VATRate,
	}, cfg.Redis.SettingsCacheTTL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("ajustes por defecto inválidos")
	}

	promMetrics := metrics.NewPrometheus()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	if err := authUC.EnsureAdmin(ctx, cfg.JWT.AdminEmail, cfg.JWT.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("alta del administrador inicial")
	}

	catalogUC := catalog.NewCatalogUseCase(repos.Products, repos.Variants)
	purchaseUC := inventory.NewRecordPurchaseUseCase(txRunner, promMetrics, log)
	adjustUC := inventory.NewAdjustStockUseCase(txRunner, repos, log)
	ledgerUC := finance.NewLedgerUseCase(txRunner, repos, purchaseUC, promMetrics, log)

	// PDF: estado de resultados descargable
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	statsUC := finance.NewStatsUseCase(repos, settingsProvider, pdfGenerator, log)
	orderSvc := order.NewService(txRunner, repos, inventory.NewVariantStore(), settingsProvider, promMetrics, log)

	// Outbox: Kafka si hay brokers, si no solo log.
	var publisher outbox.Publisher
	if cfg.Kafka.Enabled() {
		publisher = outbox.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("notificaciones vía Kafka")
	} else {
		publisher = outbox.NewLogPublisher(log)
	}
	dispatcher := outbox.NewDispatcher(repos.Outbox, publisher, outbox.Config{
		PollInterval: cfg.Outbox.PollInterval,
		BatchSize:    cfg.Outbox.BatchSize,
		MaxAttempts:  cfg.Outbox.MaxAttempts,
	}, promMetrics, log)
	dispatcherDone := make(chan struct{})
	go func() {
		defer close(dispatcherDone)
		if err := dispatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("despachador de notificaciones finalizado")
		}
	}()

	if cfg.Webhook.PaymentSecret == "" {
		log.Warn().Msg("PAYMENT_WEBHOOK_SECRET vacío: webhook de pagos deshabilitado")
	}

	app := httpRouter.NewApp(cfg.App.Name, log)

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Boutique API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:        cfg.App.Name,
		Auth:           authUC,
		Catalog:        catalogUC,
		Orders:         orderSvc,
		Purchases:      purchaseUC,
		Adjustments:    adjustUC,
		Ledger:         ledgerUC,
		Stats:          statsUC,
		Settings:       settingsProvider,
		MetricsHandler: promMetrics.Handler(),
		JWTSecret:      cfg.JWT.Secret,
		WebhookSecret:  cfg.Webhook.PaymentSecret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	<-dispatcherDone
	if err := publisher.Close(); err != nil {
		log.Error().Err(err).Msg("cierre del publicador de notificaciones")
	}

	log.Info().Msg("aplicación detenida")
}
