package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jhoicas/pos-bom/docs"
	"github.com/jhoicas/pos-bom/internal/application/auth"
	"github.com/jhoicas/pos-bom/internal/application/bomstock"
	"github.com/jhoicas/pos-bom/internal/application/inventory"
	"github.com/jhoicas/pos-bom/internal/application/pos"
	"github.com/jhoicas/pos-bom/internal/infrastructure/events"
	infrapdf "github.com/jhoicas/pos-bom/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/pos-bom/internal/interfaces/http"
	"github.com/jhoicas/pos-bom/pkg/config"
	"github.com/jhoicas/pos-bom/pkg/jwt"
	"github.com/jhoicas/pos-bom/pkg/logger"
)

// @title        POS BOM API
// @version      1.0
// @description  Validación y descuento de stock por lista de materiales para el punto de venta.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
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
		Str("store", cfg.Store.Driver).
		Bool("bom_validation_default", cfg.POS.BOMValidationDefault).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.close()

	// Eventos de diagnóstico: Kafka si hay brokers, si no solo log
	logSink := events.NewLogSink(log.Component("diagnostics"))
	var diagnostics bomstock.DiagnosticSink = logSink
	var kafkaSink *events.KafkaSink
	if cfg.Kafka.Enabled() {
		kafkaSink = events.NewKafkaSink(events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.DiagnosticsTopic), logSink)
		diagnostics = kafkaSink
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.DiagnosticsTopic).Msg("eventos de diagnóstico en Kafka")
	}

	resolver := bomstock.NewResolver(st.products, st.boms)
	gate := bomstock.NewValidationGate(resolver, st.products, st.outlets, st.stock,
		cfg.POS.BOMValidationDefault, log.Component("bom_gate"))
	executor := bomstock.NewDeductionExecutor(st.tx, resolver, st.products, st.outlets, st.orders,
		bomstock.NewRepoPickingValidator(st.pickings, st.movements), diagnostics,
		bomstock.ExecutorConfig{ProductionLocationName: cfg.POS.ProductionLocationName},
		log.Component("bom_executor"))
	registerMovementUC := inventory.NewRegisterMovementUseCase(st.tx, st.products, st.locations)

	sessionUC := pos.NewSessionUseCase(gate, resolver, st.products, st.outlets)
	submitUC := pos.NewSubmitOrderUseCase(gate, executor, registerMovementUC, st.tx, st.products, st.outlets,
		log.Component("pos_orders"))
	receiptUC := pos.NewReceiptUseCase(st.orders, st.products, st.outlets, st.companies, st.movements,
		infrapdf.NewMarotoReceiptGenerator())
	tokens := jwt.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.Expiration)*time.Minute)
	authUC := auth.NewAuthUseCase(st.users, st.companies, tokens)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS BOM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		RegisterMovement: registerMovementUC,
		Session:          sessionUC,
		Submit:           submitUC,
		Executor:         executor,
		Receipt:          receiptUC,
		Tokens:           tokens,
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
	if kafkaSink != nil {
		if err := kafkaSink.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar productor Kafka")
		}
	}

	log.Info().Msg("aplicación detenida")
}
