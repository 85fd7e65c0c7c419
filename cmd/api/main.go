package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/MultiTienda-api/docs"
	"github.com/jhoicas/MultiTienda-api/internal/app"
	"github.com/jhoicas/MultiTienda-api/internal/application/demo"
	httpRouter "github.com/jhoicas/MultiTienda-api/internal/interfaces/http"
	"github.com/jhoicas/MultiTienda-api/pkg/config"
	"github.com/jhoicas/MultiTienda-api/pkg/logger"
)

// @title                       MultiTienda API
// @version                     1.0
// @description                 Inventario, ventas y alertas de stock para propietarios con varias tiendas.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Str("mode", cfg.Store.Mode).
		Msg("iniciando aplicación")

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ctx := context.Background()
	container, err := app.NewContainer(ctx, cfg, log, reg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar dependencias")
	}
	defer func() {
		if err := container.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar dependencias")
		}
	}()

	if cfg.Store.SeedDemoData {
		if _, err := container.Seeder().Run(ctx, demo.DefaultOptions()); err != nil {
			log.Error().Err(err).Msg("carga de datos demo")
		}
	}

	server := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.Swagger {
		server.Use(swagger.New(swagger.Config{
			BasePath:    "/",
			FilePath:    "./docs/swagger.json",
			FileContent: docs.SwaggerJSON,
			Path:        "docs",
			Title:       docs.SwaggerInfo.Title,
		}))
	}

	httpRouter.Router(server, container.RouterDeps())

	go func() {
		if err := server.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
