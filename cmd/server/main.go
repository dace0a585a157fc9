package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fadilmartias/project-review/internal/bootstrap"
	"github.com/fadilmartias/project-review/internal/config"
	"github.com/fadilmartias/project-review/internal/domain/fiber/handler"
	"github.com/fadilmartias/project-review/internal/logger"
	"github.com/fadilmartias/project-review/internal/middleware"
	"github.com/fadilmartias/project-review/internal/util"
)

func main() {
	envErr := godotenv.Load()

	appConfig := config.LoadAppConfig()
	log := logger.New(appConfig.LogLevel, appConfig.LogFormat)
	defer log.Sync()
	if envErr != nil {
		log.Info("no .env file loaded", zap.Error(envErr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := bootstrap.Build(ctx, log)
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer func() {
		if err := container.Close(); err != nil {
			log.Warn("shutdown", zap.Error(err))
		}
	}()

	uploadConfig := config.LoadUploadConfig()
	authConfig := config.LoadAuthConfig()

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: int(uploadConfig.MaxBytes) + 1<<20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: message}, err)
		},
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(100, 1*time.Minute))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Use(middleware.Authenticate(container.Tokens, container.Revocations, authConfig.CookieName, log))

	handler.NewAuthHandler(container.UserUsecase, authConfig.CookieName, appConfig.IsProduction(), log).RegisterRoutes(app)
	handler.NewProjectHandler(container.ProjectUsecase, container.Exporter, uploadConfig.Dir, uploadConfig.MaxBytes, log).RegisterRoutes(app)
	handler.NewReviewHandler(container.ReviewUsecase, log).RegisterRoutes(app)

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				log.Debug("runtime", zap.Int("goroutines", runtime.NumGoroutine()))
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Warn("shutdown", zap.Error(err))
		}
	}()

	log.Info("server running", zap.String("port", appConfig.Port))
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal("listen", zap.Error(err))
	}
}
