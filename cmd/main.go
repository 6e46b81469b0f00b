package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/aptiscore/config"
	"github.com/lshigami/aptiscore/database"
	_ "github.com/lshigami/aptiscore/docs"
	"github.com/lshigami/aptiscore/internal/auth"
	"github.com/lshigami/aptiscore/internal/controller"
	adminctrl "github.com/lshigami/aptiscore/internal/controller/admin"
	userctrl "github.com/lshigami/aptiscore/internal/controller/user"
	"github.com/lshigami/aptiscore/internal/logger"
	"github.com/lshigami/aptiscore/internal/model"
	"github.com/lshigami/aptiscore/internal/repository"
	"github.com/lshigami/aptiscore/internal/server"
	"github.com/lshigami/aptiscore/internal/service"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title APTIS Submission and Scoring API
// @version 1.0
// @description Exam submission lifecycle, automatic scoring and manual grading of writing and speaking answers.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init("info", false)

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			server.NewGinEngine,
		),

		// Repositories
		fx.Provide(
			repository.NewTestSetRepository,
			repository.NewQuestionRepository,
			repository.NewSubmissionRepository,
			repository.NewAnswerRepository,
			repository.NewUserProgressRepository,
			repository.NewManualGradingRepository,
			repository.NewTestResultRepository,
		),

		// Services
		fx.Provide(
			service.NewScoreConverterService,
			service.NewResultAggregator,
			service.NewGeminiLLMService,
			service.NewTestSetService,
			service.NewSubmissionService,
			service.NewGradingService,
			service.NewDeadlineSweeper,
		),

		// Auth and controllers
		fx.Provide(
			auth.NewTokenService,
			auth.NewMiddleware,
			controller.NewAuthController,
			userctrl.NewTestSetController,
			userctrl.NewSubmissionController,
			adminctrl.NewGradingController,
		),

		fx.Invoke(ConfigureLogger),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(StartDeadlineSweeper),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

// ConfigureLogger re-initialises the global logger once the config is loaded.
func ConfigureLogger(cfg *config.Config) {
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)
}

func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	mw *auth.Middleware,
	controllers server.Controllers,
) {
	server.RegisterRoutes(router, cfg, mw, controllers)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("APTIS scoring API starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

func StartDeadlineSweeper(lc fx.Lifecycle, sweeper *service.DeadlineSweeper) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			sweeper.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
