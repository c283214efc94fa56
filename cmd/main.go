package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Snapquiz/config"
	_ "github.com/lshigami/Snapquiz/docs" // Swagger docs - generated by swag init
	"github.com/lshigami/Snapquiz/internal/controller"
	"github.com/lshigami/Snapquiz/internal/controller/proxy"
	"github.com/lshigami/Snapquiz/internal/controller/user"
	"github.com/lshigami/Snapquiz/internal/gateway"
	"github.com/lshigami/Snapquiz/internal/imageenc"
	"github.com/lshigami/Snapquiz/internal/logger"
	"github.com/lshigami/Snapquiz/internal/repository"
	"github.com/lshigami/Snapquiz/internal/service"
	"github.com/lshigami/Snapquiz/internal/session"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

const reapInterval = time.Minute

// @title Snapquiz API
// @version 1.0
// @description Turns a photo into a ten-question multiple-choice quiz with a vision model, then runs timed quiz sessions over it.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			NewGinEngine,
		),

		fx.Provide(
			gateway.New,
			func(cfg *config.Config) *imageenc.Encoder {
				return imageenc.NewEncoder(cfg.Image.MaxWidth, cfg.Image.JPEGQuality)
			},
			repository.NewSessionRepository,
		),

		fx.Provide(
			func(gw gateway.ModelGateway, enc *imageenc.Encoder, cfg *config.Config) service.QuizGenerationService {
				return service.NewQuizGenerationService(gw, enc, service.GenerationOptions{
					QuestionCount:  cfg.Quiz.QuestionCount,
					MaxRetries:     cfg.Quiz.MaxRetries,
					RetryDelay:     cfg.Quiz.RetryDelay,
					AttemptTimeout: cfg.Quiz.AttemptTimeout,
				})
			},
			func(repo repository.SessionRepository, cfg *config.Config) service.QuizSessionService {
				timing := session.Timing{AnswerTimeout: cfg.Quiz.AnswerTimeout, FeedbackDelay: cfg.Quiz.FeedbackDelay}
				return service.NewQuizSessionService(repo, timing, cfg.Quiz.SessionTTL)
			},
			service.NewGeminiProxyService,
		),

		fx.Provide(
			func(gs service.QuizGenerationService, ss service.QuizSessionService, cfg *config.Config) *user.QuizController {
				return user.NewQuizController(gs, ss, cfg.Server.UploadMaxBytes)
			},
			proxy.NewGeminiProxyController,
			controller.NewController,
		),

		fx.Invoke(func(cfg *config.Config) { logger.SetLevel(cfg.LogLevel) }),
		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(StartSessionReaper),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown did not complete cleanly")
	}
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer mounts the handlers and ties the HTTP server to the fx lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	ctrl *controller.Controller,
	sessionRepo repository.SessionRepository,
) {
	ctrl.RegisterRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Snapquiz server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := server.Shutdown(shutdownCtx)
			sessionRepo.CloseAll()
			return err
		},
	})
}

// StartSessionReaper evicts sessions that outlived SESSION_TTL.
func StartSessionReaper(lc fx.Lifecycle, svc service.QuizSessionService) {
	stop := make(chan struct{})
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(reapInterval)
				defer ticker.Stop()
				for {
					select {
					case <-stop:
						return
					case now := <-ticker.C:
						svc.EvictExpired(now)
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}
