package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/learnsphere/exam-service/internal/config"
	"github.com/learnsphere/exam-service/internal/handlers"
	"github.com/learnsphere/exam-service/internal/services"
	"github.com/learnsphere/exam-service/internal/store"
	"github.com/learnsphere/exam-service/internal/utils"
	"github.com/learnsphere/exam-service/internal/validator"
	"github.com/learnsphere/exam-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogger := utils.ToSlogLogger(logger)

	st := store.New()

	// The Redis mirror is durability, not availability. Run without it
	// rather than refuse to start.
	var mirror store.Mirror
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, running without persistence mirror", "error", err)
	} else {
		defer redisClient.Close()
		rm := store.NewRedisMirror(redisClient, cfg.MirrorKey)
		mirror = rm

		snapshot, found, err := rm.Load(context.Background())
		if err != nil {
			logger.Error("Failed to load mirrored state", "error", err)
		} else if found {
			st.Restore(snapshot)
			logger.Info("Restored state from Redis mirror", "prefix", cfg.MirrorKey)
		}
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	v := validator.New()

	userService := services.NewUserService(st, mirror, slogger, v)
	courseService := services.NewCourseService(st, mirror, publisher, slogger, v)
	examService := services.NewExamService(st, mirror, publisher, slogger, services.ExamServiceOptions{})
	impexService := services.NewImportExportService(st, mirror, slogger, v)

	router := gin.New()
	router.Use(utils.LoggerMiddleware(logger), gin.Recovery())

	hm := handlers.NewHandlerManager(userService, courseService, examService, impexService, logger)
	hm.SetupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting exam service", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}

	if mirror != nil {
		if err := mirror.Save(ctx, st.Snapshot()); err != nil {
			logger.Error("Failed to save final snapshot", "error", err)
		}
	}
}
