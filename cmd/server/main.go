package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"surveykit/config"
	_ "surveykit/docs"
	"surveykit/internal/app"
	"surveykit/internal/lib/slogcustom"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// @title surveykit API
// @version 1.0
// @description Survey authoring and taking front end for the survey API
// @host localhost:8080
// @BasePath /v1
func main() {
	cfg := config.Load()

	flagPort := pflag.String("port", cfg.HTTPPort, "HTTP listen port")
	flagAPI := pflag.String("api-base-url", cfg.APIBaseURL, "survey API base URL")
	flagLevel := pflag.String("log-level", cfg.LogLevel, "debug, info, warn or error")
	pflag.Parse()

	cfg.HTTPPort = *flagPort
	cfg.APIBaseURL = *flagAPI
	cfg.LogLevel = *flagLevel

	log := slog.New(slogcustom.NewHandler(os.Stdout, slogcustom.ParseLevel(cfg.LogLevel)))
	slog.SetDefault(log)

	log.Info("started", slog.String("api", cfg.APIBaseURL))
	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Error("failed to connect to MongoDB", slog.Any("err", err))
		os.Exit(1)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Error("failed to ping MongoDB", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("connected to MongoDB", slog.String("db", cfg.MongoDB))

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Error("failed to ping Redis", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("connected to Redis", slog.String("addr", cfg.RedisAddr))

	a, err := app.New(cfg, mongoClient.Database(cfg.MongoDB), rdb, log)
	if err != nil {
		log.Error("failed to wire app", slog.Any("err", err))
		os.Exit(1)
	}
	defer a.Close()

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: a.Router(),
	}

	go func() {
		log.Info("server starting", slog.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("ListenAndServe", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", slog.Any("err", err))
	}

	log.Info("server exited")
}
