package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"surveykit/config"
	"surveykit/internal/lib/slogcustom"
	"surveykit/internal/model"
	"surveykit/internal/repository"
	"surveykit/internal/service"

	"github.com/spf13/pflag"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// seeds one author draft per built-in template
func main() {
	cfg := config.Load()

	flagOwner := pflag.String("owner", "", "user id that owns the seeded drafts")
	flagMongo := pflag.String("mongo-uri", cfg.MongoURI, "MongoDB connection URI")
	pflag.Parse()

	log := slog.New(slogcustom.NewHandler(os.Stdout, slogcustom.ParseLevel(cfg.LogLevel)))

	if *flagOwner == "" {
		log.Error("--owner is required")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(*flagMongo))
	if err != nil {
		log.Error("failed to connect to MongoDB", slog.Any("err", err))
		os.Exit(1)
	}
	defer client.Disconnect(ctx)

	drafts := repository.NewDraftRepo(client.Database(cfg.MongoDB))

	for _, t := range service.Templates() {
		survey := t.Survey
		survey.Owner = *flagOwner

		id, err := drafts.Create(ctx, &model.SurveyDraft{
			Owner:    *flagOwner,
			Template: t.Key,
			Survey:   survey,
		})
		if err != nil {
			log.Error("failed to insert draft", slog.String("template", t.Key), slog.Any("err", err))
			os.Exit(1)
		}
		log.Info("draft seeded", slog.String("template", t.Key), slog.String("id", id), slog.Int("questions", len(survey.Questions)))
	}
}
