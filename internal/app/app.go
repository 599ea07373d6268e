package app

import (
	"log/slog"
	"net/http"

	"surveykit/config"
	"surveykit/internal/cache"
	"surveykit/internal/client"
	"surveykit/internal/repository"
	"surveykit/internal/service"
	"surveykit/internal/transport/rest"
	"surveykit/internal/transport/ws"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// App holds the wired stores, services and notification hub
type App struct {
	API          client.SurveyAPI
	DraftRepo    repository.DraftRepo
	DraftCache   cache.DraftCache
	SessionCache cache.SessionCache

	Auth      *service.AuthService
	Surveys   *service.SurveyService
	Drafts    *service.DraftService
	Responses *service.ResponseService
	Reports   *service.ReportService

	Hub *ws.Hub

	cfg *config.Config
}

// New wires every component on top of open mongo and redis clients
func New(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log *slog.Logger) (*App, error) {
	order, err := service.ParseRespondentOrder(cfg.RespondentOrder)
	if err != nil {
		return nil, err
	}

	a := &App{
		API:          client.NewAPIClient(cfg.APIBaseURL, cfg.APITimeout, log),
		DraftRepo:    repository.NewDraftRepo(db),
		DraftCache:   cache.NewDraftCache(rdb, cfg.DraftTTL),
		SessionCache: cache.NewSessionCache(rdb, cfg.SessionTTL),
		Hub:          ws.NewHub(log.With(slog.String("component", "ws"))),
		cfg:          cfg,
	}

	// wsHub implements service.Notifier
	a.Auth = service.NewAuthService(a.API, a.SessionCache, cfg.SessionTTL, log)
	a.Surveys = service.NewSurveyService(a.API, a.Hub, log)
	a.Drafts = service.NewDraftService(a.DraftRepo, a.API, a.Hub, log)
	a.Responses = service.NewResponseService(a.API, a.DraftCache, a.Hub, cfg.StrictAnswers, log)
	a.Reports = service.NewReportService(a.API, a.Hub, order, log)
	return a, nil
}

// Router builds the HTTP handler
func (a *App) Router() http.Handler {
	return rest.NewRouter(&rest.Container{
		AuthService:     a.Auth,
		Sessions:        a.Auth,
		SurveyService:   a.Surveys,
		DraftService:    a.Drafts,
		ResponseService: a.Responses,
		ReportService:   a.Reports,
		WSHub:           a.Hub,
		AllowedOrigins:  a.cfg.CORSAllowedOrigins,
	})
}

// Close stops the notification hub
func (a *App) Close() {
	a.Hub.Close()
}
