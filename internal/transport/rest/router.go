package rest

import (
	"net/http"
	"os"

	"surveykit/internal/transport/rest/handler"
	"surveykit/internal/transport/rest/middleware"
	"surveykit/internal/transport/ws"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     handler.AuthService
	Sessions        middleware.SessionResolver
	SurveyService   handler.SurveyService
	DraftService    handler.DraftService
	ResponseService handler.ResponseService
	ReportService   handler.ReportService
	WSHub           *ws.Hub
	AllowedOrigins  string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	surveyHandler := handler.NewSurveyHandler(c.SurveyService)
	draftHandler := handler.NewDraftHandler(c.DraftService)
	takeHandler := handler.NewTakeHandler(c.ResponseService)
	reportHandler := handler.NewReportHandler(c.ReportService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.Sessions)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.AllowedOrigins))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	v1.HandleFunc("/templates", handler.Templates).Methods("GET", "OPTIONS")

	// WebSocket routes (public with session id in query param)
	if c.WSHub != nil {
		wsHandler := ws.NewHandler(c.WSHub, c.Sessions, nil)
		v1.HandleFunc("/ws/notifications", wsHandler.NotificationsWS).Methods("GET")
	}

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API docs registered by the docs package
	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, `{"error":"docs not registered"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	// Browsing and taking work with or without a session
	openRoutes := v1.NewRoute().Subrouter()
	openRoutes.Use(authMW.OptionalSession)

	openRoutes.HandleFunc("/surveys", surveyHandler.List).Methods("GET", "OPTIONS")
	openRoutes.HandleFunc("/surveys/{id}", surveyHandler.Get).Methods("GET", "OPTIONS")

	takeRoutes := openRoutes.PathPrefix("/surveys/{id}/take").Subrouter()
	takeRoutes.Use(middleware.DraftKey)

	takeRoutes.HandleFunc("", takeHandler.Begin).Methods("GET", "OPTIONS")
	takeRoutes.HandleFunc("/answers/{position}", takeHandler.SetAnswer).Methods("PUT", "OPTIONS")
	takeRoutes.HandleFunc("/answers/{position}/toggle", takeHandler.Toggle).Methods("POST", "OPTIONS")
	takeRoutes.HandleFunc("/submit", takeHandler.Submit).Methods("POST", "OPTIONS")

	// Session routes
	sessionRoutes := v1.NewRoute().Subrouter()
	sessionRoutes.Use(authMW.RequireSession)

	sessionRoutes.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/me/answered", reportHandler.Answered).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/me/feedback", reportHandler.Feedback).Methods("GET", "OPTIONS")

	// Admin routes
	adminRoutes := v1.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(authMW.RequireSession, middleware.RequireAdmin)

	adminRoutes.HandleFunc("/surveys", surveyHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/mine", surveyHandler.ListMine).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{id}", surveyHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{id}", surveyHandler.Delete).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{id}/responses", reportHandler.Responses).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{id}/responses.csv", reportHandler.ExportCSV).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{id}/charts", reportHandler.Charts).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{id}/user-ratings", reportHandler.UserRatings).Methods("GET", "OPTIONS")

	adminRoutes.HandleFunc("/drafts", draftHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/drafts", draftHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{id}", draftHandler.Get).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{id}", draftHandler.SetMeta).Methods("PATCH", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{id}", draftHandler.Delete).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{id}/publish", draftHandler.Publish).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{id}/questions", draftHandler.AddQuestion).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{id}/questions/{index}", draftHandler.RemoveQuestion).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{id}/questions/{index}", draftHandler.UpdateQuestionField).Methods("PATCH", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{id}/questions/{index}", draftHandler.ReplaceQuestion).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{id}/questions/{index}/options", draftHandler.AddOption).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{id}/questions/{index}/options/{option}", draftHandler.UpdateOption).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{id}/questions/{index}/options/{option}", draftHandler.RemoveOption).Methods("DELETE", "OPTIONS")

	return r
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
			if allowedMethods == "" {
				allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
			}

			allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
			if allowedHeaders == "" {
				allowedHeaders = "Content-Type, Authorization, " + middleware.DraftKeyHeader
			}

			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
			w.Header().Set("Access-Control-Expose-Headers", middleware.DraftKeyHeader)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
