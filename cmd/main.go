package main

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rejigai/commission-tracker/internal/auth"
	"github.com/rejigai/commission-tracker/internal/dashboard"
	"github.com/rejigai/commission-tracker/internal/deal"
	"github.com/rejigai/commission-tracker/internal/preferences"
	"github.com/rejigai/commission-tracker/internal/sheets"
	"github.com/rejigai/commission-tracker/internal/utils/db"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		log.Fatal().Msg("SESSION_SECRET not set")
	}
	passwordHash := os.Getenv("TRACKER_PASSWORD_HASH")
	if passwordHash == "" {
		log.Fatal().Msg("TRACKER_PASSWORD_HASH not set")
	}

	database, err := db.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := deal.Migrate(database); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
	if err := preferences.Migrate(database); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
	if err := auth.Migrate(database); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}

	templates, err := template.ParseGlob("templates/*.html")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}

	dealRepo := deal.NewRepository()
	prefRepo := preferences.NewRepository()

	sheetClient := sheets.NewClient(os.Getenv("SHEETS_URL"), log)
	syncService := sheets.NewService(database, sheetClient, dealRepo, log)

	authHandler := auth.NewHandler(database, passwordHash, []byte(secret), templates)
	dealHandler := deal.NewHandler(database)
	prefHandler := preferences.NewHandler(database)
	syncHandler := sheets.NewHandler(syncService)
	dashHandler := dashboard.NewHandler(database, dealRepo, prefRepo, syncService)

	// Warm the cache on startup; a failure just means the stored list serves
	// until the first successful sync.
	if err := syncService.Sync(context.Background()); err != nil {
		log.Warn().Err(err).Msg("Initial sheet sync failed, serving cached deals")
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", func() {
		_ = syncService.Sync(context.Background())
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule sheet sync")
	}
	scheduler.Start()

	r := mux.NewRouter()

	r.HandleFunc("/login", authHandler.LoginForm).Methods("GET")
	r.HandleFunc("/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("GET")
	r.HandleFunc("/health", healthHandler).Methods("GET")

	r.Handle("/", authHandler.RequirePage(http.RedirectHandler("/api/dashboard", http.StatusSeeOther))).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authHandler.RequireAPI)

	api.HandleFunc("/dashboard", dashHandler.Get).Methods("GET")

	api.HandleFunc("/deals", dealHandler.Create).Methods("POST")
	api.HandleFunc("/deals", dealHandler.List).Methods("GET")
	api.HandleFunc("/deals/{id}", dealHandler.Get).Methods("GET")
	api.HandleFunc("/deals/{id}/churn", dealHandler.SetChurn).Methods("PUT")
	api.HandleFunc("/deals/{id}/churn", dealHandler.ClearChurn).Methods("DELETE")

	api.HandleFunc("/preferences", prefHandler.Get).Methods("GET")
	api.HandleFunc("/preferences/selling-days/{month}", prefHandler.UpdateSellingDays).Methods("PUT")
	api.HandleFunc("/preferences/goals/{month}", prefHandler.UpdateGoal).Methods("PUT")

	api.HandleFunc("/sync", syncHandler.Sync).Methods("POST")
	api.HandleFunc("/sync/status", syncHandler.Status).Methods("GET")

	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("Commission tracker listening")
	if err := http.ListenAndServe(":"+port, c.Handler(r)); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
