package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"ims/ims/archive"
	"ims/ims/cmd"
	"ims/ims/monitoring"
	"ims/ims/pdf"
	"ims/ims/reports"
	"ims/ims/reports/signature"
	"ims/ims/schema/migrations"
	"ims/ims/services"
	"ims/ims/services/auth"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Config struct {
	PostgresUri string `env:"DB_URI,notEmpty,required"`
	Logfile     string `env:"LOGFILE,notEmpty" envDefault:"ims_backend.log"`

	Port        int `env:"PORT" envDefault:"8000"`
	MetricsPort int `env:"METRICS_PORT" envDefault:"2112"`

	ArchivePath string `env:"REPORT_ARCHIVE_PATH" envDefault:"report_archive.db"`
	LogoPath    string `env:"LETTERHEAD_LOGO_PATH"`

	Auth struct {
		ServerUrl string `env:"SERVER_URL,notEmpty,required"`
	} `envPrefix:"AUTH_"`
}

func main() {
	cmd.LoadEnvFile()

	var config Config
	if err := env.Parse(&config); err != nil {
		log.Fatalf("error parsing config: %v", err)
	}

	logFile, err := os.OpenFile(config.Logfile, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer logFile.Close()

	cmd.InitLogging(logFile)

	db := cmd.OpenDB(config.PostgresUri)

	migrations.RunMigrations(db)

	store, err := archive.Open(config.ArchivePath)
	if err != nil {
		log.Fatalf("error opening report archive: %v", err)
	}
	defer store.Close()

	signatures := signature.NewResolver(db, signature.DefaultHODFallback)
	generator := reports.NewGenerator(db, signatures, pdf.Assets{LogoPath: config.LogoPath})

	sessions := auth.NewSessionClient(config.Auth.ServerUrl)

	backend := services.NewBackend(db, generator, store, sessions)

	monitoring.ExposeBackendMetrics(config.MetricsPort)

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Mount("/api/v1", backend.Routes())

	slog.Info("starting server", "port", config.Port)
	err = http.ListenAndServe(fmt.Sprintf(":%d", config.Port), r)
	if err != nil {
		log.Fatalf("listen and serve returned error: %v", err.Error())
	}
}
