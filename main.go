package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"invoice-annotator/pkg/annotation"
	"invoice-annotator/pkg/config"
	"invoice-annotator/pkg/handlers"
	"invoice-annotator/pkg/services/ocr"
	"invoice-annotator/pkg/services/upload"
	"invoice-annotator/pkg/storage"
)

func main() {
	cfg := config.Load()

	// Annotation files always go to disk; postgres is optional
	fileRepo, err := storage.NewFileRepository(cfg.AnnotationsDir)
	if err != nil {
		log.Fatalf("Failed to prepare annotations directory: %v", err)
	}
	repos := storage.Multi{fileRepo}

	var pg *storage.PostgresRepository
	if cfg.DatabaseURL != "" {
		pg, err = storage.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		repos = append(repos, pg)
	}

	var recorder upload.InvoiceRecorder
	if pg != nil {
		recorder = pg
	}
	uploads, err := upload.NewService(cfg.UploadDir, recorder)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	var ocrService *ocr.Service
	if cfg.OCREnabled() {
		ocrService = ocr.NewService(cfg.AzureEndpoint, cfg.AzureKey)
	} else {
		log.Printf("AZURE_CV_ENDPOINT/AZURE_CV_KEY not set, title suggestions disabled")
	}

	sessions := annotation.NewRegistry()
	c := cron.New()
	if _, err := c.AddFunc(cfg.SessionSweep, func() {
		if n := sessions.Sweep(cfg.SessionTTL); n > 0 {
			log.Printf("session sweep: closed %d idle session(s)", n)
		}
	}); err != nil {
		log.Fatalf("Invalid SESSION_SWEEP %q: %v", cfg.SessionSweep, err)
	}
	c.Start()
	defer c.Stop()

	h := handlers.New(sessions, uploads, repos, ocrService)
	if pg != nil {
		h.WithInvoices(pg)
	}

	r := gin.Default()
	r.MaxMultipartMemory = cfg.MaxUploadMB << 20
	h.Register(r)

	log.Printf("Listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
