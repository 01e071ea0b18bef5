package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-outreach/internal/infra/database"
	"github.com/xavierca1/ligue-outreach/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-outreach/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-outreach/internal/infra/localcache"
	"github.com/xavierca1/ligue-outreach/internal/infra/mail"
	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		getenv("RABBITMQ_USER", "user"),
		getenv("RABBITMQ_PASS", "password"),
		getenv("RABBITMQ_HOST", "localhost"),
		getenv("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	cache, err := localcache.Open(getenv("LOCAL_CACHE_DIR", "./data/cache"))
	if err != nil {
		log.Fatal(err)
	}
	defer cache.Close()

	// 1. Repositórios (Remote Store)
	businessRepo := database.NewBusinessRepository(db)
	unmatchedRepo := database.NewUnmatchedRepository(db)
	remoteStore := database.NewStore(db)

	// Store ativo da sessão: Remote por padrão; STORE_MODE=local mantém
	// o pipeline rodando em cima do cache (pré-migração).
	var activeStore usecase.PipelineStore = remoteStore
	if os.Getenv("STORE_MODE") == "local" {
		activeStore = cache
	}

	// 2. Adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), 587,
		os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		getenv("MAIL_FROM", "outreach@liguemedicina.com"),
	)

	// 3. UseCases
	ingestUC := usecase.NewIngestEmailUseCase(businessRepo, activeStore, unmatchedRepo)
	pipelineUC := usecase.NewStagePipeline(activeStore)
	migrateUC := usecase.NewMigrateLocalDataUseCase(cache, remoteStore)
	outreachUC := usecase.NewSendOutreachUseCase(businessRepo, activeStore, mailSender, mailSender.From)

	// 4. Worker (consome o webhook de e-mail enfileirado)
	worker := queue.NewWorker(rabbitMQ.Ch, ingestUC)
	go worker.Start(queue.QueueName)

	// 5. Handlers
	inboundHandler := handlers.NewInboundEmailHandler(producer)
	businessHandler := handlers.NewBusinessHandler(businessRepo, activeStore)
	stageHandler := handlers.NewStageHandler(pipelineUC)
	emailHandler := handlers.NewEmailHandler(ingestUC, outreachUC)
	migrationHandler := handlers.NewMigrationHandler(migrateUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-User-ID"},
	}))

	r.Post("/webhook/email", inboundHandler.Handle)

	r.Get("/businesses", businessHandler.HandleList)
	r.Post("/businesses/import", businessHandler.HandleImport)
	r.Post("/businesses/{id}/star", businessHandler.HandleToggleStar)
	r.Get("/businesses/{id}/thread", businessHandler.HandleGetThread)
	r.Get("/businesses/{id}/stage", stageHandler.HandleGetStage)
	r.Put("/businesses/{id}/stage", stageHandler.HandleSetStage)
	r.Get("/stages", stageHandler.HandleListStages)

	r.Get("/emails/unmatched", emailHandler.HandleListUnmatched)
	r.Post("/emails/rematch", emailHandler.HandleRematch)
	r.Post("/outreach/send", emailHandler.HandleSendOutreach)

	r.Get("/migration/status", migrationHandler.HandleStatus)
	r.Post("/migration/run", migrationHandler.HandleRun)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + getenv("PORT", "8080")
	log.Printf("🔥 Server LigueReach rodando na porta %s", port)
	http.ListenAndServe(port, r)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
