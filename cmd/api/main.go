package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/confexa/confexa-backoffice/internal/infra/cache"
	"github.com/confexa/confexa-backoffice/internal/infra/database"
	"github.com/confexa/confexa-backoffice/internal/infra/http/handlers"
	"github.com/confexa/confexa-backoffice/internal/infra/http/middleware"
	"github.com/confexa/confexa-backoffice/internal/infra/integration/bucket"
	"github.com/confexa/confexa-backoffice/internal/infra/localstore"
	"github.com/confexa/confexa-backoffice/internal/infra/mail"
	"github.com/confexa/confexa-backoffice/internal/infra/queue"
	"github.com/confexa/confexa-backoffice/internal/infra/repository"
	"github.com/confexa/confexa-backoffice/internal/infra/worker"
	"github.com/confexa/confexa-backoffice/internal/usecase"
)

func main() {
	godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. Banco remoto (Supabase Postgres). Se estiver fora do ar o serviço
	// sobe mesmo assim: as escritas vão para o store local.
	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Printf("⚠️ Banco remoto indisponível na subida: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	// 2. Store local de contingência (SQLite).
	localPath := os.Getenv("LOCALSTORE_PATH")
	if localPath == "" {
		localPath = "confexa_local.db"
	}
	local, err := localstore.Open(localPath)
	if err != nil {
		log.Fatalf("❌ Falha ao abrir store local %s: %v", localPath, err)
	}
	defer local.Close()

	guard := &repository.Guard{Local: local}

	// 3. RabbitMQ (notificações). Opcional: sem fila o site continua, só
	// não avisa a equipe comercial por e-mail.
	var producer usecase.QueueProducerInterface
	rabbit, err := queue.NewRabbitMQ(
		getEnv("RABBITMQ_USER", "guest"),
		getEnv("RABBITMQ_PASS", "guest"),
		getEnv("RABBITMQ_HOST", "localhost"),
		getEnv("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Printf("⚠️ RabbitMQ indisponível: %v", err)
		rabbit = nil
	} else {
		defer rabbit.Conn.Close()
		defer rabbit.Ch.Close()
		producer = queue.NewProducer(rabbit.Conn, rabbit.Ch)
	}

	// 4. Repositórios
	leadRepo := database.NewLeadRepository(db)
	eventRepo := database.NewLeadEventRepository(db)
	newsRepo := database.NewNewsRepository(db)
	jobRepo := database.NewJobRepository(db)
	productRepo := database.NewProductRepository(db)
	showroomRepo := database.NewShowroomRepository(db)
	messageRepo := database.NewMessageRepository(db)

	// 5. Bucket de imagens (Supabase Storage)
	var storage usecase.ObjectStorage
	if url := os.Getenv("SUPABASE_STORAGE_URL"); url != "" {
		storage = bucket.NewClient(url, os.Getenv("SUPABASE_SERVICE_KEY"), getEnv("SUPABASE_BUCKET", "confexa-media"))
	}

	// 6. Notificador da equipe comercial + worker da fila
	if rabbit != nil {
		mailSender := mail.NewEmailSender(
			os.Getenv("MAIL_HOST"), 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
			getEnv("SALES_TEAM_EMAIL", "comercial@confexa.com.br"),
		)
		notifyWorker := queue.NewWorker(rabbit.Ch, mailSender)
		go notifyWorker.Start(queue.QueueName)
	}

	// 7. Monitor do store local (gauge de escritas represadas)
	monitor := worker.NewFallbackMonitor(local)
	go monitor.Start(ctx)

	// 8. Cache de leitura do site público
	readCache := cache.New(cache.DefaultTTL)

	// 9. UseCases
	pipelineUC := usecase.NewLoadPipelineUseCase(leadRepo)
	updateStatusUC := usecase.NewUpdateLeadStatusUseCase(leadRepo, eventRepo, guard)
	markWonUC := usecase.NewMarkLeadWonUseCase(leadRepo, eventRepo, guard, producer)
	ledgerUC := usecase.NewComputeLedgerUseCase(leadRepo)
	quoteUC := usecase.NewSubmitQuoteUseCase(leadRepo, guard, producer)
	messageUC := usecase.NewSubmitMessageUseCase(messageRepo, jobRepo, guard, producer)
	createNewsUC := usecase.NewCreateNewsUseCase(newsRepo, storage, guard)

	// 10. Handlers
	catalogHandler := handlers.NewCatalogHandler(newsRepo, jobRepo, productRepo, showroomRepo, readCache, guard)
	formsHandler := handlers.NewFormsHandler(quoteUC, messageUC)
	pipelineHandler := handlers.NewPipelineHandler(pipelineUC, updateStatusUC, markWonUC, leadRepo, eventRepo, guard)
	ledgerHandler := handlers.NewLedgerHandler(ledgerUC)
	newsHandler := handlers.NewNewsHandler(createNewsUC, newsRepo, guard, readCache)
	jobHandler := handlers.NewJobHandler(jobRepo, guard, readCache)
	productHandler := handlers.NewProductHandler(productRepo, guard, readCache)
	showroomHandler := handlers.NewShowroomHandler(showroomRepo, guard, readCache)
	messageHandler := handlers.NewMessageHandler(messageRepo, guard)
	uploadHandler := handlers.NewUploadHandler(storage)
	healthHandler := handlers.NewHealthHandler(db, rabbit, storage, local)

	// 11. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	// Site público
	r.Get("/news", catalogHandler.HandleListNews)
	r.Get("/news/{id}", catalogHandler.HandleGetNews)
	r.Get("/jobs", catalogHandler.HandleListJobs)
	r.Get("/products", catalogHandler.HandleListProducts)
	r.Get("/showroom", catalogHandler.HandleListShowroom)

	r.Post("/quote", formsHandler.SubmitQuote)
	r.Post("/contact", formsHandler.SubmitContact)
	r.Post("/suggestions", formsHandler.SubmitSuggestion)
	r.Post("/jobs/{id}/apply", formsHandler.SubmitApplication)

	// Painel admin (token bearer)
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.AdminAuth(os.Getenv("ADMIN_TOKEN")))

		r.Get("/pipeline", pipelineHandler.HandleLoad)
		r.Patch("/leads/{id}/status", pipelineHandler.HandleUpdateStatus)
		r.Post("/leads/{id}/win", pipelineHandler.HandleWin)
		r.Delete("/leads/{id}", pipelineHandler.HandleDelete)
		r.Get("/leads/{id}/events", pipelineHandler.HandleEvents)

		r.Get("/ledger", ledgerHandler.HandleGet)
		r.Get("/ledger/export", ledgerHandler.HandleExport)

		r.Get("/news", newsHandler.HandleList)
		r.Post("/news", newsHandler.HandleCreate)
		r.Put("/news/{id}", newsHandler.HandleUpdate)
		r.Delete("/news/{id}", newsHandler.HandleDelete)

		r.Get("/jobs", jobHandler.HandleList)
		r.Post("/jobs", jobHandler.HandleCreate)
		r.Put("/jobs/{id}", jobHandler.HandleUpdate)
		r.Delete("/jobs/{id}", jobHandler.HandleDelete)

		r.Get("/products", productHandler.HandleList)
		r.Post("/products", productHandler.HandleCreate)
		r.Put("/products/{id}", productHandler.HandleUpdate)
		r.Delete("/products/{id}", productHandler.HandleDelete)

		r.Get("/showroom", showroomHandler.HandleList)
		r.Post("/showroom", showroomHandler.HandleCreate)
		r.Put("/showroom/{id}", showroomHandler.HandleUpdate)
		r.Delete("/showroom/{id}", showroomHandler.HandleDelete)

		r.Get("/messages", messageHandler.HandleList)
		r.Post("/messages/{id}/read", messageHandler.HandleMarkRead)
		r.Delete("/messages/{id}", messageHandler.HandleDelete)

		r.Post("/uploads", uploadHandler.Handle)
	})

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + getEnv("PORT", "8080")
	log.Printf("🔥 Confexa Backoffice rodando na porta %s", port)
	if err := http.ListenAndServe(port, r); err != nil {
		log.Fatalf("❌ Servidor caiu: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
