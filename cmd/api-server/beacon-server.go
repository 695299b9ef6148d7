package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"bidbeacon/db"
	"bidbeacon/db/migrations"
	"bidbeacon/internal/handlers"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var store handlers.StorageInterface
	if os.Getenv("STORAGE_BACKEND") == "memory" {
		store = db.NewMemoryStorage()
		log.Print("Using in-memory storage")
	} else {
		connString := os.Getenv("POSTGRES_CONN")
		if connString == "" {
			log.Fatal("POSTGRES_CONN env variable is not set")
		}
		dbConn, err := sqlx.Connect("postgres", connString)
		if err != nil {
			log.Fatalf("Cannot connect to DB: %v", err)
		}
		defer dbConn.Close()

		if err := migrations.Run(dbConn.DB); err != nil {
			log.Fatalf("Migrations failed: %v", err)
		}
		store = db.NewStorage(dbConn)
	}

	h := handlers.NewHandler(store)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)

		r.Get("/emails", h.GetEmailsHandler)
		r.Post("/emails", h.CreateEmailHandler)
		r.Get("/emails/unprocessed", h.GetUnprocessedEmailsHandler)
		r.Get("/emails/{id}", h.GetEmailHandler)
		r.Patch("/emails/{id}", h.UpdateEmailHandler)

		r.Get("/contractors", h.GetContractorsHandler)
		r.Post("/contractors", h.CreateContractorHandler)
		r.Get("/contractors/{id}", h.GetContractorHandler)
		r.Patch("/contractors/{id}", h.UpdateContractorHandler)
		r.Delete("/contractors/{id}", h.DeleteContractorHandler)
		r.Get("/contractors/{contractorId}/bids", h.GetContractorBidsHandler)

		r.Get("/projects", h.GetProjectsHandler)
		r.Post("/projects", h.CreateProjectHandler)
		r.Get("/projects/active", h.GetActiveProjectsHandler)
		r.Get("/projects/{id}", h.GetProjectHandler)
		r.Patch("/projects/{id}", h.UpdateProjectHandler)
		r.Delete("/projects/{id}", h.DeleteProjectHandler)
		r.Get("/projects/{projectId}/bids", h.GetProjectBidsHandler)

		r.Get("/bids", h.GetBidsHandler)
		r.Post("/bids", h.CreateBidHandler)
		r.Get("/bids/{id}", h.GetBidHandler)
		r.Patch("/bids/{id}", h.UpdateBidHandler)
		r.Delete("/bids/{id}", h.DeleteBidHandler)
		r.Get("/bids/{bidId}/classifications", h.GetBidClassificationsHandler)
		r.Get("/bids/{bidId}/documents", h.GetBidDocumentsHandler)
		r.Get("/bids/{bidId}/contract", h.GetBidContractHandler)

		r.Post("/bid-classifications", h.CreateBidClassificationHandler)
		r.Delete("/bid-classifications/{id}", h.DeleteBidClassificationHandler)

		r.Post("/bid-documents", h.CreateBidDocumentHandler)
		r.Delete("/bid-documents/{id}", h.DeleteBidDocumentHandler)

		r.Get("/classifications", h.GetClassificationsHandler)
		r.Post("/classifications", h.CreateClassificationHandler)
		r.Get("/classifications/category/{category}", h.GetClassificationsByCategoryHandler)
		r.Patch("/classifications/{id}", h.UpdateClassificationHandler)
		r.Delete("/classifications/{id}", h.DeleteClassificationHandler)

		r.Get("/contracts", h.GetContractsHandler)
		r.Post("/contracts", h.CreateContractHandler)
		r.Get("/contracts/{id}", h.GetContractHandler)
		r.Patch("/contracts/{id}", h.UpdateContractHandler)
		r.Delete("/contracts/{id}", h.DeleteContractHandler)

		r.Get("/dashboard/summary", h.DashboardSummaryHandler)
		r.Get("/dashboard/email-stats", h.DashboardEmailStatsHandler)

		r.Get("/search/emails", h.SearchEmailsHandler)
		r.Get("/search/contractors", h.SearchContractorsHandler)
		r.Get("/search/projects", h.SearchProjectsHandler)
		r.Get("/search/bids", h.SearchBidsHandler)
	})

	serverAddr := os.Getenv("SERVER_ADDRESS")
	if serverAddr == "" {
		serverAddr = "0.0.0.0:8080"
	}

	log.Printf("Starting server on %s", serverAddr)
	log.Fatal(http.ListenAndServe(serverAddr, r))
}
