package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"resumatch/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers only translate between HTTP and the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, analysisSvc service.AnalysisService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/documents", ListDocuments(docSvc))
	app.Post("/documents", UploadDocument(docSvc))
	app.Get("/documents/:id", GetDocument(docSvc))
	app.Delete("/documents/:id", DeleteDocument(docSvc))
	app.Get("/documents/:id/url", DocumentURL(docSvc))
	app.Post("/documents/:id/parse", ParseStoredResume(analysisSvc))

	app.Post("/resumes/parse", ParseResume(analysisSvc))
	app.Post("/linkedin/parse", ParseLinkedIn(analysisSvc))
	app.Post("/jd/extract", ExtractJobDescription(analysisSvc))
	app.Post("/match", MatchResume(analysisSvc))
}
