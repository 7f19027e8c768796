package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"mediaapi/internal/http/middleware"
	"mediaapi/internal/repository"
	"mediaapi/internal/route"
	"mediaapi/internal/service"
)

// Dependencies are the collaborators the HTTP layer needs.
type Dependencies struct {
	DB            *sql.DB
	Media         service.MediaService
	Languages     route.LanguageRoute
	SalesChannels repository.SalesChannelRepository
	Logger        *zap.Logger
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Dependencies) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	media := app.Group("/media")
	media.Get("/", ListMedia(d.Media))
	media.Post("/upload", UploadMedia(d.Media))
	media.Post("/upload-url", UploadMediaFromURL(d.Media))
	media.Get("/:id", GetMedia(d.Media))
	media.Get("/:id/content", GetMediaContent(d.Media))
	media.Get("/:id/link", GetMediaLink(d.Media))
	media.Delete("/:id", DeleteMedia(d.Media))

	store := app.Group("/store-api", middleware.SalesChannel(d.SalesChannels, d.Logger))
	store.Get("/language", LoadLanguages(d.Languages))
}
