package proposal

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rusakovm/obmenka-api/internal/middleware"
)

// SetupRoutes настраивает маршруты для предложений обмена
func (s *ProposalService) SetupRoutes(app *fiber.App) {
	authRequired := middleware.AuthMiddleware(s.jwtService)

	// Веб-маршруты (требуют авторизации)
	web := app.Group("/proposals")
	web.Use(authRequired)

	web.Get("/", s.ListProposals)
	web.Post("/:id/update/", s.UpdateProposalWeb)

	app.Post("/create-exchange-proposal/", s.CreateProposalWeb, authRequired)

	// REST API
	api := app.Group("/api/proposals")
	api.Use(authRequired)

	api.Get("/", s.ListProposals)
	api.Post("/", s.CreateProposalAPI)
	api.Put("/:id/status", s.UpdateProposalAPI)
}
