package ad

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rusakovm/obmenka-api/internal/middleware"
)

// SetupRoutes настраивает маршруты для объявлений
func (s *AdService) SetupRoutes(app *fiber.App) {
	authRequired := middleware.AuthMiddleware(s.jwtService)

	// Публичные веб-маршруты: список и детальная страница
	app.Get("/", s.ListAds)
	app.Get("/ad_list/", s.ListAds)
	app.Get("/ad/:id/", s.GetAd)

	// Веб-формы: после успешного изменения — редирект
	app.Post("/create-ad/", s.CreateAdWeb, authRequired)
	app.Post("/update-ad/:id/", s.UpdateAdWeb, authRequired)
	app.Post("/delete-ad/:id/", s.DeleteAdWeb, authRequired)

	// REST API (требует авторизации)
	api := app.Group("/api/ads")
	api.Use(authRequired)

	api.Get("/", s.ListAds)
	api.Post("/", s.CreateAdAPI)
	api.Get("/:id", s.GetAd)
	api.Put("/:id", s.UpdateAdAPI)
	api.Delete("/:id", s.DeleteAdAPI)
}
