package cloudinary

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rusakovm/obmenka-api/internal/middleware"
)

// SetupRoutes настраивает маршруты загрузки изображений
func (s *CloudinaryService) SetupRoutes(app *fiber.App) {
	api := app.Group("/api/upload")
	api.Use(middleware.AuthMiddleware(s.jwtService))

	// Маршрут для получения параметров загрузки
	api.Get("/params", s.GenerateUploadParams)
}
