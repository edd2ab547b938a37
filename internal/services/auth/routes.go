package auth

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rusakovm/obmenka-api/internal/middleware"
)

// SetupRoutes регистрирует маршруты в Fiber
func (s *AuthService) SetupRoutes(app *fiber.App) {
	// Веб-формы регистрации и входа
	app.Post("/signup/", s.SignupWeb)
	app.Post("/login/", s.LoginWeb)
	app.Post("/logout/", s.Logout)

	// JSON API
	api := app.Group("/api/auth")
	api.Post("/signup", s.SignupAPI)
	api.Post("/login", s.LoginAPI)

	// Профиль текущего пользователя
	app.Get("/api/profile", s.Profile, middleware.AuthMiddleware(s.jwtService))
}
