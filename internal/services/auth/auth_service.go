package auth

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/rusakovm/obmenka-api/internal/config"
	"github.com/rusakovm/obmenka-api/internal/db"
	"github.com/rusakovm/obmenka-api/internal/middleware"
	"github.com/rusakovm/obmenka-api/internal/models"
	"github.com/rusakovm/obmenka-api/internal/utils"
)

// AuthService – сервис регистрации и входа пользователей
type AuthService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
}

// NewAuthService – конструктор AuthService
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		cfg:        cfg,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
	}
}

// GetJWTService возвращает JWT-сервис для middleware
func (s *AuthService) GetJWTService() *utils.JWTService {
	return s.jwtService
}

// signupInput представляет данные регистрации
type signupInput struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// loginInput представляет данные входа
type loginInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// SignupAPI регистрирует пользователя и возвращает JWT
func (s *AuthService) SignupAPI(c fiber.Ctx) error {
	user, token, err := s.signup(c)
	if err != nil {
		return respondAuthError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// SignupWeb регистрирует пользователя, ставит cookie с токеном
// и перенаправляет на список объявлений
func (s *AuthService) SignupWeb(c fiber.Ctx) error {
	_, token, err := s.signup(c)
	if err != nil {
		return respondAuthError(c, err)
	}

	setTokenCookie(c, token)
	return c.Redirect().To("/ad_list/")
}

// LoginAPI проверяет учетные данные и возвращает JWT
func (s *AuthService) LoginAPI(c fiber.Ctx) error {
	user, token, err := s.login(c)
	if err != nil {
		return respondAuthError(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// LoginWeb проверяет учетные данные, ставит cookie с токеном
// и перенаправляет на список объявлений
func (s *AuthService) LoginWeb(c fiber.Ctx) error {
	_, token, err := s.login(c)
	if err != nil {
		return respondAuthError(c, err)
	}

	setTokenCookie(c, token)
	return c.Redirect().To("/ad_list/")
}

// Logout сбрасывает cookie с токеном и перенаправляет на список объявлений
func (s *AuthService) Logout(c fiber.Ctx) error {
	c.ClearCookie(middleware.TokenCookie)
	return c.Redirect().To("/ad_list/")
}

// Profile возвращает данные текущего пользователя
func (s *AuthService) Profile(c fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	id, err := uuid.Parse(userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID пользователя"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	user, err := db.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Пользователь не найден"})
		}
		log.Printf("Ошибка запроса пользователя: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Внутренняя ошибка сервера"})
	}

	return c.JSON(fiber.Map{"user": user})
}

// errInvalidCredentials — неверная пара логин/пароль
var errInvalidCredentials = errors.New("неверное имя пользователя или пароль")

// signup извлекает данные запроса и создает пользователя
func (s *AuthService) signup(c fiber.Ctx) (*models.User, string, error) {
	var input signupInput
	if err := c.Bind().Body(&input); err != nil {
		return nil, "", &models.ValidationError{Field: "body", Message: "Неверный формат данных"}
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	if input.Username == "" {
		return nil, "", &models.ValidationError{Field: "username", Message: "Имя пользователя обязательно"}
	}
	if input.Email == "" {
		return nil, "", &models.ValidationError{Field: "email", Message: "Email обязателен"}
	}
	if input.Password == "" {
		return nil, "", &models.ValidationError{Field: "password", Message: "Пароль обязателен"}
	}

	passwordHash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	user, err := db.CreateUser(ctx, input.Username, input.Email, passwordHash)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(user.ID.String())
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// login извлекает данные запроса и проверяет учетные данные
func (s *AuthService) login(c fiber.Ctx) (*models.User, string, error) {
	var input loginInput
	if err := c.Bind().Body(&input); err != nil {
		return nil, "", &models.ValidationError{Field: "body", Message: "Неверный формат данных"}
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	user, err := db.GetUserByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, "", errInvalidCredentials
		}
		return nil, "", err
	}

	if err := utils.CheckPassword(user.PasswordHash, input.Password); err != nil {
		return nil, "", errInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID.String())
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// setTokenCookie ставит cookie с токеном для веб-части
func setTokenCookie(c fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   24 * 60 * 60,
		HTTPOnly: true,
	})
}

// respondAuthError переводит ошибку в HTTP-ответ
func respondAuthError(c fiber.Ctx, err error) error {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, errInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Неверное имя пользователя или пароль"})
	case errors.Is(err, db.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Имя пользователя уже занято"})
	}

	log.Printf("Внутренняя ошибка при авторизации: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Внутренняя ошибка сервера"})
}
