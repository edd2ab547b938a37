package ad

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/rusakovm/obmenka-api/internal/config"
	"github.com/rusakovm/obmenka-api/internal/db"
	"github.com/rusakovm/obmenka-api/internal/models"
	"github.com/rusakovm/obmenka-api/internal/utils"
)

// AdService представляет сервис для работы с объявлениями
type AdService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
}

// NewAdService создает новый экземпляр AdService
func NewAdService(cfg *config.Config) *AdService {
	return &AdService{
		cfg:        cfg,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
	}
}

// ListAds возвращает страницу списка объявлений с фильтрами.
// Параметры: search, category, condition, sort, page.
func (s *AdService) ListAds(c fiber.Ctx) error {
	filters := models.AdFilters{
		Search:    c.Query("search"),
		Category:  c.Query("category"),
		Condition: c.Query("condition"),
		Sort:      c.Query("sort", models.SortCreatedDesc),
	}

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil {
		page = 1
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	result, err := db.ListAds(ctx, filters, page)
	if err != nil {
		log.Printf("Ошибка запроса списка объявлений: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка получения объявлений"})
	}

	return c.JSON(result)
}

// GetAd возвращает детальную информацию об объявлении
func (s *AdService) GetAd(c fiber.Ctx) error {
	adID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID объявления"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	ad, err := db.GetAd(ctx, adID)
	if err != nil {
		return respondAdError(c, err)
	}

	return c.JSON(fiber.Map{"ad": ad})
}

// CreateAdAPI обрабатывает создание объявления через REST API
func (s *AdService) CreateAdAPI(c fiber.Ctx) error {
	ad, err := s.createAd(c)
	if err != nil {
		return respondAdError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"ad":      ad,
	})
}

// CreateAdWeb обрабатывает создание объявления через веб-форму
// и перенаправляет на список объявлений
func (s *AdService) CreateAdWeb(c fiber.Ctx) error {
	if _, err := s.createAd(c); err != nil {
		return respondAdError(c, err)
	}

	return c.Redirect().To("/ad_list/")
}

// UpdateAdAPI обрабатывает обновление объявления через REST API
func (s *AdService) UpdateAdAPI(c fiber.Ctx) error {
	ad, err := s.updateAd(c)
	if err != nil {
		return respondAdError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"ad":      ad,
	})
}

// UpdateAdWeb обрабатывает обновление объявления через веб-форму
// и перенаправляет на страницу объявления
func (s *AdService) UpdateAdWeb(c fiber.Ctx) error {
	ad, err := s.updateAd(c)
	if err != nil {
		return respondAdError(c, err)
	}

	return c.Redirect().To("/ad/" + ad.ID.String() + "/")
}

// DeleteAdAPI обрабатывает удаление объявления через REST API
func (s *AdService) DeleteAdAPI(c fiber.Ctx) error {
	if err := s.deleteAd(c); err != nil {
		return respondAdError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Объявление успешно удалено",
	})
}

// DeleteAdWeb обрабатывает удаление объявления через веб-форму
// и перенаправляет на список объявлений
func (s *AdService) DeleteAdWeb(c fiber.Ctx) error {
	if err := s.deleteAd(c); err != nil {
		return respondAdError(c, err)
	}

	return c.Redirect().To("/ad_list/")
}

// createAd извлекает данные запроса и создает объявление
func (s *AdService) createAd(c fiber.Ctx) (*models.Ad, error) {
	actorID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}

	var input models.AdInput
	if err := c.Bind().Body(&input); err != nil {
		return nil, &models.ValidationError{Field: "body", Message: "Неверный формат данных"}
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	return db.CreateAd(ctx, actorID, input)
}

// updateAd извлекает данные запроса и обновляет объявление
func (s *AdService) updateAd(c fiber.Ctx) (*models.Ad, error) {
	actorID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}

	adID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, &models.ValidationError{Field: "id", Message: "Неверный формат ID объявления"}
	}

	var input models.AdInput
	if err := c.Bind().Body(&input); err != nil {
		return nil, &models.ValidationError{Field: "body", Message: "Неверный формат данных"}
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	return db.UpdateAd(ctx, adID, actorID, input)
}

// deleteAd извлекает параметры запроса и удаляет объявление
func (s *AdService) deleteAd(c fiber.Ctx) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}

	adID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return &models.ValidationError{Field: "id", Message: "Неверный формат ID объявления"}
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	return db.DeleteAd(ctx, adID, actorID)
}

// currentUserID возвращает идентификатор авторизованного пользователя
func currentUserID(c fiber.Ctx) (uuid.UUID, error) {
	userID, _ := c.Locals("userID").(string)
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, &models.ValidationError{Field: "user_id", Message: "Неверный формат ID пользователя"}
	}
	return id, nil
}

// respondAdError переводит ошибку хранилища в HTTP-ответ.
// Отсутствие прав и отсутствие записи различаются: 403 против 404.
func respondAdError(c fiber.Ctx, err error) error {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, db.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Объявление не найдено"})
	case errors.Is(err, db.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "У вас нет доступа к этому объявлению"})
	case errors.Is(err, db.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Конфликт состояния"})
	}

	log.Printf("Внутренняя ошибка при работе с объявлением: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Внутренняя ошибка сервера"})
}
