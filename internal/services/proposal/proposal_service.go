package proposal

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/rusakovm/obmenka-api/internal/config"
	"github.com/rusakovm/obmenka-api/internal/db"
	"github.com/rusakovm/obmenka-api/internal/models"
	"github.com/rusakovm/obmenka-api/internal/utils"
)

// ProposalService представляет сервис для работы с предложениями обмена
type ProposalService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
}

// NewProposalService создает новый экземпляр ProposalService
func NewProposalService(cfg *config.Config) *ProposalService {
	return &ProposalService{
		cfg:        cfg,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
	}
}

// proposalInput представляет данные запроса на создание предложения обмена
type proposalInput struct {
	SenderAdID   string `json:"sender_ad_id" form:"sender_ad_id"`
	ReceiverAdID string `json:"receiver_ad_id" form:"receiver_ad_id"`
	Comment      string `json:"comment" form:"comment"`
}

// statusInput представляет данные запроса на смену статуса предложения
type statusInput struct {
	Status string `json:"status" form:"status"`
}

// ListProposals возвращает предложения обмена текущего пользователя:
// все, где он владеет объявлением-отправителем или получателем.
// По умолчанию — во всех статусах, параметр status фильтрует точно.
func (s *ProposalService) ListProposals(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondProposalError(c, err)
	}

	status := c.Query("status", "all")
	if status != "all" && !models.IsValidStatus(status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Недопустимый статус предложения обмена"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	proposals, err := db.ListProposalsForUser(ctx, userID, status)
	if err != nil {
		log.Printf("Ошибка запроса предложений обмена: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка получения предложений обмена"})
	}

	return c.JSON(fiber.Map{
		"proposals": proposals,
		"count":     len(proposals),
	})
}

// CreateProposalAPI обрабатывает создание предложения обмена через REST API
func (s *ProposalService) CreateProposalAPI(c fiber.Ctx) error {
	proposal, err := s.createProposal(c)
	if err != nil {
		return respondProposalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"proposal": proposal,
	})
}

// CreateProposalWeb обрабатывает создание предложения обмена через веб-форму
// и перенаправляет на список объявлений
func (s *ProposalService) CreateProposalWeb(c fiber.Ctx) error {
	if _, err := s.createProposal(c); err != nil {
		return respondProposalError(c, err)
	}

	return c.Redirect().To("/ad_list/")
}

// UpdateProposalAPI обрабатывает смену статуса предложения через REST API
func (s *ProposalService) UpdateProposalAPI(c fiber.Ctx) error {
	proposal, err := s.updateProposalStatus(c)
	if err != nil {
		return respondProposalError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"proposal_id": proposal.ID,
		"status":      proposal.Status,
	})
}

// UpdateProposalWeb обрабатывает смену статуса предложения через веб-форму
// и перенаправляет на список предложений
func (s *ProposalService) UpdateProposalWeb(c fiber.Ctx) error {
	if _, err := s.updateProposalStatus(c); err != nil {
		return respondProposalError(c, err)
	}

	return c.Redirect().To("/proposals/")
}

// createProposal извлекает данные запроса и создает предложение обмена
func (s *ProposalService) createProposal(c fiber.Ctx) (*models.ExchangeProposal, error) {
	initiatorID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}

	var input proposalInput
	if err := c.Bind().Body(&input); err != nil {
		return nil, &models.ValidationError{Field: "body", Message: "Неверный формат данных"}
	}

	senderAdID, err := uuid.Parse(input.SenderAdID)
	if err != nil {
		return nil, &models.ValidationError{Field: "sender_ad_id", Message: "Неверный формат ID объявления-отправителя"}
	}

	receiverAdID, err := uuid.Parse(input.ReceiverAdID)
	if err != nil {
		return nil, &models.ValidationError{Field: "receiver_ad_id", Message: "Неверный формат ID объявления-получателя"}
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	return db.CreateProposal(ctx, initiatorID, senderAdID, receiverAdID, input.Comment)
}

// updateProposalStatus извлекает данные запроса и выполняет переход статуса
func (s *ProposalService) updateProposalStatus(c fiber.Ctx) (*models.ExchangeProposal, error) {
	actorID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}

	proposalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, &models.ValidationError{Field: "id", Message: "Неверный формат ID предложения обмена"}
	}

	var input statusInput
	if err := c.Bind().Body(&input); err != nil {
		return nil, &models.ValidationError{Field: "body", Message: "Неверный формат данных"}
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	return db.UpdateProposalStatus(ctx, proposalID, actorID, input.Status)
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

// respondProposalError переводит ошибку хранилища в HTTP-ответ
func respondProposalError(c fiber.Ctx, err error) error {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, db.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Объявление или предложение обмена не найдено"})
	case errors.Is(err, db.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "У вас нет прав на эту операцию"})
	case errors.Is(err, db.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Предложение обмена уже принято или отклонено"})
	}

	log.Printf("Внутренняя ошибка при работе с предложением обмена: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Внутренняя ошибка сервера"})
}
