package db

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rusakovm/obmenka-api/internal/models"
)

// CreateProposal создает предложение обмена. Инициатор обязан владеть
// объявлением-отправителем; оба объявления должны существовать.
// Начальный статус всегда pending. Обмен между объявлениями одного
// владельца не запрещен, повторные предложения не схлопываются.
func CreateProposal(ctx context.Context, initiatorID, senderAdID, receiverAdID uuid.UUID, comment string) (*models.ExchangeProposal, error) {
	senderOwnerID, err := adOwner(ctx, senderAdID)
	if err != nil {
		return nil, err
	}
	if senderOwnerID != initiatorID {
		return nil, ErrForbidden
	}

	receiverOwnerID, err := adOwner(ctx, receiverAdID)
	if err != nil {
		return nil, err
	}

	proposal := &models.ExchangeProposal{
		ID:             uuid.New(),
		SenderAdID:     senderAdID,
		ReceiverAdID:   receiverAdID,
		SenderUserID:   senderOwnerID,
		ReceiverUserID: receiverOwnerID,
		Comment:        comment,
		Status:         models.StatusPending,
	}

	err = Pool.QueryRow(ctx, `
		INSERT INTO exchange_proposals (id, sender_ad_id, receiver_ad_id, sender_user_id, receiver_user_id, comment, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, proposal.ID, proposal.SenderAdID, proposal.ReceiverAdID,
		proposal.SenderUserID, proposal.ReceiverUserID, proposal.Comment, proposal.Status).Scan(&proposal.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("ошибка при создании предложения обмена: %w", err)
	}

	return proposal, nil
}

// GetProposal возвращает предложение обмена по идентификатору
func GetProposal(ctx context.Context, proposalID uuid.UUID) (*models.ExchangeProposal, error) {
	var proposal models.ExchangeProposal
	err := Pool.QueryRow(ctx, `
		SELECT id, sender_ad_id, receiver_ad_id, sender_user_id, receiver_user_id, comment, status, created_at
		FROM exchange_proposals
		WHERE id = $1
	`, proposalID).Scan(
		&proposal.ID,
		&proposal.SenderAdID,
		&proposal.ReceiverAdID,
		&proposal.SenderUserID,
		&proposal.ReceiverUserID,
		&proposal.Comment,
		&proposal.Status,
		&proposal.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при запросе предложения обмена: %w", err)
	}

	return &proposal, nil
}

// UpdateProposalStatus выполняет переход статуса pending → accepted|rejected.
// Переход разрешен владельцу объявления-получателя или администратору
// и применяется ровно один раз: из конечного статуса возврата нет.
func UpdateProposalStatus(ctx context.Context, proposalID, actorID uuid.UUID, newStatus string) (*models.ExchangeProposal, error) {
	if !models.IsTransitionStatus(newStatus) {
		return nil, &models.ValidationError{Field: "status", Message: "Недопустимый статус предложения обмена"}
	}

	proposal, err := GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	// Принять или отклонить предложение может только владелец
	// объявления-получателя либо администратор
	if proposal.ReceiverUserID != actorID {
		isAdmin, err := IsAdmin(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if !isAdmin {
			return nil, ErrForbidden
		}
	}

	// Условный UPDATE сериализует конкурирующие переходы: из двух
	// одновременных запросов применится ровно один, второй получит конфликт
	tag, err := Pool.Exec(ctx, `
		UPDATE exchange_proposals
		SET status = $1
		WHERE id = $2 AND status = 'pending'
	`, newStatus, proposalID)

	if err != nil {
		return nil, fmt.Errorf("ошибка при обновлении статуса предложения: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrConflict
	}

	proposal.Status = newStatus
	return proposal, nil
}

// ListProposalsForUser возвращает предложения, в которых пользователь
// владеет объявлением-отправителем или объявлением-получателем,
// новые сначала. По умолчанию возвращаются все статусы, фильтрация —
// на стороне вызывающего через параметр status.
func ListProposalsForUser(ctx context.Context, userID uuid.UUID, status string) ([]models.ExchangeProposal, error) {
	var rows pgx.Rows
	var err error

	if status == "" || status == "all" {
		rows, err = Pool.Query(ctx, `
			SELECT id, sender_ad_id, receiver_ad_id, sender_user_id, receiver_user_id, comment, status, created_at
			FROM exchange_proposals
			WHERE sender_user_id = $1 OR receiver_user_id = $1
			ORDER BY created_at DESC
		`, userID)
	} else {
		rows, err = Pool.Query(ctx, `
			SELECT id, sender_ad_id, receiver_ad_id, sender_user_id, receiver_user_id, comment, status, created_at
			FROM exchange_proposals
			WHERE (sender_user_id = $1 OR receiver_user_id = $1) AND status = $2
			ORDER BY created_at DESC
		`, userID, status)
	}

	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе предложений обмена: %w", err)
	}
	defer rows.Close()

	proposals := []models.ExchangeProposal{}
	for rows.Next() {
		var proposal models.ExchangeProposal
		if err := rows.Scan(
			&proposal.ID,
			&proposal.SenderAdID,
			&proposal.ReceiverAdID,
			&proposal.SenderUserID,
			&proposal.ReceiverUserID,
			&proposal.Comment,
			&proposal.Status,
			&proposal.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}

		// Добавляем краткую информацию об объявлениях
		proposal.SenderAd = adInfo(ctx, proposal.SenderAdID)
		proposal.ReceiverAd = adInfo(ctx, proposal.ReceiverAdID)

		proposals = append(proposals, proposal)
	}

	return proposals, nil
}

// adInfo получает информацию об объявлении для вложения в ответ.
// При ошибке возвращает nil, предложение при этом не теряется.
func adInfo(ctx context.Context, adID uuid.UUID) *models.Ad {
	ad, err := GetAd(ctx, adID)
	if err != nil {
		log.Printf("Ошибка получения объявления %s: %v", adID, err)
		return nil
	}
	return ad
}
