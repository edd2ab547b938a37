package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rusakovm/obmenka-api/internal/models"
)

// CreateAd создает объявление от имени владельца ownerID.
// Идентификатор и время создания назначаются системой.
func CreateAd(ctx context.Context, ownerID uuid.UUID, input models.AdInput) (*models.Ad, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ad := &models.Ad{
		ID:          uuid.New(),
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Condition:   input.Condition,
	}

	err := Pool.QueryRow(ctx, `
		INSERT INTO ads (id, user_id, title, description, image_url, category, condition)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, ad.ID, ad.UserID, ad.Title, ad.Description, ad.ImageURL, ad.Category, ad.Condition).Scan(&ad.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("ошибка при создании объявления: %w", err)
	}

	return ad, nil
}

// GetAd возвращает объявление по идентификатору
func GetAd(ctx context.Context, adID uuid.UUID) (*models.Ad, error) {
	var ad models.Ad
	err := Pool.QueryRow(ctx, `
		SELECT id, user_id, title, description, image_url, category, condition, created_at
		FROM ads
		WHERE id = $1
	`, adID).Scan(
		&ad.ID,
		&ad.UserID,
		&ad.Title,
		&ad.Description,
		&ad.ImageURL,
		&ad.Category,
		&ad.Condition,
		&ad.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при запросе объявления: %w", err)
	}

	return &ad, nil
}

// adOwner возвращает владельца объявления
func adOwner(ctx context.Context, adID uuid.UUID) (uuid.UUID, error) {
	var ownerID uuid.UUID
	err := Pool.QueryRow(ctx, `
		SELECT user_id FROM ads WHERE id = $1
	`, adID).Scan(&ownerID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("ошибка при запросе владельца объявления: %w", err)
	}

	return ownerID, nil
}

// UpdateAd обновляет объявление. Разрешено только владельцу:
// для чужого объявления возвращается ErrForbidden, а не ErrNotFound.
// Владелец и время создания патчем не меняются.
func UpdateAd(ctx context.Context, adID, actorID uuid.UUID, input models.AdInput) (*models.Ad, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ownerID, err := adOwner(ctx, adID)
	if err != nil {
		return nil, err
	}
	if ownerID != actorID {
		return nil, ErrForbidden
	}

	_, err = Pool.Exec(ctx, `
		UPDATE ads
		SET title = $1, description = $2, image_url = $3, category = $4, condition = $5
		WHERE id = $6
	`, input.Title, input.Description, input.ImageURL, input.Category, input.Condition, adID)

	if err != nil {
		return nil, fmt.Errorf("ошибка при обновлении объявления: %w", err)
	}

	return GetAd(ctx, adID)
}

// DeleteAd удаляет объявление вместе со всеми предложениями обмена,
// в которых оно участвует как отправитель или получатель.
// Разрешено только владельцу.
func DeleteAd(ctx context.Context, adID, actorID uuid.UUID) error {
	ownerID, err := adOwner(ctx, adID)
	if err != nil {
		return err
	}
	if ownerID != actorID {
		return ErrForbidden
	}

	// Начинаем транзакцию
	tx, err := Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	// Сначала удаляем связанные предложения обмена
	_, err = tx.Exec(ctx, `
		DELETE FROM exchange_proposals
		WHERE sender_ad_id = $1 OR receiver_ad_id = $1
	`, adID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении предложений обмена: %w", err)
	}

	// Удаляем само объявление
	_, err = tx.Exec(ctx, "DELETE FROM ads WHERE id = $1", adID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении объявления: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}

	return nil
}

// ListAds возвращает страницу списка объявлений с учетом фильтров.
// Поиск — подстрока в названии или описании без учета регистра,
// категория и состояние — точное совпадение. Страницы нумеруются
// с единицы, выход за последнюю страницу возвращает последнюю.
func ListAds(ctx context.Context, filters models.AdFilters, page int) (*models.AdPage, error) {
	var where []string
	var args []interface{}

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if filters.Category != "" {
		args = append(args, filters.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filters.Condition != "" {
		args = append(args, filters.Condition)
		where = append(where, fmt.Sprintf("condition = $%d", len(args)))
	}

	var whereSQL string
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	// Общее количество нужно до выборки, чтобы привести номер страницы
	var total int
	err := Pool.QueryRow(ctx, "SELECT COUNT(*) FROM ads"+whereSQL, args...).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("ошибка при подсчете объявлений: %w", err)
	}

	page = models.ClampPage(page, total)
	offset := (page - 1) * models.PageSize

	// Ключ сортировки проходит через белый список, в запрос попадает
	// только заранее известное выражение
	query := fmt.Sprintf(`
		SELECT id, user_id, title, description, image_url, category, condition, created_at
		FROM ads%s
		ORDER BY %s
		LIMIT %d OFFSET %d
	`, whereSQL, models.SortClause(filters.Sort), models.PageSize, offset)

	rows, err := Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе объявлений: %w", err)
	}
	defer rows.Close()

	ads := []models.Ad{}
	for rows.Next() {
		var ad models.Ad
		if err := rows.Scan(
			&ad.ID,
			&ad.UserID,
			&ad.Title,
			&ad.Description,
			&ad.ImageURL,
			&ad.Category,
			&ad.Condition,
			&ad.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		ads = append(ads, ad)
	}

	return &models.AdPage{
		Ads:        ads,
		Page:       page,
		PageSize:   models.PageSize,
		Total:      total,
		TotalPages: models.TotalPages(total),
	}, nil
}
