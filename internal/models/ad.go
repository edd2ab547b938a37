package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Допустимые состояния товара
const (
	ConditionNew  = "new"
	ConditionUsed = "used"
)

// Ключи сортировки списка объявлений
const (
	SortCreatedAsc  = "created_asc"
	SortCreatedDesc = "created_desc"
	SortTitleAsc    = "title_asc"
	SortTitleDesc   = "title_desc"
)

// PageSize — фиксированный размер страницы списка объявлений
const PageSize = 10

// Ad представляет объявление в системе
type Ad struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	Category    string    `json:"category"`
	Condition   string    `json:"condition"`
	CreatedAt   time.Time `json:"created_at"`
}

// AdInput представляет данные запроса на создание или редактирование объявления.
// Владелец и дата создания в патч не входят и не меняются.
type AdInput struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	ImageURL    string `json:"image_url" form:"image_url"`
	Category    string `json:"category" form:"category"`
	Condition   string `json:"condition" form:"condition"`
}

// Validate проверяет обязательные поля объявления
func (in *AdInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Field: "title", Message: "Название обязательно"}
	}
	if in.Condition != ConditionNew && in.Condition != ConditionUsed {
		return &ValidationError{Field: "condition", Message: "Недопустимое состояние товара"}
	}
	return nil
}

// AdFilters представляет параметры фильтрации списка объявлений
type AdFilters struct {
	Search    string
	Category  string
	Condition string
	Sort      string
}

var sortClauses = map[string]string{
	SortCreatedAsc:  "created_at ASC",
	SortCreatedDesc: "created_at DESC",
	SortTitleAsc:    "title ASC",
	SortTitleDesc:   "title DESC",
}

// SortClause возвращает ORDER BY-выражение для ключа сортировки.
// Неизвестный ключ трактуется как сортировка по умолчанию (новые сначала).
func SortClause(key string) string {
	if clause, ok := sortClauses[key]; ok {
		return clause
	}
	return sortClauses[SortCreatedDesc]
}

// TotalPages возвращает количество страниц для total записей (минимум одна)
func TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}

// ClampPage приводит номер страницы к допустимому диапазону:
// страницы нумеруются с единицы, выход за последнюю страницу
// возвращает последнюю, а не ошибку
func ClampPage(page, total int) int {
	if page < 1 {
		return 1
	}
	if tp := TotalPages(total); page > tp {
		return tp
	}
	return page
}

// AdPage представляет одну страницу списка объявлений
type AdPage struct {
	Ads        []Ad `json:"ads"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
}
