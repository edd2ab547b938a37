package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/rusakovm/obmenka-api/internal/models"
)

func TestCreateAdValidation(t *testing.T) {
	ctx := setupTestDB(t)
	user := createTestUser(t, ctx, "validator")

	var ve *models.ValidationError

	_, err := CreateAd(ctx, user.ID, models.AdInput{Title: "", Condition: models.ConditionNew})
	if !errors.As(err, &ve) || ve.Field != "title" {
		t.Fatalf("ожидали ValidationError по полю title, получили %v", err)
	}

	_, err = CreateAd(ctx, user.ID, models.AdInput{Title: "Стул", Condition: "excellent"})
	if !errors.As(err, &ve) || ve.Field != "condition" {
		t.Fatalf("ожидали ValidationError по полю condition, получили %v", err)
	}
}

func TestUpdateAdOwnership(t *testing.T) {
	ctx := setupTestDB(t)
	owner := createTestUser(t, ctx, "owner")
	stranger := createTestUser(t, ctx, "stranger")
	ad := createTestAd(t, ctx, owner.ID, "Test Ad")

	patch := models.AdInput{
		Title:     "Updated Test Ad",
		Condition: models.ConditionUsed,
	}

	// Чужое объявление редактировать нельзя: именно ErrForbidden, а не ErrNotFound
	if _, err := UpdateAd(ctx, ad.ID, stranger.ID, patch); !errors.Is(err, ErrForbidden) {
		t.Fatalf("ожидали ErrForbidden для чужого пользователя, получили %v", err)
	}

	// Владелец редактирует успешно
	updated, err := UpdateAd(ctx, ad.ID, owner.ID, patch)
	if err != nil {
		t.Fatalf("UpdateAd владельцем failed: %v", err)
	}
	if updated.Title != "Updated Test Ad" || updated.Condition != models.ConditionUsed {
		t.Fatalf("обновление не применилось: %+v", updated)
	}

	// Владелец и время создания не меняются
	if updated.UserID != owner.ID {
		t.Fatal("владелец объявления изменился при обновлении")
	}
	if !updated.CreatedAt.Equal(ad.CreatedAt) {
		t.Fatal("время создания изменилось при обновлении")
	}

	// Несуществующее объявление — ErrNotFound
	if _, err := UpdateAd(ctx, uuid.New(), owner.ID, patch); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ожидали ErrNotFound, получили %v", err)
	}
}

func TestDeleteAdOwnership(t *testing.T) {
	ctx := setupTestDB(t)
	owner := createTestUser(t, ctx, "owner")
	stranger := createTestUser(t, ctx, "stranger")
	ad := createTestAd(t, ctx, owner.ID, "Test Ad")

	if err := DeleteAd(ctx, ad.ID, stranger.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("ожидали ErrForbidden для чужого пользователя, получили %v", err)
	}

	if err := DeleteAd(ctx, ad.ID, owner.ID); err != nil {
		t.Fatalf("DeleteAd владельцем failed: %v", err)
	}

	if _, err := GetAd(ctx, ad.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("объявление не удалено: %v", err)
	}
}

func TestDeleteAdCascade(t *testing.T) {
	ctx := setupTestDB(t)
	userA := createTestUser(t, ctx, "usera")
	userB := createTestUser(t, ctx, "userb")
	adX := createTestAd(t, ctx, userA.ID, "Ad X")
	adY := createTestAd(t, ctx, userB.ID, "Ad Y")

	// Предложения в обе стороны относительно adX
	if _, err := CreateProposal(ctx, userB.ID, adY.ID, adX.ID, "меняю Y на X"); err != nil {
		t.Fatalf("CreateProposal failed: %v", err)
	}
	if _, err := CreateProposal(ctx, userA.ID, adX.ID, adY.ID, "меняю X на Y"); err != nil {
		t.Fatalf("CreateProposal failed: %v", err)
	}

	// Удаление объявления уносит все предложения, где оно участвует
	if err := DeleteAd(ctx, adX.ID, userA.ID); err != nil {
		t.Fatalf("DeleteAd failed: %v", err)
	}

	proposals, err := ListProposalsForUser(ctx, userB.ID, "all")
	if err != nil {
		t.Fatalf("ListProposalsForUser failed: %v", err)
	}
	if len(proposals) != 0 {
		t.Fatalf("ожидали 0 предложений после каскадного удаления, получили %d", len(proposals))
	}
}

func TestListAdsPagination(t *testing.T) {
	ctx := setupTestDB(t)
	user := createTestUser(t, ctx, "paginator")

	for i := 0; i < 15; i++ {
		createTestAd(t, ctx, user.ID, fmt.Sprintf("Ad %d", i))
	}

	page1, err := ListAds(ctx, models.AdFilters{}, 1)
	if err != nil {
		t.Fatalf("ListAds failed: %v", err)
	}
	if len(page1.Ads) != 10 {
		t.Fatalf("на первой странице ожидали 10 объявлений, получили %d", len(page1.Ads))
	}
	if page1.Total != 15 || page1.TotalPages != 2 {
		t.Fatalf("ожидали total=15, total_pages=2, получили %d/%d", page1.Total, page1.TotalPages)
	}

	page2, err := ListAds(ctx, models.AdFilters{}, 2)
	if err != nil {
		t.Fatalf("ListAds failed: %v", err)
	}
	if len(page2.Ads) != 5 {
		t.Fatalf("на второй странице ожидали 5 объявлений, получили %d", len(page2.Ads))
	}

	// Запрос за пределами последней страницы возвращает последнюю
	overflow, err := ListAds(ctx, models.AdFilters{}, 99)
	if err != nil {
		t.Fatalf("ListAds failed: %v", err)
	}
	if overflow.Page != 2 || len(overflow.Ads) != 5 {
		t.Fatalf("ожидали последнюю страницу (2, 5 объявлений), получили %d, %d", overflow.Page, len(overflow.Ads))
	}
}

func TestListAdsSearch(t *testing.T) {
	ctx := setupTestDB(t)
	user := createTestUser(t, ctx, "searcher")
	createTestAd(t, ctx, user.ID, "Test Ad 1")
	createTestAd(t, ctx, user.ID, "Test Ad 2")

	result, err := ListAds(ctx, models.AdFilters{Search: "Test Ad 1"}, 1)
	if err != nil {
		t.Fatalf("ListAds failed: %v", err)
	}
	if len(result.Ads) != 1 {
		t.Fatalf("ожидали одно объявление, получили %d", len(result.Ads))
	}
	if result.Ads[0].Title != "Test Ad 1" {
		t.Fatalf("найдено не то объявление: %s", result.Ads[0].Title)
	}

	// Поиск не зависит от регистра и смотрит и в описание
	result, err = ListAds(ctx, models.AdFilters{Search: "test ad 1"}, 1)
	if err != nil {
		t.Fatalf("ListAds failed: %v", err)
	}
	if len(result.Ads) != 1 {
		t.Fatalf("поиск без учета регистра: ожидали одно объявление, получили %d", len(result.Ads))
	}

	result, err = ListAds(ctx, models.AdFilters{Search: "Описание Test Ad 2"}, 1)
	if err != nil {
		t.Fatalf("ListAds failed: %v", err)
	}
	if len(result.Ads) != 1 || result.Ads[0].Title != "Test Ad 2" {
		t.Fatalf("поиск по описанию не сработал: %+v", result.Ads)
	}
}

func TestListAdsFiltersAndSort(t *testing.T) {
	ctx := setupTestDB(t)
	user := createTestUser(t, ctx, "filterer")

	for i := 0; i < 4; i++ {
		input := models.AdInput{
			Title:     fmt.Sprintf("Ad %d", i),
			Category:  "Books",
			Condition: models.ConditionNew,
		}
		if i%2 == 0 {
			input.Category = "Electronics"
			input.Condition = models.ConditionUsed
		}
		if _, err := CreateAd(ctx, user.ID, input); err != nil {
			t.Fatalf("CreateAd failed: %v", err)
		}
	}

	// Категория — точное совпадение
	result, err := ListAds(ctx, models.AdFilters{Category: "Electronics"}, 1)
	if err != nil {
		t.Fatalf("ListAds failed: %v", err)
	}
	if len(result.Ads) != 2 {
		t.Fatalf("ожидали 2 объявления категории Electronics, получили %d", len(result.Ads))
	}

	// Состояние — точное совпадение
	result, err = ListAds(ctx, models.AdFilters{Condition: models.ConditionNew}, 1)
	if err != nil {
		t.Fatalf("ListAds failed: %v", err)
	}
	if len(result.Ads) != 2 {
		t.Fatalf("ожидали 2 объявления с состоянием new, получили %d", len(result.Ads))
	}

	// Сортировка по названию по возрастанию
	result, err = ListAds(ctx, models.AdFilters{Sort: models.SortTitleAsc}, 1)
	if err != nil {
		t.Fatalf("ListAds failed: %v", err)
	}
	for i := 1; i < len(result.Ads); i++ {
		if result.Ads[i-1].Title > result.Ads[i].Title {
			t.Fatalf("нарушен порядок сортировки по названию: %q перед %q",
				result.Ads[i-1].Title, result.Ads[i].Title)
		}
	}
}
