package db

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rusakovm/obmenka-api/internal/models"
)

// Интеграционные тесты хранилища требуют запущенного Postgres.
// Задайте TEST_DATABASE_URL перед запуском, иначе тесты пропускаются.

func setupTestDB(t *testing.T) context.Context {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL не задан, пропускаем интеграционный тест")
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("не удалось подключиться к базе: %v", err)
	}

	Pool = pool
	t.Cleanup(func() {
		pool.Close()
		Pool = nil
	})

	if err := RunMigrations(ctx); err != nil {
		t.Fatalf("не удалось создать схему: %v", err)
	}

	// Чистим таблицы от данных предыдущих запусков
	if _, err := pool.Exec(ctx, "TRUNCATE exchange_proposals, ads, users CASCADE"); err != nil {
		t.Fatalf("не удалось очистить таблицы: %v", err)
	}

	return ctx
}

func createTestUser(t *testing.T, ctx context.Context, username string) *models.User {
	t.Helper()

	user, err := CreateUser(ctx, username, username+"@example.com", "test-hash")
	if err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", username, err)
	}
	return user
}

func makeAdmin(t *testing.T, ctx context.Context, userID uuid.UUID) {
	t.Helper()

	if _, err := Pool.Exec(ctx, "UPDATE users SET is_admin = TRUE WHERE id = $1", userID); err != nil {
		t.Fatalf("не удалось выдать права администратора: %v", err)
	}
}

func createTestAd(t *testing.T, ctx context.Context, ownerID uuid.UUID, title string) *models.Ad {
	t.Helper()

	ad, err := CreateAd(ctx, ownerID, models.AdInput{
		Title:       title,
		Description: "Описание " + title,
		Category:    "Электроника",
		Condition:   models.ConditionNew,
	})
	if err != nil {
		t.Fatalf("CreateAd(%s) failed: %v", title, err)
	}
	return ad
}
