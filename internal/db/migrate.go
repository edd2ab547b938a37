package db

import (
	"context"
	"fmt"
)

// schema описывает таблицы приложения. Каскадные внешние ключи
// гарантируют удаление предложений обмена вместе с объявлением.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	is_admin BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS ads (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	image_url TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	condition TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS exchange_proposals (
	id UUID PRIMARY KEY,
	sender_ad_id UUID NOT NULL REFERENCES ads(id) ON DELETE CASCADE,
	receiver_ad_id UUID NOT NULL REFERENCES ads(id) ON DELETE CASCADE,
	sender_user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	receiver_user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	comment TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_ads_user_id ON ads (user_id);
CREATE INDEX IF NOT EXISTS idx_ads_created_at ON ads (created_at);
CREATE INDEX IF NOT EXISTS idx_proposals_sender_user ON exchange_proposals (sender_user_id);
CREATE INDEX IF NOT EXISTS idx_proposals_receiver_user ON exchange_proposals (receiver_user_id);
`

// RunMigrations создает таблицы приложения, если их еще нет
func RunMigrations(ctx context.Context) error {
	if _, err := Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ошибка при создании схемы: %w", err)
	}
	return nil
}
