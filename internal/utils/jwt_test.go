package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestJWTGenerateAndExtract(t *testing.T) {
	s := NewJWTService("test-secret")

	userID := uuid.New().String()
	token, err := s.GenerateToken(userID)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	got, err := s.ExtractUserID(token)
	if err != nil {
		t.Fatalf("ExtractUserID failed: %v", err)
	}
	if got != userID {
		t.Fatalf("ожидали userID %s, получили %s", userID, got)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	s := NewJWTService("test-secret")
	other := NewJWTService("another-secret")

	token, err := s.GenerateToken(uuid.New().String())
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := other.ExtractUserID(token); err == nil {
		t.Fatal("токен, подписанный другим секретом, прошел проверку")
	}
}

func TestJWTGarbageToken(t *testing.T) {
	s := NewJWTService("test-secret")

	if _, err := s.ExtractUserID("not-a-token"); err == nil {
		t.Fatal("мусорная строка прошла проверку как токен")
	}
}
