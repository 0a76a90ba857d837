package utils

import (
	"os"
	"testing"
	"time"

	"github.com/modae/teamup/models"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "utils-test-secret")
	os.Exit(m.Run())
}

func TestTokenRoundTrip(t *testing.T) {
	user := &models.User{ID: 7, Username: "mina", Nickname: "mi", Role: models.RoleAdmin}
	token, err := GenerateToken(user, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "mina" || claims.Nickname != "mi" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.Role != models.RoleAdmin {
		t.Fatalf("role = %s, want ADMIN", claims.Role)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	user := &models.User{ID: 8, Username: "old", Nickname: "od", Role: models.RoleUser}
	token, err := GenerateToken(user, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseToken(token); err == nil {
		t.Fatal("expired token parsed successfully")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	user := &models.User{ID: 9, Username: "tamper", Nickname: "tp", Role: models.RoleUser}
	token, err := GenerateToken(user, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseToken(token + "x"); err == nil {
		t.Fatal("tampered token parsed successfully")
	}
}
