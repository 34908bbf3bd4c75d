package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/meshforge/meshlink-server/internal/config"
	"github.com/meshforge/meshlink-server/internal/models"
)

func testManager() *JWTManager {
	return NewJWTManager(&config.JWTConfig{
		Secret:          "test-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	})
}

func testUser() *models.User {
	return &models.User{
		ID:      uuid.New(),
		Email:   "op@example.com",
		IsAdmin: true,
	}
}

func TestTokenPairRoundTrip(t *testing.T) {
	m := testManager()
	user := testUser()

	access, refresh, err := m.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("empty token returned")
	}

	claims, err := m.ValidateToken(access)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("UserID = %v, want %v", claims.UserID, user.ID)
	}
	if claims.Email != user.Email {
		t.Errorf("Email = %q, want %q", claims.Email, user.Email)
	}
	if !claims.IsAdmin {
		t.Error("IsAdmin not carried in claims")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	m := testManager()
	access, _, err := m.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}

	other := NewJWTManager(&config.JWTConfig{
		Secret:          "different-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	if _, err := other.ValidateToken(access); err == nil {
		t.Error("ValidateToken() accepted a token signed with another secret")
	}
}

func TestRefreshToken(t *testing.T) {
	m := testManager()
	user := testUser()

	_, refresh, err := m.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}

	access, _, err := m.RefreshToken(refresh, func(id uuid.UUID) (*models.User, error) {
		if id != user.ID {
			t.Errorf("lookup id = %v, want %v", id, user.ID)
		}
		return user, nil
	})
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}

	claims, err := m.ValidateToken(access)
	if err != nil {
		t.Fatalf("ValidateToken(refreshed) error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("UserID = %v, want %v", claims.UserID, user.ID)
	}
}

func TestRefreshTokenRejectsAccessSecretMismatch(t *testing.T) {
	m := testManager()
	if _, _, err := m.RefreshToken("not-a-token", nil); err == nil {
		t.Error("RefreshToken() accepted garbage")
	}
}
