package services

import (
	"os"
	"testing"

	"main/utils"

	"github.com/golang-jwt/jwt/v5"
)

func init() {
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()
}

func TestGenerateAndValidateRefreshToken(t *testing.T) {
	userID := "user-123"

	refresh, err := GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	got, err := ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if got != userID {
		t.Errorf("user id = %q, want %q", got, userID)
	}
}

func TestAccessTokenRejectedAsRefresh(t *testing.T) {
	access, err := GenerateToken("user-123")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateRefreshToken(access); err == nil {
		t.Error("access token accepted as refresh token")
	}
}

func TestValidateRefreshTokenWrongSignature(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": "user-123",
		"type":    "refresh",
		"exp":     4102444800, // far future
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	forged, err := token.SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ValidateRefreshToken(forged); err == nil {
		t.Error("token with wrong signature accepted")
	}
}

func TestValidateRefreshTokenGarbage(t *testing.T) {
	if _, err := ValidateRefreshToken("not.a.token"); err == nil {
		t.Error("garbage token accepted")
	}
}
