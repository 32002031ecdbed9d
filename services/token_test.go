package services

import (
	"os"
	"testing"

	"main/utils"

	"github.com/golang-jwt/jwt/v5"
)

func initTestJWT(t *testing.T) {
	t.Helper()
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()
}

func TestGenerateJWTCarriesClaims(t *testing.T) {
	initTestJWT(t)

	tokenString, err := GenerateJWT("user-123")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("parse generated token: %v", err)
	}

	claims := token.Claims.(jwt.MapClaims)
	if claims["user_id"] != "user-123" {
		t.Errorf("user_id claim = %v", claims["user_id"])
	}
	if claims["iss"] != "toRemind" {
		t.Errorf("iss claim = %v", claims["iss"])
	}
	if _, hasType := claims["type"]; hasType {
		t.Error("access token should not carry a type claim")
	}
}

func TestValidateRefreshToken(t *testing.T) {
	initTestJWT(t)

	refresh, err := GenerateRefreshToken("user-123")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	userID, err := ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("user ID = %q", userID)
	}
}

func TestValidateRefreshTokenRejectsAccessToken(t *testing.T) {
	initTestJWT(t)

	access, err := GenerateJWT("user-123")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ValidateRefreshToken(access); err == nil {
		t.Error("access token must not pass refresh validation")
	}
}

func TestValidateRefreshTokenRejectsGarbage(t *testing.T) {
	initTestJWT(t)

	if _, err := ValidateRefreshToken("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}
