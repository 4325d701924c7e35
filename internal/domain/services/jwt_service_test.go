package services

import (
	"errors"
	"testing"

	"github.com/AndyM2023/geoasistencia/internal/domain/models"
	"github.com/AndyM2023/geoasistencia/internal/infrastructure/config"
	"github.com/AndyM2023/geoasistencia/pkg/utils"
)

func newJWTService(t *testing.T) InterfaceJWTService {
	t.Helper()
	db := openTestDB(t)

	hash, err := utils.HashPassword("admin123")
	if err != nil {
		t.Fatalf("hashing failed: %v", err)
	}
	admins := []models.Admin{
		{Username: "admin", Password: hash, Email: "admin@example.ec", FullName: "Administrador", Role: "admin", Status: "active"},
		{Username: "former", Password: hash, Email: "former@example.ec", Role: "admin", Status: "inactive"},
	}
	for i := range admins {
		if err := db.Create(&admins[i]).Error; err != nil {
			t.Fatalf("seed admin failed: %v", err)
		}
	}

	return NewJWTService(&config.Config{JWTSecretKey: "test-secret"}, db)
}

func TestGenerateAndExtractToken(t *testing.T) {
	svc := newJWTService(t)

	token, err := svc.GenerateToken(7, "admin")
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	claims, err := svc.ExtractClaims(token)
	if err != nil {
		t.Fatalf("extraction failed: %v", err)
	}
	if claims.UserID != 7 || claims.Role != "admin" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != "geoasistencia" {
		t.Errorf("unexpected issuer %q", claims.Issuer)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newJWTService(t)
	other := NewJWTService(&config.Config{JWTSecretKey: "another-secret"}, nil)

	token, err := other.GenerateToken(7, "admin")
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	if _, err := svc.ExtractClaims(token); err == nil {
		t.Fatal("token signed with a different secret must be rejected")
	}
	if _, err := svc.ExtractClaims("not-a-token"); err == nil {
		t.Fatal("garbage input must be rejected")
	}
}

func TestLogin(t *testing.T) {
	svc := newJWTService(t)

	result, err := svc.Login("admin", "admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token")
	}
	if result.Username != "admin" || result.Role != "admin" {
		t.Errorf("unexpected result: %+v", result)
	}

	claims, err := svc.ExtractClaims(result.Token)
	if err != nil {
		t.Fatalf("issued token should validate: %v", err)
	}
	if claims.UserID != result.UserID {
		t.Errorf("claims user %d != result user %d", claims.UserID, result.UserID)
	}
}

func TestLogin_Rejections(t *testing.T) {
	svc := newJWTService(t)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "admin124"},
		{"unknown user", "nobody", "admin123"},
		{"inactive admin", "former", "admin123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Login(tc.username, tc.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}
