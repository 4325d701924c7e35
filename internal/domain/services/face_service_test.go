package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AndyM2023/geoasistencia/internal/domain/models"
	"github.com/AndyM2023/geoasistencia/internal/infrastructure/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("error opening test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Area{},
		&models.AreaSchedule{},
		&models.Employee{},
		&models.FaceProfile{},
		&models.Attendance{},
	); err != nil {
		t.Fatalf("error migrating test database: %v", err)
	}
	return db
}

func newTestFaceService(t *testing.T, handler http.Handler) (InterfaceFaceService, *gorm.DB) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	db := openTestDB(t)
	cfg := &config.Config{
		FaceServiceURL:     server.URL,
		FaceServiceTimeout: 5,
	}
	return NewFaceService(db, cfg), db
}

func TestAuthorize(t *testing.T) {
	svc := &FaceService{}

	cases := []struct {
		name      string
		result    FaceVerificationResult
		threshold float64
		wantPass  bool
	}{
		{"at threshold passes", FaceVerificationResult{Verified: true, Confidence: 0.90}, 0.90, true},
		{"just below threshold fails", FaceVerificationResult{Verified: true, Confidence: 0.8999}, 0.90, false},
		{"above threshold passes", FaceVerificationResult{Verified: true, Confidence: 0.95}, 0.90, true},
		{"not verified fails even with high confidence", FaceVerificationResult{Verified: false, Confidence: 0.99}, 0.90, false},
		{"zero threshold falls back to default", FaceVerificationResult{Verified: true, Confidence: 0.89}, 0, false},
		{"fallback default still passes at 0.90", FaceVerificationResult{Verified: true, Confidence: 0.90}, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Authorize(&tc.result, tc.threshold)
			if tc.wantPass && err != nil {
				t.Errorf("expected pass, got %v", err)
			}
			if !tc.wantPass && err == nil {
				t.Error("expected failure, got nil")
			}
		})
	}
}

func TestAuthorize_ErrorTypes(t *testing.T) {
	svc := &FaceService{}

	err := svc.Authorize(&FaceVerificationResult{Verified: false, Message: "rostro no coincide"}, 0.90)
	var notVerified *NotVerifiedError
	if !errors.As(err, &notVerified) {
		t.Fatalf("expected NotVerifiedError, got %v", err)
	}

	err = svc.Authorize(&FaceVerificationResult{Verified: true, Confidence: 0.5}, 0.90)
	var insufficient *InsufficientConfidenceError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientConfidenceError, got %v", err)
	}
	if insufficient.Actual != 0.5 || insufficient.Required != 0.90 {
		t.Errorf("unexpected error fields: %+v", insufficient)
	}
}

func TestVerify_ForwardsCollaboratorScore(t *testing.T) {
	svc, _ := newTestFaceService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/verify" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("error decoding request: %v", err)
		}
		if req["request_id"] == "" {
			t.Error("expected a request_id")
		}
		json.NewEncoder(w).Encode(FaceVerificationResult{Verified: true, Confidence: 0.93})
	}))

	result, err := svc.Verify(7, "base64photo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Verified || result.Confidence != 0.93 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestVerify_CollaboratorDown(t *testing.T) {
	svc, _ := newTestFaceService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	if _, err := svc.Verify(7, "base64photo"); !errors.Is(err, ErrFaceServiceUnavailable) {
		t.Fatalf("expected ErrFaceServiceUnavailable, got %v", err)
	}
}

func TestRegisterFace_MarksProfileTrained(t *testing.T) {
	svc, db := newTestFaceService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(registerResponse{Success: true, PhotosSaved: 5})
	}))

	profile, err := svc.RegisterFace(3, []string{"a", "b", "c", "d", "e"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Status != models.FaceProfileTrained {
		t.Errorf("expected trained, got %s", profile.Status)
	}
	if profile.PhotosCount != 5 {
		t.Errorf("expected 5 photos, got %d", profile.PhotosCount)
	}
	if profile.LastTraining == nil {
		t.Error("expected last training timestamp")
	}

	var persisted models.FaceProfile
	if err := db.Where("employee_id = ?", 3).First(&persisted).Error; err != nil {
		t.Fatalf("profile not persisted: %v", err)
	}
	if persisted.Status != models.FaceProfileTrained {
		t.Errorf("persisted status %s", persisted.Status)
	}
}

func TestRegisterFace_FailureMarksError(t *testing.T) {
	svc, db := newTestFaceService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(registerResponse{Success: false, Message: "no se detectó rostro"})
	}))

	_, err := svc.RegisterFace(4, []string{"a"})
	var notVerified *NotVerifiedError
	if !errors.As(err, &notVerified) {
		t.Fatalf("expected NotVerifiedError, got %v", err)
	}

	var persisted models.FaceProfile
	if err := db.Where("employee_id = ?", 4).First(&persisted).Error; err != nil {
		t.Fatalf("profile row should exist: %v", err)
	}
	if persisted.Status != models.FaceProfileError {
		t.Errorf("expected error status, got %s", persisted.Status)
	}
}

func TestGetProfile_Missing(t *testing.T) {
	db := openTestDB(t)
	svc := NewFaceService(db, &config.Config{FaceServiceURL: "http://localhost:0", FaceServiceTimeout: 1})

	if _, err := svc.GetProfile(99); !errors.Is(err, ErrFaceProfileMissing) {
		t.Fatalf("expected ErrFaceProfileMissing, got %v", err)
	}
}
