package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/AndyM2023/geoasistencia/internal/domain/models"
	"github.com/AndyM2023/geoasistencia/internal/infrastructure/config"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrFaceServiceUnavailable reports that the face-matching collaborator
// could not be reached or answered with a non-200 status
var ErrFaceServiceUnavailable = errors.New("servicio de reconocimiento facial no disponible")

// ErrFaceProfileMissing reports that the employee has no trained profile
var ErrFaceProfileMissing = errors.New("el empleado no tiene perfil facial entrenado")

// NotVerifiedError reports a face that did not match the employee profile
type NotVerifiedError struct {
	Message string
}

func (e *NotVerifiedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "rostro no verificado"
}

// InsufficientConfidenceError reports a match below the required threshold
type InsufficientConfidenceError struct {
	Actual   float64
	Required float64
}

func (e *InsufficientConfidenceError) Error() string {
	return fmt.Sprintf("confianza %.4f por debajo del umbral requerido %.2f", e.Actual, e.Required)
}

// FaceVerificationResult is the collaborator's answer for one photo
type FaceVerificationResult struct {
	Verified   bool    `json:"verified"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message"`
}

// InterfaceFaceService defines the face verification service interface
type InterfaceFaceService interface {
	Verify(employeeID uint, photoBase64 string) (*FaceVerificationResult, error)
	Authorize(result *FaceVerificationResult, threshold float64) error
	RegisterFace(employeeID uint, photosBase64 []string) (*models.FaceProfile, error)
	GetProfile(employeeID uint) (*models.FaceProfile, error)
}

// FaceService wraps the external face-matching collaborator and layers
// the confidence policy on top of its raw scores.
type FaceService struct {
	DB     *gorm.DB
	Config *config.Config
	client *http.Client
}

// NewFaceService creates a new face verification service
func NewFaceService(db *gorm.DB, cfg *config.Config) InterfaceFaceService {
	return &FaceService{
		DB:     db,
		Config: cfg,
		client: &http.Client{Timeout: time.Duration(cfg.FaceServiceTimeout) * time.Second},
	}
}

// verifyRequest is the wire shape sent to the collaborator
type verifyRequest struct {
	RequestID  string `json:"request_id"`
	EmployeeID uint   `json:"employee_id"`
	Photo      string `json:"photo"`
}

type registerRequest struct {
	RequestID  string   `json:"request_id"`
	EmployeeID uint     `json:"employee_id"`
	Photos     []string `json:"photos"`
}

type registerResponse struct {
	Success     bool   `json:"success"`
	PhotosSaved int    `json:"photos_saved"`
	Message     string `json:"message"`
}

// 1 Verify sends a photo to the collaborator and returns its raw score.
// No policy is applied here; use Authorize for that.
func (s *FaceService) Verify(employeeID uint, photoBase64 string) (*FaceVerificationResult, error) {
	body, err := json.Marshal(verifyRequest{
		RequestID:  uuid.NewString(),
		EmployeeID: employeeID,
		Photo:      photoBase64,
	})
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Post(s.Config.FaceServiceURL+"/verify", "application/json", bytes.NewReader(body))
	if err != nil {
		config.Error("Face service request failed for employee %d: %v", employeeID, err)
		return nil, ErrFaceServiceUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		config.Error("Face service returned status %d for employee %d", resp.StatusCode, employeeID)
		return nil, ErrFaceServiceUnavailable
	}

	var result FaceVerificationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error decoding face service response: %w", err)
	}

	return &result, nil
}

// 2 Authorize enforces the confidence policy over a verification result.
// A result passes only when the collaborator verified the face and the
// confidence reached the threshold; exactly the threshold passes.
func (s *FaceService) Authorize(result *FaceVerificationResult, threshold float64) error {
	if threshold <= 0 {
		threshold = models.DefaultConfidenceThreshold
	}
	if !result.Verified {
		return &NotVerifiedError{Message: result.Message}
	}
	if result.Confidence < threshold {
		return &InsufficientConfidenceError{Actual: result.Confidence, Required: threshold}
	}
	return nil
}

// 3 RegisterFace submits training photos to the collaborator and updates
// the employee's face profile accordingly
func (s *FaceService) RegisterFace(employeeID uint, photosBase64 []string) (*models.FaceProfile, error) {
	profile, err := s.ensureProfile(employeeID)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(registerRequest{
		RequestID:  uuid.NewString(),
		EmployeeID: employeeID,
		Photos:     photosBase64,
	})
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Post(s.Config.FaceServiceURL+"/register", "application/json", bytes.NewReader(body))
	if err != nil {
		s.markProfileError(profile)
		config.Error("Face registration request failed for employee %d: %v", employeeID, err)
		return nil, ErrFaceServiceUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.markProfileError(profile)
		return nil, ErrFaceServiceUnavailable
	}

	var regResp registerResponse
	if err := json.NewDecoder(resp.Body).Decode(&regResp); err != nil {
		return nil, fmt.Errorf("error decoding face registration response: %w", err)
	}

	if !regResp.Success || regResp.PhotosSaved == 0 {
		s.markProfileError(profile)
		return nil, &NotVerifiedError{Message: regResp.Message}
	}

	now := time.Now()
	profile.Status = models.FaceProfileTrained
	profile.PhotosCount = regResp.PhotosSaved
	profile.LastTraining = &now
	if err := s.DB.Save(profile).Error; err != nil {
		return nil, err
	}

	return profile, nil
}

// 4 GetProfile returns the employee's face profile
func (s *FaceService) GetProfile(employeeID uint) (*models.FaceProfile, error) {
	var profile models.FaceProfile
	if err := s.DB.Where("employee_id = ?", employeeID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFaceProfileMissing
		}
		return nil, err
	}
	return &profile, nil
}

// ensureProfile fetches or creates the employee's face profile row
func (s *FaceService) ensureProfile(employeeID uint) (*models.FaceProfile, error) {
	var profile models.FaceProfile
	err := s.DB.Where("employee_id = ?", employeeID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.FaceProfile{
			EmployeeID:          employeeID,
			Status:              models.FaceProfileCaptured,
			ConfidenceThreshold: models.DefaultConfidenceThreshold,
		}
		if err := s.DB.Create(&profile).Error; err != nil {
			return nil, err
		}
		return &profile, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *FaceService) markProfileError(profile *models.FaceProfile) {
	profile.Status = models.FaceProfileError
	if err := s.DB.Save(profile).Error; err != nil {
		config.Warning("Failed to mark face profile %d as errored: %v", profile.ID, err)
	}
}
