package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/AndyM2023/geoasistencia/internal/domain/models"
)

// Geofence validation errors
var (
	ErrInvalidLatitude  = errors.New("la latitud debe estar entre -90 y 90 grados")
	ErrInvalidLongitude = errors.New("la longitud debe estar entre -180 y 180 grados")
	ErrRadiusTooSmall   = errors.New("el radio mínimo es 10 metros")
	ErrRadiusTooLarge   = errors.New("el radio máximo es 10000 metros")
	ErrNonNumeric       = errors.New("las coordenadas deben ser valores numéricos")
)

// Geofence radius bounds in meters
const (
	MinGeofenceRadius = 10
	MaxGeofenceRadius = 10000
)

// earthRadiusMeters is the mean Earth radius used by the haversine formula
const earthRadiusMeters = 6371000.0

// OutOfRangeError reports a location outside an area's geofence
type OutOfRangeError struct {
	DistanceMeters float64
	RadiusMeters   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("ubicación a %.0fm del área, fuera del radio de %dm", e.DistanceMeters, e.RadiusMeters)
}

// GeofenceResult is the outcome of a containment check
type GeofenceResult struct {
	Inside         bool    `json:"inside"`
	DistanceMeters float64 `json:"distance_meters"`
}

// InterfaceGeofenceService defines the geofence validation service interface
type InterfaceGeofenceService interface {
	ValidateAreaDefinition(lat, lng float64, radius int) error
	ValidatePoint(lat, lng float64) error
	DistanceMeters(lat1, lng1, lat2, lng2 float64) float64
	CheckGeofence(lat, lng float64, area *models.Area) GeofenceResult
}

// GeofenceService validates coordinates and geofence containment. All
// methods are pure functions over their inputs.
type GeofenceService struct{}

// NewGeofenceService creates a new geofence service
func NewGeofenceService() InterfaceGeofenceService {
	return &GeofenceService{}
}

// 1 ValidateAreaDefinition validates the geometry of an area definition
func (s *GeofenceService) ValidateAreaDefinition(lat, lng float64, radius int) error {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return ErrNonNumeric
	}
	if lat < -90 || lat > 90 {
		return ErrInvalidLatitude
	}
	if lng < -180 || lng > 180 {
		return ErrInvalidLongitude
	}
	if radius < MinGeofenceRadius {
		return ErrRadiusTooSmall
	}
	if radius > MaxGeofenceRadius {
		return ErrRadiusTooLarge
	}
	return nil
}

// 2 ValidatePoint validates a reported location before any remote call
func (s *GeofenceService) ValidatePoint(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return ErrNonNumeric
	}
	if lat < -90 || lat > 90 {
		return ErrInvalidLatitude
	}
	if lng < -180 || lng > 180 {
		return ErrInvalidLongitude
	}
	return nil
}

// 3 DistanceMeters computes the great-circle distance between two WGS84
// points using the haversine formula
func (s *GeofenceService) DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// 4 CheckGeofence reports whether a point falls inside an area's geofence
func (s *GeofenceService) CheckGeofence(lat, lng float64, area *models.Area) GeofenceResult {
	distance := s.DistanceMeters(lat, lng, area.Latitude, area.Longitude)
	return GeofenceResult{
		Inside:         distance <= float64(area.Radius),
		DistanceMeters: distance,
	}
}
