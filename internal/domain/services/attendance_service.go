package services

import (
	"errors"
	"strings"
	"time"

	"github.com/AndyM2023/geoasistencia/internal/domain/models"
	"github.com/AndyM2023/geoasistencia/internal/infrastructure/config"

	"gorm.io/gorm"
)

// Attendance marking errors
var (
	ErrEmployeeNotFound = errors.New("el empleado no existe")
	ErrEmployeeInactive = errors.New("el empleado está inactivo")
	ErrAreaNotFound     = errors.New("el área no existe")
	ErrAreaInactive     = errors.New("el área está inactiva")
	ErrAlreadyComplete  = errors.New("ya registró entrada y salida hoy")
	ErrScheduleClosed   = errors.New("fuera del horario laboral")
	ErrDuplicateMark    = errors.New("registro de asistencia duplicado")
	ErrPhotoRequired    = errors.New("se requiere una foto para la verificación facial")
)

// MarkAttendanceRequest carries one mark-attendance call
type MarkAttendanceRequest struct {
	EmployeeID uint
	AreaID     uint
	Latitude   float64
	Longitude  float64
	Photo      string // base64
}

// MarkAttendanceResult reports the outcome of a successful mark
type MarkAttendanceResult struct {
	Attendance *models.Attendance      `json:"attendance"`
	Action     models.AttendanceAction `json:"action"`
	Window     WindowResult            `json:"window"`
	Geofence   GeofenceResult          `json:"geofence"`
	Confidence float64                 `json:"confidence"`
}

// AttendanceFilter narrows attendance listings
type AttendanceFilter struct {
	EmployeeID uint
	AreaID     uint
	DateFrom   *time.Time
	DateTo     *time.Time
	Status     string
}

// InterfaceAttendanceService defines the attendance service interface
type InterfaceAttendanceService interface {
	MarkAttendance(req *MarkAttendanceRequest) (*MarkAttendanceResult, error)
	GetAttendances(page, pageSize int, filter AttendanceFilter) (models.PagedList[models.Attendance], error)
	GetAttendanceByID(id uint) (*models.Attendance, error)
	CountToday() (int64, error)
}

// AttendanceService orchestrates attendance marking: resolve the area,
// verify the face, check the geofence, evaluate the schedule window and
// persist the record. Every stage short-circuits; nothing is written
// before the final stage.
type AttendanceService struct {
	DB       *gorm.DB
	Config   *config.Config
	Faces    InterfaceFaceService
	Geofence InterfaceGeofenceService
	Schedule InterfaceScheduleService
	Notify   InterfaceNotifyService
	Redis    InterfaceRedisService
}

// NewAttendanceService creates a new attendance service. A nil redis
// disables the today-count cache.
func NewAttendanceService(
	db *gorm.DB,
	cfg *config.Config,
	faces InterfaceFaceService,
	geofence InterfaceGeofenceService,
	schedule InterfaceScheduleService,
	notify InterfaceNotifyService,
	redis InterfaceRedisService,
) InterfaceAttendanceService {
	return &AttendanceService{
		DB:       db,
		Config:   cfg,
		Faces:    faces,
		Geofence: geofence,
		Schedule: schedule,
		Notify:   notify,
		Redis:    redis,
	}
}

// 1 MarkAttendance runs the full marking pipeline for one request.
// The first mark of the day clocks the employee in, the second clocks
// them out, a third fails. Lateness is recorded, not rejected, unless
// the reject-after-close policy is enabled.
func (s *AttendanceService) MarkAttendance(req *MarkAttendanceRequest) (*MarkAttendanceResult, error) {
	// Local validation happens before any remote call
	if err := s.Geofence.ValidatePoint(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}
	if req.Photo == "" {
		return nil, ErrPhotoRequired
	}

	var employee models.Employee
	if err := s.DB.Preload("FaceProfile").First(&employee, req.EmployeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	if employee.Status != models.EmployeeStatusActive {
		return nil, ErrEmployeeInactive
	}

	var area models.Area
	if err := s.DB.Preload("Schedule").First(&area, req.AreaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAreaNotFound
		}
		return nil, err
	}
	if !area.IsActive() {
		return nil, ErrAreaInactive
	}

	// Face verification, then policy enforcement on the raw score
	verification, err := s.Faces.Verify(employee.ID, req.Photo)
	if err != nil {
		return nil, err
	}
	if err := s.Faces.Authorize(verification, employee.FaceProfile.Threshold()); err != nil {
		return nil, err
	}

	// Geofence containment
	geo := s.Geofence.CheckGeofence(req.Latitude, req.Longitude, &area)
	if !geo.Inside {
		return nil, &OutOfRangeError{DistanceMeters: geo.DistanceMeters, RadiusMeters: area.Radius}
	}

	now := time.Now()
	window := s.Schedule.EvaluateWindow(area.Schedule, now.Weekday(), now)

	var (
		record models.Attendance
		action models.AttendanceAction
	)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		today := truncateToDay(now)
		var existing models.Attendance
		findErr := tx.Where("employee_id = ? AND date = ?", employee.ID, today).
			First(&existing).Error

		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			// First mark of the day: clock in
			if s.Config.RejectAfterClose && window.Status == WindowClosed {
				return ErrScheduleClosed
			}

			action = models.ActionClockIn
			checkIn := now
			status := models.AttendancePresent
			if window.Status != WindowOnTime {
				status = models.AttendanceLate
			}

			record = models.Attendance{
				EmployeeID:     employee.ID,
				AreaID:         area.ID,
				Date:           today,
				CheckIn:        &checkIn,
				Status:         status,
				Latitude:       req.Latitude,
				Longitude:      req.Longitude,
				FaceVerified:   true,
				Confidence:     verification.Confidence,
				DistanceMeters: geo.DistanceMeters,
				WithinSchedule: window.Status != WindowClosed,
				MinutesLate:    window.MinutesLate,
			}
			if err := tx.Create(&record).Error; err != nil {
				// A concurrent request for the same employee won the
				// unique (employee_id, date) index
				if isDuplicateKeyError(err) {
					return ErrDuplicateMark
				}
				return err
			}
			return nil

		case findErr != nil:
			return findErr

		case existing.CheckOut == nil:
			// Second mark: clock out
			action = models.ActionClockOut
			checkOut := now
			existing.CheckOut = &checkOut
			if err := tx.Model(&existing).Update("check_out", checkOut).Error; err != nil {
				return err
			}
			record = existing
			return nil

		default:
			return ErrAlreadyComplete
		}
	})
	if err != nil {
		return nil, err
	}

	// Best-effort notification after commit; failures never undo a mark
	if pubErr := s.Notify.PublishAttendanceMarked(&AttendanceMarkedMessage{
		EmployeeID:     employee.ID,
		EmployeeName:   employee.FullName(),
		AreaID:         area.ID,
		Action:         action,
		Status:         record.Status,
		MinutesLate:    record.MinutesLate,
		DistanceMeters: geo.DistanceMeters,
		Timestamp:      now.UnixMilli(),
	}); pubErr != nil {
		config.Warning("Attendance event publish failed for employee %d: %v", employee.ID, pubErr)
	}

	return &MarkAttendanceResult{
		Attendance: &record,
		Action:     action,
		Window:     window,
		Geofence:   geo,
		Confidence: verification.Confidence,
	}, nil
}

// 2 GetAttendances lists attendance records with pagination and filters.
// Every filter combination returns the same normalized page shape.
func (s *AttendanceService) GetAttendances(page, pageSize int, filter AttendanceFilter) (models.PagedList[models.Attendance], error) {
	var (
		rows  []models.Attendance
		total int64
	)

	query := s.DB.Model(&models.Attendance{})
	if filter.EmployeeID != 0 {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.AreaID != 0 {
		query = query.Where("area_id = ?", filter.AreaID)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", truncateToDay(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", truncateToDay(*filter.DateTo))
	}
	if filter.Status != "" && filter.Status != "all" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return models.PagedList[models.Attendance]{}, err
	}

	offset := (page - 1) * pageSize
	if err := query.Preload("Employee").Preload("Area").
		Order("date DESC, check_in DESC").
		Limit(pageSize).Offset(offset).
		Find(&rows).Error; err != nil {
		return models.PagedList[models.Attendance]{}, err
	}

	return models.NewPagedList(rows, total, page, pageSize), nil
}

// 3 GetAttendanceByID returns one attendance record
func (s *AttendanceService) GetAttendanceByID(id uint) (*models.Attendance, error) {
	var record models.Attendance
	if err := s.DB.Preload("Employee").Preload("Area").First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("registro de asistencia no encontrado")
		}
		return nil, err
	}
	return &record, nil
}

// 4 CountToday counts attendance rows for the current date. The count
// is cached briefly in Redis; a cache miss or error falls through to
// the database.
func (s *AttendanceService) CountToday() (int64, error) {
	today := truncateToDay(time.Now())
	cacheKey := today.Format("2006-01-02")

	if s.Redis != nil {
		if cached, err := s.Redis.GetTodayCount(cacheKey); err == nil {
			return cached, nil
		}
	}

	var count int64
	if err := s.DB.Model(&models.Attendance{}).
		Where("date = ?", today).
		Count(&count).Error; err != nil {
		return 0, err
	}

	if s.Redis != nil {
		_ = s.Redis.CacheTodayCount(cacheKey, count)
	}
	return count, nil
}

// truncateToDay drops the time-of-day part, keeping the location
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// isDuplicateKeyError detects a unique-constraint violation across the
// MySQL and SQLite drivers
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") || strings.Contains(msg, "unique constraint")
}
