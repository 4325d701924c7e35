package services

import (
	"errors"

	"github.com/AndyM2023/geoasistencia/internal/domain/models"
	"github.com/AndyM2023/geoasistencia/internal/infrastructure/config"

	"gorm.io/gorm"
)

// AreaUpdate carries the editable fields of an area. A nil field keeps
// the stored value. The nested schedule, when present, replaces the
// stored one wholesale.
type AreaUpdate struct {
	Name        *string
	Description *string
	Latitude    *float64
	Longitude   *float64
	Radius      *int
	Schedule    *models.AreaSchedule
}

// InterfaceAreaService defines the area service interface
type InterfaceAreaService interface {
	GetAllAreas(page, pageSize int, search string, status string) (models.PagedList[models.Area], error)
	GetAreaByID(id uint) (*models.Area, error)
	CreateArea(area *models.Area, schedule *models.AreaSchedule) error
	UpdateArea(id uint, update *AreaUpdate) (*models.Area, error)
	ChangeScheduleType(id uint, newType models.ScheduleType) (*models.Area, error)
	DeleteArea(id uint) error
	ActivateArea(id uint) error
}

// AreaService manages geofenced work areas and their weekly schedules
type AreaService struct {
	DB       *gorm.DB
	Config   *config.Config
	Geofence InterfaceGeofenceService
	Schedule InterfaceScheduleService
}

// NewAreaService creates a new area service
func NewAreaService(db *gorm.DB, cfg *config.Config, geofence InterfaceGeofenceService, schedule InterfaceScheduleService) InterfaceAreaService {
	return &AreaService{
		DB:       db,
		Config:   cfg,
		Geofence: geofence,
		Schedule: schedule,
	}
}

// 1 GetAllAreas lists areas with pagination, search and status filter
func (s *AreaService) GetAllAreas(page, pageSize int, search string, status string) (models.PagedList[models.Area], error) {
	var (
		areas []models.Area
		total int64
	)

	query := s.DB.Model(&models.Area{})
	if search != "" {
		query = query.Where("name LIKE ? OR description LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return models.PagedList[models.Area]{}, err
	}

	offset := (page - 1) * pageSize
	if err := query.Preload("Schedule").Order("name").
		Limit(pageSize).Offset(offset).Find(&areas).Error; err != nil {
		return models.PagedList[models.Area]{}, err
	}

	return models.NewPagedList(areas, total, page, pageSize), nil
}

// 2 GetAreaByID returns one area with its schedule
func (s *AreaService) GetAreaByID(id uint) (*models.Area, error) {
	var area models.Area
	if err := s.DB.Preload("Schedule").First(&area, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAreaNotFound
		}
		return nil, err
	}
	return &area, nil
}

// 3 CreateArea validates and persists a new area with its schedule.
// A nil schedule gets the default one.
func (s *AreaService) CreateArea(area *models.Area, schedule *models.AreaSchedule) error {
	if err := s.Geofence.ValidateAreaDefinition(area.Latitude, area.Longitude, area.Radius); err != nil {
		return err
	}

	if schedule == nil {
		schedule = s.Schedule.DefaultSchedule()
	}
	if err := s.Schedule.ValidateSchedule(schedule); err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		area.Status = models.AreaStatusActive
		if err := tx.Create(area).Error; err != nil {
			return err
		}
		schedule.AreaID = area.ID
		if err := tx.Create(schedule).Error; err != nil {
			return err
		}
		area.Schedule = schedule
		return nil
	})
}

// 4 UpdateArea applies a partial edit; omitted fields keep their stored
// values. The nested schedule replaces the stored row wholesale; there
// are no partial per-day patches.
func (s *AreaService) UpdateArea(id uint, update *AreaUpdate) (*models.Area, error) {
	area, err := s.GetAreaByID(id)
	if err != nil {
		return nil, err
	}

	// Geometry is validated over the merge of stored and supplied
	// values so a partial edit cannot leave an invalid geofence.
	latitude, longitude, radius := area.Latitude, area.Longitude, area.Radius
	if update.Latitude != nil {
		latitude = *update.Latitude
	}
	if update.Longitude != nil {
		longitude = *update.Longitude
	}
	if update.Radius != nil {
		radius = *update.Radius
	}
	if err := s.Geofence.ValidateAreaDefinition(latitude, longitude, radius); err != nil {
		return nil, err
	}
	if update.Schedule != nil {
		if err := s.Schedule.ValidateSchedule(update.Schedule); err != nil {
			return nil, err
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		fields := map[string]interface{}{
			"latitude":  latitude,
			"longitude": longitude,
			"radius":    radius,
		}
		if update.Name != nil {
			fields["name"] = *update.Name
		}
		if update.Description != nil {
			fields["description"] = *update.Description
		}
		if err := tx.Model(area).Updates(fields).Error; err != nil {
			return err
		}

		if update.Schedule != nil {
			if err := tx.Where("area_id = ?", area.ID).Delete(&models.AreaSchedule{}).Error; err != nil {
				return err
			}
			update.Schedule.ID = 0
			update.Schedule.AreaID = area.ID
			if err := tx.Create(update.Schedule).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetAreaByID(id)
}

// 5 ChangeScheduleType applies a schedule-type transition through the
// pure transition function and persists the resulting schedule
func (s *AreaService) ChangeScheduleType(id uint, newType models.ScheduleType) (*models.Area, error) {
	area, err := s.GetAreaByID(id)
	if err != nil {
		return nil, err
	}

	oldType := models.ScheduleTypeNone
	if area.Schedule != nil {
		oldType = area.Schedule.ScheduleType
	}

	next := s.Schedule.TransitionScheduleType(oldType, newType, area.Schedule)
	if err := s.Schedule.ValidateSchedule(next); err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("area_id = ?", area.ID).Delete(&models.AreaSchedule{}).Error; err != nil {
			return err
		}
		next.ID = 0
		next.AreaID = area.ID
		return tx.Create(next).Error
	})
	if err != nil {
		return nil, err
	}

	config.Info("Area %d schedule type changed: %s -> %s", area.ID, oldType, newType)
	return s.GetAreaByID(id)
}

// 6 DeleteArea deactivates an area. Areas with assigned employees are
// never removed physically, only marked inactive; an area with no
// employees is deleted outright together with its schedule.
func (s *AreaService) DeleteArea(id uint) error {
	area, err := s.GetAreaByID(id)
	if err != nil {
		return err
	}

	var assigned int64
	if err := s.DB.Model(&models.Employee{}).Where("area_id = ?", area.ID).Count(&assigned).Error; err != nil {
		return err
	}

	if assigned > 0 {
		return s.DB.Model(area).Update("status", models.AreaStatusInactive).Error
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("area_id = ?", area.ID).Delete(&models.AreaSchedule{}).Error; err != nil {
			return err
		}
		return tx.Delete(area).Error
	})
}

// 7 ActivateArea reactivates a deactivated area
func (s *AreaService) ActivateArea(id uint) error {
	area, err := s.GetAreaByID(id)
	if err != nil {
		return err
	}
	return s.DB.Model(area).Update("status", models.AreaStatusActive).Error
}
