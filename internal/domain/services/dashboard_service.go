package services

import (
	"time"

	"github.com/AndyM2023/geoasistencia/internal/domain/models"
	"github.com/AndyM2023/geoasistencia/internal/infrastructure/config"

	"gorm.io/gorm"
)

// DashboardStats is the admin dashboard summary
type DashboardStats struct {
	TotalEmployees  int64  `json:"total_employees"`
	TotalAreas      int64  `json:"total_areas"`
	PresentToday    int64  `json:"present_today"`
	LateToday       int64  `json:"late_today"`
	PendingToday    int64  `json:"pending_today"`
	CompleteToday   int64  `json:"complete_today"`
	TrainedProfiles int64  `json:"trained_profiles"`
	Date            string `json:"date"`
}

// RecentActivity is one entry of the dashboard activity feed
type RecentActivity struct {
	EmployeeName string    `json:"employee_name"`
	AreaName     string    `json:"area_name"`
	Action       string    `json:"action"`
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
}

// InterfaceDashboardService defines the dashboard service interface
type InterfaceDashboardService interface {
	GetStats() (*DashboardStats, error)
	GetRecentActivities(limit int) ([]RecentActivity, error)
}

// DashboardService aggregates counters for the admin dashboard
type DashboardService struct {
	DB    *gorm.DB
	Redis InterfaceRedisService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB, redis InterfaceRedisService) InterfaceDashboardService {
	return &DashboardService{
		DB:    db,
		Redis: redis,
	}
}

// 1 GetStats returns the dashboard counters, served from cache when a
// fresh copy exists
func (s *DashboardService) GetStats() (*DashboardStats, error) {
	if s.Redis != nil {
		var cached DashboardStats
		if err := s.Redis.GetDashboardStats(&cached); err == nil {
			return &cached, nil
		}
	}

	today := truncateToDay(time.Now())
	stats := &DashboardStats{Date: today.Format("2006-01-02")}

	if err := s.DB.Model(&models.Employee{}).
		Where("status = ?", models.EmployeeStatusActive).
		Count(&stats.TotalEmployees).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Area{}).
		Where("status = ?", models.AreaStatusActive).
		Count(&stats.TotalAreas).Error; err != nil {
		return nil, err
	}

	todayQuery := s.DB.Model(&models.Attendance{}).Where("date = ?", today)
	if err := todayQuery.Count(&stats.PresentToday).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Attendance{}).
		Where("date = ? AND status = ?", today, models.AttendanceLate).
		Count(&stats.LateToday).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Attendance{}).
		Where("date = ? AND check_out IS NOT NULL", today).
		Count(&stats.CompleteToday).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.FaceProfile{}).
		Where("status = ?", models.FaceProfileTrained).
		Count(&stats.TrainedProfiles).Error; err != nil {
		return nil, err
	}

	stats.PendingToday = stats.TotalEmployees - stats.PresentToday
	if stats.PendingToday < 0 {
		stats.PendingToday = 0
	}

	if s.Redis != nil {
		if err := s.Redis.CacheDashboardStats(stats); err != nil {
			config.Warning("dashboard: caching stats: %v", err)
		}
	}

	return stats, nil
}

// 2 GetRecentActivities returns the latest attendance marks
func (s *DashboardService) GetRecentActivities(limit int) ([]RecentActivity, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	var records []models.Attendance
	if err := s.DB.Preload("Employee").Preload("Area").
		Order("updated_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}

	activities := make([]RecentActivity, 0, len(records))
	for _, record := range records {
		activity := RecentActivity{
			Status:    string(record.Status),
			Timestamp: record.UpdatedAt,
		}
		if record.Employee != nil {
			activity.EmployeeName = record.Employee.FullName()
		}
		if record.Area != nil {
			activity.AreaName = record.Area.Name
		}
		if record.CheckOut != nil {
			activity.Action = string(models.ActionClockOut)
			activity.Timestamp = *record.CheckOut
		} else if record.CheckIn != nil {
			activity.Action = string(models.ActionClockIn)
			activity.Timestamp = *record.CheckIn
		}
		activities = append(activities, activity)
	}

	return activities, nil
}
