package services

import (
	"testing"
	"time"

	"github.com/AndyM2023/geoasistencia/internal/domain/models"

	"gorm.io/gorm"
)

func seedDashboardData(t *testing.T, db *gorm.DB) {
	t.Helper()

	area := models.Area{Name: "Oficina Matriz", Latitude: 0, Longitude: 0, Radius: 100, Status: models.AreaStatusActive}
	if err := db.Create(&area).Error; err != nil {
		t.Fatalf("seed area failed: %v", err)
	}

	employees := []models.Employee{
		{EmployeeNumber: 1, FirstName: "María", LastName: "Andrade", Cedula: "1710034065", Status: models.EmployeeStatusActive, AreaID: &area.ID},
		{EmployeeNumber: 2, FirstName: "Carlos", LastName: "Vera", Cedula: "0101010106", Status: models.EmployeeStatusActive, AreaID: &area.ID},
		{EmployeeNumber: 3, FirstName: "Ana", LastName: "Paz", Cedula: "0000000000", Status: models.EmployeeStatusInactive, AreaID: &area.ID},
	}
	for i := range employees {
		if err := db.Create(&employees[i]).Error; err != nil {
			t.Fatalf("seed employee failed: %v", err)
		}
	}

	if err := db.Create(&models.FaceProfile{EmployeeID: employees[0].ID, Status: models.FaceProfileTrained}).Error; err != nil {
		t.Fatalf("seed profile failed: %v", err)
	}

	now := time.Now()
	today := truncateToDay(now)
	checkIn := now.Add(-4 * time.Hour)
	checkOut := now.Add(-1 * time.Hour)

	marks := []models.Attendance{
		{EmployeeID: employees[0].ID, AreaID: area.ID, Date: today, CheckIn: &checkIn, CheckOut: &checkOut, Status: models.AttendancePresent},
		{EmployeeID: employees[1].ID, AreaID: area.ID, Date: today, CheckIn: &checkIn, Status: models.AttendanceLate, MinutesLate: 20},
	}
	for i := range marks {
		if err := db.Create(&marks[i]).Error; err != nil {
			t.Fatalf("seed attendance failed: %v", err)
		}
	}
}

func TestGetStats(t *testing.T) {
	db := openTestDB(t)
	seedDashboardData(t, db)

	svc := NewDashboardService(db, nil)
	stats, err := svc.GetStats()
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	if stats.TotalEmployees != 2 {
		t.Errorf("expected 2 active employees, got %d", stats.TotalEmployees)
	}
	if stats.TotalAreas != 1 {
		t.Errorf("expected 1 area, got %d", stats.TotalAreas)
	}
	if stats.PresentToday != 2 {
		t.Errorf("expected 2 marks today, got %d", stats.PresentToday)
	}
	if stats.LateToday != 1 {
		t.Errorf("expected 1 late, got %d", stats.LateToday)
	}
	if stats.CompleteToday != 1 {
		t.Errorf("expected 1 complete, got %d", stats.CompleteToday)
	}
	if stats.PendingToday != 0 {
		t.Errorf("expected 0 pending, got %d", stats.PendingToday)
	}
	if stats.TrainedProfiles != 1 {
		t.Errorf("expected 1 trained profile, got %d", stats.TrainedProfiles)
	}
	if stats.Date != time.Now().Format("2006-01-02") {
		t.Errorf("unexpected date %q", stats.Date)
	}
}

func TestGetStats_EmptyDatabase(t *testing.T) {
	db := openTestDB(t)

	svc := NewDashboardService(db, nil)
	stats, err := svc.GetStats()
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalEmployees != 0 || stats.PresentToday != 0 || stats.PendingToday != 0 {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}
}

func TestGetRecentActivities(t *testing.T) {
	db := openTestDB(t)
	seedDashboardData(t, db)

	svc := NewDashboardService(db, nil)
	activities, err := svc.GetRecentActivities(10)
	if err != nil {
		t.Fatalf("activities failed: %v", err)
	}
	if len(activities) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(activities))
	}

	for _, activity := range activities {
		if activity.EmployeeName == "" {
			t.Error("expected employee name resolved")
		}
		if activity.AreaName != "Oficina Matriz" {
			t.Errorf("expected area name, got %q", activity.AreaName)
		}
		if activity.Action != string(models.ActionClockIn) && activity.Action != string(models.ActionClockOut) {
			t.Errorf("unexpected action %q", activity.Action)
		}
	}

	// Out-of-range limits fall back to the default
	activities, err = svc.GetRecentActivities(-3)
	if err != nil {
		t.Fatalf("activities failed: %v", err)
	}
	if len(activities) != 2 {
		t.Errorf("expected 2 activities with fallback limit, got %d", len(activities))
	}
}
