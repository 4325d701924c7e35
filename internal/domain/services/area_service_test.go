package services

import (
	"errors"
	"testing"
	"time"

	"github.com/AndyM2023/geoasistencia/internal/domain/models"
	"github.com/AndyM2023/geoasistencia/internal/infrastructure/config"

	"gorm.io/gorm"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func newAreaService(t *testing.T) (InterfaceAreaService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	svc := NewAreaService(db, &config.Config{}, NewGeofenceService(), NewScheduleService())
	return svc, db
}

func seedArea(t *testing.T, svc InterfaceAreaService) *models.Area {
	t.Helper()
	area := &models.Area{
		Name:        "Oficina Matriz",
		Description: "Sede principal",
		Latitude:    -0.1807,
		Longitude:   -78.4678,
		Radius:      100,
	}
	if err := svc.CreateArea(area, nil); err != nil {
		t.Fatalf("seed area failed: %v", err)
	}
	return area
}

func TestCreateArea_DefaultSchedule(t *testing.T) {
	svc, db := newAreaService(t)
	area := seedArea(t, svc)

	if area.Status != models.AreaStatusActive {
		t.Errorf("expected active, got %s", area.Status)
	}
	if area.Schedule == nil {
		t.Fatal("expected a schedule attached")
	}
	if area.Schedule.ScheduleType != models.ScheduleTypeDefault {
		t.Errorf("expected default schedule, got %s", area.Schedule.ScheduleType)
	}

	var stored models.AreaSchedule
	if err := db.Where("area_id = ?", area.ID).First(&stored).Error; err != nil {
		t.Fatalf("schedule not persisted: %v", err)
	}
	if stored.ActiveDayCount() != 5 {
		t.Errorf("expected 5 active days, got %d", stored.ActiveDayCount())
	}
}

func TestCreateArea_RejectsBadGeometry(t *testing.T) {
	svc, _ := newAreaService(t)

	err := svc.CreateArea(&models.Area{Name: "X", Latitude: 91, Longitude: 0, Radius: 100}, nil)
	if !errors.Is(err, ErrInvalidLatitude) {
		t.Errorf("expected ErrInvalidLatitude, got %v", err)
	}

	err = svc.CreateArea(&models.Area{Name: "X", Latitude: 0, Longitude: 0, Radius: 5}, nil)
	if !errors.Is(err, ErrRadiusTooSmall) {
		t.Errorf("expected ErrRadiusTooSmall, got %v", err)
	}
}

func TestCreateArea_RejectsBadSchedule(t *testing.T) {
	svc, _ := newAreaService(t)

	schedule := &models.AreaSchedule{
		ScheduleType:       models.ScheduleTypeCustom,
		GracePeriodMinutes: 10,
	}
	err := svc.CreateArea(&models.Area{Name: "X", Latitude: 0, Longitude: 0, Radius: 100}, schedule)
	if !errors.Is(err, ErrNoActiveDays) {
		t.Errorf("expected ErrNoActiveDays, got %v", err)
	}
}

func TestUpdateArea_ReplacesSchedule(t *testing.T) {
	svc, db := newAreaService(t)
	area := seedArea(t, svc)

	replacement := mondaySchedule("06:00", "14:00", 30)
	updated, err := svc.UpdateArea(area.ID, &AreaUpdate{
		Name:        strPtr("Oficina Norte"),
		Description: strPtr("Sucursal"),
		Latitude:    floatPtr(-0.19),
		Longitude:   floatPtr(-78.47),
		Radius:      intPtr(200),
		Schedule:    replacement,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Oficina Norte" || updated.Radius != 200 {
		t.Errorf("fields not updated: %+v", updated)
	}
	if updated.Schedule.ScheduleType != models.ScheduleTypeCustom {
		t.Errorf("expected custom schedule, got %s", updated.Schedule.ScheduleType)
	}
	if updated.Schedule.ActiveDayCount() != 1 {
		t.Errorf("expected one active day, got %d", updated.Schedule.ActiveDayCount())
	}

	// The replacement is wholesale: exactly one schedule row remains
	var count int64
	db.Model(&models.AreaSchedule{}).Where("area_id = ?", area.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected a single schedule row, got %d", count)
	}
}

func TestUpdateArea_PartialKeepsOmittedFields(t *testing.T) {
	svc, _ := newAreaService(t)
	area := seedArea(t, svc)

	updated, err := svc.UpdateArea(area.ID, &AreaUpdate{Radius: intPtr(250)})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Radius != 250 {
		t.Errorf("expected radius 250, got %d", updated.Radius)
	}
	if updated.Name != "Oficina Matriz" || updated.Latitude != -0.1807 || updated.Longitude != -78.4678 {
		t.Errorf("omitted fields changed: %+v", updated)
	}
	if updated.Schedule == nil || updated.Schedule.ScheduleType != models.ScheduleTypeDefault {
		t.Errorf("schedule should survive a partial edit: %+v", updated.Schedule)
	}

	// Geometry validation sees the merged values, not zeroes
	_, err = svc.UpdateArea(area.ID, &AreaUpdate{Radius: intPtr(5)})
	if !errors.Is(err, ErrRadiusTooSmall) {
		t.Errorf("expected ErrRadiusTooSmall, got %v", err)
	}
}

func TestChangeScheduleType(t *testing.T) {
	svc, _ := newAreaService(t)
	area := seedArea(t, svc)

	updated, err := svc.ChangeScheduleType(area.ID, models.ScheduleTypeNone)
	if err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if updated.Schedule.ScheduleType != models.ScheduleTypeNone {
		t.Errorf("expected none, got %s", updated.Schedule.ScheduleType)
	}
	if updated.Schedule.ActiveDayCount() != 0 {
		t.Errorf("expected no active days, got %d", updated.Schedule.ActiveDayCount())
	}

	updated, err = svc.ChangeScheduleType(area.ID, models.ScheduleTypeCustom)
	if err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if updated.Schedule.ScheduleType != models.ScheduleTypeCustom {
		t.Errorf("expected custom, got %s", updated.Schedule.ScheduleType)
	}
	// none -> custom seeds the default weekday windows
	if updated.Schedule.ActiveDayCount() != 5 {
		t.Errorf("expected seeded weekdays, got %d active", updated.Schedule.ActiveDayCount())
	}
	window := updated.Schedule.Window(time.Monday)
	if window.Start == nil || *window.Start != "08:00" {
		t.Error("expected default window seed")
	}
}

func TestDeleteArea_WithEmployeesDeactivates(t *testing.T) {
	svc, db := newAreaService(t)
	area := seedArea(t, svc)

	employee := models.Employee{
		EmployeeNumber: 1,
		FirstName:      "María",
		LastName:       "Andrade",
		Cedula:         "1710034065",
		AreaID:         &area.ID,
		Status:         models.EmployeeStatusActive,
	}
	if err := db.Create(&employee).Error; err != nil {
		t.Fatalf("seed employee failed: %v", err)
	}

	if err := svc.DeleteArea(area.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	stored, err := svc.GetAreaByID(area.ID)
	if err != nil {
		t.Fatalf("area with employees should survive: %v", err)
	}
	if stored.Status != models.AreaStatusInactive {
		t.Errorf("expected inactive, got %s", stored.Status)
	}

	if err := svc.ActivateArea(area.ID); err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	stored, _ = svc.GetAreaByID(area.ID)
	if stored.Status != models.AreaStatusActive {
		t.Errorf("expected active after reactivation, got %s", stored.Status)
	}
}

func TestDeleteArea_WithoutEmployeesRemoves(t *testing.T) {
	svc, db := newAreaService(t)
	area := seedArea(t, svc)

	if err := svc.DeleteArea(area.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := svc.GetAreaByID(area.ID); !errors.Is(err, ErrAreaNotFound) {
		t.Fatalf("expected ErrAreaNotFound, got %v", err)
	}

	var count int64
	db.Model(&models.AreaSchedule{}).Where("area_id = ?", area.ID).Count(&count)
	if count != 0 {
		t.Errorf("schedule rows should be removed with the area, got %d", count)
	}
}

func TestGetAllAreas_StatusFilter(t *testing.T) {
	svc, _ := newAreaService(t)
	seedArea(t, svc)

	second := &models.Area{Name: "Bodega Sur", Latitude: -2.17, Longitude: -79.92, Radius: 50}
	if err := svc.CreateArea(second, nil); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := svc.DeleteArea(second.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	page, err := svc.GetAllAreas(1, 10, "", string(models.AreaStatusActive))
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if page.Total != 1 {
		t.Errorf("expected one active area, got %d", page.Total)
	}

	page, err = svc.GetAllAreas(1, 10, "Matriz", "all")
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if page.Total != 1 || page.Results[0].Name != "Oficina Matriz" {
		t.Errorf("search should match by name, got total=%d", page.Total)
	}
}
