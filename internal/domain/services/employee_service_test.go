package services

import (
	"errors"
	"testing"

	"github.com/AndyM2023/geoasistencia/internal/domain/models"
	"github.com/AndyM2023/geoasistencia/internal/infrastructure/config"

	"gorm.io/gorm"
)

func newEmployeeService(t *testing.T) (InterfaceEmployeeService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	return NewEmployeeService(db, &config.Config{}), db
}

func TestCreateEmployee_AssignsNumberAndProfile(t *testing.T) {
	svc, db := newEmployeeService(t)

	first := &models.Employee{
		FirstName: "María",
		LastName:  "Andrade",
		Email:     "maria.andrade@example.ec",
		Cedula:    "1710034065",
	}
	if err := svc.CreateEmployee(first); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if first.EmployeeNumber != 1 {
		t.Errorf("expected employee number 1, got %d", first.EmployeeNumber)
	}
	if first.Status != models.EmployeeStatusActive {
		t.Errorf("expected active, got %s", first.Status)
	}
	if first.HireDate.IsZero() {
		t.Error("hire date should default to now")
	}

	var profile models.FaceProfile
	if err := db.Where("employee_id = ?", first.ID).First(&profile).Error; err != nil {
		t.Fatalf("face profile not created: %v", err)
	}
	if profile.Status != models.FaceProfilePending {
		t.Errorf("expected pending profile, got %s", profile.Status)
	}
	if profile.ConfidenceThreshold != models.DefaultConfidenceThreshold {
		t.Errorf("expected default threshold, got %f", profile.ConfidenceThreshold)
	}

	second := &models.Employee{
		FirstName: "Carlos",
		LastName:  "Vera",
		Email:     "carlos.vera@example.ec",
		Cedula:    "0101010106",
	}
	if err := svc.CreateEmployee(second); err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if second.EmployeeNumber != 2 {
		t.Errorf("expected sequential number 2, got %d", second.EmployeeNumber)
	}
}

func TestCreateEmployee_Validation(t *testing.T) {
	svc, _ := newEmployeeService(t)

	seed := &models.Employee{
		FirstName: "María",
		LastName:  "Andrade",
		Email:     "maria.andrade@example.ec",
		Cedula:    "1710034065",
	}
	if err := svc.CreateEmployee(seed); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	t.Run("bad checksum", func(t *testing.T) {
		err := svc.CreateEmployee(&models.Employee{
			FirstName: "X", LastName: "Y", Cedula: "1710034066",
		})
		if !errors.Is(err, ErrCedulaInvalid) {
			t.Errorf("expected ErrCedulaInvalid, got %v", err)
		}
	})

	t.Run("duplicate cedula", func(t *testing.T) {
		err := svc.CreateEmployee(&models.Employee{
			FirstName: "X", LastName: "Y", Email: "x@example.ec", Cedula: "1710034065",
		})
		if !errors.Is(err, ErrCedulaTaken) {
			t.Errorf("expected ErrCedulaTaken, got %v", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := svc.CreateEmployee(&models.Employee{
			FirstName: "X", LastName: "Y",
			Email:  "maria.andrade@example.ec",
			Cedula: "0101010106",
		})
		if !errors.Is(err, ErrEmailTaken) {
			t.Errorf("expected ErrEmailTaken, got %v", err)
		}
	})
}

func TestCreateEmployee_CedulaFreedBySoftDelete(t *testing.T) {
	svc, _ := newEmployeeService(t)

	seed := &models.Employee{
		FirstName: "María", LastName: "Andrade",
		Email: "maria.andrade@example.ec", Cedula: "1710034065",
	}
	if err := svc.CreateEmployee(seed); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := svc.DeleteEmployee(seed.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	// Uniqueness is enforced among active employees only
	err := svc.CreateEmployee(&models.Employee{
		FirstName: "María", LastName: "Andrade",
		Email: "maria.andrade2@example.ec", Cedula: "1710034065",
	})
	if err != nil {
		t.Fatalf("cedula of an inactive employee should be reusable: %v", err)
	}
}

func TestUpdateEmployee(t *testing.T) {
	svc, _ := newEmployeeService(t)

	seed := &models.Employee{
		FirstName: "María", LastName: "Andrade",
		Email: "maria.andrade@example.ec", Cedula: "1710034065",
	}
	if err := svc.CreateEmployee(seed); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	updated, err := svc.UpdateEmployee(seed.ID, map[string]interface{}{
		"position": "Supervisora",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Position != "Supervisora" {
		t.Errorf("expected position updated, got %q", updated.Position)
	}

	if _, err := svc.UpdateEmployee(seed.ID, map[string]interface{}{
		"cedula": "1710034066",
	}); !errors.Is(err, ErrCedulaInvalid) {
		t.Errorf("expected ErrCedulaInvalid, got %v", err)
	}

	if _, err := svc.UpdateEmployee(9999, map[string]interface{}{
		"position": "X",
	}); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestDeleteEmployee_SoftDelete(t *testing.T) {
	svc, db := newEmployeeService(t)

	seed := &models.Employee{
		FirstName: "María", LastName: "Andrade",
		Email: "maria.andrade@example.ec", Cedula: "1710034065",
	}
	if err := svc.CreateEmployee(seed); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if err := svc.DeleteEmployee(seed.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	// The row survives with inactive status
	var row models.Employee
	if err := db.First(&row, seed.ID).Error; err != nil {
		t.Fatalf("soft-deleted employee should remain: %v", err)
	}
	if row.Status != models.EmployeeStatusInactive {
		t.Errorf("expected inactive, got %s", row.Status)
	}

	count, err := svc.CountActive()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no active employees, got %d", count)
	}
}

func TestGetAllEmployees_SearchAndPaging(t *testing.T) {
	svc, _ := newEmployeeService(t)

	for _, e := range []*models.Employee{
		{FirstName: "María", LastName: "Andrade", Email: "maria@example.ec", Cedula: "1710034065"},
		{FirstName: "Carlos", LastName: "Vera", Email: "carlos@example.ec", Cedula: "0101010106"},
	} {
		if err := svc.CreateEmployee(e); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	page, err := svc.GetAllEmployees(1, 10, "Vera", 0, "all")
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if page.Total != 1 || page.Results[0].LastName != "Vera" {
		t.Fatalf("expected only Vera, got total=%d", page.Total)
	}

	page, err = svc.GetAllEmployees(1, 1, "", 0, "all")
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if page.Total != 2 || len(page.Results) != 1 {
		t.Errorf("expected total 2 with page size 1, got total=%d items=%d", page.Total, len(page.Results))
	}
	if page.TotalPages != 2 {
		t.Errorf("expected 2 pages, got %d", page.TotalPages)
	}
}
