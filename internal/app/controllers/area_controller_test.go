package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AndyM2023/geoasistencia/internal/domain/models"
	"github.com/AndyM2023/geoasistencia/internal/domain/services"
	"github.com/AndyM2023/geoasistencia/internal/domain/services/container"
	"github.com/AndyM2023/geoasistencia/internal/error/code"
	"github.com/AndyM2023/geoasistencia/internal/error/response"
	"github.com/AndyM2023/geoasistencia/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestContainer builds a container over an in-memory database.
// Redis and MQTT are left unreachable; both degrade to warnings.
func newTestContainer(t *testing.T) *container.ServiceContainer {
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
	return container.NewServiceContainer(db, &config.Config{}, nil)
}

func newAreaRouter(c *container.ServiceContainer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/areas", HandleAreaFunc(c, "createArea"))
	router.PUT("/areas/:id", HandleAreaFunc(c, "updateArea"))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var envelope response.Response
	if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("error decoding response %q: %v", recorder.Body.String(), err)
	}
	return recorder, envelope
}

func TestCreateArea_AcceptsZeroCoordinates(t *testing.T) {
	c := newTestContainer(t)
	router := newAreaRouter(c)

	// Zero latitude and longitude are legal: an equatorial site
	recorder, envelope := doJSON(t, router, http.MethodPost, "/areas",
		`{"name":"Planta Ecuador","latitude":0,"longitude":0,"radius":100}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if envelope.Code != code.ErrSuccess {
		t.Fatalf("expected success, got code %d message %q", envelope.Code, envelope.Message)
	}
}

func TestUpdateArea_PartialBodyKeepsOmittedFields(t *testing.T) {
	c := newTestContainer(t)
	router := newAreaRouter(c)

	areaService := c.GetService("area").(services.InterfaceAreaService)
	area := &models.Area{Name: "Oficina Matriz", Latitude: -0.1807, Longitude: -78.4678, Radius: 100}
	if err := areaService.CreateArea(area, nil); err != nil {
		t.Fatalf("seed area failed: %v", err)
	}

	recorder, envelope := doJSON(t, router, http.MethodPut, "/areas/1", `{"radius":250}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if envelope.Code != code.ErrSuccess {
		t.Fatalf("expected success, got code %d message %q", envelope.Code, envelope.Message)
	}

	updated, err := areaService.GetAreaByID(area.ID)
	if err != nil {
		t.Fatalf("reloading area failed: %v", err)
	}
	if updated.Radius != 250 {
		t.Errorf("expected radius 250, got %d", updated.Radius)
	}
	if updated.Name != "Oficina Matriz" || updated.Latitude != -0.1807 {
		t.Errorf("omitted fields changed: %+v", updated)
	}
}

func TestUpdateArea_NotFound(t *testing.T) {
	c := newTestContainer(t)
	router := newAreaRouter(c)

	recorder, envelope := doJSON(t, router, http.MethodPut, "/areas/99", `{"radius":250}`)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
	if envelope.Code != code.ErrAreaNotFound {
		t.Errorf("expected area-not-found code, got %d", envelope.Code)
	}
}
