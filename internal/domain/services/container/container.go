package container

import (
	"context"
	"sync"
	"time"

	"github.com/AndyM2023/geoasistencia/internal/domain/services"
	"github.com/AndyM2023/geoasistencia/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer wires every service with its dependencies
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// Base services
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService

	// Attendance pipeline
	geofenceService   services.InterfaceGeofenceService
	scheduleService   services.InterfaceScheduleService
	faceService       services.InterfaceFaceService
	notifyService     services.InterfaceNotifyService
	attendanceService services.InterfaceAttendanceService

	// Business services
	employeeService  services.InterfaceEmployeeService
	areaService      services.InterfaceAreaService
	reportService    services.InterfaceReportService
	dashboardService services.InterfaceDashboardService

	mu sync.RWMutex
}

// NewServiceContainer creates a new service container
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("database connection is nil")
	}

	if cfg == nil {
		panic("configuration is nil")
	}

	// Test the Redis connection; caching is optional
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			config.Warning("redis ping failed: %v, running without cache", err)
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices initializes every service
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Base services
	c.jwtService = services.NewJWTService(c.config, c.db)
	c.redisService = services.NewRedisService(c.config)

	// Attendance pipeline
	c.geofenceService = services.NewGeofenceService()
	c.scheduleService = services.NewScheduleService()
	c.faceService = services.NewFaceService(c.db, c.config)
	c.notifyService = services.NewNotifyService(c.config)

	if err := c.notifyService.Connect(); err != nil {
		config.Warning("mqtt connection failed: %v, attendance events will not be published", err)
	}

	c.attendanceService = services.NewAttendanceService(
		c.db, c.config,
		c.faceService, c.geofenceService, c.scheduleService, c.notifyService,
		c.redisService,
	)

	// Business services
	c.employeeService = services.NewEmployeeService(c.db, c.config)
	c.areaService = services.NewAreaService(c.db, c.config, c.geofenceService, c.scheduleService)
	c.reportService = services.NewReportService(c.db, c.config)
	c.dashboardService = services.NewDashboardService(c.db, c.redisService)
}

// GetService returns the service registered under the given name
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "geofence":
		return c.geofenceService
	case "schedule":
		return c.scheduleService
	case "face":
		return c.faceService
	case "notify":
		return c.notifyService
	case "attendance":
		return c.attendanceService
	case "employee":
		return c.employeeService
	case "area":
		return c.areaService
	case "report":
		return c.reportService
	case "dashboard":
		return c.dashboardService
	default:
		return nil
	}
}

// GetDB returns the database connection
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
