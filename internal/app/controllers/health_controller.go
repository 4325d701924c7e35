package controllers

import (
	"time"

	"github.com/AndyM2023/geoasistencia/internal/app/middleware"
	"github.com/AndyM2023/geoasistencia/internal/domain/services"
	"github.com/AndyM2023/geoasistencia/internal/domain/services/container"
	"github.com/AndyM2023/geoasistencia/internal/error/code"
	"github.com/AndyM2023/geoasistencia/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceHealthController defines the health controller interface
type InterfaceHealthController interface {
	Ping()
	Status()
	CacheStats()
}

// HealthController answers liveness and status probes
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthController creates a new health controller
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer) *HealthController {
	return &HealthController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHealthFunc returns a gin handler for the given health method
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthController(ctx, container)

		switch method {
		case "ping":
			controller.Ping()
		case "status":
			controller.Status()
		case "cacheStats":
			controller.CacheStats()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método no válido", nil)
		}
	}
}

// Ping responde la comprobación de vida
// @Summary      Comprobación de vida
// @Description  Devuelve pong cuando el servicio está en ejecución
// @Tags         Health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /ping [get]
func (c *HealthController) Ping() {
	response.Success(c.Ctx, gin.H{
		"status":  "healthy",
		"message": "pong",
	})
}

// Status reporta el estado de las dependencias del servicio
// @Summary      Estado del servicio
// @Description  Devuelve el estado de la base de datos y del caché Redis
// @Tags         Health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /health/status [get]
func (c *HealthController) Status() {
	dbStatus := "up"
	sqlDB, err := c.Container.GetDB().DB()
	if err != nil {
		dbStatus = "down"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "down"
	}

	// Redis only backs caching, so its state never degrades the service
	redisStatus := "down"
	if redisService, ok := c.Container.GetService("redis").(services.InterfaceRedisService); ok {
		if err := redisService.Ping(); err == nil {
			redisStatus = "up"
		}
	}

	status := "healthy"
	if dbStatus != "up" {
		status = "degraded"
	}

	response.Success(c.Ctx, gin.H{
		"status":    status,
		"database":  dbStatus,
		"redis":     redisStatus,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// CacheStats reporta el estado del caché de respuestas
// @Summary      Estadísticas de caché
// @Tags         Health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /health/cache-stats [get]
func (c *HealthController) CacheStats() {
	response.Success(c.Ctx, middleware.CacheStats())
}
