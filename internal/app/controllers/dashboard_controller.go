package controllers

import (
	"strconv"

	"github.com/AndyM2023/geoasistencia/internal/domain/services"
	"github.com/AndyM2023/geoasistencia/internal/domain/services/container"
	"github.com/AndyM2023/geoasistencia/internal/error/code"
	"github.com/AndyM2023/geoasistencia/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceDashboardController defines the dashboard controller interface
type InterfaceDashboardController interface {
	GetStats()
	GetRecentActivities()
}

// DashboardController handles dashboard requests
type DashboardController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(ctx *gin.Context, container *container.ServiceContainer) *DashboardController {
	return &DashboardController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleDashboardFunc returns a gin handler for the given dashboard method
func HandleDashboardFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDashboardController(ctx, container)

		switch method {
		case "stats":
			controller.GetStats()
		case "recentActivities":
			controller.GetRecentActivities()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método no válido", nil)
		}
	}
}

// GetStats devuelve los contadores del panel
// @Summary      Estadísticas del panel
// @Description  Devuelve totales de empleados, áreas y asistencia del día
// @Tags         Dashboard
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /dashboard/stats [get]
// @Security     BearerAuth
func (c *DashboardController) GetStats() {
	dashboardService := c.Container.GetService("dashboard").(services.InterfaceDashboardService)
	stats, err := dashboardService.GetStats()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "Error al consultar estadísticas: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, stats)
}

// GetRecentActivities devuelve las últimas marcas de asistencia
// @Summary      Actividad reciente
// @Tags         Dashboard
// @Produce      json
// @Param        limit query int false "Número de entradas, por defecto 10"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /dashboard/recent [get]
// @Security     BearerAuth
func (c *DashboardController) GetRecentActivities() {
	limit, _ := strconv.Atoi(c.Ctx.DefaultQuery("limit", "10"))

	dashboardService := c.Container.GetService("dashboard").(services.InterfaceDashboardService)
	activities, err := dashboardService.GetRecentActivities(limit)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "Error al consultar actividad: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, activities)
}
