package controllers

import (
	"errors"
	"strconv"

	"github.com/AndyM2023/geoasistencia/internal/domain/models"
	"github.com/AndyM2023/geoasistencia/internal/domain/services"
	"github.com/AndyM2023/geoasistencia/internal/domain/services/container"
	"github.com/AndyM2023/geoasistencia/internal/error/code"
	"github.com/AndyM2023/geoasistencia/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceAreaController defines the area controller interface
type InterfaceAreaController interface {
	GetAreas()
	GetArea()
	CreateArea()
	UpdateArea()
	ChangeScheduleType()
	DeleteArea()
	ActivateArea()
}

// AreaController handles geofenced area requests
type AreaController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAreaController creates a new area controller
func NewAreaController(ctx *gin.Context, container *container.ServiceContainer) *AreaController {
	return &AreaController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleAreaFunc returns a gin handler for the given area method
func HandleAreaFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAreaController(ctx, container)

		switch method {
		case "getAreas":
			controller.GetAreas()
		case "getArea":
			controller.GetArea()
		case "createArea":
			controller.CreateArea()
		case "updateArea":
			controller.UpdateArea()
		case "changeScheduleType":
			controller.ChangeScheduleType()
		case "deleteArea":
			controller.DeleteArea()
		case "activateArea":
			controller.ActivateArea()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método no válido", nil)
		}
	}
}

// failScheduleError maps schedule validation failures to response codes
func (c *AreaController) failScheduleError(err error) bool {
	var incomplete *services.IncompleteDayWindowError
	var inverted *services.InvertedWindowError
	switch {
	case errors.As(err, &incomplete):
		response.FailWithMessage(c.Ctx, code.ErrScheduleIncompleteDay, incomplete.Error(), nil)
	case errors.As(err, &inverted):
		response.FailWithMessage(c.Ctx, code.ErrScheduleInvertedWindow, inverted.Error(), nil)
	case errors.Is(err, services.ErrNoActiveDays):
		response.Fail(c.Ctx, code.ErrScheduleNoActiveDays, nil)
	case errors.Is(err, services.ErrGraceOutOfRange),
		errors.Is(err, services.ErrUnknownVariant),
		errors.Is(err, services.ErrMalformedTime):
		response.FailWithMessage(c.Ctx, code.ErrScheduleInvalid, err.Error(), nil)
	default:
		return false
	}
	return true
}

// failGeofenceError maps area definition failures to response codes
func (c *AreaController) failGeofenceError(err error) bool {
	switch {
	case errors.Is(err, services.ErrInvalidLatitude),
		errors.Is(err, services.ErrInvalidLongitude),
		errors.Is(err, services.ErrNonNumeric):
		response.FailWithMessage(c.Ctx, code.ErrInvalidCoordinates, err.Error(), nil)
	case errors.Is(err, services.ErrRadiusTooSmall),
		errors.Is(err, services.ErrRadiusTooLarge):
		response.FailWithMessage(c.Ctx, code.ErrInvalidRadius, err.Error(), nil)
	default:
		return false
	}
	return true
}

// GetAreas lista áreas
// @Summary      Listar áreas
// @Description  Lista áreas con horario, paginación y filtros
// @Tags         Area
// @Produce      json
// @Param        page query int false "Página, por defecto 1"
// @Param        page_size query int false "Elementos por página, por defecto 10"
// @Param        search query string false "Búsqueda por nombre o descripción"
// @Param        status query string false "Filtrar por estado: active, inactive, all"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /areas [get]
// @Security     BearerAuth
func (c *AreaController) GetAreas() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	search := c.Ctx.Query("search")
	status := c.Ctx.DefaultQuery("status", "active")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	areaService := c.Container.GetService("area").(services.InterfaceAreaService)
	result, err := areaService.GetAllAreas(page, pageSize, search, status)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "Error al consultar áreas: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, result)
}

// GetArea obtiene un área
// @Summary      Detalle de área
// @Tags         Area
// @Produce      json
// @Param        id path int true "ID del área"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /areas/{id} [get]
// @Security     BearerAuth
func (c *AreaController) GetArea() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "ID inválido")
		return
	}

	areaService := c.Container.GetService("area").(services.InterfaceAreaService)
	area, err := areaService.GetAreaByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrAreaNotFound) {
			response.Fail(c.Ctx, code.ErrAreaNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "Error al consultar área: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, area)
}

// CreateAreaRequest is the area creation request body
type CreateAreaRequest struct {
	Name        string `json:"name" binding:"required" example:"Planta Norte"`
	Description string `json:"description" example:"Planta de producción norte"`
	// No required binding on the coordinates: zero is a legal value
	// on the equator and the service validates the ranges.
	Latitude  float64              `json:"latitude" example:"-0.180653"`
	Longitude float64              `json:"longitude" example:"-78.467834"`
	Radius    int                  `json:"radius" binding:"required" example:"100"`
	Schedule  *models.AreaSchedule `json:"schedule"`
}

// CreateArea crea un área geocercada
// @Summary      Crear área
// @Description  Crea un área con geocerca y horario semanal; sin horario se asigna el horario por defecto de lunes a viernes
// @Tags         Area
// @Accept       json
// @Produce      json
// @Param        request body CreateAreaRequest true "Datos del área"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /areas [post]
// @Security     BearerAuth
func (c *AreaController) CreateArea() {
	var req CreateAreaRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Parámetros de solicitud inválidos: "+err.Error(), nil)
		return
	}

	area := &models.Area{
		Name:        req.Name,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Radius:      req.Radius,
	}

	areaService := c.Container.GetService("area").(services.InterfaceAreaService)
	if err := areaService.CreateArea(area, req.Schedule); err != nil {
		if c.failGeofenceError(err) || c.failScheduleError(err) {
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "Error al crear área: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, area)
}

// UpdateAreaRequest is the area update request body
type UpdateAreaRequest struct {
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	Latitude    *float64             `json:"latitude"`
	Longitude   *float64             `json:"longitude"`
	Radius      *int                 `json:"radius"`
	Schedule    *models.AreaSchedule `json:"schedule"`
}

// UpdateArea actualiza un área
// @Summary      Actualizar área
// @Description  Actualiza los datos del área y reemplaza el horario cuando se envía
// @Tags         Area
// @Accept       json
// @Produce      json
// @Param        id path int true "ID del área"
// @Param        request body UpdateAreaRequest true "Campos a actualizar"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /areas/{id} [put]
// @Security     BearerAuth
func (c *AreaController) UpdateArea() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "ID inválido")
		return
	}

	var req UpdateAreaRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Parámetros de solicitud inválidos: "+err.Error(), nil)
		return
	}

	areaService := c.Container.GetService("area").(services.InterfaceAreaService)
	area, err := areaService.UpdateArea(uint(id), &services.AreaUpdate{
		Name:        req.Name,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Radius:      req.Radius,
		Schedule:    req.Schedule,
	})
	if err != nil {
		if errors.Is(err, services.ErrAreaNotFound) {
			response.Fail(c.Ctx, code.ErrAreaNotFound, nil)
			return
		}
		if c.failGeofenceError(err) || c.failScheduleError(err) {
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "Error al actualizar área: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, area)
}

// ChangeScheduleTypeRequest selects the new schedule variant
type ChangeScheduleTypeRequest struct {
	ScheduleType models.ScheduleType `json:"schedule_type" binding:"required" example:"default"`
}

// ChangeScheduleType cambia el tipo de horario de un área
// @Summary      Cambiar tipo de horario
// @Description  Cambia entre horario por defecto, personalizado o sin horario
// @Tags         Area
// @Accept       json
// @Produce      json
// @Param        id path int true "ID del área"
// @Param        request body ChangeScheduleTypeRequest true "Nuevo tipo de horario"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /areas/{id}/schedule_type [put]
// @Security     BearerAuth
func (c *AreaController) ChangeScheduleType() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "ID inválido")
		return
	}

	var req ChangeScheduleTypeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Parámetros de solicitud inválidos", nil)
		return
	}

	areaService := c.Container.GetService("area").(services.InterfaceAreaService)
	area, err := areaService.ChangeScheduleType(uint(id), req.ScheduleType)
	if err != nil {
		if errors.Is(err, services.ErrAreaNotFound) {
			response.Fail(c.Ctx, code.ErrAreaNotFound, nil)
			return
		}
		if c.failScheduleError(err) {
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "Error al cambiar horario: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, area)
}

// DeleteArea elimina o desactiva un área
// @Summary      Eliminar área
// @Description  Elimina el área; si tiene empleados asignados solo la desactiva
// @Tags         Area
// @Produce      json
// @Param        id path int true "ID del área"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /areas/{id} [delete]
// @Security     BearerAuth
func (c *AreaController) DeleteArea() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "ID inválido")
		return
	}

	areaService := c.Container.GetService("area").(services.InterfaceAreaService)
	if err := areaService.DeleteArea(uint(id)); err != nil {
		if errors.Is(err, services.ErrAreaNotFound) {
			response.Fail(c.Ctx, code.ErrAreaNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "Error al eliminar área: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"message": "Área eliminada"})
}

// ActivateArea reactiva un área desactivada
// @Summary      Activar área
// @Tags         Area
// @Produce      json
// @Param        id path int true "ID del área"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /areas/{id}/activate [post]
// @Security     BearerAuth
func (c *AreaController) ActivateArea() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "ID inválido")
		return
	}

	areaService := c.Container.GetService("area").(services.InterfaceAreaService)
	if err := areaService.ActivateArea(uint(id)); err != nil {
		if errors.Is(err, services.ErrAreaNotFound) {
			response.Fail(c.Ctx, code.ErrAreaNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "Error al activar área: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"message": "Área activada"})
}
