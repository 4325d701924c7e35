package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AndyM2023/geoasistencia/internal/domain/services"
	"github.com/AndyM2023/geoasistencia/internal/domain/services/container"
	"github.com/AndyM2023/geoasistencia/internal/error/code"
	"github.com/AndyM2023/geoasistencia/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceAttendanceController defines the attendance controller interface
type InterfaceAttendanceController interface {
	MarkAttendance()
	GetAttendances()
	GetAttendance()
	ExportReport()
}

// AttendanceController handles attendance requests
type AttendanceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAttendanceController creates a new attendance controller
func NewAttendanceController(ctx *gin.Context, container *container.ServiceContainer) *AttendanceController {
	return &AttendanceController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleAttendanceFunc returns a gin handler for the given attendance method
func HandleAttendanceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAttendanceController(ctx, container)

		switch method {
		case "markAttendance":
			controller.MarkAttendance()
		case "getAttendances":
			controller.GetAttendances()
		case "getAttendance":
			controller.GetAttendance()
		case "exportReport":
			controller.ExportReport()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método no válido", nil)
		}
	}
}

// MarkAttendanceRequest is the mark-attendance request body
type MarkAttendanceRequest struct {
	EmployeeID uint `json:"employee_id" binding:"required" example:"1"`
	AreaID     uint `json:"area_id" binding:"required" example:"1"`
	// Zero is a legal coordinate on the equator and the prime
	// meridian, so the range check lives in the service instead of a
	// required binding.
	Latitude  float64 `json:"latitude" example:"-0.180653"`
	Longitude float64 `json:"longitude" example:"-78.467834"`
	Photo     string  `json:"photo" binding:"required"`
}

// MarkAttendance registra entrada o salida
// @Summary      Marcar asistencia
// @Description  Valida rostro, geocerca y horario, y registra la entrada o salida del día
// @Tags         Attendance
// @Accept       json
// @Produce      json
// @Param        request body MarkAttendanceRequest true "Datos de la marca"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse  "Fuera de geocerca u horario"
// @Failure      401  {object}  ErrorResponse  "Rostro no verificado"
// @Failure      409  {object}  ErrorResponse  "Jornada ya completa"
// @Router       /attendance/mark [post]
func (c *AttendanceController) MarkAttendance() {
	var req MarkAttendanceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Parámetros de solicitud inválidos: "+err.Error(), nil)
		return
	}

	attendanceService := c.Container.GetService("attendance").(services.InterfaceAttendanceService)
	result, err := attendanceService.MarkAttendance(&services.MarkAttendanceRequest{
		EmployeeID: req.EmployeeID,
		AreaID:     req.AreaID,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Photo:      req.Photo,
	})
	if err != nil {
		c.failMarkError(err)
		return
	}

	response.Success(c.Ctx, result)
}

// failMarkError maps mark-attendance failures to response codes
func (c *AttendanceController) failMarkError(err error) {
	var outOfRange *services.OutOfRangeError
	var notVerified *services.NotVerifiedError
	var lowConfidence *services.InsufficientConfidenceError

	switch {
	case errors.Is(err, services.ErrEmployeeNotFound):
		response.Fail(c.Ctx, code.ErrEmployeeNotFound, nil)
	case errors.Is(err, services.ErrEmployeeInactive):
		response.FailWithMessage(c.Ctx, code.ErrEmployeeNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrAreaNotFound):
		response.Fail(c.Ctx, code.ErrAreaNotFound, nil)
	case errors.Is(err, services.ErrAreaInactive):
		response.Fail(c.Ctx, code.ErrAreaInactive, nil)
	case errors.Is(err, services.ErrPhotoRequired):
		response.FailWithMessage(c.Ctx, code.ErrBind, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidLatitude),
		errors.Is(err, services.ErrInvalidLongitude),
		errors.Is(err, services.ErrNonNumeric):
		response.FailWithMessage(c.Ctx, code.ErrInvalidCoordinates, err.Error(), nil)
	case errors.As(err, &outOfRange):
		response.FailWithMessage(c.Ctx, code.ErrAttendanceOutOfRange, outOfRange.Error(), gin.H{
			"distance_meters": outOfRange.DistanceMeters,
			"radius_meters":   outOfRange.RadiusMeters,
		})
	case errors.As(err, &notVerified):
		response.FailWithMessage(c.Ctx, code.ErrFaceNotVerified, notVerified.Error(), nil)
	case errors.As(err, &lowConfidence):
		response.FailWithMessage(c.Ctx, code.ErrFaceLowConfidence, lowConfidence.Error(), nil)
	case errors.Is(err, services.ErrFaceServiceUnavailable):
		response.Fail(c.Ctx, code.ErrFaceServiceUnavailable, nil)
	case errors.Is(err, services.ErrFaceProfileMissing):
		response.Fail(c.Ctx, code.ErrFaceProfileMissing, nil)
	case errors.Is(err, services.ErrScheduleClosed):
		response.Fail(c.Ctx, code.ErrAttendanceClosed, nil)
	case errors.Is(err, services.ErrAlreadyComplete), errors.Is(err, services.ErrDuplicateMark):
		response.Fail(c.Ctx, code.ErrAttendanceComplete, nil)
	default:
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "Error al registrar asistencia: "+err.Error(), nil)
	}
}

// GetAttendances lista registros de asistencia
// @Summary      Listar asistencias
// @Description  Lista registros de asistencia con filtros por empleado, área, fechas y estado
// @Tags         Attendance
// @Produce      json
// @Param        page query int false "Página, por defecto 1"
// @Param        page_size query int false "Elementos por página, por defecto 10"
// @Param        employee_id query int false "Filtrar por empleado"
// @Param        area_id query int false "Filtrar por área"
// @Param        date_from query string false "Desde, formato AAAA-MM-DD"
// @Param        date_to query string false "Hasta, formato AAAA-MM-DD"
// @Param        status query string false "Filtrar por estado: present, late"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /attendance [get]
// @Security     BearerAuth
func (c *AttendanceController) GetAttendances() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	filter, err := c.parseFilter()
	if err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	attendanceService := c.Container.GetService("attendance").(services.InterfaceAttendanceService)
	result, err := attendanceService.GetAttendances(page, pageSize, filter)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "Error al consultar asistencias: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, result)
}

// parseFilter reads the attendance filters from the query string
func (c *AttendanceController) parseFilter() (services.AttendanceFilter, error) {
	var filter services.AttendanceFilter

	employeeID, _ := strconv.ParseUint(c.Ctx.Query("employee_id"), 10, 32)
	areaID, _ := strconv.ParseUint(c.Ctx.Query("area_id"), 10, 32)
	filter.EmployeeID = uint(employeeID)
	filter.AreaID = uint(areaID)
	filter.Status = c.Ctx.Query("status")

	if from := c.Ctx.Query("date_from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return filter, errors.New("date_from inválida, use AAAA-MM-DD")
		}
		filter.DateFrom = &t
	}
	if to := c.Ctx.Query("date_to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return filter, errors.New("date_to inválida, use AAAA-MM-DD")
		}
		filter.DateTo = &t
	}

	return filter, nil
}

// GetAttendance obtiene un registro de asistencia
// @Summary      Detalle de asistencia
// @Tags         Attendance
// @Produce      json
// @Param        id path int true "ID del registro"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /attendance/{id} [get]
// @Security     BearerAuth
func (c *AttendanceController) GetAttendance() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "ID inválido")
		return
	}

	attendanceService := c.Container.GetService("attendance").(services.InterfaceAttendanceService)
	record, err := attendanceService.GetAttendanceByID(uint(id))
	if err != nil {
		response.Fail(c.Ctx, code.ErrAttendanceNotFound, nil)
		return
	}

	response.Success(c.Ctx, record)
}

// ExportReport descarga el reporte de asistencia en xlsx
// @Summary      Exportar reporte
// @Description  Genera un archivo xlsx con los registros que cumplen los filtros
// @Tags         Attendance
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        employee_id query int false "Filtrar por empleado"
// @Param        area_id query int false "Filtrar por área"
// @Param        date_from query string false "Desde, formato AAAA-MM-DD"
// @Param        date_to query string false "Hasta, formato AAAA-MM-DD"
// @Success      200  {file}  binary
// @Failure      500  {object}  ErrorResponse
// @Router       /attendance/report [get]
// @Security     BearerAuth
func (c *AttendanceController) ExportReport() {
	filter, err := c.parseFilter()
	if err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	reportService := c.Container.GetService("report").(services.InterfaceReportService)
	report, err := reportService.GenerateAttendanceReport(filter)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "Error al generar reporte: "+err.Error(), nil)
		return
	}

	c.Ctx.Header("Content-Disposition", "attachment; filename="+report.Filename)
	c.Ctx.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		report.Content)
}
