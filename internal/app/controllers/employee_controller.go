package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/AndyM2023/geoasistencia/internal/domain/models"
	"github.com/AndyM2023/geoasistencia/internal/domain/services"
	"github.com/AndyM2023/geoasistencia/internal/domain/services/container"
	"github.com/AndyM2023/geoasistencia/internal/error/code"
	"github.com/AndyM2023/geoasistencia/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceEmployeeController defines the employee controller interface
type InterfaceEmployeeController interface {
	GetEmployees()
	GetEmployee()
	CreateEmployee()
	UpdateEmployee()
	DeleteEmployee()
	RegisterFace()
	VerifyFace()
	FaceStatus()
}

// EmployeeController handles employee requests
type EmployeeController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewEmployeeController creates a new employee controller
func NewEmployeeController(ctx *gin.Context, container *container.ServiceContainer) *EmployeeController {
	return &EmployeeController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleEmployeeFunc returns a gin handler for the given employee method
func HandleEmployeeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewEmployeeController(ctx, container)

		switch method {
		case "getEmployees":
			controller.GetEmployees()
		case "getEmployee":
			controller.GetEmployee()
		case "createEmployee":
			controller.CreateEmployee()
		case "updateEmployee":
			controller.UpdateEmployee()
		case "deleteEmployee":
			controller.DeleteEmployee()
		case "registerFace":
			controller.RegisterFace()
		case "verifyFace":
			controller.VerifyFace()
		case "faceStatus":
			controller.FaceStatus()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método no válido", nil)
		}
	}
}

// GetEmployees lista empleados
// @Summary      Listar empleados
// @Description  Lista empleados con paginación, búsqueda y filtros por área y estado
// @Tags         Employee
// @Produce      json
// @Param        page query int false "Página, por defecto 1"
// @Param        page_size query int false "Elementos por página, por defecto 10"
// @Param        search query string false "Búsqueda por nombre, cédula o correo"
// @Param        area_id query int false "Filtrar por área"
// @Param        status query string false "Filtrar por estado: active, inactive, all"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /employees [get]
// @Security     BearerAuth
func (c *EmployeeController) GetEmployees() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	search := c.Ctx.Query("search")
	areaID, _ := strconv.ParseUint(c.Ctx.Query("area_id"), 10, 32)
	status := c.Ctx.DefaultQuery("status", "active")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)

	result, err := employeeService.GetAllEmployees(page, pageSize, search, uint(areaID), status)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "Error al consultar empleados: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, result)
}

// GetEmployee obtiene un empleado
// @Summary      Detalle de empleado
// @Tags         Employee
// @Produce      json
// @Param        id path int true "ID del empleado"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /employees/{id} [get]
// @Security     BearerAuth
func (c *EmployeeController) GetEmployee() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "ID inválido")
		return
	}

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)
	employee, err := employeeService.GetEmployeeByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			response.Fail(c.Ctx, code.ErrEmployeeNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "Error al consultar empleado: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, employee)
}

// CreateEmployeeRequest is the employee creation request body
type CreateEmployeeRequest struct {
	FirstName string `json:"first_name" binding:"required" example:"María"`
	LastName  string `json:"last_name" binding:"required" example:"Paredes"`
	Email     string `json:"email" binding:"omitempty,email" example:"maria@empresa.ec"`
	Cedula    string `json:"cedula" binding:"required" example:"1710034065"`
	Position  string `json:"position" example:"Supervisora"`
	AreaID    *uint  `json:"area_id"`
	HireDate  string `json:"hire_date" example:"2024-03-01"`
}

// CreateEmployee crea un empleado
// @Summary      Crear empleado
// @Description  Crea un empleado con cédula ecuatoriana válida y perfil facial pendiente
// @Tags         Employee
// @Accept       json
// @Produce      json
// @Param        request body CreateEmployeeRequest true "Datos del empleado"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /employees [post]
// @Security     BearerAuth
func (c *EmployeeController) CreateEmployee() {
	var req CreateEmployeeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Parámetros de solicitud inválidos: "+err.Error(), nil)
		return
	}

	employee := &models.Employee{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Cedula:    req.Cedula,
		Position:  req.Position,
		AreaID:    req.AreaID,
	}
	if req.HireDate != "" {
		hireDate, err := time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			response.ParamError(c.Ctx, "Fecha de contratación inválida, use AAAA-MM-DD")
			return
		}
		employee.HireDate = hireDate
	}

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)
	if err := employeeService.CreateEmployee(employee); err != nil {
		switch {
		case errors.Is(err, services.ErrCedulaInvalid):
			response.Fail(c.Ctx, code.ErrCedulaInvalid, nil)
		case errors.Is(err, services.ErrCedulaTaken):
			response.Fail(c.Ctx, code.ErrCedulaTaken, nil)
		case errors.Is(err, services.ErrEmailTaken):
			response.FailWithMessage(c.Ctx, code.ErrEmployeeAlreadyExist, err.Error(), nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "Error al crear empleado: "+err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, employee)
}

// UpdateEmployeeRequest is the employee update request body
type UpdateEmployeeRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Cedula    *string `json:"cedula"`
	Position  *string `json:"position"`
	AreaID    *uint   `json:"area_id"`
	Status    *string `json:"status"`
}

// UpdateEmployee actualiza un empleado
// @Summary      Actualizar empleado
// @Tags         Employee
// @Accept       json
// @Produce      json
// @Param        id path int true "ID del empleado"
// @Param        request body UpdateEmployeeRequest true "Campos a actualizar"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /employees/{id} [put]
// @Security     BearerAuth
func (c *EmployeeController) UpdateEmployee() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "ID inválido")
		return
	}

	var req UpdateEmployeeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Parámetros de solicitud inválidos: "+err.Error(), nil)
		return
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Cedula != nil {
		updates["cedula"] = *req.Cedula
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.AreaID != nil {
		updates["area_id"] = *req.AreaID
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)
	employee, err := employeeService.UpdateEmployee(uint(id), updates)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmployeeNotFound):
			response.Fail(c.Ctx, code.ErrEmployeeNotFound, nil)
		case errors.Is(err, services.ErrCedulaInvalid):
			response.Fail(c.Ctx, code.ErrCedulaInvalid, nil)
		case errors.Is(err, services.ErrCedulaTaken):
			response.Fail(c.Ctx, code.ErrCedulaTaken, nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "Error al actualizar empleado: "+err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, employee)
}

// DeleteEmployee desactiva un empleado
// @Summary      Desactivar empleado
// @Description  Marca al empleado como inactivo conservando su historial
// @Tags         Employee
// @Produce      json
// @Param        id path int true "ID del empleado"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /employees/{id} [delete]
// @Security     BearerAuth
func (c *EmployeeController) DeleteEmployee() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "ID inválido")
		return
	}

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)
	if err := employeeService.DeleteEmployee(uint(id)); err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			response.Fail(c.Ctx, code.ErrEmployeeNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "Error al desactivar empleado: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"message": "Empleado desactivado"})
}

// RegisterFaceRequest carries the training photos
type RegisterFaceRequest struct {
	Photos []string `json:"photos" binding:"required,min=1"`
}

// RegisterFace registra fotos de entrenamiento facial
// @Summary      Registrar rostro
// @Description  Envía fotos de entrenamiento al servicio de reconocimiento facial
// @Tags         Employee
// @Accept       json
// @Produce      json
// @Param        id path int true "ID del empleado"
// @Param        request body RegisterFaceRequest true "Fotos en base64"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /employees/{id}/register_face [post]
// @Security     BearerAuth
func (c *EmployeeController) RegisterFace() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "ID inválido")
		return
	}

	var req RegisterFaceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Se requiere al menos una foto", nil)
		return
	}

	faceService := c.Container.GetService("face").(services.InterfaceFaceService)
	profile, err := faceService.RegisterFace(uint(id), req.Photos)
	if err != nil {
		var notVerified *services.NotVerifiedError
		switch {
		case errors.Is(err, services.ErrFaceServiceUnavailable):
			response.Fail(c.Ctx, code.ErrFaceServiceUnavailable, nil)
		case errors.As(err, &notVerified):
			response.FailWithMessage(c.Ctx, code.ErrFaceNotVerified, notVerified.Error(), nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "Error al registrar rostro: "+err.Error(), nil)
		}
		return
	}

	// Cache invalidation is best effort
	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)
	_ = redisService.InvalidateFaceStatus(uint(id))

	response.Success(c.Ctx, profile)
}

// VerifyFaceRequest carries one photo to verify
type VerifyFaceRequest struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	Photo      string `json:"photo" binding:"required"`
}

// VerifyFace verifica un rostro contra el perfil del empleado
// @Summary      Verificar rostro
// @Description  Compara una foto contra el perfil entrenado del empleado
// @Tags         Employee
// @Accept       json
// @Produce      json
// @Param        request body VerifyFaceRequest true "Foto en base64"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /employees/verify_face [post]
func (c *EmployeeController) VerifyFace() {
	var req VerifyFaceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Parámetros de solicitud inválidos", nil)
		return
	}

	faceService := c.Container.GetService("face").(services.InterfaceFaceService)
	result, err := faceService.Verify(req.EmployeeID, req.Photo)
	if err != nil {
		if errors.Is(err, services.ErrFaceServiceUnavailable) {
			response.Fail(c.Ctx, code.ErrFaceServiceUnavailable, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "Error al verificar rostro: "+err.Error(), nil)
		return
	}

	threshold := models.DefaultConfidenceThreshold
	if profile, err := faceService.GetProfile(req.EmployeeID); err == nil {
		threshold = profile.Threshold()
	}

	if err := faceService.Authorize(result, threshold); err != nil {
		var lowConfidence *services.InsufficientConfidenceError
		if errors.As(err, &lowConfidence) {
			response.FailWithMessage(c.Ctx, code.ErrFaceLowConfidence, lowConfidence.Error(), gin.H{
				"confidence": result.Confidence,
				"threshold":  threshold,
			})
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrFaceNotVerified, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"verified":   true,
		"confidence": result.Confidence,
	})
}

// FaceStatus devuelve el estado del perfil facial
// @Summary      Estado del perfil facial
// @Tags         Employee
// @Produce      json
// @Param        id path int true "ID del empleado"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /employees/{id}/face_status [get]
// @Security     BearerAuth
func (c *EmployeeController) FaceStatus() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "ID inválido")
		return
	}

	// Cache lookup is best effort; RegisterFace invalidates the key
	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)
	var cached map[string]interface{}
	if err := redisService.GetFaceStatus(uint(id), &cached); err == nil {
		response.Success(c.Ctx, cached)
		return
	}

	faceService := c.Container.GetService("face").(services.InterfaceFaceService)
	profile, err := faceService.GetProfile(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrFaceProfileMissing) {
			response.Fail(c.Ctx, code.ErrFaceProfileMissing, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "Error al consultar perfil facial: "+err.Error(), nil)
		return
	}

	status := gin.H{
		"employee_id":   profile.EmployeeID,
		"status":        profile.Status,
		"photos_count":  profile.PhotosCount,
		"last_training": profile.LastTraining,
		"threshold":     profile.Threshold(),
	}
	_ = redisService.CacheFaceStatus(uint(id), status)

	response.Success(c.Ctx, status)
}
