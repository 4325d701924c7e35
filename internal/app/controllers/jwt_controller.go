package controllers

import (
	"github.com/AndyM2023/geoasistencia/internal/domain/services"
	"github.com/AndyM2023/geoasistencia/internal/domain/services/container"
	"github.com/AndyM2023/geoasistencia/internal/error/code"
	"github.com/AndyM2023/geoasistencia/internal/error/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// InterfaceJWTController defines the auth controller interface
type InterfaceJWTController interface {
	Login()
	Me()
}

// JWTController handles authentication requests
type JWTController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewJWTController creates a new auth controller
func NewJWTController(ctx *gin.Context, container *container.ServiceContainer) *JWTController {
	return &JWTController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest is the login request body
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// LoginResponse is the login response envelope
type LoginResponse struct {
	Code    int         `json:"code" example:"100000"`
	Message string      `json:"message" example:"Operación exitosa"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the error response envelope
type ErrorResponse struct {
	Code    int         `json:"code" example:"100004"`
	Message string      `json:"message" example:"Token inválido"`
	Data    interface{} `json:"data"`
}

// HandleJWTFunc returns a gin handler for the given auth method
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewJWTController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "me":
			controller.Me()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método no válido", nil)
		}
	}
}

// Login procesa el inicio de sesión de un administrador
// @Summary      Iniciar sesión
// @Description  Valida credenciales de administrador y devuelve un token JWT
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credenciales"
// @Success      200  {object}  LoginResponse
// @Failure      400  {object}  ErrorResponse  "Parámetros inválidos"
// @Failure      401  {object}  ErrorResponse  "Credenciales incorrectas"
// @Router       /auth/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Parámetros de solicitud inválidos", nil)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)

	result, err := jwtService.Login(req.Username, req.Password)
	if err != nil {
		response.Unauthorized(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{
		"token":      result.Token,
		"user_id":    result.UserID,
		"role":       result.Role,
		"username":   result.Username,
		"full_name":  result.FullName,
		"created_at": result.CreatedAt,
	})
}

// Me devuelve la identidad del token actual
// @Summary      Usuario actual
// @Description  Devuelve los datos del administrador autenticado
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  LoginResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/me [get]
// @Security     BearerAuth
func (c *JWTController) Me() {
	claims, exists := c.Ctx.Get("claims")
	if !exists {
		response.Unauthorized(c.Ctx)
		return
	}

	mapClaims, ok := claims.(jwt.MapClaims)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{
		"user_id": mapClaims["user_id"],
		"role":    mapClaims["role"],
	})
}
