package routes

import (
	"time"

	_ "github.com/AndyM2023/geoasistencia/docs"
	"github.com/AndyM2023/geoasistencia/internal/app/controllers"
	"github.com/AndyM2023/geoasistencia/internal/app/middleware"
	"github.com/AndyM2023/geoasistencia/internal/domain/services/container"
	"github.com/AndyM2023/geoasistencia/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter initializes and returns the configured router
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// CORS middleware for the admin SPA
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost:5173")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Service container
	serviceContainer := container.NewServiceContainer(db, cfg, nil)
	// Auth middleware
	middleware.InitAuthMiddleware(cfg, db)
	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes configures every API route
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	api := r.Group("/api")
	registerPublicRoutes(api, container)
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes registers the routes reachable without a token.
// Attendance marking is public: the kiosk terminal authenticates the
// person by face, not by session.
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 10 requests per second per IP, bursts of 20
	api.Use(middleware.IPRateLimiter(10, 20))

	// Health checks
	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, "ping"))

	healthGroup := api.Group("/health")
	healthGroup.GET("/status", controllers.HandleHealthFunc(container, "status"))
	healthGroup.GET("/cache-stats", controllers.HandleHealthFunc(container, "cacheStats"))

	// Authentication
	api.POST("/auth/login", controllers.HandleJWTFunc(container, "login"))

	// Attendance kiosk routes
	attendanceGroup := api.Group("/attendance")
	attendanceGroup.Use(middleware.PathRateLimiter(5, 10))
	attendanceGroup.POST("/mark", controllers.HandleAttendanceFunc(container, "markAttendance"))

	// Face verification for the kiosk preview step
	api.POST("/employees/verify_face", middleware.PathRateLimiter(5, 10),
		controllers.HandleEmployeeFunc(container, "verifyFace"))
}

// registerAuthenticatedRoutes registers the admin routes
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateAdmin())

	// 30 requests per second per IP, bursts of 50
	auth.Use(middleware.IPRateLimiter(30, 50))

	// Session identity
	auth.GET("/auth/me", controllers.HandleJWTFunc(container, "me"))

	// Employee routes
	employeeGroup := auth.Group("/employees")
	employeeGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleEmployeeFunc(container, "getEmployees"))
	employeeGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleEmployeeFunc(container, "getEmployee"))
	employeeGroup.POST("", controllers.HandleEmployeeFunc(container, "createEmployee"))
	employeeGroup.PUT("/:id", controllers.HandleEmployeeFunc(container, "updateEmployee"))
	employeeGroup.DELETE("/:id", controllers.HandleEmployeeFunc(container, "deleteEmployee"))
	employeeGroup.POST("/:id/register_face", controllers.HandleEmployeeFunc(container, "registerFace"))
	employeeGroup.GET("/:id/face_status", controllers.HandleEmployeeFunc(container, "faceStatus"))

	// Area routes
	areaGroup := auth.Group("/areas")
	areaGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleAreaFunc(container, "getAreas"))
	areaGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleAreaFunc(container, "getArea"))
	areaGroup.POST("", controllers.HandleAreaFunc(container, "createArea"))
	areaGroup.PUT("/:id", controllers.HandleAreaFunc(container, "updateArea"))
	areaGroup.PUT("/:id/schedule_type", controllers.HandleAreaFunc(container, "changeScheduleType"))
	areaGroup.DELETE("/:id", controllers.HandleAreaFunc(container, "deleteArea"))
	areaGroup.POST("/:id/activate", controllers.HandleAreaFunc(container, "activateArea"))

	// Attendance query routes
	attendanceGroup := auth.Group("/attendance")
	attendanceGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 10 * time.Second}), controllers.HandleAttendanceFunc(container, "getAttendances"))
	attendanceGroup.GET("/report", controllers.HandleAttendanceFunc(container, "exportReport"))
	attendanceGroup.GET("/:id", controllers.HandleAttendanceFunc(container, "getAttendance"))

	// Dashboard routes
	dashboardGroup := auth.Group("/dashboard")
	dashboardGroup.GET("/stats", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleDashboardFunc(container, "stats"))
	dashboardGroup.GET("/recent", middleware.Cache(middleware.CacheConfig{Expiration: 10 * time.Second}), controllers.HandleDashboardFunc(container, "recentActivities"))
}
