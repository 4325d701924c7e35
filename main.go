// @title           API de Geoasistencia
// @version         1.0
// @description     Control de asistencia con geocerca, reconocimiento facial y horarios semanales

// @host      localhost:8000
// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Ingrese el token con el prefijo `Bearer `
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/AndyM2023/geoasistencia/internal/app/routes"
	"github.com/AndyM2023/geoasistencia/internal/domain/models"
	"github.com/AndyM2023/geoasistencia/internal/infrastructure/config"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := config.SetupLogger(); err != nil {
		fmt.Printf("Error al inicializar el logger: %v\n", err)
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		config.Warning("No se pudo cargar el archivo .env: %v", err)
		// Environment variables may be set by other means
	} else {
		config.Info("Archivo .env cargado")
	}

	cfg := config.GetConfig()

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	switch cfg.DBMigrationMode {
	case "drop":
		log.Println("Advertencia: modo drop, se eliminarán y recrearán todas las tablas")
		if err := dropAndRecreateTables(db); err != nil {
			log.Fatalf("Error al recrear tablas: %v", err)
		}
	case "alter":
		log.Println("Modo alter: se ajustará la estructura de las tablas al modelo")
		if err := advancedMigrate(db, cfg); err != nil {
			log.Fatalf("Error en la migración avanzada: %v", err)
		}
	default:
		if err := autoMigrate(db); err != nil {
			log.Fatalf("Error en la migración automática: %v", err)
		}
	}

	ensureAdminExists(db, cfg)

	r := routes.SetupRouter(db, cfg)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8000"
	}

	config.Info("Servidor iniciado en: http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		config.Error("Error al iniciar el servidor: %v", err)
		os.Exit(1)
	}
}

// initDB opens the database connection
func initDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	fmt.Println("Database connection established")
	return db, nil
}

// autoMigrate migrates every model, adding new columns and tables only
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Admin{},
		&models.Area{},
		&models.AreaSchedule{},
		&models.Employee{},
		&models.FaceProfile{},
		&models.Attendance{},
	)

	if err != nil {
		return err
	}

	fmt.Println("Database migration completed")
	return nil
}

// advancedMigrate drops stale foreign key constraints before running the
// standard migration, so renamed columns do not block AutoMigrate
func advancedMigrate(db *gorm.DB, cfg *config.Config) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get DB connection: %w", err)
	}

	if _, err := sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 0"); err != nil {
		log.Printf("No se pudo desactivar la verificación de claves foráneas: %v", err)
	}
	defer sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 1")

	rows, err := sqlDB.Query(`
		SELECT CONSTRAINT_NAME, TABLE_NAME
		FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS
		WHERE CONSTRAINT_TYPE = 'FOREIGN KEY'
		AND TABLE_SCHEMA = ?
	`, cfg.DBName)

	if err != nil {
		log.Printf("No se pudieron consultar las claves foráneas: %v", err)
	} else {
		defer rows.Close()

		for rows.Next() {
			var constraintName, tableName string
			if err := rows.Scan(&constraintName, &tableName); err != nil {
				log.Printf("Error al leer la clave foránea: %v", err)
				continue
			}

			log.Printf("Eliminando clave foránea %s de la tabla %s", constraintName, tableName)
			_, err = sqlDB.Exec(fmt.Sprintf("ALTER TABLE `%s` DROP FOREIGN KEY `%s`",
				tableName, constraintName))
			if err != nil {
				log.Printf("No se pudo eliminar la clave foránea: %v", err)
			}
		}
	}

	return autoMigrate(db)
}

// dropAndRecreateTables drops every table and recreates the schema
func dropAndRecreateTables(db *gorm.DB) error {
	log.Println("Advertencia: se perderán todos los datos")

	db.Exec("SET FOREIGN_KEY_CHECKS = 0")
	defer db.Exec("SET FOREIGN_KEY_CHECKS = 1")

	var tables []string
	err := db.Raw("SHOW TABLES").Scan(&tables).Error
	if err != nil {
		return fmt.Errorf("failed to get table names: %w", err)
	}

	for _, table := range tables {
		log.Printf("Eliminando tabla: %s", table)
		err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS `%s`", table)).Error
		if err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	log.Println("Recreando tablas")
	return autoMigrate(db)
}

// ensureAdminExists guarantees at least one administrator account
func ensureAdminExists(db *gorm.DB, cfg *config.Config) {
	var count int64
	db.Model(&models.Admin{}).Count(&count)

	if count == 0 {
		defaultPassword := "admin123"
		if cfg.DefaultAdminPassword != "" {
			defaultPassword = cfg.DefaultAdminPassword
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("No se pudo generar el hash del administrador: %v", err)
			return
		}

		admin := models.Admin{
			Username: "admin",
			Password: string(hashedPassword),
			Email:    "admin@geoasistencia.ec",
			FullName: "Administrador del Sistema",
			Role:     "admin",
			Status:   "active",
		}

		result := db.Create(&admin)
		if result.Error != nil {
			log.Printf("No se pudo crear el administrador por defecto: %v", result.Error)
			return
		}

		log.Println("Cuenta de administrador creada (usuario: admin)")
	}
}
