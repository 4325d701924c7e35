package main

import (
	"fmt"
	"os"
	"time"

	"github.com/AndyM2023/geoasistencia/internal/domain/models"
	"github.com/AndyM2023/geoasistencia/internal/domain/services"
	"github.com/AndyM2023/geoasistencia/internal/infrastructure/config"
	"github.com/AndyM2023/geoasistencia/pkg/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "geoadmin",
		Short: "Herramienta de administración de geoasistencia",
		Long:  "Tareas administrativas del sistema de asistencia: migraciones, cuentas y reportes.",
	}

	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newCreateAdminCmd())
	rootCmd.AddCommand(newExportReportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDB loads the environment and opens the database connection
func openDB() (*gorm.DB, *config.Config, error) {
	_ = godotenv.Load()
	cfg := config.GetConfig()

	db, err := gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("no se pudo conectar a la base de datos: %w", err)
	}

	return db, cfg, nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Ejecuta la migración del esquema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDB()
			if err != nil {
				return err
			}

			if err := db.AutoMigrate(
				&models.Admin{},
				&models.Area{},
				&models.AreaSchedule{},
				&models.Employee{},
				&models.FaceProfile{},
				&models.Attendance{},
			); err != nil {
				return fmt.Errorf("error en la migración: %w", err)
			}

			fmt.Println("Migración completada")
			return nil
		},
	}
}

func newCreateAdminCmd() *cobra.Command {
	var username, password, email, fullName string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Crea una cuenta de administrador",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDB()
			if err != nil {
				return err
			}

			if password == "" {
				generated, err := utils.RandomPassword(12)
				if err != nil {
					return fmt.Errorf("error al generar la contraseña: %w", err)
				}
				password = generated
				fmt.Printf("Contraseña generada: %s\n", password)
			}

			hashed, err := utils.HashPassword(password)
			if err != nil {
				return fmt.Errorf("error al generar el hash: %w", err)
			}

			admin := models.Admin{
				Username: username,
				Password: hashed,
				Email:    email,
				FullName: fullName,
				Role:     "admin",
				Status:   "active",
			}
			if err := db.Create(&admin).Error; err != nil {
				return fmt.Errorf("error al crear el administrador: %w", err)
			}

			fmt.Printf("Administrador %q creado con ID %d\n", admin.Username, admin.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "nombre de usuario")
	cmd.Flags().StringVar(&password, "password", "", "contraseña (se genera una si se omite)")
	cmd.Flags().StringVar(&email, "email", "", "correo del administrador")
	cmd.Flags().StringVar(&fullName, "full-name", "", "nombre completo")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newExportReportCmd() *cobra.Command {
	var from, to, output string
	var employeeID, areaID uint

	cmd := &cobra.Command{
		Use:   "export-report",
		Short: "Exporta el reporte de asistencia a un archivo xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := openDB()
			if err != nil {
				return err
			}

			filter := services.AttendanceFilter{
				EmployeeID: employeeID,
				AreaID:     areaID,
			}
			if from != "" {
				t, err := time.Parse("2006-01-02", from)
				if err != nil {
					return fmt.Errorf("fecha --from inválida, use AAAA-MM-DD")
				}
				filter.DateFrom = &t
			}
			if to != "" {
				t, err := time.Parse("2006-01-02", to)
				if err != nil {
					return fmt.Errorf("fecha --to inválida, use AAAA-MM-DD")
				}
				filter.DateTo = &t
			}

			reportService := services.NewReportService(db, cfg)
			report, err := reportService.GenerateAttendanceReport(filter)
			if err != nil {
				return fmt.Errorf("error al generar el reporte: %w", err)
			}

			if output == "" {
				output = report.Filename
			}
			if err := os.WriteFile(output, report.Content, 0o644); err != nil {
				return fmt.Errorf("error al escribir el archivo: %w", err)
			}

			fmt.Printf("Reporte con %d registros escrito en %s\n", report.Rows, output)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "fecha inicial AAAA-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "fecha final AAAA-MM-DD")
	cmd.Flags().StringVar(&output, "out", "", "ruta del archivo de salida")
	cmd.Flags().UintVar(&employeeID, "employee", 0, "filtrar por ID de empleado")
	cmd.Flags().UintVar(&areaID, "area", 0, "filtrar por ID de área")

	return cmd
}
