package services

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/AndyM2023/geoasistencia/internal/domain/models"
	"github.com/AndyM2023/geoasistencia/internal/infrastructure/config"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var reportHeaders = []string{
	"Fecha", "Empleado", "Cédula", "Área", "Entrada", "Salida",
	"Horas", "Estado", "Distancia (m)", "Confianza", "Min. atraso",
}

// ReportFile is a generated report ready to be streamed
type ReportFile struct {
	Filename string
	Content  []byte
	Rows     int
}

// InterfaceReportService defines the report service interface
type InterfaceReportService interface {
	GenerateAttendanceReport(filter AttendanceFilter) (*ReportFile, error)
}

// ReportService exports attendance records to spreadsheets
type ReportService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewReportService creates a new report service
func NewReportService(db *gorm.DB, cfg *config.Config) InterfaceReportService {
	return &ReportService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GenerateAttendanceReport builds an xlsx file with the attendance
// records matching the filter, ordered by date
func (s *ReportService) GenerateAttendanceReport(filter AttendanceFilter) (*ReportFile, error) {
	var records []models.Attendance

	query := s.DB.Model(&models.Attendance{}).
		Preload("Employee").Preload("Area")
	if filter.EmployeeID != 0 {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.AreaID != 0 {
		query = query.Where("area_id = ?", filter.AreaID)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", truncateToDay(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", truncateToDay(*filter.DateTo))
	}
	if filter.Status != "" && filter.Status != "all" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Order("date DESC").Find(&records).Error; err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			config.Warning("report: closing workbook: %v", err)
		}
	}()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for i, h := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to set header cell: %w", err)
		}
	}

	for row, record := range records {
		for col, val := range reportRow(&record) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, fmt.Errorf("failed to set cell value: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	name := fmt.Sprintf("asistencia_%s_%s.xlsx",
		time.Now().Format("2006-01-02"), uuid.New().String()[:8])

	return &ReportFile{
		Filename: filepath.Base(name),
		Content:  buf.Bytes(),
		Rows:     len(records),
	}, nil
}

func reportRow(a *models.Attendance) []interface{} {
	employee := ""
	cedula := ""
	if a.Employee != nil {
		employee = a.Employee.FullName()
		cedula = a.Employee.Cedula
	}
	area := ""
	if a.Area != nil {
		area = a.Area.Name
	}
	checkIn := ""
	if a.CheckIn != nil {
		checkIn = a.CheckIn.Format("15:04:05")
	}
	checkOut := ""
	if a.CheckOut != nil {
		checkOut = a.CheckOut.Format("15:04:05")
	}

	return []interface{}{
		a.Date.Format("2006-01-02"),
		employee,
		cedula,
		area,
		checkIn,
		checkOut,
		fmt.Sprintf("%.2f", a.HoursWorked()),
		string(a.Status),
		fmt.Sprintf("%.1f", a.DistanceMeters),
		fmt.Sprintf("%.2f", a.Confidence),
		a.MinutesLate,
	}
}
