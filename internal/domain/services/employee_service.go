package services

import (
	"errors"
	"time"

	"github.com/AndyM2023/geoasistencia/internal/domain/models"
	"github.com/AndyM2023/geoasistencia/internal/infrastructure/config"
	"github.com/AndyM2023/geoasistencia/pkg/utils"

	"gorm.io/gorm"
)

// Employee validation errors
var (
	ErrCedulaInvalid = errors.New("la cédula no es válida")
	ErrCedulaTaken   = errors.New("la cédula ya está registrada")
	ErrEmailTaken    = errors.New("el correo ya está registrado")
)

// InterfaceEmployeeService defines the employee service interface
type InterfaceEmployeeService interface {
	GetAllEmployees(page, pageSize int, search string, areaID uint, status string) (models.PagedList[models.Employee], error)
	GetEmployeeByID(id uint) (*models.Employee, error)
	CreateEmployee(employee *models.Employee) error
	UpdateEmployee(id uint, updates map[string]interface{}) (*models.Employee, error)
	DeleteEmployee(id uint) error
	CountActive() (int64, error)
}

// EmployeeService manages employees and their area assignment
type EmployeeService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(db *gorm.DB, cfg *config.Config) InterfaceEmployeeService {
	return &EmployeeService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllEmployees lists employees with pagination, search and filters
func (s *EmployeeService) GetAllEmployees(page, pageSize int, search string, areaID uint, status string) (models.PagedList[models.Employee], error) {
	var (
		employees []models.Employee
		total     int64
	)

	query := s.DB.Model(&models.Employee{})
	if search != "" {
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR cedula LIKE ? OR email LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%", "%"+search+"%")
	}
	if areaID != 0 {
		query = query.Where("area_id = ?", areaID)
	}
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return models.PagedList[models.Employee]{}, err
	}

	offset := (page - 1) * pageSize
	if err := query.Preload("Area").Preload("FaceProfile").
		Order("first_name, last_name").
		Limit(pageSize).Offset(offset).Find(&employees).Error; err != nil {
		return models.PagedList[models.Employee]{}, err
	}

	return models.NewPagedList(employees, total, page, pageSize), nil
}

// 2 GetEmployeeByID returns one employee with area and face profile
func (s *EmployeeService) GetEmployeeByID(id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := s.DB.Preload("Area").Preload("FaceProfile").First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// 3 CreateEmployee validates and persists a new employee. The cedula
// must pass the checksum and be unique among active employees; the
// sequential employee number is assigned here.
func (s *EmployeeService) CreateEmployee(employee *models.Employee) error {
	if !utils.ValidateCedula(employee.Cedula) {
		return ErrCedulaInvalid
	}

	var count int64
	if err := s.DB.Model(&models.Employee{}).
		Where("cedula = ? AND status = ?", employee.Cedula, models.EmployeeStatusActive).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrCedulaTaken
	}

	if employee.Email != "" {
		if err := s.DB.Model(&models.Employee{}).Where("email = ?", employee.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
	}

	if employee.HireDate.IsZero() {
		employee.HireDate = time.Now()
	}
	employee.Status = models.EmployeeStatusActive

	return s.DB.Transaction(func(tx *gorm.DB) error {
		// Next sequential employee number
		var last models.Employee
		err := tx.Order("employee_number DESC").First(&last).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		employee.EmployeeNumber = last.EmployeeNumber + 1

		if err := tx.Create(employee).Error; err != nil {
			return err
		}

		// Every employee starts with a pending face profile
		profile := models.FaceProfile{
			EmployeeID:          employee.ID,
			Status:              models.FaceProfilePending,
			ConfidenceThreshold: models.DefaultConfidenceThreshold,
		}
		return tx.Create(&profile).Error
	})
}

// 4 UpdateEmployee updates employee fields, re-validating the cedula
// when it changes
func (s *EmployeeService) UpdateEmployee(id uint, updates map[string]interface{}) (*models.Employee, error) {
	employee, err := s.GetEmployeeByID(id)
	if err != nil {
		return nil, err
	}

	if cedula, ok := updates["cedula"].(string); ok && cedula != employee.Cedula {
		if !utils.ValidateCedula(cedula) {
			return nil, ErrCedulaInvalid
		}
		var count int64
		if err := s.DB.Model(&models.Employee{}).
			Where("cedula = ? AND id != ? AND status = ?", cedula, id, models.EmployeeStatusActive).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrCedulaTaken
		}
	}

	if email, ok := updates["email"].(string); ok && email != employee.Email {
		var count int64
		if err := s.DB.Model(&models.Employee{}).Where("email = ? AND id != ?", email, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrEmailTaken
		}
	}

	if err := s.DB.Model(employee).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetEmployeeByID(id)
}

// 5 DeleteEmployee deactivates an employee (soft delete)
func (s *EmployeeService) DeleteEmployee(id uint) error {
	employee, err := s.GetEmployeeByID(id)
	if err != nil {
		return err
	}
	return s.DB.Model(employee).Update("status", models.EmployeeStatusInactive).Error
}

// 6 CountActive counts active employees
func (s *EmployeeService) CountActive() (int64, error) {
	var count int64
	err := s.DB.Model(&models.Employee{}).
		Where("status = ?", models.EmployeeStatusActive).
		Count(&count).Error
	return count, err
}
