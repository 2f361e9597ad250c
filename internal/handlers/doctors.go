package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/apperrors"
	"hospital-management-server/internal/models"
	"hospital-management-server/internal/utils"
)

// DoctorHandler handles the doctor directory: admin add/remove and the
// patient-facing search.
type DoctorHandler struct {
	DB *gorm.DB
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB) *DoctorHandler {
	return &DoctorHandler{DB: db}
}

// AddDoctorRequest represents the request body for creating a doctor (admin).
// Phone must be exactly 10 digits; the check runs before any write, so a bad
// phone number persists nothing.
type AddDoctorRequest struct {
	Username       string `json:"username" binding:"required,min=3"`
	Password       string `json:"password" binding:"required,min=8"`
	Name           string `json:"name" binding:"required"`
	Specialization string `json:"specialization" binding:"required"`
	DepartmentID   string `json:"departmentId" binding:"required"`
	Phone          string `json:"phone" binding:"required,len=10,numeric"`
	Email          string `json:"email" binding:"omitempty,email"`
	Experience     int    `json:"experience"`
}

// AddDoctor creates the doctor's account, profile and department count bump in
// one transaction.
func (h *DoctorHandler) AddDoctor(c *gin.Context) {
	var req AddDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var department models.Department
	if err := h.DB.First(&department, "id = ?", req.DepartmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Department not found")
		} else {
			utils.StoreError(c, "Database error: "+err.Error())
		}
		return
	}

	user := models.User{
		Username: req.Username,
		Role:     models.RoleDoctor,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.StoreError(c, "Failed to hash password: "+err.Error())
		return
	}

	var doctor models.Doctor
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		doctor = models.Doctor{
			UserID:         user.ID,
			Name:           req.Name,
			Specialization: req.Specialization,
			DepartmentID:   department.ID,
			Phone:          req.Phone,
			Email:          req.Email,
			Experience:     req.Experience,
			IsActive:       true,
		}
		if err := tx.Create(&doctor).Error; err != nil {
			return err
		}
		return tx.Model(&models.Department{}).Where("id = ?", department.ID).
			UpdateColumn("doctors_count", gorm.Expr("doctors_count + 1")).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, apperrors.DuplicateUsername, "Username already exists")
		} else {
			utils.StoreError(c, "Failed to add doctor: "+err.Error())
		}
		return
	}

	utils.Created(c, "Doctor added successfully", doctor)
}

// SearchDoctors returns active doctors joined with their department name.
// Optional filters: ?specialization= matches the department name and ?name=
// matches the doctor name, both case-insensitive substrings, AND-combined.
func (h *DoctorHandler) SearchDoctors(c *gin.Context) {
	specialization := strings.TrimSpace(c.Query("specialization"))
	name := strings.TrimSpace(c.Query("name"))

	query := h.DB.Model(&models.Doctor{}).
		Select("doctors.id, doctors.name, doctors.specialization, doctors.phone, doctors.email, doctors.experience, departments.name as department_name").
		Joins("LEFT JOIN departments ON departments.id = doctors.department_id").
		Where("doctors.is_active = ?", true)

	if specialization != "" {
		query = query.Where("LOWER(departments.name) LIKE ?", "%"+strings.ToLower(specialization)+"%")
	}
	if name != "" {
		query = query.Where("LOWER(doctors.name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var doctors []models.DoctorSummary
	if err := query.Order("doctors.name asc").Scan(&doctors).Error; err != nil {
		utils.StoreError(c, "Failed to search doctors: "+err.Error())
		return
	}

	utils.Success(c, "Doctors fetched successfully", doctors)
}

// GetDoctorByID returns a single active doctor with the department name.
func (h *DoctorHandler) GetDoctorByID(c *gin.Context) {
	doctorID := c.Param("id")

	var doctor models.DoctorSummary
	err := h.DB.Model(&models.Doctor{}).
		Select("doctors.id, doctors.name, doctors.specialization, doctors.phone, doctors.email, doctors.experience, departments.name as department_name").
		Joins("LEFT JOIN departments ON departments.id = doctors.department_id").
		Where("doctors.id = ? AND doctors.is_active = ?", doctorID, true).
		First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.StoreError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Doctor fetched successfully", doctor)
}

// RemoveDoctor soft-deletes a doctor (admin). The profile and account rows are
// retained so historical appointments and treatments keep resolvable
// references; only the active flags change, and the department count drops.
func (h *DoctorHandler) RemoveDoctor(c *gin.Context) {
	doctorID := c.Param("id")

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var doctor models.Doctor
		if err := tx.First(&doctor, "id = ?", doctorID).Error; err != nil {
			return err
		}
		if !doctor.IsActive {
			return errAlreadyInactive
		}
		if err := tx.Model(&doctor).UpdateColumn("is_active", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", doctor.UserID).
			UpdateColumn("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Department{}).Where("id = ?", doctor.DepartmentID).
			UpdateColumn("doctors_count", gorm.Expr("doctors_count - 1")).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.NotFound(c, "Doctor not found")
		case errors.Is(err, errAlreadyInactive):
			utils.Conflict(c, apperrors.InvalidStateTransition, "Doctor is already removed")
		default:
			utils.StoreError(c, "Failed to remove doctor: "+err.Error())
		}
		return
	}

	utils.Success(c, "Doctor removed successfully", nil)
}

var errAlreadyInactive = errors.New("doctor already inactive")
