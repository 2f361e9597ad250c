package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/middleware"
	"hospital-management-server/internal/models"
	"hospital-management-server/internal/utils"
)

// PatientHandler handles the patient directory and patient profile requests.
type PatientHandler struct {
	DB *gorm.DB
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// ListPatients returns active patients ordered by name (admin). ?search=
// matches name, phone or email as a case-insensitive substring.
func (h *PatientHandler) ListPatients(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))

	query := h.DB.Where("is_active = ?", true)
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}

	var patients []models.Patient
	if err := query.Order("name asc").Find(&patients).Error; err != nil {
		utils.StoreError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	utils.Success(c, "Patients fetched successfully", patients)
}

// GetMyProfile returns the calling patient's profile.
func (h *PatientHandler) GetMyProfile(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	patient, err := patientForUser(h.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient profile not found")
		} else {
			utils.StoreError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Profile fetched successfully", patient)
}

// UpdateProfileRequest represents the demographic fields a patient may change.
type UpdateProfileRequest struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	Phone      string `json:"phone"`
	Email      string `json:"email" binding:"omitempty,email"`
	Address    string `json:"address"`
	BloodGroup string `json:"bloodGroup"`
}

// UpdateMyProfile updates the calling patient's demographic fields.
func (h *PatientHandler) UpdateMyProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	patient, err := patientForUser(h.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient profile not found")
		} else {
			utils.StoreError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.Name != "" {
		patient.Name = req.Name
	}
	if req.Age != 0 {
		patient.Age = req.Age
	}
	if req.Gender != "" {
		patient.Gender = req.Gender
	}
	if req.Phone != "" {
		patient.Phone = req.Phone
	}
	if req.Email != "" {
		patient.Email = req.Email
	}
	if req.Address != "" {
		patient.Address = req.Address
	}
	if req.BloodGroup != "" {
		patient.BloodGroup = req.BloodGroup
	}

	if err := h.DB.Save(patient).Error; err != nil {
		utils.StoreError(c, "Failed to update profile: "+err.Error())
		return
	}

	utils.Success(c, "Profile updated successfully", patient)
}

// TreatmentHistoryEntry is one completed appointment with its clinical note.
type TreatmentHistoryEntry struct {
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Diagnosis    *string `json:"diagnosis,omitempty"`
	Prescription *string `json:"prescription,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// GetPatientHistory returns a patient's completed appointments joined with
// treatments, newest first (doctor-facing, consulted before completing a new
// appointment).
func (h *PatientHandler) GetPatientHistory(c *gin.Context) {
	patientID := c.Param("id")

	if err := h.DB.First(&models.Patient{}, "id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.StoreError(c, "Database error: "+err.Error())
		}
		return
	}

	var history []TreatmentHistoryEntry
	err := h.DB.Model(&models.Appointment{}).
		Select("appointments.date, appointments.time, treatments.diagnosis, treatments.prescription, treatments.notes").
		Joins("LEFT JOIN treatments ON treatments.appointment_id = appointments.id").
		Where("appointments.patient_id = ? AND appointments.status = ?", patientID, models.StatusCompleted).
		Order("appointments.date desc, appointments.time desc").
		Scan(&history).Error
	if err != nil {
		utils.StoreError(c, "Failed to fetch patient history: "+err.Error())
		return
	}

	utils.Success(c, "Patient history fetched successfully", history)
}
