package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/apperrors"
	"hospital-management-server/internal/middleware"
	"hospital-management-server/internal/models"
	"hospital-management-server/internal/utils"
)

// AvailabilityHandler handles doctor availability calendars.
type AvailabilityHandler struct {
	DB *gorm.DB
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(db *gorm.DB) *AvailabilityHandler {
	return &AvailabilityHandler{DB: db}
}

// AddAvailabilityRequest represents the request body for publishing a slot.
type AddAvailabilityRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

// AddAvailability appends a consultation window for the calling doctor.
// Overlap with existing slots is not checked.
func (h *AvailabilityHandler) AddAvailability(c *gin.Context) {
	var req AddAvailabilityRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !utils.ValidDate(req.Date) {
		utils.BadRequest(c, apperrors.ValidationFailed, "date must be in YYYY-MM-DD form")
		return
	}
	if !utils.ValidClockTime(req.StartTime) || !utils.ValidClockTime(req.EndTime) {
		utils.BadRequest(c, apperrors.ValidationFailed, "startTime and endTime must be in HH:MM form")
		return
	}
	if req.EndTime <= req.StartTime {
		utils.BadRequest(c, apperrors.ValidationFailed, "endTime must be after startTime")
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	doctor, err := doctorForUser(h.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor profile not found")
		} else {
			utils.StoreError(c, "Database error: "+err.Error())
		}
		return
	}

	slot := models.AvailabilitySlot{
		DoctorID:    doctor.ID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: true,
	}
	if err := h.DB.Create(&slot).Error; err != nil {
		utils.StoreError(c, "Failed to add availability: "+err.Error())
		return
	}

	utils.Created(c, "Availability added successfully", slot)
}

// ListAvailability returns a doctor's slots in a date range, ordered by
// (date, start time). Defaults to the coming week. ?availableOnly=true
// restricts to open slots, which is what the booking page shows.
func (h *AvailabilityHandler) ListAvailability(c *gin.Context) {
	doctorID := c.Param("id")

	from := c.Query("from")
	to := c.Query("to")
	if from == "" {
		from = utils.Today()
	}
	if to == "" {
		to = time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	}
	if !utils.ValidDate(from) || !utils.ValidDate(to) {
		utils.BadRequest(c, apperrors.ValidationFailed, "from and to must be in YYYY-MM-DD form")
		return
	}

	query := h.DB.Where("doctor_id = ? AND date >= ? AND date <= ?", doctorID, from, to)
	if c.Query("availableOnly") == "true" {
		query = query.Where("is_available = ?", true)
	}

	var slots []models.AvailabilitySlot
	if err := query.Order("date asc, start_time asc").Find(&slots).Error; err != nil {
		utils.StoreError(c, "Failed to fetch availability: "+err.Error())
		return
	}

	utils.Success(c, "Availability fetched successfully", slots)
}

// doctorForUser resolves the doctor profile owned by an account id.
func doctorForUser(db *gorm.DB, userID string) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := db.First(&doctor, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

// patientForUser resolves the patient profile owned by an account id.
func patientForUser(db *gorm.DB, userID string) (*models.Patient, error) {
	var patient models.Patient
	if err := db.First(&patient, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}
