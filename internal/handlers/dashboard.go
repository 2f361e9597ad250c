package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/middleware"
	"hospital-management-server/internal/models"
	"hospital-management-server/internal/utils"
)

// DashboardHandler serves the role-specific landing summaries.
type DashboardHandler struct {
	DB *gorm.DB
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

// AdminDashboard aggregates the admin landing numbers.
type AdminDashboard struct {
	TotalDoctors       int64                  `json:"totalDoctors"`
	TotalPatients      int64                  `json:"totalPatients"`
	TotalAppointments  int64                  `json:"totalAppointments"`
	RecentAppointments []AdminAppointmentView `json:"recentAppointments"`
}

// GetAdminDashboard returns active doctor/patient counts, total appointments
// and the ten most recently created appointments.
func (h *DashboardHandler) GetAdminDashboard(c *gin.Context) {
	var dash AdminDashboard

	if err := h.DB.Model(&models.Doctor{}).Where("is_active = ?", true).Count(&dash.TotalDoctors).Error; err != nil {
		utils.StoreError(c, "Failed to count doctors: "+err.Error())
		return
	}
	if err := h.DB.Model(&models.Patient{}).Where("is_active = ?", true).Count(&dash.TotalPatients).Error; err != nil {
		utils.StoreError(c, "Failed to count patients: "+err.Error())
		return
	}
	if err := h.DB.Model(&models.Appointment{}).Count(&dash.TotalAppointments).Error; err != nil {
		utils.StoreError(c, "Failed to count appointments: "+err.Error())
		return
	}

	err := h.DB.Model(&models.Appointment{}).
		Select("appointments.id, appointments.date, appointments.time, appointments.status, appointments.reason, patients.name as patient_name, doctors.name as doctor_name, doctors.specialization").
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
		Order("appointments.created_at desc").
		Limit(10).
		Scan(&dash.RecentAppointments).Error
	if err != nil {
		utils.StoreError(c, "Failed to fetch recent appointments: "+err.Error())
		return
	}

	utils.Success(c, "Dashboard fetched successfully", dash)
}

// DoctorDashboard aggregates the doctor landing numbers.
type DoctorDashboard struct {
	Doctor               models.Doctor           `json:"doctor"`
	TotalPatients        int64                   `json:"totalPatients"`
	UpcomingAppointments []DoctorAppointmentView `json:"upcomingAppointments"`
}

// GetDoctorDashboard returns the calling doctor's upcoming Booked
// appointments from today plus the count of distinct patients ever seen.
func (h *DashboardHandler) GetDoctorDashboard(c *gin.Context) {
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

	dash := DoctorDashboard{Doctor: *doctor}

	err = h.DB.Model(&models.Appointment{}).
		Where("doctor_id = ?", doctor.ID).
		Distinct("patient_id").
		Count(&dash.TotalPatients).Error
	if err != nil {
		utils.StoreError(c, "Failed to count patients: "+err.Error())
		return
	}

	err = h.DB.Model(&models.Appointment{}).
		Select("appointments.id, appointments.date, appointments.time, appointments.status, appointments.reason, patients.name as patient_name, patients.phone, patients.age, patients.gender, patients.blood_group").
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Where("appointments.doctor_id = ? AND appointments.status = ? AND appointments.date >= ?",
			doctor.ID, models.StatusBooked, utils.Today()).
		Order("appointments.date asc, appointments.time asc").
		Scan(&dash.UpcomingAppointments).Error
	if err != nil {
		utils.StoreError(c, "Failed to fetch upcoming appointments: "+err.Error())
		return
	}

	utils.Success(c, "Dashboard fetched successfully", dash)
}
