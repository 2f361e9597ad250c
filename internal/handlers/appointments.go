package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/apperrors"
	"hospital-management-server/internal/middleware"
	"hospital-management-server/internal/models"
	"hospital-management-server/internal/utils"
)

// AppointmentHandler handles the appointment lifecycle: booking, cancellation,
// completion and the role-scoped listings.
type AppointmentHandler struct {
	DB *gorm.DB
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{DB: db}
}

// BookAppointmentRequest represents the request body for booking.
type BookAppointmentRequest struct {
	DoctorID string `json:"doctorId" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Reason   string `json:"reason"`
}

// Book creates a Booked appointment for the calling patient. The slot-conflict
// invariant (at most one non-cancelled appointment per doctor, date and time)
// is enforced by the SlotKey unique index on the insert itself, so two
// concurrent bookings of the same slot cannot both succeed.
func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !utils.ValidDate(req.Date) {
		utils.BadRequest(c, apperrors.ValidationFailed, "date must be in YYYY-MM-DD form")
		return
	}
	if !utils.ValidClockTime(req.Time) {
		utils.BadRequest(c, apperrors.ValidationFailed, "time must be in HH:MM form")
		return
	}
	if req.Date < utils.Today() {
		utils.BadRequest(c, apperrors.ValidationFailed, "date must not be in the past")
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

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ? AND is_active = ?", req.DoctorID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.StoreError(c, "Database error: "+err.Error())
		}
		return
	}

	slotKey := models.SlotKeyFor(doctor.ID, req.Date, req.Time)
	appointment := models.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    models.StatusBooked,
		Reason:    req.Reason,
		SlotKey:   &slotKey,
	}
	if err := h.DB.Create(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, apperrors.SlotConflict, "This time slot is already booked")
		} else {
			utils.StoreError(c, "Failed to book appointment: "+err.Error())
		}
		return
	}

	utils.Created(c, "Appointment booked successfully", appointment)
}

// Cancel transitions a Booked appointment to Cancelled. Only the owning
// patient may cancel, and a terminal appointment is never silently re-written.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	appointmentID := c.Param("id")

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

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.StoreError(c, "Database error: "+err.Error())
		}
		return
	}

	if appointment.PatientID != patient.ID {
		utils.Forbidden(c, apperrors.OwnershipMismatch, "You can only cancel your own appointments")
		return
	}
	if appointment.IsTerminal() {
		utils.Conflict(c, apperrors.InvalidStateTransition,
			"Cannot cancel an appointment in status "+string(appointment.Status))
		return
	}

	// The status guard in the UPDATE makes the transition atomic: a concurrent
	// completion between the read above and this write leaves zero rows
	// affected instead of overwriting the terminal state. Clearing SlotKey
	// releases the (doctor, date, time) slot for rebooking.
	res := h.DB.Model(&models.Appointment{}).
		Where("id = ? AND status = ?", appointment.ID, models.StatusBooked).
		Updates(map[string]interface{}{
			"status":   models.StatusCancelled,
			"slot_key": nil,
		})
	if res.Error != nil {
		utils.StoreError(c, "Failed to cancel appointment: "+res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.Conflict(c, apperrors.InvalidStateTransition, "Appointment is not in Booked status")
		return
	}

	utils.Success(c, "Appointment cancelled successfully", nil)
}

// CompleteAppointmentRequest represents the clinical note written on completion.
type CompleteAppointmentRequest struct {
	Diagnosis    string `json:"diagnosis" binding:"required"`
	Prescription string `json:"prescription"`
	Notes        string `json:"notes"`
}

// Complete transitions a Booked appointment to Completed and writes exactly
// one Treatment, in one transaction. Only the owning doctor may complete.
// A retry finds the appointment already Completed and fails with
// INVALID_STATE_TRANSITION instead of writing a second treatment.
func (h *AppointmentHandler) Complete(c *gin.Context) {
	appointmentID := c.Param("id")

	var req CompleteAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
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

	var treatment models.Treatment
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.First(&appointment, "id = ?", appointmentID).Error; err != nil {
			return err
		}
		if appointment.DoctorID != doctor.ID {
			return errNotOwner
		}
		if appointment.IsTerminal() {
			return errTerminalState
		}
		// Guarded like Cancel: zero rows affected means a concurrent
		// transition won, so the treatment insert below never runs.
		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND status = ?", appointment.ID, models.StatusBooked).
			UpdateColumn("status", models.StatusCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errTerminalState
		}
		treatment = models.Treatment{
			AppointmentID: appointment.ID,
			Diagnosis:     req.Diagnosis,
			Prescription:  req.Prescription,
			Notes:         req.Notes,
		}
		return tx.Create(&treatment).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.NotFound(c, "Appointment not found")
		case errors.Is(err, errNotOwner):
			utils.Forbidden(c, apperrors.OwnershipMismatch, "You can only complete your own appointments")
		case errors.Is(err, errTerminalState):
			utils.Conflict(c, apperrors.InvalidStateTransition, "Appointment is not in Booked status")
		case errors.Is(err, gorm.ErrDuplicatedKey):
			utils.Conflict(c, apperrors.InvalidStateTransition, "Appointment already has a treatment record")
		default:
			utils.StoreError(c, "Failed to complete appointment: "+err.Error())
		}
		return
	}

	utils.Success(c, "Appointment completed successfully", treatment)
}

// PatientAppointmentView is a patient-facing appointment row joined with the
// doctor and, for past rows, the treatment.
type PatientAppointmentView struct {
	ID             string                   `json:"id"`
	Date           string                   `json:"date"`
	Time           string                   `json:"time"`
	Status         models.AppointmentStatus `json:"status"`
	Reason         string                   `json:"reason"`
	DoctorName     string                   `json:"doctorName"`
	Specialization string                   `json:"specialization"`
	Diagnosis      *string                  `json:"diagnosis,omitempty"`
	Prescription   *string                  `json:"prescription,omitempty"`
}

// PatientAppointments is the upcoming/past split returned to patients.
type PatientAppointments struct {
	Upcoming []PatientAppointmentView `json:"upcoming"`
	Past     []PatientAppointmentView `json:"past"`
}

// ListMine returns the calling patient's appointments split into upcoming
// (today or later, any status, soonest first) and past (before today or
// Completed, newest first, left-joined with treatments so the diagnosis may
// be absent).
func (h *AppointmentHandler) ListMine(c *gin.Context) {
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

	today := utils.Today()
	result := PatientAppointments{
		Upcoming: []PatientAppointmentView{},
		Past:     []PatientAppointmentView{},
	}

	err = h.DB.Model(&models.Appointment{}).
		Select("appointments.id, appointments.date, appointments.time, appointments.status, appointments.reason, doctors.name as doctor_name, doctors.specialization").
		Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
		Where("appointments.patient_id = ? AND appointments.date >= ?", patient.ID, today).
		Order("appointments.date asc, appointments.time asc").
		Scan(&result.Upcoming).Error
	if err != nil {
		utils.StoreError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	err = h.DB.Model(&models.Appointment{}).
		Select("appointments.id, appointments.date, appointments.time, appointments.status, appointments.reason, doctors.name as doctor_name, doctors.specialization, treatments.diagnosis, treatments.prescription").
		Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
		Joins("LEFT JOIN treatments ON treatments.appointment_id = appointments.id").
		Where("appointments.patient_id = ? AND (appointments.date < ? OR appointments.status = ?)",
			patient.ID, today, models.StatusCompleted).
		Order("appointments.date desc, appointments.time desc").
		Scan(&result.Past).Error
	if err != nil {
		utils.StoreError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", result)
}

// DoctorAppointmentView is a doctor-facing appointment row joined with
// patient demographics.
type DoctorAppointmentView struct {
	ID          string                   `json:"id"`
	Date        string                   `json:"date"`
	Time        string                   `json:"time"`
	Status      models.AppointmentStatus `json:"status"`
	Reason      string                   `json:"reason"`
	PatientName string                   `json:"patientName"`
	Phone       string                   `json:"phone"`
	Age         int                      `json:"age"`
	Gender      string                   `json:"gender"`
	BloodGroup  string                   `json:"bloodGroup"`
}

// ListForDoctor returns every appointment of the calling doctor, newest first.
func (h *AppointmentHandler) ListForDoctor(c *gin.Context) {
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

	var appointments []DoctorAppointmentView
	err = h.DB.Model(&models.Appointment{}).
		Select("appointments.id, appointments.date, appointments.time, appointments.status, appointments.reason, patients.name as patient_name, patients.phone, patients.age, patients.gender, patients.blood_group").
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Where("appointments.doctor_id = ?", doctor.ID).
		Order("appointments.date desc, appointments.time desc").
		Scan(&appointments).Error
	if err != nil {
		utils.StoreError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// ListUpcomingForDoctor returns the doctor's Booked appointments from a date
// (default today) onwards, soonest first. This is the daily work queue.
func (h *AppointmentHandler) ListUpcomingForDoctor(c *gin.Context) {
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

	from := c.Query("from")
	if from == "" {
		from = utils.Today()
	}
	if !utils.ValidDate(from) {
		utils.BadRequest(c, apperrors.ValidationFailed, "from must be in YYYY-MM-DD form")
		return
	}

	var appointments []DoctorAppointmentView
	err = h.DB.Model(&models.Appointment{}).
		Select("appointments.id, appointments.date, appointments.time, appointments.status, appointments.reason, patients.name as patient_name, patients.phone, patients.age, patients.gender, patients.blood_group").
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Where("appointments.doctor_id = ? AND appointments.status = ? AND appointments.date >= ?",
			doctor.ID, models.StatusBooked, from).
		Order("appointments.date asc, appointments.time asc").
		Scan(&appointments).Error
	if err != nil {
		utils.StoreError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// AdminAppointmentView is the administrative listing row with both names.
type AdminAppointmentView struct {
	ID             string                   `json:"id"`
	Date           string                   `json:"date"`
	Time           string                   `json:"time"`
	Status         models.AppointmentStatus `json:"status"`
	Reason         string                   `json:"reason"`
	PatientName    string                   `json:"patientName"`
	DoctorName     string                   `json:"doctorName"`
	Specialization string                   `json:"specialization"`
}

// ListAll returns every appointment with patient and doctor names (admin).
func (h *AppointmentHandler) ListAll(c *gin.Context) {
	var appointments []AdminAppointmentView
	err := h.DB.Model(&models.Appointment{}).
		Select("appointments.id, appointments.date, appointments.time, appointments.status, appointments.reason, patients.name as patient_name, doctors.name as doctor_name, doctors.specialization").
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
		Order("appointments.date desc, appointments.time desc").
		Scan(&appointments).Error
	if err != nil {
		utils.StoreError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

var (
	errNotOwner      = errors.New("appointment owned by another principal")
	errTerminalState = errors.New("appointment is in a terminal state")
)
