package models

import "fmt"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "Booked"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
)

// Appointment is the aggregate root relating a patient and a doctor for a
// given date and time.
//
// SlotKey holds "doctorID|date|time" while the appointment is in a
// non-cancelled state and is cleared (set NULL) on cancellation. Its unique
// index makes "at most one non-cancelled appointment per (doctor, date, time)"
// a property of the insert itself, so two concurrent bookings of the same slot
// cannot both succeed.
type Appointment struct {
	BaseModel
	PatientID string            `gorm:"size:36;index;not null" json:"patientId"`
	DoctorID  string            `gorm:"size:36;index;not null" json:"doctorId"`
	Date      string            `gorm:"size:10;not null" json:"date"` // YYYY-MM-DD
	Time      string            `gorm:"size:5;not null" json:"time"`  // HH:MM
	Status    AppointmentStatus `gorm:"size:20;default:'Booked'" json:"status"`
	Reason    string            `gorm:"size:255" json:"reason"`
	SlotKey   *string           `gorm:"uniqueIndex;size:100" json:"-"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"-"`
}

// SlotKeyFor builds the uniqueness key claimed by a non-cancelled appointment.
func SlotKeyFor(doctorID, date, timeOfDay string) string {
	return fmt.Sprintf("%s|%s|%s", doctorID, date, timeOfDay)
}

// IsTerminal reports whether the appointment has reached a final state.
// Completed and Cancelled admit no further transitions.
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}
