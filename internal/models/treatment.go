package models

// Treatment is the clinical note written when an appointment is completed.
// The ledger is append-only: rows are created exactly once, inside the
// completion transaction, and never updated or deleted. The unique index on
// AppointmentID enforces the 1:1 relationship at the database.
type Treatment struct {
	BaseModel
	AppointmentID string `gorm:"uniqueIndex;size:36;not null" json:"appointmentId"`
	Diagnosis     string `gorm:"size:255" json:"diagnosis"`
	Prescription  string `gorm:"type:text" json:"prescription"`
	Notes         string `gorm:"type:text" json:"notes"`

	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
}
