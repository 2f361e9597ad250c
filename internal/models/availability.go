package models

// AvailabilitySlot is a doctor's published consultation window. Slots are
// advisory: they are listed to patients while booking but do not constrain
// appointment creation, and overlapping slots for the same doctor are not
// rejected at write time.
type AvailabilitySlot struct {
	BaseModel
	DoctorID    string `gorm:"size:36;index;not null" json:"doctorId"`
	Date        string `gorm:"size:10;not null" json:"date"`      // YYYY-MM-DD
	StartTime   string `gorm:"size:5;not null" json:"startTime"`  // HH:MM
	EndTime     string `gorm:"size:5;not null" json:"endTime"`    // HH:MM
	IsAvailable bool   `gorm:"default:true" json:"isAvailable"`

	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}
