package models

// Department groups doctors by medical discipline. DoctorsCount is denormalized
// and maintained inside the add/remove doctor transactions.
type Department struct {
	BaseModel
	Name         string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description  string `gorm:"size:255" json:"description"`
	DoctorsCount int    `gorm:"default:0" json:"doctorsCount"`
}
