package models

// Doctor is the professional profile linked 1:1 to a RoleDoctor user account.
// Doctors are only ever soft-deleted: historical appointments keep resolvable
// references, so the row is never removed.
type Doctor struct {
	BaseModel
	UserID         string `gorm:"uniqueIndex;size:36;not null" json:"userId"`
	Name           string `gorm:"size:100;not null" json:"name"`
	Specialization string `gorm:"size:100;not null" json:"specialization"`
	DepartmentID   string `gorm:"size:36;index" json:"departmentId"`
	Phone          string `gorm:"size:20" json:"phone"`
	Email          string `gorm:"size:255" json:"email"`
	Experience     int    `json:"experience"`
	IsActive       bool   `gorm:"default:true" json:"isActive"`

	// Relations
	User       User       `gorm:"foreignKey:UserID" json:"-"`
	Department Department `gorm:"foreignKey:DepartmentID" json:"-"`
}

// DoctorSummary is the search/listing projection of a doctor joined with the
// department name.
type DoctorSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	DepartmentName string `json:"departmentName"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Experience     int    `json:"experience"`
}
