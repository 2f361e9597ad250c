package models

// Patient is the demographic profile linked 1:1 to a RolePatient user account.
type Patient struct {
	BaseModel
	UserID     string `gorm:"uniqueIndex;size:36;not null" json:"userId"`
	Name       string `gorm:"size:100;not null" json:"name"`
	Age        int    `json:"age"`
	Gender     string `gorm:"size:20" json:"gender"`
	Phone      string `gorm:"size:20" json:"phone"`
	Email      string `gorm:"size:255" json:"email"`
	Address    string `gorm:"size:255" json:"address"`
	BloodGroup string `gorm:"size:10" json:"bloodGroup"`
	IsActive   bool   `gorm:"default:true" json:"isActive"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
