package models

type User struct {
	ID             uint64 `gorm:"primarykey" json:"id"`
	Email          string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username       string `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	ImageURL       string `gorm:"type:varchar(255);default:'/static/images/default-pic.png'" json:"image_url"`
	HeaderImageURL string `gorm:"type:varchar(255);default:'/static/images/warbler-hero.jpg'" json:"header_image_url"`
	Bio            string `gorm:"type:text" json:"bio"`
	Location       string `gorm:"type:text" json:"location"`
	PasswordHash   string `gorm:"column:password;type:varchar(255);not null" json:"-"`

	// Relations
	Messages []Message `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
