package models

import "time"

type Message struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Text      string    `gorm:"type:varchar(50);not null" json:"text"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	UserID    uint64    `gorm:"not null" json:"user_id"`

	// Relations
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}
