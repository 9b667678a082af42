package models

// Like marks a message as liked by a user. A user can like a given message once.
type Like struct {
	ID        uint64 `gorm:"primarykey" json:"id"`
	UserID    uint64 `gorm:"not null;uniqueIndex:idx_likes_user_message" json:"user_id"`
	MessageID uint64 `gorm:"not null;uniqueIndex:idx_likes_user_message;index" json:"message_id"`

	// Relations
	User    User    `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Message Message `gorm:"foreignKey:MessageID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}
