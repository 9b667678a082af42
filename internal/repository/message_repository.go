package repository

import (
	"github.com/yukikurage/warbler-api/internal/database"
	"github.com/yukikurage/warbler-api/internal/models"
	"gorm.io/gorm"
)

// GormMessageRepository is a GORM implementation of MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

// Create creates a new message
func (r *GormMessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// FindByID finds a message by ID with its author
func (r *GormMessageRepository) FindByID(id uint64) (*models.Message, error) {
	var message models.Message
	if err := r.db.Preload("User").First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// Delete removes a message and its likes in a transaction
func (r *GormMessageRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Message{}, id).Error
	})
}

// ListByUserID lists a user's messages, newest first
func (r *GormMessageRepository) ListByUserID(userID uint64, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("User").
		Where("messages.user_id = ?", userID).
		Scopes(database.Latest(limit)).
		Find(&messages).Error
	return messages, err
}

// ListForFollower lists messages written by userID or by anyone userID follows
func (r *GormMessageRepository) ListForFollower(userID uint64, limit int) ([]models.Message, error) {
	var messages []models.Message

	followed := r.db.Model(&models.Follow{}).
		Select("user_being_followed_id").
		Where("user_following_id = ?", userID)

	err := r.db.Preload("User").
		Where("messages.user_id IN (?) OR messages.user_id = ?", followed, userID).
		Scopes(database.Latest(limit)).
		Find(&messages).Error
	return messages, err
}

// CountByUserID counts a user's messages
func (r *GormMessageRepository) CountByUserID(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
