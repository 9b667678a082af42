package repository

import (
	"github.com/yukikurage/warbler-api/internal/database"
	"github.com/yukikurage/warbler-api/internal/models"
	"gorm.io/gorm"
)

// GormLikeRepository is a GORM implementation of LikeRepository
type GormLikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &GormLikeRepository{db: db}
}

// Create inserts a like
func (r *GormLikeRepository) Create(like *models.Like) error {
	return r.db.Create(like).Error
}

// Find finds the like of userID on messageID
func (r *GormLikeRepository) Find(userID, messageID uint64) (*models.Like, error) {
	var like models.Like
	if err := r.db.Where("user_id = ? AND message_id = ?", userID, messageID).
		First(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

// Delete removes a like by ID
func (r *GormLikeRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Like{}, id).Error
}

// ListMessageIDs lists the IDs of messages userID likes
func (r *GormLikeRepository) ListMessageIDs(userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ?", userID).
		Pluck("message_id", &ids).Error
	return ids, err
}

// ListMessages lists the messages userID likes, newest first
func (r *GormLikeRepository) ListMessages(userID uint64, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("User").
		Joins("JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", userID).
		Scopes(database.Latest(limit)).
		Find(&messages).Error
	return messages, err
}
