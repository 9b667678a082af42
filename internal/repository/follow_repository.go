package repository

import (
	"github.com/yukikurage/warbler-api/internal/models"
	"gorm.io/gorm"
)

// GormFollowRepository is a GORM implementation of FollowRepository
type GormFollowRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &GormFollowRepository{db: db}
}

// Create inserts a follow edge. A second insert of the same pair violates the primary key.
func (r *GormFollowRepository) Create(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

// Delete removes the edge follower -> followed
func (r *GormFollowRepository) Delete(followerID, followedID uint64) (bool, error) {
	result := r.db.Where("user_following_id = ? AND user_being_followed_id = ?", followerID, followedID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists reports whether the edge follower -> followed exists
func (r *GormFollowRepository) Exists(followerID, followedID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("user_following_id = ? AND user_being_followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

// ListFollowing lists the users followerID follows
func (r *GormFollowRepository) ListFollowing(followerID uint64) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.user_being_followed_id = users.id").
		Where("follows.user_following_id = ?", followerID).
		Order("users.id ASC").
		Find(&users).Error
	return users, err
}

// ListFollowers lists the users following followedID
func (r *GormFollowRepository) ListFollowers(followedID uint64) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.user_following_id = users.id").
		Where("follows.user_being_followed_id = ?", followedID).
		Order("users.id ASC").
		Find(&users).Error
	return users, err
}

// CountFollowing counts the users followerID follows
func (r *GormFollowRepository) CountFollowing(followerID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("user_following_id = ?", followerID).Count(&count).Error
	return count, err
}

// CountFollowers counts the users following followedID
func (r *GormFollowRepository) CountFollowers(followedID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("user_being_followed_id = ?", followedID).Count(&count).Error
	return count, err
}
