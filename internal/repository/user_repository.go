package repository

import (
	"strings"

	"github.com/yukikurage/warbler-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update saves profile changes
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete removes a user and everything that references them in a transaction
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		ownMessages := tx.Model(&models.Message{}).Select("id").Where("user_id = ?", id)

		// Likes on the user's messages, and likes the user gave
		if err := tx.Where("message_id IN (?) OR user_id = ?", ownMessages, id).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}

		// Follow edges in both directions
		if err := tx.Where("user_following_id = ? OR user_being_followed_id = ?", id, id).
			Delete(&models.Follow{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

// Search lists users whose username contains query, ignoring case
func (r *GormUserRepository) Search(query string) ([]models.User, error) {
	var users []models.User
	q := r.db.Order("id ASC")
	if query != "" {
		q = q.Where("LOWER(username) LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(query))+"%")
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike makes LIKE wildcards in s match literally, using '!' as the escape character
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
