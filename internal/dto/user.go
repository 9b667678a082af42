package dto

import (
	"github.com/yukikurage/warbler-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	ImageURL string `json:"image_url"`
}

// CurrentUserDTO is the authenticated user's own view, including private fields
type CurrentUserDTO struct {
	UserDTO
	Email          string `json:"email"`
	HeaderImageURL string `json:"header_image_url"`
	Bio            string `json:"bio"`
	Location       string `json:"location"`
}

// ProfileDTO represents a user's public profile page
type ProfileDTO struct {
	UserDTO
	HeaderImageURL string       `json:"header_image_url"`
	Bio            string       `json:"bio"`
	Location       string       `json:"location"`
	MessageCount   int64        `json:"message_count"`
	FollowerCount  int64        `json:"follower_count"`
	FollowingCount int64        `json:"following_count"`
	LikeCount      int64        `json:"like_count"`
	IsFollowing    bool         `json:"is_following"`
	IsFollowedBy   bool         `json:"is_followed_by"`
	Messages       []MessageDTO `json:"messages"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		ImageURL: user.ImageURL,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}
	return items
}

// ToCurrentUserDTO converts the authenticated user
func ToCurrentUserDTO(user models.User) CurrentUserDTO {
	return CurrentUserDTO{
		UserDTO:        ToUserDTO(user),
		Email:          user.Email,
		HeaderImageURL: user.HeaderImageURL,
		Bio:            user.Bio,
		Location:       user.Location,
	}
}
