package repository

import (
	"github.com/yukikurage/warbler-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Update saves profile changes
	Update(user *models.User) error

	// Delete removes a user together with their messages, likes and follow edges
	Delete(id uint64) error

	// Search lists users whose username contains query, ignoring case.
	// An empty query lists every user.
	Search(query string) ([]models.User, error)
}

// MessageRepository defines the interface for message data access
type MessageRepository interface {
	// Create creates a new message
	Create(message *models.Message) error

	// FindByID finds a message by ID with its author
	FindByID(id uint64) (*models.Message, error)

	// Delete removes a message and the likes on it
	Delete(id uint64) error

	// ListByUserID lists a user's messages, newest first
	ListByUserID(userID uint64, limit int) ([]models.Message, error)

	// ListForFollower lists messages by userID and everyone userID follows, newest first
	ListForFollower(userID uint64, limit int) ([]models.Message, error)

	// CountByUserID counts a user's messages
	CountByUserID(userID uint64) (int64, error)
}

// FollowRepository defines the interface for follow edge data access
type FollowRepository interface {
	// Create inserts the edge follower -> followed
	Create(follow *models.Follow) error

	// Delete removes the edge follower -> followed and reports whether it existed
	Delete(followerID, followedID uint64) (bool, error)

	// Exists reports whether the edge follower -> followed exists
	Exists(followerID, followedID uint64) (bool, error)

	// ListFollowing lists the users followerID follows
	ListFollowing(followerID uint64) ([]models.User, error)

	// ListFollowers lists the users following followedID
	ListFollowers(followedID uint64) ([]models.User, error)

	// CountFollowing counts the users followerID follows
	CountFollowing(followerID uint64) (int64, error)

	// CountFollowers counts the users following followedID
	CountFollowers(followedID uint64) (int64, error)
}

// LikeRepository defines the interface for like edge data access
type LikeRepository interface {
	// Create inserts a like
	Create(like *models.Like) error

	// Find finds the like of userID on messageID
	Find(userID, messageID uint64) (*models.Like, error)

	// Delete removes a like by ID
	Delete(id uint64) error

	// ListMessageIDs lists the IDs of messages userID likes
	ListMessageIDs(userID uint64) ([]uint64, error)

	// ListMessages lists the messages userID likes, newest first
	ListMessages(userID uint64, limit int) ([]models.Message, error)
}
