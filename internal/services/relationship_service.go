package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/warbler-api/internal/models"
	"github.com/yukikurage/warbler-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrDuplicateEdge        = errors.New("relationship already exists")
	ErrInvalidSelfReference = errors.New("cannot follow yourself")
	ErrNotFollowing         = errors.New("not following this user")
	ErrSelfLikeForbidden    = errors.New("cannot like your own message")
)

// RelationshipService maintains follow and like edges.
type RelationshipService struct {
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
	followRepo  repository.FollowRepository
	likeRepo    repository.LikeRepository
}

// NewRelationshipService creates a new RelationshipService.
func NewRelationshipService(
	userRepo repository.UserRepository,
	messageRepo repository.MessageRepository,
	followRepo repository.FollowRepository,
	likeRepo repository.LikeRepository,
) *RelationshipService {
	return &RelationshipService{
		userRepo:    userRepo,
		messageRepo: messageRepo,
		followRepo:  followRepo,
		likeRepo:    likeRepo,
	}
}

// Follow creates the edge follower -> followed.
func (s *RelationshipService) Follow(followerID, followedID uint64) error {
	if followerID == followedID {
		return ErrInvalidSelfReference
	}

	if err := s.ensureUser(followerID); err != nil {
		return err
	}
	if err := s.ensureUser(followedID); err != nil {
		return err
	}

	follow := &models.Follow{
		FollowerID: followerID,
		FollowedID: followedID,
	}
	if err := s.followRepo.Create(follow); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEdge
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to follow user: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"follower_id": followerID,
		"followed_id": followedID,
	}).Info("User followed")
	return nil
}

// Unfollow removes the edge follower -> followed.
func (s *RelationshipService) Unfollow(followerID, followedID uint64) error {
	removed, err := s.followRepo.Delete(followerID, followedID)
	if err != nil {
		return fmt.Errorf("failed to unfollow user: %w", err)
	}
	if !removed {
		return ErrNotFollowing
	}

	return nil
}

// IsFollowing reports whether a follows b.
func (s *RelationshipService) IsFollowing(a, b uint64) (bool, error) {
	following, err := s.followRepo.Exists(a, b)
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return following, nil
}

// IsFollowedBy reports whether a is followed by b.
func (s *RelationshipService) IsFollowedBy(a, b uint64) (bool, error) {
	return s.IsFollowing(b, a)
}

// ListFollowing lists the users userID follows.
func (s *RelationshipService) ListFollowing(userID uint64) ([]models.User, error) {
	if err := s.ensureUser(userID); err != nil {
		return nil, err
	}

	users, err := s.followRepo.ListFollowing(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	return users, nil
}

// ListFollowers lists the users following userID.
func (s *RelationshipService) ListFollowers(userID uint64) ([]models.User, error) {
	if err := s.ensureUser(userID); err != nil {
		return nil, err
	}

	users, err := s.followRepo.ListFollowers(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	return users, nil
}

// ToggleLike likes messageID for userID, or removes the like if userID already
// liked it, and returns the resulting state.
func (s *RelationshipService) ToggleLike(userID, messageID uint64) (bool, error) {
	message, err := s.messageRepo.FindByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrMessageNotFound
		}
		return false, fmt.Errorf("failed to find message: %w", err)
	}

	if message.UserID == userID {
		return false, ErrSelfLikeForbidden
	}

	if err := s.ensureUser(userID); err != nil {
		return false, err
	}

	existing, err := s.likeRepo.Find(userID, messageID)
	switch {
	case err == nil:
		if err := s.likeRepo.Delete(existing.ID); err != nil {
			return false, fmt.Errorf("failed to unlike message: %w", err)
		}
		return false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return false, fmt.Errorf("failed to find like: %w", err)
	}

	like := &models.Like{
		UserID:    userID,
		MessageID: messageID,
	}
	if err := s.likeRepo.Create(like); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, ErrDuplicateEdge
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return false, ErrMessageNotFound
		}
		return false, fmt.Errorf("failed to like message: %w", err)
	}

	return true, nil
}

func (s *RelationshipService) ensureUser(id uint64) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	return nil
}
