package services

import (
	"fmt"
	"strings"

	"github.com/yukikurage/warbler-api/internal/constants"
	"github.com/yukikurage/warbler-api/internal/models"
	"github.com/yukikurage/warbler-api/internal/repository"
)

// FeedService assembles timelines and user listings.
type FeedService struct {
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
	followRepo  repository.FollowRepository
	likeRepo    repository.LikeRepository
}

// NewFeedService creates a new FeedService.
func NewFeedService(
	userRepo repository.UserRepository,
	messageRepo repository.MessageRepository,
	followRepo repository.FollowRepository,
	likeRepo repository.LikeRepository,
) *FeedService {
	return &FeedService{
		userRepo:    userRepo,
		messageRepo: messageRepo,
		followRepo:  followRepo,
		likeRepo:    likeRepo,
	}
}

// HomeTimeline returns the newest messages by userID and the users they follow.
func (s *FeedService) HomeTimeline(userID uint64) ([]models.Message, error) {
	messages, err := s.messageRepo.ListForFollower(userID, constants.TimelineLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to build home timeline: %w", err)
	}
	return messages, nil
}

// UserTimeline returns the newest messages owned by userID.
func (s *FeedService) UserTimeline(userID uint64) ([]models.Message, error) {
	if _, err := s.findUser(userID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListByUserID(userID, constants.TimelineLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list user messages: %w", err)
	}
	return messages, nil
}

// LikedMessageIDs returns the set of message IDs userID likes.
func (s *FeedService) LikedMessageIDs(userID uint64) (map[uint64]struct{}, error) {
	ids, err := s.likeRepo.ListMessageIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked message ids: %w", err)
	}

	set := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// LikedMessages returns the newest messages userID likes.
func (s *FeedService) LikedMessages(userID uint64) ([]models.Message, error) {
	messages, err := s.likeRepo.ListMessages(userID, constants.TimelineLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked messages: %w", err)
	}
	return messages, nil
}

// SearchUsers lists users whose username contains query, ignoring case.
// A blank query lists all users.
func (s *FeedService) SearchUsers(query string) ([]models.User, error) {
	users, err := s.userRepo.Search(strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

// Profile holds a user with their relationship counters.
type Profile struct {
	User           models.User
	MessageCount   int64
	FollowerCount  int64
	FollowingCount int64
	LikeCount      int64
}

// Profile returns userID with their counters.
func (s *FeedService) Profile(userID uint64) (*Profile, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}

	profile := &Profile{User: *user}

	if profile.MessageCount, err = s.messageRepo.CountByUserID(userID); err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}
	if profile.FollowerCount, err = s.followRepo.CountFollowers(userID); err != nil {
		return nil, fmt.Errorf("failed to count followers: %w", err)
	}
	if profile.FollowingCount, err = s.followRepo.CountFollowing(userID); err != nil {
		return nil, fmt.Errorf("failed to count following: %w", err)
	}

	liked, err := s.likeRepo.ListMessageIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	profile.LikeCount = int64(len(liked))

	return profile, nil
}

func (s *FeedService) findUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
