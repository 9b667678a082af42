package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/warbler-api/internal/constants"
	"github.com/yukikurage/warbler-api/internal/models"
	"github.com/yukikurage/warbler-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMessageNotFound        = errors.New("message not found")
	ErrMessageTextRequired    = errors.New("message text is required")
	ErrMessageTooLong         = errors.New("message text is too long")
	ErrNotMessageOwner        = errors.New("only the author can delete this message")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoValidSuggestions   = errors.New("AI did not produce any usable drafts")
)

// MessageDrafter writes draft messages about a topic
type MessageDrafter interface {
	DraftMessages(ctx context.Context, topic string, count int) ([]string, error)
}

// MessageService handles message business logic
type MessageService struct {
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
	drafter     MessageDrafter
	now         func() time.Time
}

// NewMessageService creates a new MessageService. drafter may be nil.
func NewMessageService(userRepo repository.UserRepository, messageRepo repository.MessageRepository, drafter MessageDrafter) *MessageService {
	return &MessageService{
		userRepo:    userRepo,
		messageRepo: messageRepo,
		drafter:     drafter,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ValidateText trims text and checks it fits a message.
func ValidateText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrMessageTextRequired
	}
	if utf8.RuneCountInString(text) > constants.MaxMessageLength {
		return "", ErrMessageTooLong
	}
	return text, nil
}

// CreateMessage posts a message as userID
func (s *MessageService) CreateMessage(userID uint64, text string) (*models.Message, error) {
	text, err := ValidateText(text)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	message := &models.Message{
		Text:      text,
		Timestamp: s.now(),
		UserID:    userID,
	}
	if err := s.messageRepo.Create(message); err != nil {
		// The author can disappear between the lookup and the insert
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"message_id": message.ID,
	}).Info("Message posted")

	return s.messageRepo.FindByID(message.ID)
}

// GetMessage returns a message with its author
func (s *MessageService) GetMessage(id uint64) (*models.Message, error) {
	message, err := s.messageRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}
	return message, nil
}

// DeleteMessage deletes a message if actorID wrote it
func (s *MessageService) DeleteMessage(id, actorID uint64) error {
	message, err := s.GetMessage(id)
	if err != nil {
		return err
	}

	if message.UserID != actorID {
		return ErrNotMessageOwner
	}

	if err := s.messageRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	return nil
}

// SuggestMessages asks the AI service for drafts about topic and keeps the ones that fit a message
func (s *MessageService) SuggestMessages(ctx context.Context, topic string) ([]string, error) {
	if s.drafter == nil {
		return nil, ErrAIServiceNotConfigured
	}

	drafts, err := s.drafter.DraftMessages(ctx, topic, constants.MaxAISuggestions)
	if err != nil {
		return nil, fmt.Errorf("failed to generate drafts: %w", err)
	}

	valid := make([]string, 0, len(drafts))
	for _, draft := range drafts {
		text, err := ValidateText(draft)
		if err != nil {
			continue
		}
		valid = append(valid, text)
		if len(valid) == constants.MaxAISuggestions {
			break
		}
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidSuggestions
	}

	return valid, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
