package dto

import (
	"sort"
	"time"

	"github.com/yukikurage/warbler-api/internal/models"
)

// MessageDTO represents a message in API responses
type MessageDTO struct {
	ID        uint64    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	UserID    uint64    `json:"user_id"`
	User      *UserDTO  `json:"user,omitempty"`
	Liked     bool      `json:"liked"`
}

// TimelineResponse is a list of messages annotated with the viewer's likes
type TimelineResponse struct {
	Messages []MessageDTO `json:"messages"`
	LikedIDs []uint64     `json:"liked_ids"`
}

// ToMessageDTO converts a Message model to MessageDTO
func ToMessageDTO(message models.Message, liked bool) MessageDTO {
	dto := MessageDTO{
		ID:        message.ID,
		Text:      message.Text,
		Timestamp: message.Timestamp,
		UserID:    message.UserID,
		Liked:     liked,
	}

	// Include author if preloaded
	if message.User.ID != 0 {
		author := ToUserDTO(message.User)
		dto.User = &author
	}

	return dto
}

// ToMessageDTOs converts messages, marking those whose IDs are in liked
func ToMessageDTOs(messages []models.Message, liked map[uint64]struct{}) []MessageDTO {
	items := make([]MessageDTO, len(messages))
	for i, message := range messages {
		_, ok := liked[message.ID]
		items[i] = ToMessageDTO(message, ok)
	}
	return items
}

// ToTimelineResponse builds a timeline response. liked may be nil for anonymous viewers.
func ToTimelineResponse(messages []models.Message, liked map[uint64]struct{}) TimelineResponse {
	ids := make([]uint64, 0, len(liked))
	for id := range liked {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return TimelineResponse{
		Messages: ToMessageDTOs(messages, liked),
		LikedIDs: ids,
	}
}
