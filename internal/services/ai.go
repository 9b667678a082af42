package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/warbler-api/internal/constants"
)

type AIService struct {
	client *openai.Client
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// DraftMessages asks OpenAI GPT for up to count short messages about topic
func (s *AIService) DraftMessages(ctx context.Context, topic string, count int) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You write short posts for a micro-blogging site.
Write up to %d different posts about the topic below.

Topic:
%s

Rules:
- Each post must be at most %d characters, including spaces
- No hashtags unless they fit within the limit
- Return only a JSON array of strings, for example ["first post", "second post"]`,
		count, topic, constants.MaxMessageLength)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.7,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return parseDrafts(resp.Choices[0].Message.Content)
}

func parseDrafts(content string) ([]string, error) {
	var drafts []string
	if err := json.Unmarshal([]byte(content), &drafts); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}
	return drafts, nil
}
