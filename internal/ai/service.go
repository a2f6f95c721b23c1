package ai

import (
	"context"
	"strings"

	"github.com/jocoandonob/voicebot/internal/notificator"
	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a helpful voice assistant. Provide concise and useful responses."

const emptyReplyFallback = "I'm sorry, I couldn't generate a response. Please try again."

type Service struct {
	chat     ChatClient
	notifier notificator.Notificator
}

func NewService(chat ChatClient, notifier notificator.Notificator) *Service {
	return &Service{
		chat:     chat,
		notifier: notifier,
	}
}

// buildMessages assembles the full prompt sequence: the fixed system
// instruction, then the caller-supplied history in its original order, then
// the new user message. History entries missing a role or content are
// dropped silently.
func buildMessages(message string, history []HistoryEntry) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})

	for _, h := range history {
		if h.Role == "" || h.Content == "" {
			continue
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    h.Role,
			Content: h.Content,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})
	return messages
}

func (s *Service) GetReply(ctx context.Context, message string, history []HistoryEntry) (string, error) {
	reply, err := s.chat.GetCompletion(ctx, buildMessages(message, history))
	if err != nil {
		s.notifier.Notify(ctx, err, "chat completion failed")
		return "", err
	}

	if strings.TrimSpace(reply) == "" {
		return emptyReplyFallback, nil
	}
	return reply, nil
}
