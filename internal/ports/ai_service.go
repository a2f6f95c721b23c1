package ports

import (
	"context"

	"github.com/jocoandonob/voicebot/internal/ai"
)

type AiService interface {
	// GetReply runs the chat completion over the caller-supplied history plus
	// the new user message.
	GetReply(ctx context.Context, message string, history []ai.HistoryEntry) (string, error)
}
