package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

type ChatClient interface {
	GetCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error)
}

type STTClient interface {
	Transcribe(ctx context.Context, filePath string) (string, error)
}

// HistoryEntry is one prior exchange supplied by the caller on every request;
// the server keeps no copy of the conversation.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
