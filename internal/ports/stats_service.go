package ports

import (
	"context"

	"github.com/jocoandonob/voicebot/internal/stats"
)

type StatsService interface {
	Enabled() bool
	TrackVisitor(ctx context.Context, ip, device string) (*stats.Visitor, int, error)
	CheckButtonUsage(ctx context.Context, ip, device, button string) stats.Usage
	IncrementButtonUsage(ctx context.Context, ip, device, button string) (*stats.Visitor, error)
	UsageStats(ctx context.Context) (*stats.Totals, error)
	ButtonLimit() int
}
