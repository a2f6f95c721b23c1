package stats

import "context"

// buttonLimit — free uses per visitor per button.
const buttonLimit = 5

type Usage struct {
	Allowed   bool `json:"allowed"`
	Remaining int  `json:"remaining"`
}

func ValidButton(button string) bool {
	_, ok := buttonColumns[button]
	return ok
}

// Service wraps the repo with the usage-limit policy. A nil repo means stats
// are not configured; every check then falls back to allowing usage, same as
// the system behaves when the database is unreachable.
type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Enabled() bool { return s.repo != nil }

func (s *Service) TrackVisitor(ctx context.Context, ip, device string) (*Visitor, int, error) {
	if s.repo == nil {
		return nil, 0, nil
	}

	v, err := s.repo.Upsert(ctx, ip, device)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.TotalVisitors(ctx)
	if err != nil {
		return nil, 0, err
	}
	return v, total, nil
}

func (s *Service) CheckButtonUsage(ctx context.Context, ip, device, button string) Usage {
	if s.repo == nil {
		return Usage{Allowed: true, Remaining: buttonLimit}
	}

	count, err := s.repo.ButtonCount(ctx, ip, device, button)
	if err != nil {
		// permissive fallback: a broken stats store must not lock users out
		return Usage{Allowed: true, Remaining: buttonLimit}
	}

	remaining := buttonLimit - count
	if remaining < 0 {
		remaining = 0
	}
	return Usage{Allowed: count < buttonLimit, Remaining: remaining}
}

func (s *Service) IncrementButtonUsage(ctx context.Context, ip, device, button string) (*Visitor, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.IncrementButton(ctx, ip, device, button)
}

func (s *Service) UsageStats(ctx context.Context) (*Totals, error) {
	if s.repo == nil {
		return &Totals{}, nil
	}
	return s.repo.Totals(ctx)
}

func (s *Service) ButtonLimit() int { return buttonLimit }
