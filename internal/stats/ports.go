package stats

import "context"

type Visitor struct {
	ID                int64  `json:"id"`
	IPAddress         string `json:"ip_address"`
	DeviceInfo        string `json:"device_info"`
	VisitCount        int    `json:"visit_count"`
	RecordButtonCount int    `json:"record_button_count"`
	SendButtonCount   int    `json:"send_button_count"`
	ReadButtonCount   int    `json:"read_button_count"`
}

type Totals struct {
	TotalVisitors int `json:"total_visitors"`
	RecordClicks  int `json:"record_clicks"`
	SendClicks    int `json:"send_clicks"`
	ReadClicks    int `json:"read_clicks"`
}

type Repo interface {
	// Upsert registers a visit: bumps visit_count for a known visitor or
	// inserts a fresh row.
	Upsert(ctx context.Context, ip, device string) (*Visitor, error)
	IncrementButton(ctx context.Context, ip, device, button string) (*Visitor, error)
	ButtonCount(ctx context.Context, ip, device, button string) (int, error)
	TotalVisitors(ctx context.Context) (int, error)
	Totals(ctx context.Context) (*Totals, error)
}
