package stats

import (
	"context"
	"database/sql"
	"fmt"
)

// button type → column, whitelisted so it can be spliced into SQL.
var buttonColumns = map[string]string{
	"record": "record_button_count",
	"send":   "send_button_count",
	"read":   "read_button_count",
}

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS visitor_stats (
			id SERIAL PRIMARY KEY,
			ip_address TEXT NOT NULL,
			device_info TEXT NOT NULL,
			visit_count INT NOT NULL DEFAULT 1,
			record_button_count INT NOT NULL DEFAULT 0,
			send_button_count INT NOT NULL DEFAULT 0,
			read_button_count INT NOT NULL DEFAULT 0,
			first_visit_time TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			last_visit_time TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (ip_address, device_info)
		)`)
	if err != nil {
		return fmt.Errorf("ensure visitor_stats schema: %w", err)
	}
	return nil
}

const visitorColumns = `id, ip_address, device_info, visit_count,
	record_button_count, send_button_count, read_button_count`

func scanVisitor(row *sql.Row) (*Visitor, error) {
	var v Visitor
	err := row.Scan(
		&v.ID, &v.IPAddress, &v.DeviceInfo, &v.VisitCount,
		&v.RecordButtonCount, &v.SendButtonCount, &v.ReadButtonCount,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *PostgresRepo) Upsert(ctx context.Context, ip, device string) (*Visitor, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO visitor_stats (ip_address, device_info)
		VALUES ($1, $2)
		ON CONFLICT (ip_address, device_info) DO UPDATE
		SET visit_count = visitor_stats.visit_count + 1,
		    last_visit_time = CURRENT_TIMESTAMP
		RETURNING `+visitorColumns,
		ip, device)

	v, err := scanVisitor(row)
	if err != nil {
		return nil, fmt.Errorf("upsert visitor: %w", err)
	}
	return v, nil
}

func (r *PostgresRepo) IncrementButton(ctx context.Context, ip, device, button string) (*Visitor, error) {
	col, ok := buttonColumns[button]
	if !ok {
		return nil, fmt.Errorf("unknown button type: %s", button)
	}

	row := r.db.QueryRowContext(ctx, fmt.Sprintf(`
		UPDATE visitor_stats
		SET %s = %s + 1
		WHERE ip_address = $1 AND device_info = $2
		RETURNING `+visitorColumns, col, col),
		ip, device)

	v, err := scanVisitor(row)
	if err != nil {
		return nil, fmt.Errorf("increment %s: %w", button, err)
	}
	return v, nil
}

func (r *PostgresRepo) ButtonCount(ctx context.Context, ip, device, button string) (int, error) {
	col, ok := buttonColumns[button]
	if !ok {
		return 0, fmt.Errorf("unknown button type: %s", button)
	}

	var count int
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT %s FROM visitor_stats
		WHERE ip_address = $1 AND device_info = $2`, col),
		ip, device).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("button count: %w", err)
	}
	return count, nil
}

func (r *PostgresRepo) TotalVisitors(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM visitor_stats`).Scan(&total); err != nil {
		return 0, fmt.Errorf("total visitors: %w", err)
	}
	return total, nil
}

func (r *PostgresRepo) Totals(ctx context.Context) (*Totals, error) {
	var t Totals
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(record_button_count), 0),
		       COALESCE(SUM(send_button_count), 0),
		       COALESCE(SUM(read_button_count), 0)
		FROM visitor_stats`).
		Scan(&t.TotalVisitors, &t.RecordClicks, &t.SendClicks, &t.ReadClicks)
	if err != nil {
		return nil, fmt.Errorf("usage totals: %w", err)
	}
	return &t, nil
}
