package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type eventRepo struct {
	db *sqlx.DB
}

type practiceEventRow struct {
	ID        int64  `db:"id"`
	TsMs      int64  `db:"ts_ms"`
	SessionID string `db:"session_id"`
	Action    string `db:"action"`
	Day       int    `db:"day"`
	CardID    string `db:"card_id"`
	Status    string `db:"status"`
}

type sessionRow struct {
	SessionID string `db:"session_id"`
	Day       int    `db:"day"`
	StartedMs int64  `db:"started_ms"`
	LastMs    int64  `db:"last_ms"`
	Done      int    `db:"done"`
	Again     int    `db:"again"`
	Stopped   int    `db:"stopped"`
}

func (r *eventRepo) AppendPracticeEvent(ctx context.Context, data PracticeEventData) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO practice_event (ts_ms, session_id, action, day, card_id, status)
		VALUES (:ts_ms, :session_id, :action, :day, :card_id, :status)`,
		practiceEventRow{
			TsMs:      time.Now().UnixMilli(),
			SessionID: data.SessionID,
			Action:    data.Action,
			Day:       data.Day,
			CardID:    data.CardID,
			Status:    data.Status,
		},
	)
	if err != nil {
		return fmt.Errorf("save practice event: %w", err)
	}
	return nil
}

func (r *eventRepo) SessionEvents(ctx context.Context, sessionID string) ([]PracticeEvent, error) {
	var rows []practiceEventRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, ts_ms, session_id, action, day, card_id, status
		FROM practice_event WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}

	events := make([]PracticeEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, PracticeEvent{
			ID:        row.ID,
			Timestamp: time.UnixMilli(row.TsMs),
			PracticeEventData: PracticeEventData{
				SessionID: row.SessionID,
				Action:    row.Action,
				Day:       row.Day,
				CardID:    row.CardID,
				Status:    row.Status,
			},
		})
	}
	return events, nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	var rows []sessionRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT session_id,
			MAX(day) AS day,
			MIN(ts_ms) AS started_ms,
			MAX(ts_ms) AS last_ms,
			SUM(CASE WHEN action = 'mark' AND status = 'done' THEN 1 ELSE 0 END) AS done,
			SUM(CASE WHEN action = 'mark' AND status = 'again' THEN 1 ELSE 0 END) AS again,
			MAX(CASE WHEN action = 'stop' THEN 1 ELSE 0 END) AS stopped
		FROM practice_event
		GROUP BY session_id
		ORDER BY MIN(id) DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent sessions: %w", err)
	}

	sessions := make([]SessionSummary, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, SessionSummary{
			SessionID: row.SessionID,
			Day:       row.Day,
			StartedAt: time.UnixMilli(row.StartedMs),
			LastAt:    time.UnixMilli(row.LastMs),
			Done:      row.Done,
			Again:     row.Again,
			Stopped:   row.Stopped == 1,
		})
	}
	return sessions, nil
}
