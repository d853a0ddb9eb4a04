package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/marianaluz/balloon-event-booking/internal/model"
)

// AgendaRepo manages the daily agenda rows the back office edits: manual
// blocks and per-date limits.  The confirmation path claims slots inside the
// reservation transaction (see ReservationRepo.ConfirmAwaiting); this repo
// only covers the administrative reads and writes.
type AgendaRepo struct {
	db *sql.DB

	defaultDailyLimit int
}

// NewAgendaRepo returns an AgendaRepo bound to the given database.
func NewAgendaRepo(db *sql.DB, defaultDailyLimit int) *AgendaRepo {
	if defaultDailyLimit < 1 {
		defaultDailyLimit = 1
	}
	return &AgendaRepo{db: db, defaultDailyLimit: defaultDailyLimit}
}

// Get returns the agenda row for a date.  Dates never touched before come
// back with zero confirmations and the default limit.
func (r *AgendaRepo) Get(ctx context.Context, date time.Time) (model.AgendaDay, error) {
	day := model.AgendaDay{Date: date, DailyLimit: r.defaultDailyLimit}
	err := r.db.QueryRowContext(ctx,
		`SELECT confirmed, daily_limit, blocked FROM daily_agenda WHERE date = ?`,
		date.UTC().Format("2006-01-02"),
	).Scan(&day.Confirmed, &day.DailyLimit, &day.Blocked)
	if err == sql.ErrNoRows {
		return day, nil
	}
	if err != nil {
		return model.AgendaDay{}, err
	}
	return day, nil
}

// SetBlocked flips the manual block flag for a date, seeding the row when
// needed.
func (r *AgendaRepo) SetBlocked(ctx context.Context, date time.Time, blocked bool) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO daily_agenda (date, confirmed, daily_limit, blocked) VALUES (?, 0, ?, ?)
         ON DUPLICATE KEY UPDATE blocked = VALUES(blocked)`,
		date.UTC().Format("2006-01-02"), r.defaultDailyLimit, blocked,
	)
	return err
}

// SetDailyLimit overrides the confirmation limit for a date.
func (r *AgendaRepo) SetDailyLimit(ctx context.Context, date time.Time, limit int) error {
	if limit < 1 {
		limit = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO daily_agenda (date, confirmed, daily_limit, blocked) VALUES (?, 0, ?, FALSE)
         ON DUPLICATE KEY UPDATE daily_limit = VALUES(daily_limit)`,
		date.UTC().Format("2006-01-02"), limit,
	)
	return err
}
