// Package sqlite implements store.Store on a local SQLite database. It is the
// default driver for single-node deployments and development.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/moodtrack/moodtrack/internal/model"
	"github.com/moodtrack/moodtrack/internal/store"
)

const ddl = `
CREATE TABLE IF NOT EXISTS mood_entries (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL,
    mood       TEXT NOT NULL,
    note       TEXT,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_mood_entries_user_created
    ON mood_entries (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS users (
    id                   TEXT PRIMARY KEY,
    email                TEXT NOT NULL UNIQUE COLLATE NOCASE,
    first_name           TEXT NOT NULL,
    last_name            TEXT NOT NULL,
    company              TEXT NOT NULL DEFAULT '',
    role                 TEXT NOT NULL DEFAULT '',
    onboarding_completed INTEGER NOT NULL DEFAULT 0,
    created_at           TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS onboarding_steps (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL REFERENCES users(id),
    step       TEXT NOT NULL,
    position   INTEGER NOT NULL DEFAULT 0,
    completed  INTEGER NOT NULL DEFAULT 0,
    data       TEXT,
    updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_onboarding_steps_user
    ON onboarding_steps (user_id);
`

// Open opens (or creates) a SQLite database at the given path, enables WAL
// journal mode and applies the schema.
func Open(path string) (*sql.DB, error) {
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(ddl); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a store backed by an existing connection.
func NewWithDB(db *sql.DB) store.Store { return &sqlStore{db: db} }

type sqlStore struct{ db *sql.DB }

func (s *sqlStore) Moods() store.Moods                     { return &moods{db: s.db} }
func (s *sqlStore) Users() store.Users                     { return &users{db: s.db} }
func (s *sqlStore) OnboardingSteps() store.OnboardingSteps { return &steps{db: s.db} }

func (s *sqlStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// --- Moods ---

type moods struct{ db *sql.DB }

func (m *moods) Create(ctx context.Context, e *model.MoodEntry) (*model.MoodEntry, error) {
	now := time.Now().UTC()
	id := uuid.NewString()
	_, err := m.db.ExecContext(ctx, `
        INSERT INTO mood_entries (id, user_id, mood, note, created_at, updated_at)
        VALUES (?,?,?,?,?,?)`,
		id, e.UserID, string(e.Mood), e.Note, now, now)
	if err != nil {
		return nil, err
	}
	out := *e
	out.ID = id
	out.CreatedAt = now
	out.UpdatedAt = now
	return &out, nil
}

func (m *moods) GetByID(ctx context.Context, entryID string) (*model.MoodEntry, error) {
	row := m.db.QueryRowContext(ctx, `
        SELECT id, user_id, mood, note, created_at, updated_at
        FROM mood_entries WHERE id=?`, entryID)
	return scanMood(row)
}

func (m *moods) List(ctx context.Context, req model.ListMoodEntriesRequest) ([]*model.MoodEntry, error) {
	q := `SELECT id, user_id, mood, note, created_at, updated_at FROM mood_entries WHERE user_id=?`
	args := []interface{}{req.UserID}
	if req.StartDate != nil {
		q += ` AND created_at >= ?`
		args = append(args, req.StartDate.UTC())
	}
	if req.EndDate != nil {
		q += ` AND created_at <= ?`
		args = append(args, req.EndDate.UTC())
	}
	if req.Mood != nil {
		q += ` AND mood = ?`
		args = append(args, string(*req.Mood))
	}
	q += ` ORDER BY created_at DESC, id DESC`
	if req.Limit > 0 {
		page := req.Page
		if page < 1 {
			page = 1
		}
		q += ` LIMIT ? OFFSET ?`
		args = append(args, req.Limit, (page-1)*req.Limit)
	}

	rows, err := m.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]*model.MoodEntry, 0)
	for rows.Next() {
		var e model.MoodEntry
		var mood string
		if err := rows.Scan(&e.ID, &e.UserID, &mood, &e.Note, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		e.Mood = model.MoodType(mood)
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (m *moods) Update(ctx context.Context, entryID string, mood *model.MoodType, note *string) (*model.MoodEntry, error) {
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC()}
	if mood != nil {
		sets = append(sets, "mood = ?")
		args = append(args, string(*mood))
	}
	if note != nil {
		sets = append(sets, "note = ?")
		args = append(args, *note)
	}
	args = append(args, entryID)

	res, err := m.db.ExecContext(ctx,
		`UPDATE mood_entries SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, model.ErrNotFound
	}
	return m.GetByID(ctx, entryID)
}

func (m *moods) Delete(ctx context.Context, entryID string) error {
	res, err := m.db.ExecContext(ctx, `DELETE FROM mood_entries WHERE id=?`, entryID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func scanMood(row *sql.Row) (*model.MoodEntry, error) {
	var e model.MoodEntry
	var mood string
	if err := row.Scan(&e.ID, &e.UserID, &mood, &e.Note, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	e.Mood = model.MoodType(mood)
	return &e, nil
}

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, in *model.User) (*model.User, error) {
	now := time.Now().UTC()
	id := uuid.NewString()
	_, err := u.db.ExecContext(ctx, `
        INSERT INTO users (id, email, first_name, last_name, company, role, onboarding_completed, created_at)
        VALUES (?,?,?,?,?,?,0,?)`,
		id, in.Email, in.FirstName, in.LastName, in.Company, in.Role, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrConflict
		}
		return nil, err
	}
	out := *in
	out.ID = id
	out.OnboardingCompleted = false
	out.CreatedAt = now
	return &out, nil
}

func (u *users) GetByID(ctx context.Context, userID string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `
        SELECT id, email, first_name, last_name, company, role, onboarding_completed, created_at
        FROM users WHERE id=?`, userID)
	return scanUser(row)
}

func (u *users) SetOnboardingCompleted(ctx context.Context, userID string) (*model.User, error) {
	res, err := u.db.ExecContext(ctx, `UPDATE users SET onboarding_completed=1 WHERE id=?`, userID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, model.ErrNotFound
	}
	return u.GetByID(ctx, userID)
}

func scanUser(row *sql.Row) (*model.User, error) {
	var usr model.User
	var completed int
	if err := row.Scan(&usr.ID, &usr.Email, &usr.FirstName, &usr.LastName, &usr.Company, &usr.Role, &completed, &usr.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	usr.OnboardingCompleted = completed != 0
	return &usr, nil
}

// --- Onboarding steps ---

type steps struct{ db *sql.DB }

func (s *steps) CreateBatch(ctx context.Context, in []*model.OnboardingStep) ([]*model.OnboardingStep, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	out := make([]*model.OnboardingStep, 0, len(in))
	for i, st := range in {
		cp := *st
		cp.ID = uuid.NewString()
		cp.UpdatedAt = now
		data, err := marshalStepData(cp.Data)
		if err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO onboarding_steps (id, user_id, step, position, completed, data, updated_at)
            VALUES (?,?,?,?,?,?,?)`,
			cp.ID, cp.UserID, cp.Step, i, boolToInt(cp.Completed), data, now); err != nil {
			return nil, err
		}
		res := cp
		out = append(out, &res)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *steps) ListByUser(ctx context.Context, userID string) ([]*model.OnboardingStep, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, user_id, step, completed, data, updated_at
        FROM onboarding_steps WHERE user_id=? ORDER BY position, id`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]*model.OnboardingStep, 0)
	for rows.Next() {
		st, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *steps) Update(ctx context.Context, stepID string, completed *bool, data map[string]interface{}) (*model.OnboardingStep, error) {
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC()}
	if completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, boolToInt(*completed))
	}
	if data != nil {
		raw, err := marshalStepData(data)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "data = ?")
		args = append(args, raw)
	}
	args = append(args, stepID)

	res, err := s.db.ExecContext(ctx,
		`UPDATE onboarding_steps SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, model.ErrNotFound
	}

	row := s.db.QueryRowContext(ctx, `
        SELECT id, user_id, step, completed, data, updated_at
        FROM onboarding_steps WHERE id=?`, stepID)
	return scanStep(row)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStep(row rowScanner) (*model.OnboardingStep, error) {
	var st model.OnboardingStep
	var completed int
	var raw sql.NullString
	if err := row.Scan(&st.ID, &st.UserID, &st.Step, &completed, &raw, &st.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	st.Completed = completed != 0
	if raw.Valid && raw.String != "" {
		if err := json.Unmarshal([]byte(raw.String), &st.Data); err != nil {
			return nil, err
		}
	}
	return &st, nil
}

func marshalStepData(data map[string]interface{}) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
