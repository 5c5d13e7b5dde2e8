// Package postgres implements store.Store on PostgreSQL via the pgx stdlib
// driver. Schema setup is handled by deploy-time migrations; see schema.sql.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/moodtrack/moodtrack/internal/model"
	"github.com/moodtrack/moodtrack/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Moods() store.Moods                     { return &moods{db: s.db} }
func (s *pgStore) Users() store.Users                     { return &users{db: s.db} }
func (s *pgStore) OnboardingSteps() store.OnboardingSteps { return &steps{db: s.db} }

func (s *pgStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// unique_violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --- Moods ---

type moods struct{ db *sql.DB }

func (m *moods) Create(ctx context.Context, e *model.MoodEntry) (*model.MoodEntry, error) {
	id := uuid.NewString()
	var created, updated time.Time
	row := m.db.QueryRowContext(ctx, `
        INSERT INTO mood_entries (id, user_id, mood, note)
        VALUES ($1,$2,$3,$4)
        RETURNING created_at, updated_at`,
		id, e.UserID, string(e.Mood), e.Note)
	if err := row.Scan(&created, &updated); err != nil {
		return nil, err
	}
	out := *e
	out.ID = id
	out.CreatedAt = created
	out.UpdatedAt = updated
	return &out, nil
}

func (m *moods) GetByID(ctx context.Context, entryID string) (*model.MoodEntry, error) {
	row := m.db.QueryRowContext(ctx, `
        SELECT id, user_id, mood, note, created_at, updated_at
        FROM mood_entries WHERE id=$1`, entryID)
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

func (m *moods) List(ctx context.Context, req model.ListMoodEntriesRequest) ([]*model.MoodEntry, error) {
	q := `SELECT id, user_id, mood, note, created_at, updated_at FROM mood_entries WHERE user_id=$1`
	args := []interface{}{req.UserID}
	if req.StartDate != nil {
		args = append(args, req.StartDate.UTC())
		q += fmt.Sprintf(` AND created_at >= $%d`, len(args))
	}
	if req.EndDate != nil {
		args = append(args, req.EndDate.UTC())
		q += fmt.Sprintf(` AND created_at <= $%d`, len(args))
	}
	if req.Mood != nil {
		args = append(args, string(*req.Mood))
		q += fmt.Sprintf(` AND mood = $%d`, len(args))
	}
	q += ` ORDER BY created_at DESC, id DESC`
	if req.Limit > 0 {
		page := req.Page
		if page < 1 {
			page = 1
		}
		args = append(args, req.Limit)
		q += fmt.Sprintf(` LIMIT $%d`, len(args))
		args = append(args, (page-1)*req.Limit)
		q += fmt.Sprintf(` OFFSET $%d`, len(args))
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
	sets := []string{"updated_at = now()"}
	args := []interface{}{}
	if mood != nil {
		args = append(args, string(*mood))
		sets = append(sets, fmt.Sprintf("mood = $%d", len(args)))
	}
	if note != nil {
		args = append(args, *note)
		sets = append(sets, fmt.Sprintf("note = $%d", len(args)))
	}
	args = append(args, entryID)

	row := m.db.QueryRowContext(ctx, fmt.Sprintf(`
        UPDATE mood_entries SET %s WHERE id = $%d
        RETURNING id, user_id, mood, note, created_at, updated_at`,
		strings.Join(sets, ", "), len(args)), args...)

	var e model.MoodEntry
	var moodCol string
	if err := row.Scan(&e.ID, &e.UserID, &moodCol, &e.Note, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	e.Mood = model.MoodType(moodCol)
	return &e, nil
}

func (m *moods) Delete(ctx context.Context, entryID string) error {
	res, err := m.db.ExecContext(ctx, `DELETE FROM mood_entries WHERE id=$1`, entryID)
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

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, in *model.User) (*model.User, error) {
	id := uuid.NewString()
	var created time.Time
	row := u.db.QueryRowContext(ctx, `
        INSERT INTO users (id, email, first_name, last_name, company, role)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at`,
		id, in.Email, in.FirstName, in.LastName, in.Company, in.Role)
	if err := row.Scan(&created); err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrConflict
		}
		return nil, err
	}
	out := *in
	out.ID = id
	out.OnboardingCompleted = false
	out.CreatedAt = created
	return &out, nil
}

func (u *users) GetByID(ctx context.Context, userID string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `
        SELECT id, email, first_name, last_name, company, role, onboarding_completed, created_at
        FROM users WHERE id=$1`, userID)
	var usr model.User
	if err := row.Scan(&usr.ID, &usr.Email, &usr.FirstName, &usr.LastName, &usr.Company, &usr.Role, &usr.OnboardingCompleted, &usr.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &usr, nil
}

func (u *users) SetOnboardingCompleted(ctx context.Context, userID string) (*model.User, error) {
	res, err := u.db.ExecContext(ctx, `UPDATE users SET onboarding_completed=true WHERE id=$1`, userID)
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

// --- Onboarding steps ---

type steps struct{ db *sql.DB }

func (s *steps) CreateBatch(ctx context.Context, in []*model.OnboardingStep) ([]*model.OnboardingStep, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	out := make([]*model.OnboardingStep, 0, len(in))
	for i, st := range in {
		cp := *st
		cp.ID = uuid.NewString()
		var data interface{}
		if cp.Data != nil {
			raw, err := json.Marshal(cp.Data)
			if err != nil {
				return nil, err
			}
			data = string(raw)
		}
		row := tx.QueryRowContext(ctx, `
            INSERT INTO onboarding_steps (id, user_id, step, position, completed, data)
            VALUES ($1,$2,$3,$4,$5,$6)
            RETURNING updated_at`,
			cp.ID, cp.UserID, cp.Step, i, cp.Completed, data)
		if err := row.Scan(&cp.UpdatedAt); err != nil {
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
        FROM onboarding_steps WHERE user_id=$1 ORDER BY position, id`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]*model.OnboardingStep, 0)
	for rows.Next() {
		var st model.OnboardingStep
		var raw sql.NullString
		if err := rows.Scan(&st.ID, &st.UserID, &st.Step, &st.Completed, &raw, &st.UpdatedAt); err != nil {
			return nil, err
		}
		if raw.Valid && raw.String != "" {
			if err := json.Unmarshal([]byte(raw.String), &st.Data); err != nil {
				return nil, err
			}
		}
		out = append(out, &st)
	}
	return out, rows.Err()
}

func (s *steps) Update(ctx context.Context, stepID string, completed *bool, data map[string]interface{}) (*model.OnboardingStep, error) {
	sets := []string{"updated_at = now()"}
	args := []interface{}{}
	if completed != nil {
		args = append(args, *completed)
		sets = append(sets, fmt.Sprintf("completed = $%d", len(args)))
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		args = append(args, string(raw))
		sets = append(sets, fmt.Sprintf("data = $%d", len(args)))
	}
	args = append(args, stepID)

	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`
        UPDATE onboarding_steps SET %s WHERE id = $%d
        RETURNING id, user_id, step, completed, data, updated_at`,
		strings.Join(sets, ", "), len(args)), args...)

	var st model.OnboardingStep
	var raw sql.NullString
	if err := row.Scan(&st.ID, &st.UserID, &st.Step, &st.Completed, &raw, &st.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	if raw.Valid && raw.String != "" {
		if err := json.Unmarshal([]byte(raw.String), &st.Data); err != nil {
			return nil, err
		}
	}
	return &st, nil
}
