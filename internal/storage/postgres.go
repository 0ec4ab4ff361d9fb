package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlexanderModestov/baby-sleep-pred/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- UserRepository ---

func (p *PostgresStorage) UpsertUser(ctx context.Context, user *internal.User) error {
	query := `INSERT INTO users (telegram_id, username, first_name) VALUES ($1, $2, $3)
		ON CONFLICT (telegram_id) DO UPDATE SET username = EXCLUDED.username, first_name = EXCLUDED.first_name`
	if _, err := p.pool.Exec(ctx, query, user.TelegramID, user.Username, user.FirstName); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// --- ChildRepository ---

func (p *PostgresStorage) CreateChild(ctx context.Context, child *internal.Child) error {
	child.CreatedAt = time.Now().UTC()
	query := `INSERT INTO children (user_id, name, birth_date, gender, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	row := p.pool.QueryRow(ctx, query, child.UserID, child.Name, child.BirthDate, child.Gender, child.CreatedAt)
	if err := row.Scan(&child.ID); err != nil {
		return fmt.Errorf("failed to insert child: %w", err)
	}
	return nil
}

func (p *PostgresStorage) GetChild(ctx context.Context, id int64) (*internal.Child, error) {
	query := `SELECT id, user_id, name, birth_date, gender, created_at FROM children WHERE id = $1`
	row := p.pool.QueryRow(ctx, query, id)
	var c internal.Child
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.BirthDate, &c.Gender, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to select child: %w", err)
	}
	return &c, nil
}

func (p *PostgresStorage) ListChildren(ctx context.Context, userID int64) ([]internal.Child, error) {
	query := `SELECT id, user_id, name, birth_date, gender, created_at FROM children WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := p.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select children: %w", err)
	}
	defer rows.Close()

	children := []internal.Child{}
	for rows.Next() {
		var c internal.Child
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.BirthDate, &c.Gender, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		children = append(children, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return children, nil
}

func (p *PostgresStorage) UpdateChild(ctx context.Context, child *internal.Child) error {
	query := `UPDATE children SET name = $1, birth_date = $2, gender = $3 WHERE id = $4`
	if _, err := p.pool.Exec(ctx, query, child.Name, child.BirthDate, child.Gender, child.ID); err != nil {
		return fmt.Errorf("failed to update child: %w", err)
	}
	return nil
}

func (p *PostgresStorage) DeleteChild(ctx context.Context, id int64) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM children WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete child: %w", err)
	}
	return nil
}

// --- SessionRepository ---

func (p *PostgresStorage) StartSession(ctx context.Context, session *internal.SleepSession) error {
	session.IsOngoing = true
	session.EndTime = nil
	session.Quality = nil
	session.CreatedAt = time.Now().UTC()
	query := `INSERT INTO sleep_sessions (child_id, start_time, is_ongoing, created_at) VALUES ($1, $2, TRUE, $3) RETURNING id`
	row := p.pool.QueryRow(ctx, query, session.ChildID, session.StartTime, session.CreatedAt)
	if err := row.Scan(&session.ID); err != nil {
		return fmt.Errorf("failed to insert sleep session: %w", err)
	}
	return nil
}

func (p *PostgresStorage) EndSession(ctx context.Context, id int64, endTime time.Time, quality *string) error {
	query := `UPDATE sleep_sessions SET end_time = $1, quality = $2, is_ongoing = FALSE WHERE id = $3`
	if _, err := p.pool.Exec(ctx, query, endTime, quality, id); err != nil {
		return fmt.Errorf("failed to end sleep session: %w", err)
	}
	return nil
}

func (p *PostgresStorage) ListSessions(ctx context.Context, childID int64, limit int) ([]internal.SleepSession, error) {
	query := `SELECT id, child_id, start_time, end_time, quality, is_ongoing, created_at
		FROM sleep_sessions WHERE child_id = $1 ORDER BY start_time DESC LIMIT $2`
	return p.querySessions(ctx, query, childID, limit)
}

func (p *PostgresStorage) ListCompletedSessions(ctx context.Context, childID int64, limit int) ([]internal.SleepSession, error) {
	query := `SELECT id, child_id, start_time, end_time, quality, is_ongoing, created_at
		FROM sleep_sessions WHERE child_id = $1 AND end_time IS NOT NULL ORDER BY start_time DESC LIMIT $2`
	return p.querySessions(ctx, query, childID, limit)
}

func (p *PostgresStorage) querySessions(ctx context.Context, query string, args ...any) ([]internal.SleepSession, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select sleep sessions: %w", err)
	}
	defer rows.Close()

	sessions := []internal.SleepSession{}
	for rows.Next() {
		var s internal.SleepSession
		if err := rows.Scan(&s.ID, &s.ChildID, &s.StartTime, &s.EndTime, &s.Quality, &s.IsOngoing, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sleep session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (p *PostgresStorage) GetOngoingSession(ctx context.Context, childID int64) (*internal.SleepSession, error) {
	query := `SELECT id, child_id, start_time, end_time, quality, is_ongoing, created_at
		FROM sleep_sessions WHERE child_id = $1 AND is_ongoing = TRUE ORDER BY start_time DESC LIMIT 1`
	row := p.pool.QueryRow(ctx, query, childID)
	var s internal.SleepSession
	err := row.Scan(&s.ID, &s.ChildID, &s.StartTime, &s.EndTime, &s.Quality, &s.IsOngoing, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select ongoing session: %w", err)
	}
	return &s, nil
}

// --- Compile-time assertions ---
var _ UserRepository = (*PostgresStorage)(nil)
var _ ChildRepository = (*PostgresStorage)(nil)
var _ SessionRepository = (*PostgresStorage)(nil)
