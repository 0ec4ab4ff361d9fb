package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/AlexanderModestov/baby-sleep-pred/internal"
)

type SQLiteStorage struct {
	db     *sql.DB
	logger internal.Logger
}

func NewSQLiteStorage(path string, logger internal.Logger) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Errorf("failed to open sqlite database: %v", err)
		return nil, err
	}
	s := &SQLiteStorage{db: db, logger: logger}
	if err := s.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStorage) initSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			telegram_id INTEGER PRIMARY KEY,
			username TEXT,
			first_name TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS children (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER,
			name TEXT NOT NULL,
			birth_date TEXT NOT NULL,
			gender TEXT CHECK(gender IN ('Male', 'Female')) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users (telegram_id)
		)`,
		`CREATE TABLE IF NOT EXISTS sleep_sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			child_id INTEGER,
			start_time DATETIME NOT NULL,
			end_time DATETIME,
			quality TEXT CHECK(quality IN ('Slept well', 'Average sleep', 'Poor sleep', 'Very poor sleep')),
			is_ongoing BOOLEAN DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (child_id) REFERENCES children (id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			s.logger.Errorf("failed to initialize schema: %v", err)
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// --- UserRepository ---

func (s *SQLiteStorage) UpsertUser(ctx context.Context, user *internal.User) error {
	query := `INSERT INTO users (telegram_id, username, first_name) VALUES (?, ?, ?)
		ON CONFLICT(telegram_id) DO UPDATE SET username = excluded.username, first_name = excluded.first_name`
	if _, err := s.db.ExecContext(ctx, query, user.TelegramID, user.Username, user.FirstName); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// --- ChildRepository ---

func (s *SQLiteStorage) CreateChild(ctx context.Context, child *internal.Child) error {
	child.CreatedAt = time.Now().UTC()
	query := `INSERT INTO children (user_id, name, birth_date, gender, created_at) VALUES (?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, query, child.UserID, child.Name, child.BirthDate, child.Gender, child.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert child: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted child id: %w", err)
	}
	child.ID = id
	return nil
}

func (s *SQLiteStorage) GetChild(ctx context.Context, id int64) (*internal.Child, error) {
	query := `SELECT id, user_id, name, birth_date, gender, created_at FROM children WHERE id = ?`
	row := s.db.QueryRowContext(ctx, query, id)
	var c internal.Child
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.BirthDate, &c.Gender, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to select child: %w", err)
	}
	return &c, nil
}

func (s *SQLiteStorage) ListChildren(ctx context.Context, userID int64) ([]internal.Child, error) {
	query := `SELECT id, user_id, name, birth_date, gender, created_at FROM children WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query, userID)
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

func (s *SQLiteStorage) UpdateChild(ctx context.Context, child *internal.Child) error {
	query := `UPDATE children SET name = ?, birth_date = ?, gender = ? WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, child.Name, child.BirthDate, child.Gender, child.ID); err != nil {
		return fmt.Errorf("failed to update child: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) DeleteChild(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM children WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete child: %w", err)
	}
	return nil
}

// --- SessionRepository ---

func (s *SQLiteStorage) StartSession(ctx context.Context, session *internal.SleepSession) error {
	session.IsOngoing = true
	session.EndTime = nil
	session.Quality = nil
	session.CreatedAt = time.Now().UTC()
	query := `INSERT INTO sleep_sessions (child_id, start_time, is_ongoing, created_at) VALUES (?, ?, 1, ?)`
	res, err := s.db.ExecContext(ctx, query, session.ChildID, session.StartTime, session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert sleep session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted session id: %w", err)
	}
	session.ID = id
	return nil
}

// EndSession marks the row completed. An unknown or already-completed id is
// not an error: zero rows affected still means the command was accepted.
func (s *SQLiteStorage) EndSession(ctx context.Context, id int64, endTime time.Time, quality *string) error {
	query := `UPDATE sleep_sessions SET end_time = ?, quality = ?, is_ongoing = 0 WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, endTime, quality, id); err != nil {
		return fmt.Errorf("failed to end sleep session: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) ListSessions(ctx context.Context, childID int64, limit int) ([]internal.SleepSession, error) {
	query := `SELECT id, child_id, start_time, end_time, quality, is_ongoing, created_at
		FROM sleep_sessions WHERE child_id = ? ORDER BY start_time DESC LIMIT ?`
	return s.querySessions(ctx, query, childID, limit)
}

func (s *SQLiteStorage) ListCompletedSessions(ctx context.Context, childID int64, limit int) ([]internal.SleepSession, error) {
	query := `SELECT id, child_id, start_time, end_time, quality, is_ongoing, created_at
		FROM sleep_sessions WHERE child_id = ? AND end_time IS NOT NULL ORDER BY start_time DESC LIMIT ?`
	return s.querySessions(ctx, query, childID, limit)
}

func (s *SQLiteStorage) querySessions(ctx context.Context, query string, args ...any) ([]internal.SleepSession, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select sleep sessions: %w", err)
	}
	defer rows.Close()

	sessions := []internal.SleepSession{}
	for rows.Next() {
		var sess internal.SleepSession
		if err := rows.Scan(&sess.ID, &sess.ChildID, &sess.StartTime, &sess.EndTime, &sess.Quality, &sess.IsOngoing, &sess.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sleep session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetOngoingSession returns the newest ongoing session, or nil when the child
// has none. If more than one row is ongoing the most recent start_time wins.
func (s *SQLiteStorage) GetOngoingSession(ctx context.Context, childID int64) (*internal.SleepSession, error) {
	query := `SELECT id, child_id, start_time, end_time, quality, is_ongoing, created_at
		FROM sleep_sessions WHERE child_id = ? AND is_ongoing = 1 ORDER BY start_time DESC LIMIT 1`
	row := s.db.QueryRowContext(ctx, query, childID)
	var sess internal.SleepSession
	err := row.Scan(&sess.ID, &sess.ChildID, &sess.StartTime, &sess.EndTime, &sess.Quality, &sess.IsOngoing, &sess.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select ongoing session: %w", err)
	}
	return &sess, nil
}

// --- Compile-time assertions ---
var _ UserRepository = (*SQLiteStorage)(nil)
var _ ChildRepository = (*SQLiteStorage)(nil)
var _ SessionRepository = (*SQLiteStorage)(nil)
