package timelog

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// Repository stores session history in sqlite. History is a convenience on
// top of the totals store: losing it never affects accumulated totals.
type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	repo := &Repository{db: db}
	if err := repo.init(); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

func (r *Repository) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project TEXT NOT NULL,
		started_at TEXT NOT NULL,
		stopped_at TEXT NOT NULL,
		duration INTEGER NOT NULL
	)
	`
	_, err := r.db.Exec(query)
	return err
}

func (r *Repository) Create(s *Session) error {
	result, err := r.db.Exec(
		"INSERT INTO sessions (project, started_at, stopped_at, duration) VALUES (?, ?, ?, ?)",
		s.Project,
		s.StartedAt.Format(time.RFC3339),
		s.StoppedAt.Format(time.RFC3339),
		int64(s.Duration),
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

// ByProject returns project's sessions, most recent first. A limit of 0
// means no limit.
func (r *Repository) ByProject(project string, limit int) ([]Session, error) {
	query := "SELECT id, project, started_at, stopped_at, duration FROM sessions WHERE project = ? ORDER BY stopped_at DESC"
	args := []any{project}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSessions(rows)
}

// All returns every recorded session, most recent first.
func (r *Repository) All() ([]Session, error) {
	rows, err := r.db.Query(
		"SELECT id, project, started_at, stopped_at, duration FROM sessions ORDER BY stopped_at DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSessions(rows)
}

// DeleteByProject removes all of project's sessions.
func (r *Repository) DeleteByProject(project string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE project = ?", project)
	return err
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func scanSessions(rows *sql.Rows) ([]Session, error) {
	var sessions []Session
	for rows.Next() {
		var s Session
		var startedAt, stoppedAt string
		var duration int64
		if err := rows.Scan(&s.ID, &s.Project, &startedAt, &stoppedAt, &duration); err != nil {
			return nil, err
		}
		s.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		s.StoppedAt, _ = time.Parse(time.RFC3339, stoppedAt)
		s.Duration = time.Duration(duration)
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
