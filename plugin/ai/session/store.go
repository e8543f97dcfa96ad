package session

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	// SQLite driver, registered as "sqlite".
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS conversation_turn (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	role TEXT NOT NULL,
	content TEXT NOT NULL,
	created_ts INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_conversation_turn_session ON conversation_turn (session_id, id);
`

// sqliteStore implements Service with SQLite persistence. Turns survive
// restarts; the per-session bound is enforced on append.
type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dsn and ensures the
// schema exists.
func NewSQLiteStore(dsn string) (Service, error) {
	db, err := sql.Open("sqlite", dsn+"?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", dsn)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create session schema")
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Append(ctx context.Context, sessionID string, turn Turn) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversation_turn (session_id, role, content, created_ts) VALUES (?, ?, ?, ?)`,
		sessionID, string(turn.Role), turn.Content, turn.Timestamp.Unix())
	if err != nil {
		return errors.Wrap(err, "failed to append turn")
	}

	// Trim turns past the bound, oldest first.
	_, err = s.db.ExecContext(ctx, `
		DELETE FROM conversation_turn
		WHERE session_id = ? AND id NOT IN (
			SELECT id FROM conversation_turn WHERE session_id = ? ORDER BY id DESC LIMIT ?
		)`,
		sessionID, sessionID, maxTurns)
	if err != nil {
		return errors.Wrap(err, "failed to trim session log")
	}
	return nil
}

func (s *sqliteStore) List(ctx context.Context, sessionID string) ([]Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT role, content, created_ts FROM conversation_turn WHERE session_id = ? ORDER BY id ASC`,
		sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list turns")
	}
	defer rows.Close()

	turns := []Turn{}
	for rows.Next() {
		var (
			role      string
			content   string
			createdTs int64
		)
		if err := rows.Scan(&role, &content, &createdTs); err != nil {
			return nil, errors.Wrap(err, "failed to scan turn row")
		}
		turns = append(turns, Turn{
			Role:      Role(role),
			Content:   content,
			Timestamp: time.Unix(createdTs, 0).UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate turns")
	}
	return turns, nil
}

func (s *sqliteStore) Reset(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM conversation_turn WHERE session_id = ?`, sessionID)
	if err != nil {
		return errors.Wrap(err, "failed to reset session")
	}
	return nil
}

func (s *sqliteStore) CleanupExpired(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays).Unix()

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM conversation_turn WHERE created_ts < ?`, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "failed to cleanup expired turns")
	}
	return result.RowsAffected()
}

var _ Service = (*sqliteStore)(nil)
