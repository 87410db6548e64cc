// Package journal records drained sessions in SQLite so orderings can be inspected after
// the fact.
package journal

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/qresp/db"
	"github.com/teranos/qresp/errors"
	"github.com/teranos/qresp/logger"
	"github.com/teranos/qresp/query"
	"github.com/teranos/qresp/query/reply"
)

// Session is one recorded drain.
type Session struct {
	ID            string        `json:"id"`
	File          query.FileRef `json:"file"`
	Request       reply.Request `json:"request"`
	ResponseCount int           `json:"response_count"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Entry is one response of a recorded session, at its drained position.
type Entry struct {
	Position int        `json:"position"`
	Kind     query.Kind `json:"kind"`
	Rank     int        `json:"rank"`
	Span     query.Span `json:"span"`
	Summary  string     `json:"summary"`
}

// Journal persists sessions.
type Journal struct {
	db     *sql.DB
	logger *zap.SugaredLogger
	now    func() time.Time
}

// New creates a journal over a migrated database.
func New(conn *sql.DB, log *zap.SugaredLogger) *Journal {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Journal{db: conn, logger: log, now: time.Now}
}

// Record stores ordered as a new session and returns it.
func (j *Journal) Record(ctx context.Context, file query.FileRef, req reply.Request, ordered []*query.Response) (*Session, error) {
	s := &Session{
		ID:            uuid.New().String(),
		File:          file,
		Request:       req,
		ResponseCount: len(ordered),
		CreatedAt:     j.now().UTC(),
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrapClosed(err, "failed to begin journal transaction")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, file, request_kind, request_offset, response_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, string(s.File), string(req.Kind), req.Offset, s.ResponseCount, s.CreatedAt,
	)
	if err != nil {
		return nil, wrapClosed(err, "failed to insert session")
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO session_responses (session_id, position, kind, rank, span_begin, span_end, summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare response insert")
	}
	defer stmt.Close()

	for i, r := range ordered {
		k := r.Kind()
		if _, err := stmt.ExecContext(ctx, s.ID, i, k.String(), query.Rank(k), r.Span.Begin, r.Span.End, reply.HoverText(r)); err != nil {
			return nil, errors.Wrapf(err, "failed to insert response %d", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapClosed(err, "failed to commit session")
	}

	j.logger.Infow("Journaled session",
		logger.FieldSession, s.ID,
		logger.FieldFile, string(s.File),
		logger.FieldCount, s.ResponseCount,
	)
	return s, nil
}

// Session loads one session header.
func (j *Journal) Session(ctx context.Context, id string) (*Session, error) {
	row := j.db.QueryRowContext(ctx,
		`SELECT id, file, request_kind, request_offset, response_count, created_at
		 FROM sessions WHERE id = ?`, id)

	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("session %s", id)
	}
	if err != nil {
		return nil, wrapClosed(err, "failed to get session")
	}
	return s, nil
}

// Sessions lists the most recent sessions, newest first. limit <= 0 lists all.
func (j *Journal) Sessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, file, request_kind, request_offset, response_count, created_at
		 FROM sessions ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, wrapClosed(err, "failed to list sessions")
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan session")
		}
		sessions = append(sessions, *s)
	}
	return sessions, errors.Wrap(rows.Err(), "failed to list sessions")
}

// Entries returns a session's responses in drained order.
func (j *Journal) Entries(ctx context.Context, sessionID string) ([]Entry, error) {
	if _, err := j.Session(ctx, sessionID); err != nil {
		return nil, err
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT position, kind, rank, span_begin, span_end, summary
		 FROM session_responses WHERE session_id = ? ORDER BY position`, sessionID)
	if err != nil {
		return nil, wrapClosed(err, "failed to query session responses")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind string
		if err := rows.Scan(&e.Position, &kind, &e.Rank, &e.Span.Begin, &e.Span.End, &e.Summary); err != nil {
			return nil, errors.Wrap(err, "failed to scan session response")
		}
		k, ok := query.ParseKind(kind)
		if !ok {
			return nil, errors.Newf("session %s has unknown response kind %q", sessionID, kind)
		}
		e.Kind = k
		entries = append(entries, e)
	}
	return entries, errors.Wrap(rows.Err(), "failed to read session responses")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	var s Session
	var file, kind string
	if err := row.Scan(&s.ID, &file, &kind, &s.Request.Offset, &s.ResponseCount, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.File = query.FileRef(file)
	s.Request.Kind = reply.RequestKind(kind)
	return &s, nil
}

func wrapClosed(err error, msg string) error {
	if db.IsDatabaseClosed(err) {
		return errors.Wrap(errors.WithSecondaryError(db.ErrDatabaseClosed, err), msg)
	}
	return errors.Wrap(err, msg)
}
