package main

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store is the client's local state database: the persisted session
// and unsent form drafts. Nothing server-owned is cached here.
type Store struct {
	db *sql.DB
}

const storeSchema = `
CREATE TABLE IF NOT EXISTS session (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	token TEXT NOT NULL,
	user_id INTEGER NOT NULL,
	username TEXT NOT NULL,
	saved_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS drafts (
	article_id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	saved_at INTEGER NOT NULL
);
`

func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Session() (Session, bool, error) {
	row := s.db.QueryRow(`SELECT token, user_id, username FROM session WHERE id = 1`)
	var session Session
	if err := row.Scan(&session.Token, &session.UserID, &session.Username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, false, nil
		}
		return Session{}, false, err
	}
	return session, true, nil
}

func (s *Store) SaveSession(session Session) error {
	_, err := s.db.Exec(`INSERT INTO session (id, token, user_id, username, saved_at) VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET token = excluded.token, user_id = excluded.user_id, username = excluded.username, saved_at = excluded.saved_at`,
		session.Token, session.UserID, session.Username, timeToUnix(time.Now().UTC()))
	return err
}

func (s *Store) ClearSession() error {
	_, err := s.db.Exec(`DELETE FROM session WHERE id = 1`)
	return err
}

// Drafts are keyed by article id; 0 holds the draft of a new article.

func (s *Store) SaveDraft(draft Draft) error {
	if draft.Title == "" && draft.Content == "" {
		return s.DeleteDraft(draft.ArticleID)
	}
	_, err := s.db.Exec(`INSERT INTO drafts (article_id, title, content, saved_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(article_id) DO UPDATE SET title = excluded.title, content = excluded.content, saved_at = excluded.saved_at`,
		draft.ArticleID, draft.Title, draft.Content, timeToUnix(time.Now().UTC()))
	return err
}

func (s *Store) Draft(articleID int64) (Draft, bool, error) {
	row := s.db.QueryRow(`SELECT article_id, title, content, saved_at FROM drafts WHERE article_id = ?`, articleID)
	var draft Draft
	var savedAt int64
	if err := row.Scan(&draft.ArticleID, &draft.Title, &draft.Content, &savedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Draft{}, false, nil
		}
		return Draft{}, false, err
	}
	draft.SavedAt = unixToTime(savedAt)
	return draft, true, nil
}

func (s *Store) DeleteDraft(articleID int64) error {
	_, err := s.db.Exec(`DELETE FROM drafts WHERE article_id = ?`, articleID)
	return err
}

func timeToUnix(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.Unix()
}

func unixToTime(value int64) time.Time {
	if value == 0 {
		return time.Time{}
	}
	return time.Unix(value, 0).UTC()
}
