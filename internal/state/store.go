// Package state persists the session snapshot (feed labels in tab order,
// bookmarks, read links, refresh interval) in a local SQLite database.
package state

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"newsdeck/internal/news"
	"newsdeck/internal/session"
)

const intervalKey = "refresh_interval"

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS feeds (
			position INTEGER PRIMARY KEY,
			label    TEXT NOT NULL UNIQUE
		);
		CREATE TABLE IF NOT EXISTS bookmarks (
			position    INTEGER PRIMARY KEY,
			link        TEXT NOT NULL UNIQUE,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			published   TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS read_links (
			link TEXT PRIMARY KEY
		);
		CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored snapshot wholesale in one transaction.
func (s *Store) Save(snap session.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"feeds", "bookmarks", "read_links"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i, label := range snap.Labels {
		if _, err := tx.Exec(
			"INSERT INTO feeds (position, label) VALUES (?, ?)", i, label,
		); err != nil {
			return fmt.Errorf("saving feed %q: %w", label, err)
		}
	}
	for i, b := range snap.Bookmarks {
		published := ""
		if !b.PublishedAt.IsZero() {
			published = b.PublishedAt.Format(time.RFC3339)
		}
		if _, err := tx.Exec(
			"INSERT INTO bookmarks (position, link, title, description, published) VALUES (?, ?, ?, ?, ?)",
			i, b.Link, b.Title, b.Description, published,
		); err != nil {
			return fmt.Errorf("saving bookmark %q: %w", b.Link, err)
		}
	}
	for _, link := range snap.ReadLinks {
		if _, err := tx.Exec(
			"INSERT INTO read_links (link) VALUES (?)", link,
		); err != nil {
			return fmt.Errorf("saving read link %q: %w", link, err)
		}
	}

	return tx.Commit()
}

// Load reads the stored snapshot. A fresh database yields an empty one.
func (s *Store) Load() (session.Snapshot, error) {
	var snap session.Snapshot

	rows, err := s.db.Query("SELECT label FROM feeds ORDER BY position")
	if err != nil {
		return snap, fmt.Errorf("loading feeds: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return snap, fmt.Errorf("scanning feed: %w", err)
		}
		snap.Labels = append(snap.Labels, label)
	}
	if err := rows.Err(); err != nil {
		return snap, err
	}

	brows, err := s.db.Query(
		"SELECT link, title, description, published FROM bookmarks ORDER BY position")
	if err != nil {
		return snap, fmt.Errorf("loading bookmarks: %w", err)
	}
	defer brows.Close()
	for brows.Next() {
		var b news.Item
		var published string
		if err := brows.Scan(&b.Link, &b.Title, &b.Description, &published); err != nil {
			return snap, fmt.Errorf("scanning bookmark: %w", err)
		}
		if published != "" {
			b.PublishedAt = news.ParseDate(published)
		}
		snap.Bookmarks = append(snap.Bookmarks, b)
	}
	if err := brows.Err(); err != nil {
		return snap, err
	}

	lrows, err := s.db.Query("SELECT link FROM read_links")
	if err != nil {
		return snap, fmt.Errorf("loading read links: %w", err)
	}
	defer lrows.Close()
	for lrows.Next() {
		var link string
		if err := lrows.Scan(&link); err != nil {
			return snap, fmt.Errorf("scanning read link: %w", err)
		}
		snap.ReadLinks = append(snap.ReadLinks, link)
	}
	return snap, lrows.Err()
}

// RefreshInterval returns the stored auto-refresh interval, or 0 when none
// is stored or the value does not parse.
func (s *Store) RefreshInterval() time.Duration {
	var value string
	err := s.db.QueryRow(
		"SELECT value FROM settings WHERE key = ?", intervalKey,
	).Scan(&value)
	if err != nil {
		return 0
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("ignoring bad stored refresh interval", "value", value)
		return 0
	}
	return d
}

func (s *Store) SetRefreshInterval(d time.Duration) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, intervalKey, d.String())
	return err
}
