package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tbctxt/readycheck/internal/common"
)

// DefaultSessionID is the session row used by the single-user CLI.
const DefaultSessionID = "default"

// Session holds the persisted user selections and pasted gear text.
type Session struct {
	UpdatedAt time.Time
	ID        string
	GearText  string
	Class     string
	Spec      string
	Phase     string
}

// Character is an imported character's gear snapshot.
type Character struct {
	ImportedAt time.Time
	Name       string
	Realm      string
	Region     string
	Class      string
	Spec       string
	GearText   string
}

// SaveSession upserts a session.
func (s *SQLiteStorage) SaveSession(ctx context.Context, session Session) error {
	if session.ID == "" {
		session.ID = DefaultSessionID
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, gear_text, class, spec, phase, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			gear_text = excluded.gear_text,
			class = excluded.class,
			spec = excluded.spec,
			phase = excluded.phase,
			updated_at = CURRENT_TIMESTAMP`,
		session.ID, session.GearText, session.Class, session.Spec, session.Phase)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession loads a session by id. Returns common.ErrNotFound when the
// session has never been saved.
func (s *SQLiteStorage) GetSession(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		id = DefaultSessionID
	}
	var session Session
	err := s.db.QueryRowContext(ctx, `
		SELECT id, gear_text, class, spec, phase, updated_at
		FROM sessions WHERE id = ?`, id).
		Scan(&session.ID, &session.GearText, &session.Class, &session.Spec,
			&session.Phase, &session.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &session, nil
}

// SaveCharacter upserts an imported character.
func (s *SQLiteStorage) SaveCharacter(ctx context.Context, c Character) error {
	if c.Name == "" || c.Realm == "" || c.Region == "" {
		return fmt.Errorf("%w: character name, realm and region are required", common.ErrInvalidConfig)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO characters (name, realm, region, class, spec, gear_text, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name, realm, region) DO UPDATE SET
			class = excluded.class,
			spec = excluded.spec,
			gear_text = excluded.gear_text,
			imported_at = CURRENT_TIMESTAMP`,
		c.Name, c.Realm, c.Region, c.Class, c.Spec, c.GearText)
	if err != nil {
		return fmt.Errorf("failed to save character: %w", err)
	}
	return nil
}

// GetCharacter loads an imported character.
func (s *SQLiteStorage) GetCharacter(ctx context.Context, name, realm, region string) (*Character, error) {
	var c Character
	err := s.db.QueryRowContext(ctx, `
		SELECT name, realm, region, COALESCE(class, ''), COALESCE(spec, ''), gear_text, imported_at
		FROM characters WHERE name = ? AND realm = ? AND region = ?`,
		name, realm, region).
		Scan(&c.Name, &c.Realm, &c.Region, &c.Class, &c.Spec, &c.GearText, &c.ImportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load character: %w", err)
	}
	return &c, nil
}

// ListCharacters returns all imported characters ordered by import time,
// newest first.
func (s *SQLiteStorage) ListCharacters(ctx context.Context) ([]Character, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, realm, region, COALESCE(class, ''), COALESCE(spec, ''), gear_text, imported_at
		FROM characters ORDER BY imported_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Character
	for rows.Next() {
		var c Character
		if err := rows.Scan(&c.Name, &c.Realm, &c.Region, &c.Class, &c.Spec,
			&c.GearText, &c.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan character: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
