// Package sqlite provides the SQLite-backed content and player store:
// challenge catalog (the engine's repository collaborator), registered
// players, and the leaderboard. Schema migrations are embedded and
// applied at open.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Kavithma17/Treasure-Hunt/pkg/adapters/sqlite/migrations"
	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339Nano

// Store is a SQLite-backed implementation of ports.Catalog,
// ports.PlayerStore and ports.Leaderboard.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (or creates) the database at path and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// secretPayload is the per-type secret block as stored in secret_json.
// Exactly one field is set, matching the challenge type.
type secretPayload struct {
	MCQ   *domain.MCQData   `json:"mcq,omitempty"`
	FIB   *domain.FIBData   `json:"fib,omitempty"`
	QR    *domain.QRData    `json:"qr,omitempty"`
	Photo *domain.PhotoData `json:"photo,omitempty"`
}

func encodeSecret(c *domain.Challenge) (string, error) {
	payload := secretPayload{MCQ: c.MCQ, FIB: c.FIB, QR: c.QR, Photo: c.Photo}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal secret payload: %w", err)
	}
	return string(data), nil
}

func decodeSecret(c *domain.Challenge, raw string) error {
	var payload secretPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return fmt.Errorf("unmarshal secret payload: %w", err)
	}
	c.MCQ, c.FIB, c.QR, c.Photo = payload.MCQ, payload.FIB, payload.QR, payload.Photo
	return nil
}

const challengeColumns = "ref, code, stage_code, type, prompt, clue, active, secret_json, created_at, updated_at"

func scanChallenge(row interface{ Scan(...any) error }) (*domain.Challenge, error) {
	var (
		c          domain.Challenge
		typ        string
		active     int
		secretJSON string
		createdAt  string
		updatedAt  string
	)
	err := row.Scan(&c.Ref, &c.Code, &c.StageCode, &typ, &c.Prompt, &c.Clue, &active, &secretJSON, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	c.Type = domain.ChallengeType(typ)
	c.Active = active != 0
	if t, err := time.Parse(timeFormat, createdAt); err == nil {
		c.CreatedAt = t
	}
	if t, err := time.Parse(timeFormat, updatedAt); err == nil {
		c.UpdatedAt = t
	}
	if err := decodeSecret(&c, secretJSON); err != nil {
		return nil, err
	}
	return &c, nil
}

// LookupByRef returns the full challenge record, secrets included.
func (s *Store) LookupByRef(ctx context.Context, ref string) (*domain.Challenge, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT "+challengeColumns+" FROM challenges WHERE ref = ?", ref)
	challenge, err := scanChallenge(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrChallengeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup challenge: %w", err)
	}
	return challenge, nil
}

// FindUnused returns an active challenge of the given type whose ref is
// not excluded, or domain.ErrChallengeNotFound.
func (s *Store) FindUnused(ctx context.Context, typ domain.ChallengeType, exclude []string) (*domain.Challenge, error) {
	query := "SELECT " + challengeColumns + " FROM challenges WHERE type = ? AND active = 1"
	args := []any{string(typ)}
	if len(exclude) > 0 {
		query += " AND ref NOT IN (?" + strings.Repeat(",?", len(exclude)-1) + ")"
		for _, ref := range exclude {
			args = append(args, ref)
		}
	}
	query += " ORDER BY code LIMIT 1"

	row := s.sqlDB.QueryRowContext(ctx, query, args...)
	challenge, err := scanChallenge(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrChallengeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find unused challenge: %w", err)
	}
	return challenge, nil
}

func (s *Store) queryStages(ctx context.Context, query string, args ...any) ([]domain.Stage, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stages: %w", err)
	}
	defer rows.Close()

	var stages []domain.Stage
	for rows.Next() {
		var (
			stage      domain.Stage
			compulsory int
			active     int
		)
		if err := rows.Scan(&stage.Code, &stage.Title, &stage.Description, &stage.Clue, &compulsory, &active); err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		stage.Compulsory = compulsory != 0
		stage.Active = active != 0
		stages = append(stages, stage)
	}
	return stages, rows.Err()
}

// ActiveStages returns active stages ordered by code.
func (s *Store) ActiveStages(ctx context.Context) ([]domain.Stage, error) {
	return s.queryStages(ctx,
		"SELECT code, title, description, clue, compulsory, active FROM stages WHERE active = 1 ORDER BY code")
}

// ListStages returns all stages ordered by code.
func (s *Store) ListStages(ctx context.Context) ([]domain.Stage, error) {
	return s.queryStages(ctx,
		"SELECT code, title, description, clue, compulsory, active FROM stages ORDER BY code")
}

// SaveStage inserts or replaces a stage keyed by code.
func (s *Store) SaveStage(ctx context.Context, stage domain.Stage) error {
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO stages (code, title, description, clue, compulsory, active)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (code) DO UPDATE SET
    title = excluded.title,
    description = excluded.description,
    clue = excluded.clue,
    compulsory = excluded.compulsory,
    active = excluded.active`,
		stage.Code, stage.Title, stage.Description, stage.Clue, boolToInt(stage.Compulsory), boolToInt(stage.Active))
	if err != nil {
		return fmt.Errorf("save stage: %w", err)
	}
	return nil
}

// DeleteStage removes a stage by code.
func (s *Store) DeleteStage(ctx context.Context, code string) error {
	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM stages WHERE code = ?", code); err != nil {
		return fmt.Errorf("delete stage: %w", err)
	}
	return nil
}

func (s *Store) queryChallenges(ctx context.Context, query string, args ...any) ([]*domain.Challenge, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query challenges: %w", err)
	}
	defer rows.Close()

	var out []*domain.Challenge
	for rows.Next() {
		challenge, err := scanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("scan challenge: %w", err)
		}
		out = append(out, challenge)
	}
	return out, rows.Err()
}

// ActiveByStage returns the active challenges of one stage, ordered by code.
func (s *Store) ActiveByStage(ctx context.Context, stageCode string) ([]*domain.Challenge, error) {
	return s.queryChallenges(ctx,
		"SELECT "+challengeColumns+" FROM challenges WHERE stage_code = ? AND active = 1 ORDER BY code",
		stageCode)
}

// ListChallenges returns challenges, optionally filtered by stage.
func (s *Store) ListChallenges(ctx context.Context, stageCode string) ([]*domain.Challenge, error) {
	if stageCode != "" {
		return s.queryChallenges(ctx,
			"SELECT "+challengeColumns+" FROM challenges WHERE stage_code = ? ORDER BY code", stageCode)
	}
	return s.queryChallenges(ctx,
		"SELECT "+challengeColumns+" FROM challenges ORDER BY code")
}

// SaveChallenge inserts or replaces a challenge. A missing Ref defaults
// to the challenge code.
func (s *Store) SaveChallenge(ctx context.Context, c *domain.Challenge) error {
	ref := c.Ref
	if ref == "" {
		ref = c.Code
	}
	secretJSON, err := encodeSecret(c)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(timeFormat)

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO challenges (ref, code, stage_code, type, prompt, clue, active, secret_json, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (ref) DO UPDATE SET
    code = excluded.code,
    stage_code = excluded.stage_code,
    type = excluded.type,
    prompt = excluded.prompt,
    clue = excluded.clue,
    active = excluded.active,
    secret_json = excluded.secret_json,
    updated_at = excluded.updated_at`,
		ref, c.Code, c.StageCode, string(c.Type), c.Prompt, c.Clue, boolToInt(c.Active), secretJSON, now, now)
	if err != nil {
		return fmt.Errorf("save challenge: %w", err)
	}
	return nil
}

// DeleteChallenge removes a challenge by code.
func (s *Store) DeleteChallenge(ctx context.Context, code string) error {
	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM challenges WHERE code = ?", code); err != nil {
		return fmt.Errorf("delete challenge: %w", err)
	}
	return nil
}

// CreatePlayer registers a player; names are unique case-insensitively.
func (s *Store) CreatePlayer(ctx context.Context, p *domain.Player) error {
	_, err := s.sqlDB.ExecContext(ctx,
		"INSERT INTO players (name, name_lower, player_key, created_at) VALUES (?, ?, ?, ?)",
		p.Name, strings.ToLower(p.Name), p.Key, p.CreatedAt.UTC().Format(timeFormat))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.ErrPlayerExists
		}
		return fmt.Errorf("create player: %w", err)
	}
	return nil
}

// FindPlayer looks a player up by case-insensitive name.
func (s *Store) FindPlayer(ctx context.Context, name string) (*domain.Player, error) {
	var (
		p         domain.Player
		createdAt string
	)
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT name, player_key, created_at FROM players WHERE name_lower = ?",
		strings.ToLower(strings.TrimSpace(name))).Scan(&p.Name, &p.Key, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find player: %w", err)
	}
	if t, err := time.Parse(timeFormat, createdAt); err == nil {
		p.CreatedAt = t
	}
	return &p, nil
}

// KeyTaken reports whether a generated key is already assigned.
func (s *Store) KeyTaken(ctx context.Context, key string) (bool, error) {
	var count int
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM players WHERE player_key = ?", key).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check player key: %w", err)
	}
	return count > 0, nil
}

// SubmitScore records a finish time.
func (s *Store) SubmitScore(ctx context.Context, entry domain.ScoreEntry) error {
	finishedAt := entry.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = time.Now().UTC()
	}
	_, err := s.sqlDB.ExecContext(ctx,
		"INSERT INTO scores (player_name, time_taken_ms, finished_at) VALUES (?, ?, ?)",
		entry.PlayerName, entry.TimeTaken.Milliseconds(), finishedAt.UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("submit score: %w", err)
	}
	return nil
}

// TopScores returns up to limit entries, fastest first.
func (s *Store) TopScores(ctx context.Context, limit int) ([]domain.ScoreEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT player_name, time_taken_ms, finished_at FROM scores ORDER BY time_taken_ms ASC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var out []domain.ScoreEntry
	for rows.Next() {
		var (
			entry      domain.ScoreEntry
			ms         int64
			finishedAt string
		)
		if err := rows.Scan(&entry.PlayerName, &ms, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		entry.TimeTaken = time.Duration(ms) * time.Millisecond
		if t, err := time.Parse(timeFormat, finishedAt); err == nil {
			entry.FinishedAt = t
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
