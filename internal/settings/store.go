/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package settings persists per-user tool settings in an embedded SQLite
// key-value store, the narrow get/set contract the editing core reads its
// defaults through. Whole settings documents are validated against a JSON
// schema before they are written.
package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"log/slog"

	"github.com/xeipuuv/gojsonschema"

	applog "gowhiteboard/internal/log"
	"gowhiteboard/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// DirName stores all per-user ephemeral data under the user root.
	DirName  = ".gwb"
	FileName = "settings.sqlite"

	// schemaVersion tracks the local SQLite schema. Bump on breaking
	// schema changes and add a migration step.
	schemaVersion = 1
)

// Path returns the full path to the settings database under root.
func Path(root string) string {
	return filepath.Join(root, DirName, FileName)
}

// Store is the persistent settings key-value store.
type Store struct {
	db *sql.DB
}

// Open ensures the settings database exists under root, opens it in WAL
// mode and ensures the meta/version/settings tables exist.
func Open(root string) (*Store, error) {
	l := applog.WithOperation(applog.WithComponent("settings"), "open").With(
		slog.String("root", root),
	)
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("settings root is required")
	}
	if err := os.MkdirAll(filepath.Join(root, DirName), 0o755); err != nil {
		l.Error("create settings dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create settings dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(Path(root)))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure schema failed", slog.Any("err", err))
		return nil, err
	}

	l.Info("settings store ready", slog.String("path", Path(root)))
	return &Store{db: db}, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS version (
			id         INTEGER PRIMARY KEY CHECK(id=1),
			schema     INTEGER NOT NULL,
			app        TEXT,
			created_at TEXT,
			updated_at TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS settings (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure settings schema: %w", err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	appv := version.Version
	var cur int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.ExecContext(ctx,
			`INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`,
			schemaVersion, appv, now, now); err != nil {
			return fmt.Errorf("insert version row: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case cur > schemaVersion:
		return fmt.Errorf("settings schema %d is newer than supported %d", cur, schemaVersion)
	default:
		if _, err := db.ExecContext(ctx,
			`UPDATE version SET app=?, updated_at=? WHERE id=1`, appv, now); err != nil {
			return fmt.Errorf("update version row: %w", err)
		}
	}
	return nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Get returns the stored value for key; ok is false when absent.
func (s *Store) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	err = s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key=?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores key=value, overwriting any previous value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES(?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		key, value, now)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key=?`, key); err != nil {
		return fmt.Errorf("delete setting %q: %w", key, err)
	}
	return nil
}

// All returns every stored setting.
func (s *Store) All(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

// documentSchema constrains whole settings documents to the recognized
// keys and their value domains.
const documentSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"strokeWidth":       {"type": "number", "exclusiveMinimum": 0},
		"strokeColor":       {"type": "string", "minLength": 1},
		"strokeStyle":       {"type": "string", "enum": ["solid", "dashed", "dotted"]},
		"fillColor":         {"type": "string"},
		"defaultAnchorType": {"type": "string", "enum": ["corner", "smooth", "symmetric"]},
		"cornerRadius":      {"type": "number", "minimum": 0, "maximum": 100},
		"eraserWidth":       {"type": "number", "exclusiveMinimum": 0},
		"eraserCap":         {"type": "string", "enum": ["round", "square"]}
	}
}`

// ValidateDocument checks a JSON settings document against the schema and
// returns a single error naming every violation.
func ValidateDocument(doc []byte) error {
	res, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(documentSchema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validate settings document: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid settings document: %s", strings.Join(msgs, "; "))
}

// SaveDocument validates the JSON document and stores each top-level
// field as one settings row.
func (s *Store) SaveDocument(ctx context.Context, doc []byte) error {
	if err := ValidateDocument(doc); err != nil {
		return err
	}
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return fmt.Errorf("decode settings document: %w", err)
	}
	for k, v := range m {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode setting %q: %w", k, err)
		}
		if err := s.Set(ctx, k, string(b)); err != nil {
			return err
		}
	}
	return nil
}

// LoadDocument assembles the stored settings back into one JSON document.
func (s *Store) LoadDocument(ctx context.Context) ([]byte, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]json.RawMessage, len(all))
	for k, v := range all {
		m[k] = json.RawMessage(v)
	}
	return json.Marshal(m)
}
