// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

// Package store persists upload resource URLs between invocations so that
// an interrupted tus upload can be resumed instead of restarted. Rows are
// keyed by a fingerprint of the local file (absolute path, size, mtime);
// a changed file gets a new fingerprint and therefore a fresh upload.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/dpres-fi/access-client/internal/logger"
	"github.com/dpres-fi/access-client/migrations"
)

// ResumeStore is the SQLite-backed upload resume store.
type ResumeStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// Open opens (creating if necessary) the resume database at path and runs
// the schema migrations.
func Open(path string, log *logger.Logger) (*ResumeStore, error) {
	if err := createDBFileIfNotExists(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening resume database: %w", err)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error connecting resume database: %w", err)
	}

	if err = migrations.Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Debug().Str("path", path).Msg("resume database ready")

	return &ResumeStore{db: db, logger: log}, nil
}

func createDBFileIfNotExists(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating resume database dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating resume database file: %w", err)
	}
	return f.Close()
}

// Close closes the underlying database.
func (s *ResumeStore) Close() error { return s.db.Close() }

// Get returns the stored upload URL for fingerprint, or "" when none is
// known.
func (s *ResumeStore) Get(ctx context.Context, fingerprint string) (string, error) {
	query, args, err := sq.Select("upload_url").
		From("uploads").
		Where(sq.Eq{"fingerprint": fingerprint}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("error building select query: %w", err)
	}

	var uploadURL string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&uploadURL)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("error reading resume entry: %w", err)
	}

	return uploadURL, nil
}

// Put records (or replaces) the upload URL for fingerprint.
func (s *ResumeStore) Put(ctx context.Context, fingerprint, uploadURL string) error {
	query, args, err := sq.Insert("uploads").
		Columns("fingerprint", "upload_url", "created_at").
		Values(fingerprint, uploadURL, time.Now().UTC()).
		Suffix("ON CONFLICT(fingerprint) DO UPDATE SET upload_url = excluded.upload_url, created_at = excluded.created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building insert query: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error writing resume entry: %w", err)
	}

	return nil
}

// Delete drops the resume entry for fingerprint. Deleting an unknown
// fingerprint is a no-op.
func (s *ResumeStore) Delete(ctx context.Context, fingerprint string) error {
	query, args, err := sq.Delete("uploads").
		Where(sq.Eq{"fingerprint": fingerprint}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building delete query: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error deleting resume entry: %w", err)
	}

	return nil
}

// Fingerprint derives the resume key for the file at path from its
// absolute path, size and modification time.
func Fingerprint(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("error resolving path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("error reading file info: %w", err)
	}

	return fmt.Sprintf("%s|%d|%d", abs, info.Size(), info.ModTime().UnixNano()), nil
}
