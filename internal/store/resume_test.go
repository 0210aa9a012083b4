// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package store

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpres-fi/access-client/internal/logger"
)

func openTestStore(t *testing.T) *ResumeStore {
	t.Helper()

	st, err := Open(filepath.Join(t.TempDir(), "subdir", "uploads.db"),
		logger.NewWithOutput(io.Discard, "test", false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// ── Get / Put / Delete ──────────────────────────────────────────────────────

func TestResumeStore_Roundtrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	url, err := st.Get(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, url)

	require.NoError(t, st.Put(ctx, "fp-1", "https://pas.csc.fi/api/3.0/transfers/abc"))

	url, err = st.Get(ctx, "fp-1")
	require.NoError(t, err)
	assert.Equal(t, "https://pas.csc.fi/api/3.0/transfers/abc", url)

	// Put on the same fingerprint replaces the URL.
	require.NoError(t, st.Put(ctx, "fp-1", "https://pas.csc.fi/api/3.0/transfers/def"))
	url, err = st.Get(ctx, "fp-1")
	require.NoError(t, err)
	assert.Equal(t, "https://pas.csc.fi/api/3.0/transfers/def", url)

	require.NoError(t, st.Delete(ctx, "fp-1"))
	url, err = st.Get(ctx, "fp-1")
	require.NoError(t, err)
	assert.Empty(t, url)

	// Deleting a missing fingerprint is a no-op.
	require.NoError(t, st.Delete(ctx, "fp-1"))
}

func TestResumeStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "uploads.db")
	log := logger.NewWithOutput(io.Discard, "test", false)
	ctx := context.Background()

	st, err := Open(path, log)
	require.NoError(t, err)
	require.NoError(t, st.Put(ctx, "fp-1", "https://example.org/u/1"))
	require.NoError(t, st.Close())

	st, err = Open(path, log)
	require.NoError(t, err)
	defer st.Close()

	url, err := st.Get(ctx, "fp-1")
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/u/1", url)
}

func TestResumeStore_GetQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT upload_url FROM uploads").
		WillReturnError(errors.New("disk I/O error"))

	st := &ResumeStore{db: db, logger: logger.NewWithOutput(io.Discard, "test", false)}
	_, err = st.Get(context.Background(), "fp-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume entry")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── Fingerprint ─────────────────────────────────────────────────────────────

func TestFingerprint_ChangesWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sip.tar")
	require.NoError(t, os.WriteFile(path, []byte("version one"), 0o644))

	fp1, err := Fingerprint(path)
	require.NoError(t, err)

	fp2, err := Fingerprint(path)
	require.NoError(t, err)
	assert.Equal(t, fp1, fp2, "unchanged file keeps its fingerprint")

	// A modified file must get a different fingerprint.
	require.NoError(t, os.WriteFile(path, []byte("version two, now longer"), 0o644))
	require.NoError(t, os.Chtimes(path, time.Now(), time.Now().Add(time.Second)))

	fp3, err := Fingerprint(path)
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp3)
}

func TestFingerprint_MissingFile(t *testing.T) {
	_, err := Fingerprint(filepath.Join(t.TempDir(), "nope.tar"))
	require.Error(t, err)
}
