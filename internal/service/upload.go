// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package service

import (
	"context"
	"net/http"

	"github.com/dpres-fi/access-client/internal/adapter"
	"github.com/dpres-fi/access-client/internal/logger"
	"github.com/dpres-fi/access-client/internal/store"
)

// UploadService performs tus uploads of transfer packages, remembering
// upload resource URLs in the resume store so an interrupted upload
// continues from the server-acknowledged offset on the next invocation.
type UploadService struct {
	client *adapter.Client
	store  *store.ResumeStore
	logger *logger.Logger
}

// NewUploadService constructs an UploadService. resumeStore may be nil, in
// which case every upload starts from scratch.
func NewUploadService(client *adapter.Client, resumeStore *store.ResumeStore, log *logger.Logger) *UploadService {
	return &UploadService{client: client, store: resumeStore, logger: log}
}

// UploadResult describes a completed upload.
type UploadResult struct {
	// TransferID is the identifier the service assigned to the transfer.
	TransferID string
	// UploadURL is the tus upload resource the transfer was sent to.
	UploadURL string
	// Bytes is the total upload length.
	Bytes int64
}

// Upload sends the transfer package at path chunk by chunk. progress, when
// non-nil, is called after every acknowledged chunk with the current
// offset and the upload length.
//
// When a resume store is configured and holds an upload URL for the same
// file (same path, size and mtime), the upload continues from the offset
// the server reports for that resource; a stale entry the server no longer
// knows about (404 or 410) is dropped and the upload starts over.
func (s *UploadService) Upload(ctx context.Context, path string, chunkSize int64, progress func(offset, size int64)) (UploadResult, error) {
	up, err := s.client.NewUploader(path, chunkSize)
	if err != nil {
		return UploadResult{}, err
	}
	defer up.Close()

	var fingerprint string
	if s.store != nil {
		fingerprint, err = store.Fingerprint(path)
		if err != nil {
			return UploadResult{}, err
		}
		if err = s.tryResume(ctx, up, fingerprint); err != nil {
			return UploadResult{}, err
		}
	}

	if up.UploadURL() == "" {
		if err = up.Create(ctx); err != nil {
			return UploadResult{}, err
		}
		if s.store != nil {
			if err = s.store.Put(ctx, fingerprint, up.UploadURL()); err != nil {
				return UploadResult{}, err
			}
		}
	}

	for !up.Done() {
		if err = up.UploadChunk(ctx); err != nil {
			return UploadResult{}, err
		}
		if progress != nil {
			progress(up.Offset(), up.Size())
		}
	}

	if s.store != nil {
		if err = s.store.Delete(ctx, fingerprint); err != nil {
			return UploadResult{}, err
		}
	}

	s.logger.Debug().
		Str("transfer_id", up.TransferID()).
		Int64("bytes", up.Size()).
		Msg("upload complete")

	return UploadResult{
		TransferID: up.TransferID(),
		UploadURL:  up.UploadURL(),
		Bytes:      up.Size(),
	}, nil
}

// tryResume points up at a previously stored upload resource and adopts
// the server-side offset. A resource the server has forgotten is pruned
// from the store and the uploader is left pristine.
func (s *UploadService) tryResume(ctx context.Context, up *adapter.Uploader, fingerprint string) error {
	uploadURL, err := s.store.Get(ctx, fingerprint)
	if err != nil || uploadURL == "" {
		return err
	}

	up.SetUploadURL(uploadURL)
	err = up.SyncOffset(ctx)
	if err == nil {
		s.logger.Debug().
			Str("upload_url", uploadURL).
			Int64("offset", up.Offset()).
			Msg("resuming interrupted upload")
		return nil
	}

	if adapter.IsStatus(err, http.StatusNotFound) || adapter.IsStatus(err, http.StatusGone) {
		up.SetUploadURL("")
		return s.store.Delete(ctx, fingerprint)
	}

	return err
}
