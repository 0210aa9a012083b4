// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dpres-fi/access-client/internal/adapter"
	"github.com/google/uuid"
)

const downloadBufferSize = 1 << 20

// DIPRequest tracks one dissemination request from submission to download
// or deletion. Create one with [CreateDIPRequest]; it starts in the
// not-ready state and becomes ready once a status check observes the
// completed dissemination.
type DIPRequest struct {
	api   DisseminationAPI
	aipID string
	dipID string
	ready bool
}

// CreateDIPRequest submits a dissemination request for the given AIP and
// returns a DIPRequest carrying the DIP identifier the service assigned.
func CreateDIPRequest(ctx context.Context, api DisseminationAPI, aipID string, opts adapter.DisseminateOptions) (*DIPRequest, error) {
	dipID, err := api.Disseminate(ctx, aipID, opts)
	if err != nil {
		return nil, err
	}

	return &DIPRequest{api: api, aipID: aipID, dipID: dipID}, nil
}

// AIPID returns the identifier of the source AIP.
func (r *DIPRequest) AIPID() string { return r.aipID }

// DIPID returns the identifier the service assigned to the DIP.
func (r *DIPRequest) DIPID() string { return r.dipID }

// Ready reports whether a status check has seen the DIP complete.
func (r *DIPRequest) Ready() bool { return r.ready }

// CheckStatus polls the dissemination state exactly once and reports
// whether the DIP is ready for download. It never blocks between polls;
// the caller controls the cadence (or uses Poll).
func (r *DIPRequest) CheckStatus(ctx context.Context) (bool, error) {
	if r.ready {
		return true, nil
	}

	status, err := r.api.DisseminationStatus(ctx, r.dipID)
	if err != nil {
		return false, err
	}

	r.ready = status.Complete
	return r.ready, nil
}

// Poll blocks until the DIP is ready for download, checking the status on
// the standard ramped interval. Returns early with ctx.Err() on
// cancellation.
func (r *DIPRequest) Poll(ctx context.Context) error {
	next := PollIntervals()
	for {
		ready, err := r.CheckStatus(ctx)
		if err != nil {
			return err
		}
		if ready {
			return nil
		}
		if err := sleepCtx(ctx, next()); err != nil {
			return err
		}
	}
}

// Download streams the ready DIP to path. The data lands in a temporary
// sibling file first and is renamed into place only when the download
// completed, so an interrupted download never leaves a truncated file at
// path. progress, when non-nil, is called after every buffer write with
// the bytes written so far and the total size (-1 when unknown).
//
// Returns [adapter.ErrNotReady] when the DIP has not been observed ready.
func (r *DIPRequest) Download(ctx context.Context, path string, progress func(written, total int64)) error {
	if !r.ready {
		return fmt.Errorf("%w: dip %s", adapter.ErrNotReady, r.dipID)
	}

	body, size, err := r.api.OpenDissemination(ctx, r.dipID)
	if err != nil {
		return err
	}
	defer body.Close()

	tmp := filepath.Join(filepath.Dir(path), filepath.Base(path)+".part-"+uuid.NewString())
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create download file: %w", err)
	}

	w := bufio.NewWriterSize(f, downloadBufferSize)
	var written int64
	buf := make([]byte, downloadBufferSize)
	for {
		n, rerr := body.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				_ = f.Close()
				_ = os.Remove(tmp)
				return fmt.Errorf("write download file: %w", werr)
			}
			written += int64(n)
			if progress != nil {
				progress(written, size)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
			return fmt.Errorf("read download stream: %w", rerr)
		}
	}

	if err = w.Flush(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("flush download file: %w", err)
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close download file: %w", err)
	}

	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("move download into place: %w", err)
	}

	return nil
}

// Delete removes the disseminated DIP from the service. The request does
// not track readiness here; the server decides whether the DIP exists and
// its response is forwarded as-is.
func (r *DIPRequest) Delete(ctx context.Context) (bool, error) {
	return r.api.DeleteDissemination(ctx, r.dipID)
}
