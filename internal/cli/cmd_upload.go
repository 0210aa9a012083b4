// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/dpres-fi/access-client/internal/adapter"
	"github.com/dpres-fi/access-client/internal/service"
	"github.com/dpres-fi/access-client/internal/store"
	"github.com/dpres-fi/access-client/models"
)

func (a *App) runUpload(ctx context.Context, args []string) error {
	fs := newSubFlagSet("upload", a.stderr)
	chunkSize := fs.Int64("chunk-size", adapter.DefaultChunkSize, "upload chunk size in bytes")
	wait := fs.Bool("wait", false, "wait until the transfer is accepted or rejected")
	noResume := fs.Bool("no-resume", false, "disable the upload resume database")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageErrorf("upload requires exactly one PATH argument")
	}
	path := fs.Arg(0)

	if *chunkSize <= 0 {
		return usageErrorf("-chunk-size must be positive")
	}

	if err := a.connect(); err != nil {
		return err
	}

	var resumeStore *store.ResumeStore
	if !*noResume && a.cfg.ResumeDB != "" {
		st, err := store.Open(a.cfg.ResumeDB, a.log)
		if err != nil {
			// A broken resume database must not block uploads.
			a.log.Warn().Err(err).Str("path", a.cfg.ResumeDB).
				Msg("resume database unavailable, uploading without resume support")
		} else {
			resumeStore = st
			defer st.Close()
		}
	}

	svc := service.NewUploadService(a.client, resumeStore, a.log)
	result, err := svc.Upload(ctx, path, *chunkSize, a.uploadProgress)
	if err != nil {
		return err
	}
	fmt.Fprint(a.stderr, "\r\033[K")
	fmt.Fprintf(a.stdout, "Upload complete: transfer %s (%s)\n",
		result.TransferID, humanize.Bytes(uint64(result.Bytes)))

	if !*wait {
		return nil
	}

	fmt.Fprintf(a.stdout, "Waiting for the transfer to be ingested...\n")
	transfer, err := service.WaitForIngest(ctx, a.client, result.TransferID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Transfer %s finished with status %q\n", transfer.ID, transfer.Status)
	if transfer.Status == models.TransferRejected {
		return fmt.Errorf("transfer %s was rejected", transfer.ID)
	}
	return nil
}

func (a *App) uploadProgress(offset, size int64) {
	fmt.Fprintf(a.stderr, "\r\033[KUploading... %s / %s",
		humanize.Bytes(uint64(offset)), humanize.Bytes(uint64(size)))
}
