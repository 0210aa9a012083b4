// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/dpres-fi/access-client/internal/adapter"
	"github.com/dpres-fi/access-client/internal/service"
)

func (a *App) runDIP(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageErrorf("dip requires a subcommand: download or delete")
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "download":
		return a.runDIPDownload(ctx, rest)
	case "delete":
		return a.runDIPDelete(ctx, rest)
	default:
		return usageErrorf("unknown dip subcommand %q", sub)
	}
}

func (a *App) runDIPDownload(ctx context.Context, args []string) error {
	fs := newSubFlagSet("dip download", a.stderr)
	path := fs.String("path", "", "download destination, defaults to <AIP_ID>.<format> in the working directory")
	format := fs.String("archive-format", "zip", "archive format of the DIP: zip or tar")
	catalog := fs.String("catalog", "", "schema catalog version used for the dissemination")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageErrorf("dip download requires exactly one AIP_ID argument")
	}
	aipID := fs.Arg(0)

	if err := a.connect(); err != nil {
		return err
	}

	req, err := service.CreateDIPRequest(ctx, a.client, aipID, adapter.DisseminateOptions{
		Catalog:       *catalog,
		ArchiveFormat: *format,
	})
	if err != nil {
		return err
	}

	dest := *path
	if dest == "" {
		dest = fmt.Sprintf("%s.%s", aipID, *format)
	}

	fmt.Fprintf(a.stdout, "Dissemination of %s scheduled, waiting for the DIP to be ready...\n", aipID)
	if err := req.Poll(ctx); err != nil {
		return err
	}

	if err := req.Download(ctx, dest, a.downloadProgress); err != nil {
		return err
	}
	fmt.Fprint(a.stderr, "\r\033[K")
	fmt.Fprintf(a.stdout, "DIP %s downloaded to %s\n", req.DIPID(), dest)
	return nil
}

func (a *App) runDIPDelete(ctx context.Context, args []string) error {
	fs := newSubFlagSet("dip delete", a.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageErrorf("dip delete requires exactly one DIP_ID argument")
	}
	dipID := fs.Arg(0)

	if err := a.connect(); err != nil {
		return err
	}

	deleted, err := a.client.DeleteDissemination(ctx, dipID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("service did not confirm deletion of DIP %s", dipID)
	}

	fmt.Fprintf(a.stdout, "DIP %s deleted\n", dipID)
	return nil
}

// downloadProgress rewrites a single status line on stderr so stdout stays
// clean for scripting.
func (a *App) downloadProgress(written, total int64) {
	if total > 0 {
		fmt.Fprintf(a.stderr, "\r\033[KDownloading... %s / %s",
			humanize.Bytes(uint64(written)), humanize.Bytes(uint64(total)))
		return
	}
	fmt.Fprintf(a.stderr, "\r\033[KDownloading... %s", humanize.Bytes(uint64(written)))
}
