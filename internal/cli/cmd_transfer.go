// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dpres-fi/access-client/internal/adapter"
	"github.com/dpres-fi/access-client/models"
)

func (a *App) runTransfer(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageErrorf("transfer requires a subcommand: info, list, delete or get-report")
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "info":
		return a.runTransferInfo(ctx, rest)
	case "list":
		return a.runTransferList(ctx, rest)
	case "delete":
		return a.runTransferDelete(ctx, rest)
	case "get-report":
		return a.runTransferGetReport(ctx, rest)
	default:
		return usageErrorf("unknown transfer subcommand %q", sub)
	}
}

func (a *App) runTransferInfo(ctx context.Context, args []string) error {
	fs := newSubFlagSet("transfer info", a.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageErrorf("transfer info requires exactly one TRANSFER_ID argument")
	}

	if err := a.connect(); err != nil {
		return err
	}

	transfer, err := a.client.GetTransferInfo(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, renderTransfers([]models.Transfer{transfer}))
	return nil
}

func (a *App) runTransferList(ctx context.Context, args []string) error {
	fs := newSubFlagSet("transfer list", a.stderr)
	transferStatus := fs.String("status", "", "only list transfers with this status")
	page := fs.Int("page", 1, "page of results to show")
	limit := fs.Int("limit", 1000, "maximum number of results per page")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return usageErrorf("transfer list takes no arguments")
	}

	if err := a.connect(); err != nil {
		return err
	}

	transfers, err := a.client.ListTransfers(ctx, adapter.ListTransfersOptions{
		Status: *transferStatus,
		Page:   *page,
		Limit:  *limit,
	})
	if err != nil {
		return err
	}

	if len(transfers) == 0 {
		fmt.Fprintln(a.stdout, "No transfers found.")
		return nil
	}
	fmt.Fprintln(a.stdout, renderTransfers(transfers))
	return nil
}

func (a *App) runTransferDelete(ctx context.Context, args []string) error {
	fs := newSubFlagSet("transfer delete", a.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageErrorf("transfer delete requires exactly one TRANSFER_ID argument")
	}
	transferID := fs.Arg(0)

	if err := a.connect(); err != nil {
		return err
	}

	deleted, err := a.client.DeleteTransfer(ctx, transferID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("service did not confirm deletion of transfer %s", transferID)
	}

	fmt.Fprintf(a.stdout, "Transfer %s deleted\n", transferID)
	return nil
}

func (a *App) runTransferGetReport(ctx context.Context, args []string) error {
	fs := newSubFlagSet("transfer get-report", a.stderr)
	reportID := fs.String("report-id", "", "fetch this specific report")
	latest := fs.Bool("latest", false, "fetch the most recent report (default when -report-id is not given)")
	list := fs.Bool("list", false, "list the available reports instead of fetching one")
	fileType := fs.String("type", models.ReportTypeXML, "report file type: xml or html")
	output := fs.String("output", "", "write the report to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageErrorf("transfer get-report requires exactly one TRANSFER_ID argument")
	}
	if *reportID != "" && *latest {
		return usageErrorf("-report-id and -latest are mutually exclusive")
	}
	transferID := fs.Arg(0)

	if err := a.connect(); err != nil {
		return err
	}

	if *list {
		entries, err := a.client.GetIngestReportEntries(ctx, transferID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintf(a.stdout, "No ingest reports found for transfer %s\n", transferID)
			return nil
		}
		fmt.Fprintln(a.stdout, renderReportEntries(entries))
		return nil
	}

	var (
		report []byte
		err    error
	)
	if *reportID != "" {
		report, err = a.client.GetIngestReport(ctx, transferID, *reportID, *fileType)
	} else {
		report, err = a.client.GetLatestIngestReport(ctx, transferID, *fileType)
	}
	if err != nil {
		return err
	}
	if report == nil {
		fmt.Fprintf(a.stdout, "No ingest reports found for transfer %s\n", transferID)
		return nil
	}

	if *output != "" {
		if err := os.WriteFile(*output, report, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(a.stdout, "Ingest report written to %s\n", *output)
		return nil
	}

	if _, err := a.stdout.Write(report); err != nil {
		return err
	}
	return nil
}
