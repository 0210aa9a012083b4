// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package cli

import (
	"context"
	"fmt"

	"github.com/dpres-fi/access-client/internal/adapter"
)

func (a *App) runSearch(ctx context.Context, args []string) error {
	fs := newSubFlagSet("search", a.stderr)
	page := fs.Int("page", 1, "page of results to show")
	limit := fs.Int("limit", 1000, "maximum number of results per page")
	query := fs.String("query", "", "search query, e.g. 'pkg_type:AIP'")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return usageErrorf("search takes no arguments, use -query")
	}

	if err := a.connect(); err != nil {
		return err
	}

	result, err := a.client.Search(ctx, adapter.SearchOptions{
		Page:  *page,
		Limit: *limit,
		Query: *query,
	})
	if err != nil {
		return err
	}

	if len(result.Results) == 0 {
		fmt.Fprintln(a.stdout, "No packages found.")
		return nil
	}

	fmt.Fprintln(a.stdout, renderPackages(result.Results))
	if result.NextURL != "" {
		fmt.Fprintf(a.stdout, "More results are available, use -page %d to show the next page.\n", *page+1)
	}
	return nil
}
