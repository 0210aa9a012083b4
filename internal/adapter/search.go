// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package adapter

import (
	"context"
	"strconv"

	"github.com/dpres-fi/access-client/models"
)

// SearchOptions select a page of packages. Zero values mean the service
// defaults: page 1, limit 1000, no query.
type SearchOptions struct {
	// Page is the 1-based result page.
	Page int
	// Limit is the maximum number of results per page.
	Limit int
	// Query is a search expression in the Solr dialect of the Lucene
	// query syntax. Empty returns all packages accessible under the
	// configured contract.
	Query string
}

type searchEnvelope struct {
	Data struct {
		Results []models.Package `json:"results"`
		Links   struct {
			Prev string `json:"prev"`
			Next string `json:"next"`
		} `json:"links"`
	} `json:"data"`
}

// Search performs one query against the search endpoint and returns the
// matching package records in service order. An empty query is not sent at
// all, which the service treats the same as no query.
func (c *Client) Search(ctx context.Context, opts SearchOptions) (models.SearchResult, error) {
	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 1000
	}

	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("page", strconv.Itoa(opts.Page)).
		SetQueryParam("limit", strconv.Itoa(opts.Limit))
	if opts.Query != "" {
		req.SetQueryParam("q", opts.Query)
	}

	resp, err := req.Get(c.baseURL + "/search")
	if err != nil {
		return models.SearchResult{}, &TransportError{Op: "search", Err: err}
	}
	if err = statusError(resp); err != nil {
		return models.SearchResult{}, err
	}

	var env searchEnvelope
	if err = decodeBody(resp, &env); err != nil {
		return models.SearchResult{}, err
	}

	return models.SearchResult{
		Results: env.Data.Results,
		PrevURL: c.absoluteURL(env.Data.Links.Prev),
		NextURL: c.absoluteURL(env.Data.Links.Next),
	}, nil
}
