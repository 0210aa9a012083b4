// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/dpres-fi/access-client/models"
)

type reportsEnvelope struct {
	Data struct {
		Results []struct {
			ID     string `json:"id"`
			Date   string `json:"date"`
			Status string `json:"status"`
		} `json:"results"`
	} `json:"data"`
}

// GetIngestReportEntries lists the validation reports available for a
// transfer, newest first. A transfer with no reports yet (or an unknown
// transfer id) yields an empty slice and no error: absence of reports is
// an expected state, not a failure.
func (c *Client) GetIngestReportEntries(ctx context.Context, transferID string) ([]models.IngestReportEntry, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(c.baseURL + "/transfers/" + url.PathEscape(transferID) + "/reports")
	if err != nil {
		return nil, &TransportError{Op: "ingest report entries", Err: err}
	}
	if err = statusError(resp); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return []models.IngestReportEntry{}, nil
		}
		return nil, err
	}

	var env reportsEnvelope
	if err = decodeBody(resp, &env); err != nil {
		return nil, err
	}

	entries := make([]models.IngestReportEntry, 0, len(env.Data.Results))
	for _, r := range env.Data.Results {
		date, err := time.Parse(time.RFC3339, r.Date)
		if err != nil {
			return nil, fmt.Errorf("error parsing report date %q: %w", r.Date, err)
		}
		entries = append(entries, models.IngestReportEntry{
			ReportID:   r.ID,
			TransferID: transferID,
			Date:       date.UTC(),
			Status:     r.Status,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	return entries, nil
}

// GetIngestReport fetches one validation report in the requested format
// ("xml" or "html"). A missing report (unknown report or transfer id)
// yields (nil, nil) rather than an error.
func (c *Client) GetIngestReport(ctx context.Context, transferID, reportID, fileType string) ([]byte, error) {
	if !models.ValidReportType(fileType) {
		return nil, fmt.Errorf("invalid report type %q: only %q and %q are accepted",
			fileType, models.ReportTypeXML, models.ReportTypeHTML)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("type", fileType).
		Get(c.baseURL + "/transfers/" + url.PathEscape(transferID) + "/reports/" + url.PathEscape(reportID))
	if err != nil {
		return nil, &TransportError{Op: "ingest report", Err: err}
	}
	if err = statusError(resp); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return resp.Body(), nil
}

// GetLatestIngestReport fetches the most recent validation report of a
// transfer, or (nil, nil) when the transfer has no reports yet.
func (c *Client) GetLatestIngestReport(ctx context.Context, transferID, fileType string) ([]byte, error) {
	entries, err := c.GetIngestReportEntries(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	// Entries are sorted newest first.
	return c.GetIngestReport(ctx, transferID, entries[0].ReportID, fileType)
}
