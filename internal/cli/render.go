// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package cli

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dpres-fi/access-client/models"
)

var (
	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers(headers...)
}

func renderPackages(packages []models.Package) string {
	t := newTable("ID", "TYPE", "CREATED", "MODIFIED")
	for _, p := range packages {
		modified := p.LastModDate
		if modified == "" {
			modified = "N/A"
		}
		t.Row(p.ID, p.PkgType, p.CreateDate, modified)
	}
	return t.Render()
}

func renderTransfers(transfers []models.Transfer) string {
	t := newTable("ID", "FILENAME", "STATUS")
	for _, tr := range transfers {
		filename := tr.Filename
		if filename == "" {
			filename = "N/A"
		}
		t.Row(tr.ID, filename, tr.Status)
	}
	return t.Render()
}

func renderReportEntries(entries []models.IngestReportEntry) string {
	t := newTable("REPORT ID", "DATE", "STATUS")
	for _, e := range entries {
		t.Row(e.ReportID, e.Date.UTC().Format(time.RFC3339), e.Status)
	}
	return t.Render()
}
