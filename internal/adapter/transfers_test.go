// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package adapter

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpres-fi/access-client/internal/dpstest"
	"github.com/dpres-fi/access-client/models"
)

// ── GetTransferInfo ─────────────────────────────────────────────────────────

func TestGetTransferInfo(t *testing.T) {
	srv := dpstest.New()
	defer srv.Close()

	srv.AddTransfer(models.Transfer{ID: "t-1", Filename: "sip.tar", Status: models.TransferProcessing})

	c := newTestClient(t, srv)
	transfer, err := c.GetTransferInfo(context.Background(), "t-1")

	require.NoError(t, err)
	assert.Equal(t, "t-1", transfer.ID)
	assert.Equal(t, "sip.tar", transfer.Filename)
	assert.Equal(t, models.TransferProcessing, transfer.Status)
	assert.False(t, transfer.Terminal())
}

func TestGetTransferInfo_Unknown(t *testing.T) {
	srv := dpstest.New()
	defer srv.Close()

	c := newTestClient(t, srv)
	_, err := c.GetTransferInfo(context.Background(), "no-such-transfer")

	assert.True(t, IsStatus(err, http.StatusNotFound))
}

// ── ListTransfers ───────────────────────────────────────────────────────────

func TestListTransfers_StatusFilter(t *testing.T) {
	srv := dpstest.New()
	defer srv.Close()

	srv.AddTransfer(models.Transfer{ID: "t-1", Status: models.TransferAccepted})
	srv.AddTransfer(models.Transfer{ID: "t-2", Status: models.TransferRejected})

	c := newTestClient(t, srv)

	all, err := c.ListTransfers(context.Background(), ListTransfersOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	rejected, err := c.ListTransfers(context.Background(), ListTransfersOptions{Status: models.TransferRejected})
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, "t-2", rejected[0].ID)
	assert.True(t, rejected[0].Terminal())
}

// ── DeleteTransfer ──────────────────────────────────────────────────────────

func TestDeleteTransfer(t *testing.T) {
	srv := dpstest.New()
	defer srv.Close()

	srv.AddTransfer(models.Transfer{ID: "t-1", Status: models.TransferAccepted})

	c := newTestClient(t, srv)
	deleted, err := c.DeleteTransfer(context.Background(), "t-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = c.GetTransferInfo(context.Background(), "t-1")
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestDeleteTransfer_Unknown(t *testing.T) {
	srv := dpstest.New()
	defer srv.Close()

	c := newTestClient(t, srv)
	_, err := c.DeleteTransfer(context.Background(), "no-such-transfer")

	assert.True(t, IsStatus(err, http.StatusNotFound))
}
