// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpres-fi/access-client/models"
)

func TestWaitForIngest_AlreadyTerminal(t *testing.T) {
	srv, c := newTestSetup(t)

	srv.AddTransfer(models.Transfer{ID: "t-1", Status: models.TransferAccepted})

	transfer, err := WaitForIngest(context.Background(), c, "t-1")
	require.NoError(t, err)
	assert.Equal(t, models.TransferAccepted, transfer.Status)
}

func TestWaitForIngest_PollsUntilTerminal(t *testing.T) {
	srv, c := newTestSetup(t)

	srv.AddTransfer(models.Transfer{ID: "t-1", Status: models.TransferProcessing})
	go func() {
		time.Sleep(500 * time.Millisecond)
		srv.SetTransferStatus("t-1", models.TransferRejected)
	}()

	transfer, err := WaitForIngest(context.Background(), c, "t-1")
	require.NoError(t, err)
	assert.Equal(t, models.TransferRejected, transfer.Status)
	assert.True(t, transfer.Terminal())
}

func TestWaitForIngest_Cancellation(t *testing.T) {
	srv, c := newTestSetup(t)

	srv.AddTransfer(models.Transfer{ID: "t-1", Status: models.TransferQueued})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := WaitForIngest(ctx, c, "t-1")
	require.ErrorIs(t, err, context.Canceled)
}

func TestWaitForIngest_UnknownTransfer(t *testing.T) {
	_, c := newTestSetup(t)

	_, err := WaitForIngest(context.Background(), c, "no-such-transfer")
	require.Error(t, err)
}
