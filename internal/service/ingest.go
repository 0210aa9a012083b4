// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package service

import (
	"context"

	"github.com/dpres-fi/access-client/models"
)

// WaitForIngest polls the transfer status on the standard ramped interval
// until the ingest reaches a terminal state (accepted or rejected) and
// returns the final transfer record. Returns early with ctx.Err() on
// cancellation.
func WaitForIngest(ctx context.Context, api TransferAPI, transferID string) (models.Transfer, error) {
	next := PollIntervals()
	for {
		transfer, err := api.GetTransferInfo(ctx, transferID)
		if err != nil {
			return models.Transfer{}, err
		}
		if transfer.Terminal() {
			return transfer, nil
		}
		if err := sleepCtx(ctx, next()); err != nil {
			return models.Transfer{}, err
		}
	}
}
