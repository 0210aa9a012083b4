// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

// Package service holds the per-entity client logic on top of the REST
// transport: DIP dissemination requests with their polling lifecycle,
// upload orchestration with resume support, and ingest status waiting.
package service

import (
	"context"
	"io"

	"github.com/dpres-fi/access-client/internal/adapter"
	"github.com/dpres-fi/access-client/models"
)

// DisseminationAPI is the slice of the transport a [DIPRequest] needs.
// *adapter.Client satisfies it.
type DisseminationAPI interface {
	Disseminate(ctx context.Context, aipID string, opts adapter.DisseminateOptions) (string, error)
	DisseminationStatus(ctx context.Context, dipID string) (models.DIPStatus, error)
	OpenDissemination(ctx context.Context, dipID string) (io.ReadCloser, int64, error)
	DeleteDissemination(ctx context.Context, dipID string) (bool, error)
}

// TransferAPI is the slice of the transport WaitForIngest needs.
// *adapter.Client satisfies it.
type TransferAPI interface {
	GetTransferInfo(ctx context.Context, transferID string) (models.Transfer, error)
}
