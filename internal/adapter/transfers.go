// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package adapter

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dpres-fi/access-client/models"
)

// ListTransfersOptions filter the transfer listing. Zero values mean no
// status filter, page 1, limit 1000.
type ListTransfersOptions struct {
	Status string
	Page   int
	Limit  int
}

type transferEnvelope struct {
	Data models.Transfer `json:"data"`
}

type transfersEnvelope struct {
	Data struct {
		Results []models.Transfer `json:"results"`
	} `json:"data"`
}

// GetTransferInfo fetches the current ingest status of one transfer.
func (c *Client) GetTransferInfo(ctx context.Context, transferID string) (models.Transfer, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(c.baseURL + "/transfers/" + url.PathEscape(transferID))
	if err != nil {
		return models.Transfer{}, &TransportError{Op: "transfer info", Err: err}
	}
	if err = statusError(resp); err != nil {
		return models.Transfer{}, err
	}

	var env transferEnvelope
	if err = decodeBody(resp, &env); err != nil {
		return models.Transfer{}, err
	}

	return env.Data, nil
}

// ListTransfers enumerates the transfers of the configured contract.
func (c *Client) ListTransfers(ctx context.Context, opts ListTransfersOptions) ([]models.Transfer, error) {
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
	if opts.Status != "" {
		req.SetQueryParam("status", opts.Status)
	}

	resp, err := req.Get(c.baseURL + "/transfers")
	if err != nil {
		return nil, &TransportError{Op: "list transfers", Err: err}
	}
	if err = statusError(resp); err != nil {
		return nil, err
	}

	var env transfersEnvelope
	if err = decodeBody(resp, &env); err != nil {
		return nil, err
	}

	return env.Data.Results, nil
}

// DeleteTransfer removes the server-side records of a transfer. Allowed
// from any transfer state; deleting an unknown transfer surfaces the
// server's error.
func (c *Client) DeleteTransfer(ctx context.Context, transferID string) (bool, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(c.baseURL + "/transfers/" + url.PathEscape(transferID))
	if err != nil {
		return false, &TransportError{Op: "delete transfer", Err: err}
	}
	if err = statusError(resp); err != nil {
		return false, err
	}

	var env deletedEnvelope
	if err = decodeBody(resp, &env); err != nil {
		return false, err
	}

	return env.Data.Deleted == "true", nil
}
