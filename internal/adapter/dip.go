// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package adapter

import (
	"context"
	"io"
	"net/url"
	"path"
	"strconv"

	"github.com/dpres-fi/access-client/models"
)

// DisseminateOptions tune a dissemination request.
type DisseminateOptions struct {
	// Catalog is an optional schema catalog used to disseminate the AIP.
	// The newest available catalog is used by default.
	Catalog string
	// ArchiveFormat is the archive type of the generated DIP, "zip"
	// (default) or "tar".
	ArchiveFormat string
}

type disseminateEnvelope struct {
	Data struct {
		Disseminated string `json:"disseminated"`
	} `json:"data"`
}

type dipStatusEnvelope struct {
	Data struct {
		Complete string `json:"complete"`
	} `json:"data"`
}

type deletedEnvelope struct {
	Data struct {
		Deleted string `json:"deleted"`
	} `json:"data"`
}

// Disseminate registers a dissemination request for the AIP and returns
// the DIP identifier assigned by the service (the last segment of the
// resource path in the response).
func (c *Client) Disseminate(ctx context.Context, aipID string, opts DisseminateOptions) (string, error) {
	format := opts.ArchiveFormat
	if format == "" {
		format = "zip"
	}

	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("format", format)
	if opts.Catalog != "" {
		req.SetQueryParam("catalog", opts.Catalog)
	}

	resp, err := req.Post(c.baseURL + "/preserved/" + url.PathEscape(aipID) + "/disseminate")
	if err != nil {
		return "", &TransportError{Op: "disseminate", Err: err}
	}
	if err = statusError(resp); err != nil {
		return "", err
	}

	var env disseminateEnvelope
	if err = decodeBody(resp, &env); err != nil {
		return "", err
	}

	return path.Base(env.Data.Disseminated), nil
}

// DisseminationStatus polls the dissemination state of a DIP exactly once.
func (c *Client) DisseminationStatus(ctx context.Context, dipID string) (models.DIPStatus, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(c.baseURL + "/disseminated/" + url.PathEscape(dipID))
	if err != nil {
		return models.DIPStatus{}, &TransportError{Op: "dissemination status", Err: err}
	}
	if err = statusError(resp); err != nil {
		return models.DIPStatus{}, err
	}

	var env dipStatusEnvelope
	if err = decodeBody(resp, &env); err != nil {
		return models.DIPStatus{}, err
	}

	return models.DIPStatus{DIPID: dipID, Complete: env.Data.Complete == "true"}, nil
}

// OpenDissemination starts a streamed download of a ready DIP. The caller
// must close the returned reader. Size is taken from Content-Length and is
// -1 when the service does not report one.
func (c *Client) OpenDissemination(ctx context.Context, dipID string) (io.ReadCloser, int64, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(c.baseURL + "/disseminated/" + url.PathEscape(dipID) + "/download")
	if err != nil {
		return nil, 0, &TransportError{Op: "download", Err: err}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.RawBody(), 4096))
		_ = resp.RawBody().Close()
		return nil, 0, &StatusError{
			Method:     resp.Request.Method,
			URL:        resp.Request.URL,
			StatusCode: resp.StatusCode(),
			Body:       string(body),
		}
	}

	size := int64(-1)
	if cl := resp.Header().Get("Content-Length"); cl != "" {
		if v, err := strconv.ParseInt(cl, 10, 64); err == nil {
			size = v
		}
	}

	return resp.RawBody(), size, nil
}

// DeleteDissemination removes a DIP from the service. Whether deleting an
// already deleted DIP fails is up to the server; its response is surfaced
// as-is.
func (c *Client) DeleteDissemination(ctx context.Context, dipID string) (bool, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(c.baseURL + "/disseminated/" + url.PathEscape(dipID))
	if err != nil {
		return false, &TransportError{Op: "delete dissemination", Err: err}
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
