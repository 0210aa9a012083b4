// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

// Package adapter implements the REST transport against the Digital
// Preservation Service: package search, DIP dissemination and download,
// transfer enumeration, ingest report retrieval and tus resumable uploads.
//
// All methods take a context, perform exactly one request/response exchange
// (the underlying client retries server-side 5xx failures transparently)
// and surface failures through the taxonomy in errors.go: [TransportError]
// for connection-level failures, [StatusError] for non-2xx responses,
// [ErrNotReady] and [OffsetError] for the two protocol-level conditions.
// Absent ingest reports are not errors; see reports.go.
package adapter

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dpres-fi/access-client/internal/logger"
	"github.com/go-resty/resty/v2"
)

// Version is reported in the User-Agent header. Overridden at build time
// via -ldflags.
var Version = "dev"

const apiVersion = "3.0"

// Config carries the settings the client needs to reach the service.
type Config struct {
	// Host is the service base URL, e.g. "https://pas.csc.fi".
	Host string
	// Username and Password are the basic auth credentials.
	Username string
	Password string
	// ContractID identifies the organization contract. It is part of most
	// endpoint URLs and travels in tus upload metadata.
	ContractID string
	// VerifySSL controls TLS certificate verification.
	VerifySSL bool
	// Timeout is the per-request timeout. Zero selects 10 seconds.
	Timeout time.Duration
}

// Client is the REST client for the Digital Preservation Service. It is
// safe for sequential reuse across calls; the configuration is fixed at
// construction since changing the host while polling a DIP would cause
// problems.
type Client struct {
	http       *resty.Client
	host       string
	hostURL    *url.URL
	contractID string
	baseURL    string
	tusURL     string
	logger     *logger.Logger
}

// New constructs a Client from cfg. The base URL for contract-scoped
// endpoints is {host}/api/3.0/{contract_id}; the tus endpoint is
// {host}/api/3.0/transfers (the contract id is carried in upload metadata
// instead of the URL).
//
// The underlying resty client is configured with basic auth, the
// per-request timeout and a retry policy of 5 attempts with doubling
// backoff on 500, 502, 503 and 504 responses.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	host, err := normalizeHost(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("invalid service host: %w", err)
	}
	hostURL, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid service host: %w", err)
	}
	if cfg.ContractID == "" {
		return nil, fmt.Errorf("contract id is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpc := resty.New().
		SetTimeout(timeout).
		SetBasicAuth(cfg.Username, cfg.Password).
		SetHeader("User-Agent", userAgent()).
		SetRetryCount(5).
		SetRetryWaitTime(time.Second).
		SetRetryMaxWaitTime(time.Minute).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil || r == nil {
				return false
			}
			switch r.StatusCode() {
			case 500, 502, 503, 504:
				return true
			}
			return false
		})

	if !cfg.VerifySSL {
		log.Warn().Msg("TLS verification has been *DISABLED* for the DPS service")
		httpc.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) // #nosec G402
	}

	return &Client{
		http:       httpc,
		host:       host,
		hostURL:    hostURL,
		contractID: cfg.ContractID,
		baseURL:    fmt.Sprintf("%s/api/%s/%s", host, apiVersion, cfg.ContractID),
		tusURL:     fmt.Sprintf("%s/api/%s/transfers", host, apiVersion),
		logger:     log,
	}, nil
}

// Host returns the normalized service host.
func (c *Client) Host() string { return c.host }

// ContractID returns the configured contract identifier.
func (c *Client) ContractID() string { return c.contractID }

func userAgent() string {
	return fmt.Sprintf("dpres-access-client/%s (github.com/dpres-fi/access-client)", Version)
}

func normalizeHost(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty host")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("host must include scheme and host")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// resolveURL turns a possibly relative location reference from the server
// into an absolute URL on the service host.
func (c *Client) resolveURL(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid location %q: %w", ref, err)
	}
	return c.hostURL.ResolveReference(u).String(), nil
}

// absoluteURL prefixes a server-relative path (e.g. a pagination link)
// with the host, leaving already absolute URLs alone.
func (c *Client) absoluteURL(p string) string {
	if p == "" {
		return ""
	}
	if strings.Contains(p, "://") {
		return p
	}
	return c.host + p
}

func decodeBody(resp *resty.Response, out any) error {
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("error decoding %s response: %w", resp.Request.URL, err)
	}
	return nil
}
