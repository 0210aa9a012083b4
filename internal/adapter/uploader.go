// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package adapter

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	tusVersion = "1.0.0"

	// DefaultChunkSize is the chunk size used when the caller does not
	// pick one.
	DefaultChunkSize int64 = 4 << 20
)

// Uploader performs a tus resumable upload of one transfer package. It
// tracks the current byte offset and the declared upload length; the
// upload is complete when Offset() == Size(). An Uploader is not safe for
// concurrent use.
type Uploader struct {
	client *Client

	file      *os.File
	path      string
	size      int64
	chunkSize int64
	metadata  map[string]string

	offset    int64
	uploadURL string
}

// NewUploader opens the transfer package at p and prepares a tus upload
// with the given chunk size (0 selects [DefaultChunkSize]). The contract
// id and the file name travel in the tus metadata. Close must be called
// when done.
func (c *Client) NewUploader(p string, chunkSize int64) (*Uploader, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open transfer package: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat transfer package: %w", err)
	}

	return &Uploader{
		client:    c,
		file:      f,
		path:      p,
		size:      info.Size(),
		chunkSize: chunkSize,
		metadata: map[string]string{
			"contract_id": c.contractID,
			"filename":    filepath.Base(p),
		},
	}, nil
}

// Close releases the underlying file handle.
func (u *Uploader) Close() error { return u.file.Close() }

// Offset returns the last server-acknowledged byte offset.
func (u *Uploader) Offset() int64 { return u.offset }

// Size returns the declared upload length in bytes.
func (u *Uploader) Size() int64 { return u.size }

// Done reports whether every byte has been acknowledged by the server.
func (u *Uploader) Done() bool { return u.offset == u.size }

// UploadURL returns the upload resource URL, or "" before Create (or
// SetUploadURL) has run.
func (u *Uploader) UploadURL() string { return u.uploadURL }

// SetUploadURL points the uploader at an existing upload resource, e.g.
// one remembered from an interrupted invocation. Call SyncOffset afterward
// to adopt the server-side offset.
func (u *Uploader) SetUploadURL(uploadURL string) { u.uploadURL = uploadURL }

// TransferID derives the transfer identifier from the upload resource URL
// (its last path segment). Empty before the upload resource exists.
func (u *Uploader) TransferID() string {
	if u.uploadURL == "" {
		return ""
	}
	parsed, err := url.Parse(u.uploadURL)
	if err != nil {
		return ""
	}
	return path.Base(parsed.Path)
}

// Create registers the upload with the service: one POST to the tus
// endpoint declaring the upload length and metadata. The upload resource
// URL is taken from the Location response header.
func (u *Uploader) Create(ctx context.Context) error {
	resp, err := u.client.http.R().
		SetContext(ctx).
		SetHeader("Tus-Resumable", tusVersion).
		SetHeader("Upload-Length", strconv.FormatInt(u.size, 10)).
		SetHeader("Upload-Metadata", encodeMetadata(u.metadata)).
		Post(u.client.tusURL)
	if err != nil {
		return &TransportError{Op: "create upload", Err: err}
	}
	if err = statusError(resp); err != nil {
		return err
	}

	loc := resp.Header().Get("Location")
	if loc == "" {
		return fmt.Errorf("create upload: no Location header in response")
	}

	u.uploadURL, err = u.client.resolveURL(loc)
	return err
}

// SyncOffset asks the server for the current offset of the upload resource
// (one HEAD request) and adopts it. Used to resume an interrupted upload.
func (u *Uploader) SyncOffset(ctx context.Context) error {
	resp, err := u.client.http.R().
		SetContext(ctx).
		SetHeader("Tus-Resumable", tusVersion).
		Head(u.uploadURL)
	if err != nil {
		return &TransportError{Op: "upload offset", Err: err}
	}
	if err = statusError(resp); err != nil {
		return err
	}

	off, err := strconv.ParseInt(resp.Header().Get("Upload-Offset"), 10, 64)
	if err != nil {
		return fmt.Errorf("upload offset: server reported no usable Upload-Offset: %w", err)
	}

	u.offset = off
	return nil
}

// UploadChunk sends exactly one chunk: a PATCH carrying the current offset
// and the next chunkSize (or fewer, at the tail) bytes of the file. On
// success the offset advances to the value acknowledged by the server.
//
// When the server rejects the declared offset (409) or acknowledges an
// unexpected one, an *OffsetError is returned and the client offset stays
// at the last acknowledged value; resume via SyncOffset.
func (u *Uploader) UploadChunk(ctx context.Context) error {
	if u.uploadURL == "" {
		return fmt.Errorf("upload chunk: upload has not been created")
	}
	if u.Done() {
		return nil
	}

	want := u.size - u.offset
	if want > u.chunkSize {
		want = u.chunkSize
	}
	buf := make([]byte, want)
	if n, err := u.file.ReadAt(buf, u.offset); err != nil && !(errors.Is(err, io.EOF) && int64(n) == want) {
		return fmt.Errorf("read chunk at %d: %w", u.offset, err)
	}

	resp, err := u.client.http.R().
		SetContext(ctx).
		SetHeader("Tus-Resumable", tusVersion).
		SetHeader("Content-Type", "application/offset+octet-stream").
		SetHeader("Upload-Offset", strconv.FormatInt(u.offset, 10)).
		SetBody(buf).
		Patch(u.uploadURL)
	if err != nil {
		return &TransportError{Op: "upload chunk", Err: err}
	}

	if resp.StatusCode() == http.StatusConflict {
		got := int64(-1)
		if v, perr := strconv.ParseInt(resp.Header().Get("Upload-Offset"), 10, 64); perr == nil {
			got = v
		}
		return &OffsetError{Expected: u.offset, Got: got}
	}
	if err = statusError(resp); err != nil {
		return err
	}

	expected := u.offset + want
	acked, err := strconv.ParseInt(resp.Header().Get("Upload-Offset"), 10, 64)
	if err != nil || acked != expected {
		got := int64(-1)
		if err == nil {
			got = acked
		}
		return &OffsetError{Expected: expected, Got: got}
	}

	u.offset = acked
	return nil
}

// Upload sends the remaining chunks one by one until the whole upload
// length has been acknowledged.
func (u *Uploader) Upload(ctx context.Context) error {
	for !u.Done() {
		if err := u.UploadChunk(ctx); err != nil {
			return err
		}
	}
	return nil
}

// encodeMetadata renders tus Upload-Metadata: comma-separated pairs of
// "key base64(value)", keys sorted for a stable header value.
func encodeMetadata(md map[string]string) string {
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+" "+base64.StdEncoding.EncodeToString([]byte(md[k])))
	}
	return strings.Join(pairs, ",")
}
