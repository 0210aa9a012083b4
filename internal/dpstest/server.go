// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

// Package dpstest provides an in-process fake of the Digital Preservation
// Service REST API for the test suites: search, dissemination, transfers,
// ingest reports and the tus upload endpoint. State is mutated through
// exported helpers so tests can stage packages, complete disseminations
// and flip transfer statuses mid-scenario.
package dpstest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/dpres-fi/access-client/models"
)

// Default credentials every handler checks via basic auth.
const (
	Username   = "fakeuser"
	Password   = "fakepassword"
	ContractID = "urn:uuid:fake-contract"
)

// Report is one staged ingest report.
type Report struct {
	ID     string
	Date   string // "2006-01-02T15:04:05Z"
	Status string
	XML    []byte
	HTML   []byte
}

type dip struct {
	aipID    string
	content  []byte
	complete bool
}

type upload struct {
	length       int64
	data         []byte
	metadata     map[string]string
	forcedOffset *int64
	chunkSizes   []int64
	offsetsSeen  []int64
}

// Server is the fake service. Create one with New; it listens on a local
// httptest server whose URL acts as the service host.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	packages     []models.Package
	dips         map[string]*dip
	transfers    map[string]*models.Transfer
	reports      map[string][]Report
	uploads      map[string]*upload
	lastUploadID string
	lastSearch   url.Values
}

// New starts a fake service. Callers must defer Close.
func New() *Server {
	s := &Server{
		dips:      make(map[string]*dip),
		transfers: make(map[string]*models.Transfer),
		reports:   make(map[string][]Report),
		uploads:   make(map[string]*upload),
	}

	r := chi.NewRouter()
	r.Use(s.requireAuth)

	// tus endpoint: the contract id travels in upload metadata, not the
	// URL, so these live outside the contract-scoped subtree.
	r.Post("/api/3.0/transfers", s.tusCreate)
	r.MethodFunc(http.MethodHead, "/api/3.0/transfers/{uploadID}", s.tusHead)
	r.Patch("/api/3.0/transfers/{uploadID}", s.tusPatch)

	r.Route("/api/3.0/{contract}", func(r chi.Router) {
		r.Use(s.requireContract)
		r.Get("/search", s.search)
		r.Post("/preserved/{aipID}/disseminate", s.disseminate)
		r.Get("/disseminated/{dipID}", s.dipStatus)
		r.Get("/disseminated/{dipID}/download", s.dipDownload)
		r.Delete("/disseminated/{dipID}", s.dipDelete)
		r.Get("/transfers", s.listTransfers)
		r.Get("/transfers/{transferID}", s.transferInfo)
		r.Delete("/transfers/{transferID}", s.deleteTransfer)
		r.Get("/transfers/{transferID}/reports", s.listReports)
		r.Get("/transfers/{transferID}/reports/{reportID}", s.getReport)
	})

	s.Server = httptest.NewServer(r)
	return s
}

// ── staging helpers ─────────────────────────────────────────────────────────

// AddPackage stages a package record for the search endpoint.
func (s *Server) AddPackage(p models.Package) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packages = append(s.packages, p)
}

// CompleteDIP marks the dissemination of dipID complete with the given
// archive bytes.
func (s *Server) CompleteDIP(dipID string, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.dips[dipID]; ok {
		d.complete = true
		d.content = content
	}
}

// AddTransfer stages a transfer record.
func (s *Server) AddTransfer(t models.Transfer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := t
	s.transfers[t.ID] = &cp
}

// SetTransferStatus flips the ingest status of a staged transfer.
func (s *Server) SetTransferStatus(transferID, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.transfers[transferID]; ok {
		t.Status = status
	}
}

// AddReport stages an ingest report for a transfer.
func (s *Server) AddReport(transferID string, rep Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[transferID] = append(s.reports[transferID], rep)
}

// LastSearchParams returns the query parameters of the most recent search
// request.
func (s *Server) LastSearchParams() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSearch
}

// LastUploadID returns the id of the most recently created tus upload.
func (s *Server) LastUploadID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUploadID
}

// UploadBytes returns the bytes received so far for an upload.
func (s *Server) UploadBytes(uploadID string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.uploads[uploadID]; ok {
		return append([]byte(nil), u.data...)
	}
	return nil
}

// UploadOffsets returns the Upload-Offset header values seen on PATCH
// requests, in order.
func (s *Server) UploadOffsets(uploadID string) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.uploads[uploadID]; ok {
		return append([]int64(nil), u.offsetsSeen...)
	}
	return nil
}

// UploadChunkSizes returns the accepted chunk sizes, in order.
func (s *Server) UploadChunkSizes(uploadID string) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.uploads[uploadID]; ok {
		return append([]int64(nil), u.chunkSizes...)
	}
	return nil
}

// UploadMetadata returns the decoded tus metadata of an upload.
func (s *Server) UploadMetadata(uploadID string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.uploads[uploadID]; ok {
		md := make(map[string]string, len(u.metadata))
		for k, v := range u.metadata {
			md[k] = v
		}
		return md
	}
	return nil
}

// ForceUploadOffset makes the server report off as the current offset of
// the upload, desynchronizing it from the client.
func (s *Server) ForceUploadOffset(uploadID string, off int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.uploads[uploadID]; ok {
		u.forcedOffset = &off
	}
}

// DropUpload forgets an upload resource, as the service does when a
// partial upload expires.
func (s *Server) DropUpload(uploadID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.uploads, uploadID)
}

func (u *upload) offset() int64 {
	if u.forcedOffset != nil {
		return *u.forcedOffset
	}
	return int64(len(u.data))
}
