// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package dpstest

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dpres-fi/access-client/models"
)

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != Username || pass != Password {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireContract(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "contract") != ContractID {
			http.Error(w, "unknown contract", http.StatusNotFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": "success",
		"data":   data,
	})
}

// ── search ──────────────────────────────────────────────────────────────────

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.lastSearch = r.URL.Query()
	q := r.URL.Query().Get("q")
	results := make([]models.Package, 0, len(s.packages))
	for _, p := range s.packages {
		if matchQuery(p, q) {
			results = append(results, p)
		}
	}
	s.mu.Unlock()

	writeData(w, http.StatusOK, map[string]any{
		"results": results,
		"links":   map[string]string{},
	})
}

// matchQuery supports the two query shapes the tests use: a field-qualified
// term ("pkg_type:AIP", "id:doi:x") and a plain substring.
func matchQuery(p models.Package, q string) bool {
	if q == "" {
		return true
	}
	if field, val, ok := strings.Cut(q, ":"); ok {
		switch field {
		case "id":
			return p.ID == val
		case "pkg_type":
			return p.PkgType == val
		}
	}
	return strings.Contains(p.ID, q) || strings.Contains(p.PkgType, q)
}

// ── dissemination ───────────────────────────────────────────────────────────

func (s *Server) disseminate(w http.ResponseWriter, r *http.Request) {
	aipID := chi.URLParam(r, "aipID")
	dipID := aipID + "-dip"

	s.mu.Lock()
	s.dips[dipID] = &dip{aipID: aipID}
	s.mu.Unlock()

	writeData(w, http.StatusAccepted, map[string]string{
		"disseminated": fmt.Sprintf("/api/3.0/%s/disseminated/%s", ContractID, dipID),
	})
}

func (s *Server) dipStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	d, ok := s.dips[chi.URLParam(r, "dipID")]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "dip not found", http.StatusNotFound)
		return
	}

	writeData(w, http.StatusOK, map[string]string{
		"complete": strconv.FormatBool(d.complete),
	})
}

func (s *Server) dipDownload(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	d, ok := s.dips[chi.URLParam(r, "dipID")]
	s.mu.Unlock()
	if !ok || !d.complete {
		http.Error(w, "dip not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(d.content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(d.content)
}

func (s *Server) dipDelete(w http.ResponseWriter, r *http.Request) {
	dipID := chi.URLParam(r, "dipID")

	s.mu.Lock()
	_, ok := s.dips[dipID]
	if ok {
		delete(s.dips, dipID)
	}
	s.mu.Unlock()

	if !ok {
		http.Error(w, "dip not found", http.StatusNotFound)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"deleted": "true"})
}

// ── transfers ───────────────────────────────────────────────────────────────

func (s *Server) listTransfers(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	s.mu.Lock()
	results := make([]models.Transfer, 0, len(s.transfers))
	for _, t := range s.transfers {
		if status == "" || t.Status == status {
			results = append(results, *t)
		}
	}
	s.mu.Unlock()

	writeData(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) transferInfo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	t, ok := s.transfers[chi.URLParam(r, "transferID")]
	var cp models.Transfer
	if ok {
		cp = *t
	}
	s.mu.Unlock()

	if !ok {
		http.Error(w, "transfer not found", http.StatusNotFound)
		return
	}
	writeData(w, http.StatusOK, cp)
}

func (s *Server) deleteTransfer(w http.ResponseWriter, r *http.Request) {
	transferID := chi.URLParam(r, "transferID")

	s.mu.Lock()
	_, ok := s.transfers[transferID]
	if ok {
		delete(s.transfers, transferID)
		delete(s.reports, transferID)
	}
	s.mu.Unlock()

	if !ok {
		http.Error(w, "transfer not found", http.StatusNotFound)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"deleted": "true"})
}

// ── ingest reports ──────────────────────────────────────────────────────────

func (s *Server) listReports(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	reps := s.reports[chi.URLParam(r, "transferID")]
	s.mu.Unlock()

	// No reports and unknown transfer look the same to clients.
	if len(reps) == 0 {
		http.Error(w, "no ingest reports", http.StatusNotFound)
		return
	}

	results := make([]map[string]string, 0, len(reps))
	for _, rep := range reps {
		results = append(results, map[string]string{
			"id":     rep.ID,
			"date":   rep.Date,
			"status": rep.Status,
		})
	}
	writeData(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")
	fileType := r.URL.Query().Get("type")

	s.mu.Lock()
	reps := s.reports[chi.URLParam(r, "transferID")]
	s.mu.Unlock()

	for _, rep := range reps {
		if rep.ID != reportID {
			continue
		}
		var body []byte
		switch fileType {
		case models.ReportTypeHTML:
			body = rep.HTML
		default:
			body = rep.XML
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
		return
	}

	http.Error(w, "report not found", http.StatusNotFound)
}

// ── tus upload ──────────────────────────────────────────────────────────────

func (s *Server) tusCreate(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Tus-Resumable") == "" {
		http.Error(w, "missing Tus-Resumable header", http.StatusPreconditionFailed)
		return
	}
	length, err := strconv.ParseInt(r.Header.Get("Upload-Length"), 10, 64)
	if err != nil || length < 0 {
		http.Error(w, "bad Upload-Length", http.StatusBadRequest)
		return
	}

	md := decodeMetadata(r.Header.Get("Upload-Metadata"))
	if md["contract_id"] != ContractID {
		http.Error(w, "unknown contract", http.StatusForbidden)
		return
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.uploads[id] = &upload{length: length, metadata: md}
	s.lastUploadID = id
	s.mu.Unlock()

	w.Header().Set("Tus-Resumable", "1.0.0")
	w.Header().Set("Location", "/api/3.0/transfers/"+id)
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) tusHead(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	u, ok := s.uploads[chi.URLParam(r, "uploadID")]
	var off, length int64
	if ok {
		off, length = u.offset(), u.length
	}
	s.mu.Unlock()

	if !ok {
		http.Error(w, "upload not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Tus-Resumable", "1.0.0")
	w.Header().Set("Upload-Offset", strconv.FormatInt(off, 10))
	w.Header().Set("Upload-Length", strconv.FormatInt(length, 10))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) tusPatch(w http.ResponseWriter, r *http.Request) {
	uploadID := chi.URLParam(r, "uploadID")

	clientOffset, err := strconv.ParseInt(r.Header.Get("Upload-Offset"), 10, 64)
	if err != nil {
		http.Error(w, "bad Upload-Offset", http.StatusBadRequest)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body", http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.uploads[uploadID]
	if !ok {
		http.Error(w, "upload not found", http.StatusNotFound)
		return
	}

	u.offsetsSeen = append(u.offsetsSeen, clientOffset)
	if clientOffset != u.offset() {
		w.Header().Set("Tus-Resumable", "1.0.0")
		w.Header().Set("Upload-Offset", strconv.FormatInt(u.offset(), 10))
		w.WriteHeader(http.StatusConflict)
		return
	}

	u.forcedOffset = nil
	u.data = append(u.data, body...)
	u.chunkSizes = append(u.chunkSizes, int64(len(body)))

	if int64(len(u.data)) == u.length {
		// Completed uploads become queued transfers.
		s.transfers[uploadID] = &models.Transfer{
			ID:       uploadID,
			Filename: u.metadata["filename"],
			Status:   models.TransferQueued,
		}
	}

	w.Header().Set("Tus-Resumable", "1.0.0")
	w.Header().Set("Upload-Offset", strconv.FormatInt(int64(len(u.data)), 10))
	w.WriteHeader(http.StatusNoContent)
}

func decodeMetadata(header string) map[string]string {
	md := make(map[string]string)
	for _, pair := range strings.Split(header, ",") {
		fields := strings.Fields(strings.TrimSpace(pair))
		if len(fields) == 0 {
			continue
		}
		if len(fields) == 1 {
			md[fields[0]] = ""
			continue
		}
		if v, err := base64.StdEncoding.DecodeString(fields[1]); err == nil {
			md[fields[0]] = string(v)
		}
	}
	return md
}
