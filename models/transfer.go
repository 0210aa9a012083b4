package models

import "time"

// Ingest statuses reported by the Digital Preservation Service for a
// transfer. A transfer moves queued -> processing and ends up either
// accepted or rejected.
const (
	TransferQueued     = "queued"
	TransferProcessing = "processing"
	TransferAccepted   = "accepted"
	TransferRejected   = "rejected"
)

// Transfer is one upload/ingest unit tracked by a server-assigned
// identifier.
type Transfer struct {
	// ID is the transfer identifier assigned by the service when the
	// upload completed.
	ID string `json:"id"`

	// Filename is the name of the uploaded transfer package, when the
	// service reports it.
	Filename string `json:"filename,omitempty"`

	// Status is one of the Transfer* constants.
	Status string `json:"status"`
}

// Terminal reports whether the transfer has reached a final ingest state.
func (t Transfer) Terminal() bool {
	return t.Status == TransferAccepted || t.Status == TransferRejected
}

// IngestReportEntry describes one validation report available for a
// transfer. Entries are ordered newest first by Date.
type IngestReportEntry struct {
	ReportID   string
	TransferID string
	Date       time.Time
	Status     string
}
