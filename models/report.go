package models

// Report file formats accepted by the ingest report endpoints.
const (
	ReportTypeXML  = "xml"
	ReportTypeHTML = "html"
)

// ValidReportType reports whether t is a report format the service can
// produce.
func ValidReportType(t string) bool {
	return t == ReportTypeXML || t == ReportTypeHTML
}
