package models

// Package is a single preserved package record as returned by the search
// endpoint of the Digital Preservation Service.
type Package struct {
	// ID is the package identifier (AIP or DIP id, depending on PkgType).
	ID string `json:"id"`

	// PkgType tells whether the record is an AIP, DIP or SIP.
	PkgType string `json:"pkg_type"`

	// CreateDate is the creation timestamp as reported by the service.
	CreateDate string `json:"createdate"`

	// LastModDate is the last modification timestamp. Empty when the
	// service has never modified the package.
	LastModDate string `json:"lastmoddate,omitempty"`
}

// SearchResult is one page of package search results. Results keep the
// ordering of the service response. PrevURL and NextURL are absolute URLs
// to the neighbouring result pages; either may be empty when no such page
// exists.
type SearchResult struct {
	Results []Package
	PrevURL string
	NextURL string
}
