package models

// DIPStatus is the dissemination state of a requested DIP as reported by a
// single status poll.
type DIPStatus struct {
	// DIPID is the identifier assigned by the service when the
	// dissemination request was accepted.
	DIPID string

	// Complete is true once the DIP has been generated and is ready for
	// download.
	Complete bool
}
