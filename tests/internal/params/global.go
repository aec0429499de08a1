package params

const (
	// ReportTCPrefix is used as a prefix for the test management reporter. Example OSTC-1111 where [OSTC-] is the
	// prefix and 1111 is the test case ID.
	ReportTCPrefix = "OSTC-"
)
