package model

// RedirectOutcome classifies the result of a single redirect verification.
type RedirectOutcome string

// Redirect verification outcomes.
const (
	// RedirectOK means the old URL resolved to the expected destination.
	RedirectOK RedirectOutcome = "ok"

	// RedirectMismatch means the old URL resolved somewhere else.
	RedirectMismatch RedirectOutcome = "mismatch"

	// RedirectError means the request itself failed.
	RedirectError RedirectOutcome = "error"
)

// RedirectCheck is one old->new URL pair to verify, typically parsed from a
// migration mapping CSV.
type RedirectCheck struct {
	// OldURL is the pre-migration URL to request.
	OldURL string

	// ExpectedURL is the destination the old URL should redirect to.
	ExpectedURL string
}

// RedirectResult is the verification result for one RedirectCheck.
type RedirectResult struct {
	// Check is the pair that was verified.
	Check RedirectCheck

	// ActualURL is the final URL after following redirects. Empty when the
	// request failed outright.
	ActualURL string

	// StatusCode is the final HTTP status code, or zero on request failure.
	StatusCode int

	// Hops is the number of redirects followed.
	Hops int

	// Outcome classifies the result.
	Outcome RedirectOutcome

	// Err holds the failure description when Outcome is RedirectError.
	Err string
}
