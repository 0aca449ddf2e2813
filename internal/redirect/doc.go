// Package redirect verifies that old URLs redirect to their expected
// post-migration destinations.
//
// The auditor takes a list of old->new URL pairs (typically parsed from a
// migration mapping CSV), requests each old URL while recording the
// redirect chain, and classifies the outcome: ok when the final URL matches
// the expectation, mismatch when it lands elsewhere, error when the request
// fails. Checks run concurrently with paced request starts, and a failure
// on one pair never stops the rest.
package redirect
