// Package diag defines the diagnostic model shared by every analysis phase:
// severities, severity-scoped numeric codes, the Diagnostic record, the Bag
// accumulator and the Reporter sink contract.
package diag
