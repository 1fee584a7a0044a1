package model

// Outcome is the terminal classification of one processed item
type Outcome string

const (
	// OutcomeSuccess means the item's media was fetched completely
	OutcomeSuccess Outcome = "Success"

	// OutcomeFailed means the item failed for a per-item reason (bad URL,
	// unreachable resource, fetch error); the reason travels in ItemResult
	OutcomeFailed Outcome = "Failed"

	// OutcomeCancelled means cooperative cancellation stopped the item
	// before or during its transfer
	OutcomeCancelled Outcome = "Cancelled"
)

// String returns the string representation of Outcome
func (o Outcome) String() string {
	return string(o)
}

// IsFailure returns true if the outcome should appear in the failed-URL
// retry file
func (o Outcome) IsFailure() bool {
	return o == OutcomeFailed
}
