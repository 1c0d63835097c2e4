package interaction

import (
	"time"
)

// OutcomeStatus describes the terminal status of a single interaction attempt.
type OutcomeStatus string

const (
	// OutcomeStatusSuccess describes an attempt whose transaction obtained a confirmation.
	OutcomeStatusSuccess OutcomeStatus = "success"

	// OutcomeStatusFailed describes an attempt which failed to submit or was reverted.
	OutcomeStatusFailed OutcomeStatus = "failed"
)

// Outcome describes the result of a single interaction attempt. An Outcome is created once per recorded attempt
// and is immutable after creation.
type Outcome struct {
	// InteractionID describes the 1-based index of the primary attempt this outcome was recorded for. Attempts
	// drawn from the retry budget do not consume new IDs and are never recorded.
	InteractionID int `json:"interactionId"`

	// Function describes the name of the contract function that was called.
	Function string `json:"function"`

	// Arguments describes the ordered, rendered argument values the call was made with.
	Arguments []string `json:"arguments"`

	// Status describes whether the attempt succeeded or failed.
	Status OutcomeStatus `json:"status"`

	// TxHash describes the hash of the confirmed transaction, if the attempt succeeded.
	TxHash string `json:"transactionHash,omitempty"`

	// BlockNumber describes the block the transaction was confirmed in, if the attempt succeeded.
	BlockNumber uint64 `json:"blockNumber,omitempty"`

	// GasUsed describes the gas the transaction consumed, if the attempt succeeded.
	GasUsed string `json:"gasUsed,omitempty"`

	// Error describes the submission failure message, if the attempt failed.
	Error string `json:"error,omitempty"`

	// Timestamp describes when the outcome was recorded, in ISO-8601 format.
	Timestamp string `json:"timestamp"`
}

// newOutcomeTimestamp returns the ISO-8601 timestamp outcomes are recorded with.
func newOutcomeTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// BatchResult describes the aggregate result of an interaction batch against a single deployed contract.
// Invariants: Successful <= Total, and len(Results) >= Successful.
type BatchResult struct {
	// Total describes the target success count the batch was run against.
	Total int `json:"total"`

	// Successful describes how many attempts obtained a confirmation.
	Successful int `json:"successful"`

	// Results describes the ordered outcomes of all recorded attempts.
	Results []*Outcome `json:"results"`
}
