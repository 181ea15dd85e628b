package models

import "time"

// Remote batch statuses as reported by the provider.
//
//	validating  batch file is being validated before the batch processing begins
//	failed      batch file has failed the validation process
//	in_progress batch file was successfully validated and the batch is currently being run
//	finalizing  batch has completed and the results are being prepared
//	completed   batch has been completed and the results are ready
//	expired     batch was not able to be completed within the completion window
//	cancelling  batch is being cancelled
//	cancelled   batch was cancelled
const (
	BatchStatusValidating = "validating"
	BatchStatusFailed     = "failed"
	BatchStatusInProgress = "in_progress"
	BatchStatusFinalizing = "finalizing"
	BatchStatusCompleted  = "completed"
	BatchStatusExpired    = "expired"
	BatchStatusCancelling = "cancelling"
	BatchStatusCancelled  = "cancelled"
)

// BatchStatusPending reports whether the remote batch is still being worked on.
func BatchStatusPending(status string) bool {
	switch status {
	case BatchStatusValidating, BatchStatusInProgress, BatchStatusFinalizing, BatchStatusCancelling:
		return true
	}
	return false
}

// BatchStatusTerminalNoOutput reports a terminal state that produces no output.
// Recorded as a normal completion, not an error.
func BatchStatusTerminalNoOutput(status string) bool {
	switch status {
	case BatchStatusFailed, BatchStatusExpired, BatchStatusCancelled:
		return true
	}
	return false
}

// LLMBatch is one asynchronous extraction job at the provider.
// Table: llm_batches. At most one row may have completed_at IS NULL;
// a partial unique index enforces this.
//
// Detail keeps the provider's last status blob verbatim for audit next to
// nothing typed beyond what the poll loop needs.
type LLMBatch struct {
	ID            string     `json:"id"`
	InputContent  []byte     `json:"jsonl_input_content,omitempty"`
	Detail        []byte     `json:"detail,omitempty"`
	OutputContent []byte     `json:"jsonl_output_content,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	LastCheckedAt *time.Time `json:"last_checked_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}
