package domain

import "time"

// SyncStatus is the delivery state of one transaction's Tally synchronization.
type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncSuccess SyncStatus = "success"
	SyncFailed  SyncStatus = "failed"
)

// SyncLogEntry records whether a transaction has been synchronized to Tally
// and with what outcome. Exactly one row exists per (TransactionType,
// TransactionID); every attempt updates that row in place. AttemptCount is
// monotonically non-decreasing and is the sole gate for retry eligibility.
type SyncLogEntry struct {
	SyncLogID       string          `json:"syncLogID"`
	TransactionType TransactionKind `json:"transactionType"`
	TransactionID   string          `json:"transactionID"`
	ReferenceNo     string          `json:"referenceNo"` // bill/voucher/receipt number
	Status          SyncStatus      `json:"status"`
	AttemptCount    int             `json:"attemptCount"`
	LastAttemptAt   time.Time       `json:"lastAttemptAt"`
	LastError       *string         `json:"lastError,omitempty"`
	LastResponse    *string         `json:"lastResponse,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}
