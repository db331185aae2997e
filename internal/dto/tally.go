package dto

import (
	"time"

	"github.com/goldloom/jewelshop_backend/internal/core/domain"
)

// TallySyncResult is the uniform outcome of one sync attempt for one
// transaction. Disabled marks the recognized no-op when sync is switched off
// in configuration; it is not an error and nothing was delivered or logged.
type TallySyncResult struct {
	Success       bool                   `json:"success"`
	Disabled      bool                   `json:"disabled,omitempty"`
	Type          domain.TransactionKind `json:"type"`
	TransactionID string                 `json:"transactionID"`
	ReferenceNo   string                 `json:"referenceNo"`
	TallyResponse *string                `json:"tallyResponse,omitempty"`
	Error         *string                `json:"error,omitempty"`
}

// TallyRetryOutcome summarizes one candidate of a retry sweep.
type TallyRetryOutcome struct {
	Type          domain.TransactionKind `json:"type"`
	TransactionID string                 `json:"transactionID"`
	ReferenceNo   string                 `json:"referenceNo"`
	Success       bool                   `json:"success"`
	Skipped       bool                   `json:"skipped,omitempty"` // source transaction no longer exists
	Error         *string                `json:"error,omitempty"`
}

// TallyConnectionResult reports the outcome of a connection probe.
type TallyConnectionResult struct {
	Success  bool    `json:"success"`
	Message  string  `json:"message"`
	Response *string `json:"response,omitempty"`
}

// TallyConfigResponse is the safe view of the sync configuration. It never
// carries ciphertext or decrypted secrets.
type TallyConfigResponse struct {
	TallyURL        string          `json:"tallyURL"`
	CompanyName     string          `json:"companyName"`
	Enabled         bool            `json:"enabled"`
	SyncMode        domain.SyncMode `json:"syncMode"`
	AutoSyncEnabled bool            `json:"autoSyncEnabled"`
	ConnectionType  string          `json:"connectionType"`
	HasCredentials  bool            `json:"hasCredentials"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ToTallyConfigResponse builds the safe config view from the stored record.
func ToTallyConfigResponse(c *domain.SyncConfig) TallyConfigResponse {
	return TallyConfigResponse{
		TallyURL:        c.TallyURL,
		CompanyName:     c.CompanyName,
		Enabled:         c.Enabled,
		SyncMode:        c.SyncMode,
		AutoSyncEnabled: c.AutoSyncEnabled,
		ConnectionType:  c.ConnectionType,
		HasCredentials:  c.APIKeyCipher != "" || c.APISecretCipher != "",
		UpdatedAt:       c.UpdatedAt,
	}
}

// UpdateTallyConfigRequest is a partial update: nil fields keep their stored
// value. A credential is re-encrypted only when a new plaintext is supplied.
type UpdateTallyConfigRequest struct {
	TallyURL        *string `json:"tally_url"`
	CompanyName     *string `json:"company_name"`
	Enabled         *bool   `json:"enabled"`
	SyncMode        *string `json:"sync_mode" binding:"omitempty,oneof=manual auto"`
	AutoSyncEnabled *bool   `json:"auto_sync_enabled"`
	ConnectionType  *string `json:"connection_type" binding:"omitempty,oneof=http https"`
	APIKey          *string `json:"api_key"`
	APISecret       *string `json:"api_secret"`
}

// SyncLogResponse is the API view of one sync ledger row.
type SyncLogResponse struct {
	SyncLogID       string                 `json:"syncLogID"`
	TransactionType domain.TransactionKind `json:"transactionType"`
	TransactionID   string                 `json:"transactionID"`
	ReferenceNo     string                 `json:"referenceNo"`
	Status          domain.SyncStatus      `json:"status"`
	AttemptCount    int                    `json:"attemptCount"`
	LastAttemptAt   time.Time              `json:"lastAttemptAt"`
	LastError       *string                `json:"lastError,omitempty"`
	LastResponse    *string                `json:"lastResponse,omitempty"`
}

// ToSyncLogResponses maps sync ledger rows to their API views.
func ToSyncLogResponses(entries []domain.SyncLogEntry) []SyncLogResponse {
	out := make([]SyncLogResponse, len(entries))
	for i, e := range entries {
		out[i] = SyncLogResponse{
			SyncLogID:       e.SyncLogID,
			TransactionType: e.TransactionType,
			TransactionID:   e.TransactionID,
			ReferenceNo:     e.ReferenceNo,
			Status:          e.Status,
			AttemptCount:    e.AttemptCount,
			LastAttemptAt:   e.LastAttemptAt,
			LastError:       e.LastError,
			LastResponse:    e.LastResponse,
		}
	}
	return out
}
