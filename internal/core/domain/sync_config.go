package domain

import "time"

// SyncMode controls whether synchronization runs on business events or only
// on explicit operator action.
type SyncMode string

const (
	SyncModeManual SyncMode = "manual"
	SyncModeAuto   SyncMode = "auto"
)

// SyncConfig is the singleton-per-deployment Tally connection record as
// stored. Credentials are kept encrypted (ivHex:cipherHex); they are only
// decrypted in memory for the duration of a sync call.
type SyncConfig struct {
	TallyURL        string    `json:"tallyURL"`
	CompanyName     string    `json:"companyName"`
	Enabled         bool      `json:"enabled"`
	SyncMode        SyncMode  `json:"syncMode"`
	AutoSyncEnabled bool      `json:"autoSyncEnabled"`
	ConnectionType  string    `json:"connectionType"` // http or https
	APIKeyCipher    string    `json:"-"`
	APISecretCipher string    `json:"-"`
	UpdatedAt       time.Time `json:"updatedAt"`
	UpdatedBy       string    `json:"updatedBy"`
}

// ResolvedSyncConfig is a SyncConfig with credentials decrypted. It is built
// fresh for every sync attempt and never persisted or logged.
type ResolvedSyncConfig struct {
	SyncConfig
	APIKey    string
	APISecret string
}
