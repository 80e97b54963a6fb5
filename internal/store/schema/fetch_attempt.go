package schema

import (
	"time"
)

// FetchAttempt represents the fetch_attempts table - the audit record of one
// adapter run. One row per invocation, success or failure; never mutated or
// deleted. Downstream health reporting reads the newest row per provider.
type FetchAttempt struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// RunID groups the attempts of one orchestrator pass
	RunID string `gorm:"column:run_id;not null;type:text;index:idx_fetch_attempts_run"`
	// Provider identifies the upstream bridge provider
	Provider string `gorm:"column:provider;not null;type:text;index:idx_fetch_attempts_provider"`
	// Success reports whether the adapter produced a dataset. A persistence
	// failure after this row is written appends a newer failed row, which
	// supersedes it in the per-provider health view.
	Success bool `gorm:"column:success;not null"`
	// ChainsCount is the number of chains the adapter produced (nil on failure)
	ChainsCount *int `gorm:"column:chains_count"`
	// TokensCount is the number of tokens the adapter produced (nil on failure)
	TokensCount *int `gorm:"column:tokens_count"`
	// ErrorMessage holds the failure reason when Success is false
	ErrorMessage *string `gorm:"column:error_message;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the FetchAttempt model
func (FetchAttempt) TableName() string {
	return "fetch_attempts"
}
