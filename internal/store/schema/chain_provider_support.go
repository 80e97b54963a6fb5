package schema

import (
	"time"
)

// ChainProviderSupport represents the chain_provider_supports table - the
// assertion that a provider supports a chain. Unique per (chain, provider);
// re-fetching re-points the row at the newest fetch attempt instead of
// duplicating it.
type ChainProviderSupport struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ChainID references the canonical chain
	ChainID int64 `gorm:"column:chain_id;not null;uniqueIndex:idx_chain_provider_supports_chain_provider,priority:1"`
	// Provider identifies the upstream bridge provider
	Provider string `gorm:"column:provider;not null;type:text;uniqueIndex:idx_chain_provider_supports_chain_provider,priority:2"`
	// FetchAttemptID references the fetch attempt that produced this assertion
	FetchAttemptID int64 `gorm:"column:fetch_attempt_id;not null"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`

	// Associations
	Chain        Chain        `gorm:"foreignKey:ChainID;constraint:OnDelete:CASCADE"`
	FetchAttempt FetchAttempt `gorm:"foreignKey:FetchAttemptID"`
}

// TableName specifies the table name for the ChainProviderSupport model
func (ChainProviderSupport) TableName() string {
	return "chain_provider_supports"
}
