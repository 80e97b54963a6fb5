package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Token represents the tokens table - one provider's view of a fungible
// asset on one chain. Identity is (provider, chain_id, address); the same
// symbol may appear on many rows, one per provider/chain/address, and
// cross-provider reconciliation happens at query time by grouping on symbol.
type Token struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Provider identifies the upstream bridge provider
	Provider string `gorm:"column:provider;not null;type:text;uniqueIndex:idx_tokens_provider_chain_address,priority:1"`
	// ChainID references the canonical chain
	ChainID int64 `gorm:"column:chain_id;not null;uniqueIndex:idx_tokens_provider_chain_address,priority:2"`
	// Address is normalized by VM type (lowercase for EVM, verbatim otherwise)
	Address string `gorm:"column:address;not null;type:text;uniqueIndex:idx_tokens_provider_chain_address,priority:3"`
	// Symbol is the ticker symbol, indexed for query-time symbol grouping
	Symbol string `gorm:"column:symbol;not null;type:text;index:idx_tokens_symbol"`
	// Name is the display name; nil when the provider omits it
	Name *string `gorm:"column:name;type:text"`
	// Decimals is nil when the provider omits it - never guessed
	Decimals *int `gorm:"column:decimals"`
	// LogoURI points at the provider-hosted token image
	LogoURI *string `gorm:"column:logo_uri;type:text"`
	// Tags holds the heuristic category tags as a JSON string array
	Tags datatypes.JSON `gorm:"column:tags;type:jsonb"`
	// FetchAttemptID references the fetch attempt that last wrote this row
	FetchAttemptID int64 `gorm:"column:fetch_attempt_id;not null"`
	// Raw retains the full provider payload for debugging and audit
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`

	// Associations
	Chain        Chain        `gorm:"foreignKey:ChainID;constraint:OnDelete:CASCADE"`
	FetchAttempt FetchAttempt `gorm:"foreignKey:FetchAttemptID"`
}

// TableName specifies the table name for the Token model
func (Token) TableName() string {
	return "tokens"
}
