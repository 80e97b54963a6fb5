package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Chain represents the chains table. The canonical numeric chain ID is the
// primary key and the sole identity: provider-specific aliases are folded
// into it before any row reaches this table.
type Chain struct {
	// ID is the canonical chain ID (not auto-incremented)
	ID int64 `gorm:"column:id;primaryKey"`
	// Name is the display name, first-writer-wins across providers
	Name string `gorm:"column:name;not null;type:text"`
	// NativeCurrencyName is the gas asset name ("Unknown" when unreported)
	NativeCurrencyName string `gorm:"column:native_currency_name;not null;type:text"`
	// NativeCurrencySymbol is the gas asset symbol ("Unknown" when unreported)
	NativeCurrencySymbol string `gorm:"column:native_currency_symbol;not null;type:text"`
	// NativeCurrencyDecimals is the gas asset precision
	NativeCurrencyDecimals int `gorm:"column:native_currency_decimals;not null"`
	// VMType is the virtual-machine family (evm, svm); nil when unknown
	VMType *string `gorm:"column:vm_type;type:text"`

	// Descriptive fields below are only written by the enrichment pass
	ShortName    *string        `gorm:"column:short_name;type:text"`
	ChainType    *string        `gorm:"column:chain_type;type:text"`
	IconURL      *string        `gorm:"column:icon_url;type:text"`
	Explorers    datatypes.JSON `gorm:"column:explorers;type:jsonb"`
	RPCEndpoints datatypes.JSON `gorm:"column:rpc_endpoints;type:jsonb"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`

	// Associations
	ProviderSupports []ChainProviderSupport `gorm:"foreignKey:ChainID;constraint:OnDelete:CASCADE"`
	Tokens           []Token                `gorm:"foreignKey:ChainID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Chain model
func (Chain) TableName() string {
	return "chains"
}
