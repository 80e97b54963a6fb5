package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/domain"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/store/schema"
)

// tokenChunkSize bounds the number of token rows per INSERT statement.
// PostgreSQL's extended protocol is limited to 65535 bind parameters per
// query; at ~13 parameters per token row plus ON CONFLICT overhead, 500 rows
// stays far below the limit while keeping statements reasonably sized.
const tokenChunkSize = 500

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// AutoMigrate creates or updates the pipeline tables. Used by tests and
// first-boot convenience; production schema changes go through migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.FetchAttempt{},
		&schema.Chain{},
		&schema.ChainProviderSupport{},
		&schema.Token{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// InsertFetchAttempt records one adapter run and returns the row ID
func (s *pgStore) InsertFetchAttempt(ctx context.Context, input InsertFetchAttemptInput) (int64, error) {
	attempt := schema.FetchAttempt{
		RunID:        input.RunID,
		Provider:     string(input.Provider),
		Success:      input.Success,
		ChainsCount:  input.ChainsCount,
		TokensCount:  input.TokensCount,
		ErrorMessage: input.ErrorMessage,
	}

	if err := s.db.WithContext(ctx).Create(&attempt).Error; err != nil {
		return 0, fmt.Errorf("failed to insert fetch attempt: %w", err)
	}

	return attempt.ID, nil
}

// UpsertChains inserts chains with ON CONFLICT DO NOTHING on the canonical
// chain ID. The chain table is shared across concurrently-writing adapters,
// so first-writer-wins conflict semantics stand in for locking. Chains with
// authoritative canonical metadata (non-EVM chains reported with EVM
// placeholders by some providers) are replaced by that metadata before
// insertion.
func (s *pgStore) UpsertChains(ctx context.Context, chains []domain.Chain) error {
	if len(chains) == 0 {
		return nil
	}

	rows := make([]schema.Chain, 0, len(chains))
	seen := make(map[int64]bool, len(chains))
	for _, chain := range chains {
		if canonical, ok := domain.CanonicalChainMetadata(chain.ID); ok {
			chain = canonical
		}
		// A provider may report the same chain twice in one response
		if seen[chain.ID] {
			continue
		}
		seen[chain.ID] = true

		rows = append(rows, schema.Chain{
			ID:                     chain.ID,
			Name:                   chain.Name,
			NativeCurrencyName:     chain.NativeCurrencyName,
			NativeCurrencySymbol:   chain.NativeCurrencySymbol,
			NativeCurrencyDecimals: chain.NativeCurrencyDecimals,
			VMType:                 vmTypePtr(chain.VMType),
		})
	}

	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to upsert chains: %w", err)
	}

	return nil
}

// LinkChainProviderSupport asserts the provider supports each chain. On
// (chain_id, provider) conflict the existing link is re-pointed at the
// newest fetch attempt instead of duplicated.
func (s *pgStore) LinkChainProviderSupport(ctx context.Context, provider domain.Provider, fetchAttemptID int64, chainIDs []int64) error {
	if len(chainIDs) == 0 {
		return nil
	}

	rows := make([]schema.ChainProviderSupport, 0, len(chainIDs))
	seen := make(map[int64]bool, len(chainIDs))
	for _, chainID := range chainIDs {
		if seen[chainID] {
			continue
		}
		seen[chainID] = true

		rows = append(rows, schema.ChainProviderSupport{
			ChainID:        chainID,
			Provider:       string(provider),
			FetchAttemptID: fetchAttemptID,
		})
	}

	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chain_id"}, {Name: "provider"}},
		DoUpdates: clause.AssignmentColumns([]string{"fetch_attempt_id", "updated_at"}),
	}).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to link chain provider support: %w", err)
	}

	return nil
}

// UpsertTokens batch-inserts tokens in fixed-size chunks. Within each chunk
// rows are deduplicated by (chain_id, address) with the last occurrence
// winning; on (provider, chain_id, address) conflict the mutable fields are
// updated in place so re-ingesting is idempotent.
func (s *pgStore) UpsertTokens(ctx context.Context, provider domain.Provider, fetchAttemptID int64, tokens []domain.Token) error {
	for start := 0; start < len(tokens); start += tokenChunkSize {
		end := start + tokenChunkSize
		if end > len(tokens) {
			end = len(tokens)
		}

		chunk, err := buildTokenRows(provider, fetchAttemptID, tokens[start:end])
		if err != nil {
			return err
		}

		if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "provider"}, {Name: "chain_id"}, {Name: "address"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"symbol", "name", "decimals", "logo_uri", "tags", "fetch_attempt_id", "raw", "updated_at",
			}),
		}).Create(&chunk).Error; err != nil {
			return fmt.Errorf("failed to upsert tokens: %w", err)
		}
	}

	return nil
}

// buildTokenRows converts one chunk of domain tokens into schema rows,
// deduplicating by (chain_id, address) with the last occurrence winning.
func buildTokenRows(provider domain.Provider, fetchAttemptID int64, tokens []domain.Token) ([]schema.Token, error) {
	rows := make([]schema.Token, 0, len(tokens))
	index := make(map[string]int, len(tokens))

	for _, token := range tokens {
		tags, err := marshalTags(token.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal token tags: %w", err)
		}

		row := schema.Token{
			Provider:       string(provider),
			ChainID:        token.ChainID,
			Address:        token.Address,
			Symbol:         token.Symbol,
			Name:           token.Name,
			Decimals:       token.Decimals,
			LogoURI:        token.LogoURI,
			Tags:           tags,
			FetchAttemptID: fetchAttemptID,
			Raw:            datatypes.JSON(token.Raw),
		}

		key := fmt.Sprintf("%d:%s", token.ChainID, token.Address)
		if i, ok := index[key]; ok {
			rows[i] = row
			continue
		}
		index[key] = len(rows)
		rows = append(rows, row)
	}

	return rows, nil
}

func marshalTags(tags []domain.TokenTag) (datatypes.JSON, error) {
	if len(tags) == 0 {
		return datatypes.JSON([]byte("[]")), nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

// UpdateChainMetadata patches descriptive chain fields. Identity and
// native-currency columns are never touched here: enrichment refines what
// adapters wrote, it does not replace it.
func (s *pgStore) UpdateChainMetadata(ctx context.Context, chainID int64, patch ChainMetadataPatch) error {
	updates := map[string]interface{}{}

	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.ShortName != nil {
		updates["short_name"] = *patch.ShortName
	}
	if patch.ChainType != nil {
		updates["chain_type"] = *patch.ChainType
	}
	if patch.IconURL != nil {
		updates["icon_url"] = *patch.IconURL
	}
	if patch.Explorers != nil {
		data, err := json.Marshal(patch.Explorers)
		if err != nil {
			return fmt.Errorf("failed to marshal explorers: %w", err)
		}
		updates["explorers"] = datatypes.JSON(data)
	}
	if patch.RPCEndpoints != nil {
		data, err := json.Marshal(patch.RPCEndpoints)
		if err != nil {
			return fmt.Errorf("failed to marshal rpc endpoints: %w", err)
		}
		updates["rpc_endpoints"] = datatypes.JSON(data)
	}

	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()

	if err := s.db.WithContext(ctx).Model(&schema.Chain{}).
		Where("id = ?", chainID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update chain metadata: %w", err)
	}

	return nil
}

// ListKnownChainIDs returns every stored canonical chain ID
func (s *pgStore) ListKnownChainIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := s.db.WithContext(ctx).Model(&schema.Chain{}).
		Order("id").
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list chain ids: %w", err)
	}
	return ids, nil
}

// LatestFetchAttempts returns the newest fetch attempt per provider
func (s *pgStore) LatestFetchAttempts(ctx context.Context) ([]schema.FetchAttempt, error) {
	var attempts []schema.FetchAttempt
	if err := s.db.WithContext(ctx).
		Raw(`SELECT DISTINCT ON (provider) *
		     FROM fetch_attempts
		     ORDER BY provider, created_at DESC, id DESC`).
		Scan(&attempts).Error; err != nil {
		return nil, fmt.Errorf("failed to load latest fetch attempts: %w", err)
	}
	return attempts, nil
}

// Ping verifies database connectivity
func (s *pgStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func vmTypePtr(vm domain.VMType) *string {
	if vm == "" {
		return nil
	}
	s := string(vm)
	return &s
}
