package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/domain"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/store/schema"
)

var (
	testDB      *gorm.DB
	pgContainer *postgres.PostgresContainer
)

// TestMain sets up the test database before running tests
func TestMain(m *testing.M) {
	ctx := context.Background()

	var dsn string
	var err error

	if dbHost := os.Getenv("TEST_DB_HOST"); dbHost != "" {
		dbPort := envOr("TEST_DB_PORT", "5432")
		dbUser := envOr("TEST_DB_USER", "postgres")
		dbPassword := envOr("TEST_DB_PASSWORD", "postgres")
		dbName := envOr("TEST_DB_NAME", "test_db")

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort, dbUser, dbPassword, dbName)
	} else {
		pgContainer, err = postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("test_db"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			fmt.Printf("Failed to start PostgreSQL container: %v\n", err)
			os.Exit(1)
		}

		dsn, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Printf("Failed to get connection string: %v\n", err)
			terminateContainer(ctx)
			os.Exit(1)
		}
	}

	testDB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		terminateContainer(ctx)
		os.Exit(1)
	}

	if err := AutoMigrate(testDB); err != nil {
		fmt.Printf("Failed to migrate schema: %v\n", err)
		terminateContainer(ctx)
		os.Exit(1)
	}

	code := m.Run()
	terminateContainer(ctx)
	os.Exit(code)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func terminateContainer(ctx context.Context) {
	if pgContainer != nil {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}
}

// cleanTables truncates all pipeline tables between tests
func cleanTables(t *testing.T) {
	t.Helper()
	err := testDB.Exec("TRUNCATE tokens, chain_provider_supports, chains, fetch_attempts RESTART IDENTITY CASCADE").Error
	require.NoError(t, err)
}

func insertAttempt(t *testing.T, s Store, provider domain.Provider, runID string) int64 {
	t.Helper()
	id, err := s.InsertFetchAttempt(context.Background(), InsertFetchAttemptInput{
		RunID:    runID,
		Provider: provider,
		Success:  true,
	})
	require.NoError(t, err)
	return id
}

func TestUpsertChains_Idempotent(t *testing.T) {
	cleanTables(t)
	s := NewPGStore(testDB)
	ctx := context.Background()

	chains := []domain.Chain{
		{ID: 1, Name: "Ethereum", NativeCurrencyName: "Ether", NativeCurrencySymbol: "ETH", NativeCurrencyDecimals: 18, VMType: domain.VMTypeEVM},
		{ID: 1, Name: "Ethereum Duplicate", VMType: domain.VMTypeEVM},
		{ID: 137, Name: "Polygon", NativeCurrencySymbol: "MATIC", VMType: domain.VMTypeEVM},
	}
	require.NoError(t, s.UpsertChains(ctx, chains))
	require.NoError(t, s.UpsertChains(ctx, chains))

	var rows []schema.Chain
	require.NoError(t, testDB.Order("id").Find(&rows).Error)
	require.Len(t, rows, 2)
	// first writer wins: the duplicate's name is not applied
	assert.Equal(t, "Ethereum", rows[0].Name)
}

func TestUpsertChains_CanonicalMetadataPreferred(t *testing.T) {
	cleanTables(t)
	s := NewPGStore(testDB)
	ctx := context.Background()

	// a provider reporting Solana with placeholder metadata
	require.NoError(t, s.UpsertChains(ctx, []domain.Chain{
		{ID: domain.ChainIDSolana, Name: domain.UnknownPlaceholder, VMType: domain.VMTypeEVM},
	}))

	var row schema.Chain
	require.NoError(t, testDB.First(&row, "id = ?", domain.ChainIDSolana).Error)
	assert.Equal(t, "Solana", row.Name)
	assert.Equal(t, "SOL", row.NativeCurrencySymbol)
	require.NotNil(t, row.VMType)
	assert.Equal(t, "svm", *row.VMType)
}

func TestLinkChainProviderSupport_RepointsOnConflict(t *testing.T) {
	cleanTables(t)
	s := NewPGStore(testDB)
	ctx := context.Background()

	require.NoError(t, s.UpsertChains(ctx, []domain.Chain{{ID: 1, Name: "Ethereum", VMType: domain.VMTypeEVM}}))
	first := insertAttempt(t, s, domain.ProviderLiFi, "run-1")
	second := insertAttempt(t, s, domain.ProviderLiFi, "run-2")

	require.NoError(t, s.LinkChainProviderSupport(ctx, domain.ProviderLiFi, first, []int64{1, 1}))
	require.NoError(t, s.LinkChainProviderSupport(ctx, domain.ProviderLiFi, second, []int64{1}))

	var rows []schema.ChainProviderSupport
	require.NoError(t, testDB.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, second, rows[0].FetchAttemptID)
}

func TestUpsertTokens_IdempotentAndLastWins(t *testing.T) {
	cleanTables(t)
	s := NewPGStore(testDB)
	ctx := context.Background()

	require.NoError(t, s.UpsertChains(ctx, []domain.Chain{{ID: 1, Name: "Ethereum", VMType: domain.VMTypeEVM}}))
	attemptID := insertAttempt(t, s, domain.ProviderLiFi, "run-1")

	name1 := "USD Coin"
	name2 := "USD Coin (updated)"
	decimals := 6
	tokens := []domain.Token{
		{ChainID: 1, Address: "0xusdc", Symbol: "USDC", Name: &name1, Decimals: &decimals, Tags: []domain.TokenTag{domain.TagStablecoin}, Raw: json.RawMessage(`{"v":1}`)},
		// same identity later in the batch: last occurrence wins
		{ChainID: 1, Address: "0xusdc", Symbol: "USDC", Name: &name2, Decimals: &decimals, Tags: []domain.TokenTag{domain.TagStablecoin}, Raw: json.RawMessage(`{"v":2}`)},
	}
	require.NoError(t, s.UpsertTokens(ctx, domain.ProviderLiFi, attemptID, tokens))

	var rows []schema.Token
	require.NoError(t, testDB.Find(&rows).Error)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Name)
	assert.Equal(t, name2, *rows[0].Name)

	// re-ingesting the same dataset does not duplicate rows
	require.NoError(t, s.UpsertTokens(ctx, domain.ProviderLiFi, attemptID, tokens))
	require.NoError(t, testDB.Find(&rows).Error)
	assert.Len(t, rows, 1)
}

func TestUpsertTokens_PerProviderRows(t *testing.T) {
	cleanTables(t)
	s := NewPGStore(testDB)
	ctx := context.Background()

	require.NoError(t, s.UpsertChains(ctx, []domain.Chain{{ID: 1, Name: "Ethereum", VMType: domain.VMTypeEVM}}))
	lifiAttempt := insertAttempt(t, s, domain.ProviderLiFi, "run-1")
	squidAttempt := insertAttempt(t, s, domain.ProviderSquid, "run-1")

	token := domain.Token{ChainID: 1, Address: "0xusdc", Symbol: "USDC", Raw: json.RawMessage(`{}`)}
	require.NoError(t, s.UpsertTokens(ctx, domain.ProviderLiFi, lifiAttempt, []domain.Token{token}))
	require.NoError(t, s.UpsertTokens(ctx, domain.ProviderSquid, squidAttempt, []domain.Token{token}))

	// the same asset seen by two providers stays as two rows
	var count int64
	require.NoError(t, testDB.Model(&schema.Token{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestLatestFetchAttempts(t *testing.T) {
	cleanTables(t)
	s := NewPGStore(testDB)
	ctx := context.Background()

	insertAttempt(t, s, domain.ProviderLiFi, "run-1")
	time.Sleep(10 * time.Millisecond)
	errMsg := "upstream 500"
	_, err := s.InsertFetchAttempt(ctx, InsertFetchAttemptInput{
		RunID:        "run-2",
		Provider:     domain.ProviderLiFi,
		Success:      false,
		ErrorMessage: &errMsg,
	})
	require.NoError(t, err)
	insertAttempt(t, s, domain.ProviderSquid, "run-2")

	attempts, err := s.LatestFetchAttempts(ctx)
	require.NoError(t, err)
	require.Len(t, attempts, 2)

	byProvider := make(map[string]schema.FetchAttempt)
	for _, attempt := range attempts {
		byProvider[attempt.Provider] = attempt
	}
	// the newest lifi attempt is the failed one
	assert.False(t, byProvider["lifi"].Success)
	assert.Equal(t, "run-2", byProvider["lifi"].RunID)
	assert.True(t, byProvider["squid"].Success)
}

func TestUpdateChainMetadata(t *testing.T) {
	cleanTables(t)
	s := NewPGStore(testDB)
	ctx := context.Background()

	require.NoError(t, s.UpsertChains(ctx, []domain.Chain{{ID: 1, Name: "Eth", VMType: domain.VMTypeEVM}}))

	name := "Ethereum Mainnet"
	shortName := "eth"
	patch := ChainMetadataPatch{
		Name:         &name,
		ShortName:    &shortName,
		Explorers:    []string{"https://etherscan.io"},
		RPCEndpoints: []string{"https://eth.llamarpc.com"},
	}
	require.NoError(t, s.UpdateChainMetadata(ctx, 1, patch))
	// enrichment is idempotent
	require.NoError(t, s.UpdateChainMetadata(ctx, 1, patch))

	var row schema.Chain
	require.NoError(t, testDB.First(&row, "id = ?", 1).Error)
	assert.Equal(t, "Ethereum Mainnet", row.Name)
	require.NotNil(t, row.ShortName)
	assert.Equal(t, "eth", *row.ShortName)

	var explorers []string
	require.NoError(t, json.Unmarshal(row.Explorers, &explorers))
	assert.Equal(t, []string{"https://etherscan.io"}, explorers)
}

func TestListKnownChainIDs(t *testing.T) {
	cleanTables(t)
	s := NewPGStore(testDB)
	ctx := context.Background()

	require.NoError(t, s.UpsertChains(ctx, []domain.Chain{
		{ID: 137, Name: "Polygon", VMType: domain.VMTypeEVM},
		{ID: 1, Name: "Ethereum", VMType: domain.VMTypeEVM},
		{ID: domain.ChainIDSolana, Name: "Solana", VMType: domain.VMTypeSVM},
	}))

	ids, err := s.ListKnownChainIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 137, domain.ChainIDSolana}, ids)
}

func TestPing(t *testing.T) {
	s := NewPGStore(testDB)
	require.NoError(t, s.Ping(context.Background()))
}
