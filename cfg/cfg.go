// Package cfg
package cfg

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dacr-network/dacr-backend/types"
)

const (
	ModeDev        = "dev"
	ModeProduction = "prod"
)

type ReserveConfig struct {
	ServerMode string
	Port       string
	LogLevel   string
	SentryDSN  string

	JWTSecret     string
	TokenExpiry   time.Duration
	AdminUser     string
	AdminPassword string

	InitialSupply   decimal.Decimal
	MinReserveRatio decimal.Decimal
	PegValue        decimal.Decimal

	ReserveWeights map[types.ReserveType]decimal.Decimal

	VotingPeriod      time.Duration
	ExecutionDelay    time.Duration
	QuorumThreshold   decimal.Decimal
	ProposalThreshold decimal.Decimal
	SweepInterval     time.Duration

	CacheEngine      string
	CacheURL         string
	CacheDB          int
	CacheIsFlush     bool
	CacheExpiredTime time.Duration

	StorageDriver  string
	StorageURI     string
	StorageDB      string
	StorageMinConn int
	StorageMaxConn int
	StorageIsFlush bool
}

func New() (ReserveConfig, error) {
	tokenExpiryStr := os.Getenv("TOKEN_EXPIRY")
	tokenExpiry, err := time.ParseDuration(tokenExpiryStr)
	if err != nil {
		tokenExpiry = 30 * time.Minute
	}

	votingPeriodStr := os.Getenv("VOTING_PERIOD")
	votingPeriod, err := time.ParseDuration(votingPeriodStr)
	if err != nil {
		votingPeriod = 7 * 24 * time.Hour
	}

	executionDelayStr := os.Getenv("EXECUTION_DELAY")
	executionDelay, err := time.ParseDuration(executionDelayStr)
	if err != nil {
		executionDelay = 2 * 24 * time.Hour
	}

	sweepIntervalStr := os.Getenv("SWEEP_INTERVAL")
	sweepInterval, err := time.ParseDuration(sweepIntervalStr)
	if err != nil {
		sweepInterval = 30 * time.Second
	}

	cacheExpiredTimeStr := os.Getenv("CACHE_EXPIRED_TIME")
	cacheExpiredTime, err := time.ParseDuration(cacheExpiredTimeStr)
	if err != nil {
		cacheExpiredTime = 12 * time.Hour
	}

	cacheDBStr := os.Getenv("CACHE_DB")
	cacheDB, err := strconv.Atoi(cacheDBStr)
	if err != nil {
		cacheDB = 0
	}

	cacheIsFlushStr := os.Getenv("CACHE_IS_FLUSH")
	cacheIsFlush, err := strconv.ParseBool(cacheIsFlushStr)
	if err != nil {
		cacheIsFlush = false
	}

	storageMinConnStr := os.Getenv("STORAGE_MIN_CONN")
	storageMinConn, err := strconv.Atoi(storageMinConnStr)
	if err != nil {
		storageMinConn = 8
	}

	storageMaxConnStr := os.Getenv("STORAGE_MAX_CONN")
	storageMaxConn, err := strconv.Atoi(storageMaxConnStr)
	if err != nil {
		storageMaxConn = 32
	}

	storageIsFlushStr := os.Getenv("STORAGE_IS_FLUSH")
	storageIsFlush, err := strconv.ParseBool(storageIsFlushStr)
	if err != nil {
		storageIsFlush = false
	}

	cfg := ReserveConfig{
		ServerMode: os.Getenv("SERVER_MODE"),
		Port:       os.Getenv("PORT"),
		LogLevel:   os.Getenv("LOG_LEVEL"),
		SentryDSN:  os.Getenv("SENTRY_DSN"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenExpiry:   tokenExpiry,
		AdminUser:     os.Getenv("ADMIN_USER"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		InitialSupply:   decimalFromEnv("INITIAL_SUPPLY", "0"),
		MinReserveRatio: decimalFromEnv("MIN_RESERVE_RATIO", "0.95"),
		PegValue:        decimalFromEnv("PEG_VALUE", "1.0"),

		ReserveWeights: map[types.ReserveType]decimal.Decimal{
			types.ReserveComputational: decimalFromEnv("COMPUTATIONAL_RESERVE_WEIGHT", "0.4"),
			types.ReserveStorage:       decimalFromEnv("STORAGE_RESERVE_WEIGHT", "0.3"),
			types.ReserveEngagement:    decimalFromEnv("ENGAGEMENT_RESERVE_WEIGHT", "0.3"),
		},

		VotingPeriod:      votingPeriod,
		ExecutionDelay:    executionDelay,
		QuorumThreshold:   decimalFromEnv("QUORUM_THRESHOLD", "40"),
		ProposalThreshold: decimalFromEnv("MIN_PROPOSAL_THRESHOLD", "1000"),
		SweepInterval:     sweepInterval,

		CacheEngine:      os.Getenv("CACHE_ENGINE"),
		CacheURL:         os.Getenv("CACHE_URI"),
		CacheDB:          cacheDB,
		CacheIsFlush:     cacheIsFlush,
		CacheExpiredTime: cacheExpiredTime,

		StorageDriver:  os.Getenv("STORAGE_DRIVER"),
		StorageURI:     os.Getenv("STORAGE_URI"),
		StorageDB:      os.Getenv("STORAGE_DB"),
		StorageMinConn: storageMinConn,
		StorageMaxConn: storageMaxConn,
		StorageIsFlush: storageIsFlush,
	}

	return cfg, nil
}

func decimalFromEnv(key, fallback string) decimal.Decimal {
	d, err := decimal.NewFromString(os.Getenv(key))
	if err != nil {
		d, _ = decimal.NewFromString(fallback)
	}
	return d
}
