package models

type Config struct {
	GoogleSecretManager GoogleSecretManagerConfig `yaml:"google_secret_manager" json:"google_secret_manager"`
	HealthCheck         HealthCheckConfig         `yaml:"health_check" json:"health_check"`
	Logger              LoggerConfig              `yaml:"logger" json:"logger"`
	MongoDB             MongoConfig               `yaml:"mongodb" json:"mongo_db"`
	Ethereum            EthereumConfig            `yaml:"ethereum" json:"ethereum"`
	API                 APIConfig                 `yaml:"api" json:"api"`
	Rates               RatesConfig               `yaml:"rates" json:"rates"`
	Quote               QuoteConfig               `yaml:"quote" json:"quote"`
	Intent              IntentConfig              `yaml:"intent" json:"intent"`
	Fraud               FraudConfig               `yaml:"fraud" json:"fraud"`
	RateRefresher       ServiceConfig             `yaml:"rate_refresher" json:"rate_refresher"`
	IntentSweeper       ServiceConfig             `yaml:"intent_sweeper" json:"intent_sweeper"`
}

type GoogleSecretManagerConfig struct {
	Enabled         bool   `yaml:"enabled" json:"enabled"`
	ProjectId       string `yaml:"project_id" json:"project_id"`
	MongoSecretName string `yaml:"mongo_secret_name" json:"mongo_secret_name"`
	JWTSecretName   string `yaml:"jwt_secret_name" json:"jwt_secret_name"`
}

type HealthCheckConfig struct {
	IntervalMillis int64 `yaml:"interval_ms" json:"interval_ms"`
}

type LoggerConfig struct {
	Level string `yaml:"level" json:"level"`
}

type MongoConfig struct {
	URI           string `yaml:"uri" json:"uri"`
	Database      string `yaml:"database" json:"database"`
	TimeoutMillis int64  `yaml:"timeout_ms" json:"timeout_ms"`
}

type EthereumConfig struct {
	RPCURL           string `yaml:"rpc_url" json:"rpcurl"`
	ChainID          string `yaml:"chain_id" json:"chain_id"`
	RPCTimeoutMillis int64  `yaml:"rpc_timeout_ms" json:"rpc_timeout_ms"`
	Confirmations    int64  `yaml:"confirmations" json:"confirmations"`
	RemitHubAddress  string `yaml:"remit_hub_address" json:"remit_hub_address"`
	USDCAddress      string `yaml:"usdc_address" json:"usdc_address"`
	// Sandbox skips on-chain verification and marks receipts accordingly.
	// Defaults to false so a production deployment fails closed.
	Sandbox bool `yaml:"sandbox" json:"sandbox"`
}

type APIConfig struct {
	Port      uint64 `yaml:"port" json:"port"`
	JWTSecret string `yaml:"jwt_secret" json:"jwt_secret"`
	// ExposeExistence makes receipt reads return 403 instead of 404 for
	// non-owners, revealing that the receipt exists.
	ExposeExistence bool `yaml:"expose_existence" json:"expose_existence"`
}

type RatesConfig struct {
	DefaultFXBase         string `yaml:"default_fx_base" json:"default_fx_base"`
	DefaultFXSpread       string `yaml:"default_fx_spread" json:"default_fx_spread"`
	DefaultFeeBps         int64  `yaml:"default_fee_bps" json:"default_fee_bps"`
	LiveEnabled           bool   `yaml:"live_enabled" json:"live_enabled"`
	ProviderURL           string `yaml:"provider_url" json:"provider_url"`
	ProviderTimeoutMillis int64  `yaml:"provider_timeout_ms" json:"provider_timeout_ms"`
}

type QuoteConfig struct {
	TTLSecs int64 `yaml:"ttl_secs" json:"ttl_secs"`
}

type IntentConfig struct {
	TTLSecs int64 `yaml:"ttl_secs" json:"ttl_secs"`
}

type FraudConfig struct {
	// BlockScore is the combined heuristic score at or above which a
	// confirmation is rejected and the intent moved to FAILED.
	BlockScore         int64 `yaml:"block_score" json:"block_score"`
	VelocityWindowSecs int64 `yaml:"velocity_window_secs" json:"velocity_window_secs"`
	VelocityMaxCount   int64 `yaml:"velocity_max_count" json:"velocity_max_count"`
	MinIntentAgeSecs   int64 `yaml:"min_intent_age_secs" json:"min_intent_age_secs"`
}

type ServiceConfig struct {
	Enabled        bool  `yaml:"enabled" json:"enabled"`
	IntervalMillis int64 `yaml:"interval_ms" json:"interval_ms"`
}
