package app

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/remitchain/remitd/models"
	"gopkg.in/yaml.v2"
)

var (
	Config models.Config
)

func InitConfig(configFile string, envFile string) {
	readConfigFromConfigFile(configFile)
	readConfigFromENV(envFile)
	readSecretsFromGSM()
	applyDefaults()
	validateConfig()
}

func readConfigFromConfigFile(configFile string) bool {
	if configFile == "" {
		return false
	}
	var yamlFile, err = os.ReadFile(configFile)
	if err != nil {
		log.Fatalf("[CONFIG] Error reading config file %q: %s", configFile, err.Error())
	}
	err = yaml.Unmarshal(yamlFile, &Config)
	if err != nil {
		log.Fatalf("[CONFIG] Error unmarshalling config file %q: %s", configFile, err.Error())
	}
	return true
}

func applyDefaults() {
	if Config.MongoDB.TimeoutMillis == 0 {
		Config.MongoDB.TimeoutMillis = 2000
	}
	if Config.Ethereum.RPCTimeoutMillis == 0 {
		Config.Ethereum.RPCTimeoutMillis = 10000
	}
	if Config.Ethereum.Confirmations == 0 {
		Config.Ethereum.Confirmations = 3
	}
	if Config.API.Port == 0 {
		Config.API.Port = 8080
	}
	if Config.Rates.DefaultFXBase == "" {
		Config.Rates.DefaultFXBase = "83.00"
	}
	if Config.Rates.DefaultFXSpread == "" {
		Config.Rates.DefaultFXSpread = "0.005"
	}
	if Config.Rates.DefaultFeeBps == 0 {
		Config.Rates.DefaultFeeBps = 25
	}
	if Config.Rates.ProviderTimeoutMillis == 0 {
		Config.Rates.ProviderTimeoutMillis = 5000
	}
	if Config.Quote.TTLSecs == 0 {
		Config.Quote.TTLSecs = 90
	}
	if Config.Intent.TTLSecs == 0 {
		Config.Intent.TTLSecs = 90
	}
	if Config.Fraud.BlockScore == 0 {
		Config.Fraud.BlockScore = 200
	}
	if Config.Fraud.VelocityWindowSecs == 0 {
		Config.Fraud.VelocityWindowSecs = 60
	}
	if Config.Fraud.VelocityMaxCount == 0 {
		Config.Fraud.VelocityMaxCount = 3
	}
	if Config.Fraud.MinIntentAgeSecs == 0 {
		Config.Fraud.MinIntentAgeSecs = 3
	}
	if Config.RateRefresher.IntervalMillis == 0 {
		Config.RateRefresher.IntervalMillis = 300000
	}
	if Config.IntentSweeper.IntervalMillis == 0 {
		Config.IntentSweeper.IntervalMillis = 60000
	}
	if Config.HealthCheck.IntervalMillis == 0 {
		Config.HealthCheck.IntervalMillis = 30000
	}
}

func validateConfig() {
	if Config.MongoDB.URI == "" {
		log.Fatal("[CONFIG] MongoDB.URI is required")
	}
	if Config.MongoDB.Database == "" {
		log.Fatal("[CONFIG] MongoDB.Database is required")
	}
	if Config.API.JWTSecret == "" {
		log.Fatal("[CONFIG] API.JWTSecret is required")
	}
	if !Config.Ethereum.Sandbox {
		if Config.Ethereum.RPCURL == "" {
			log.Fatal("[CONFIG] Ethereum.RPCURL is required when sandbox is disabled")
		}
		if Config.Ethereum.ChainID == "" {
			log.Fatal("[CONFIG] Ethereum.ChainID is required when sandbox is disabled")
		}
		if Config.Ethereum.RemitHubAddress == "" {
			log.Fatal("[CONFIG] Ethereum.RemitHubAddress is required when sandbox is disabled")
		}
	}
}
