package app

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func readConfigFromENV(envFile string) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil {
			log.Warn("[ENV] Error loading .env file: ", err.Error())
		}
	}

	// mongodb
	if os.Getenv("MONGODB_URI") != "" {
		Config.MongoDB.URI = os.Getenv("MONGODB_URI")
	}
	if os.Getenv("MONGODB_DATABASE") != "" {
		Config.MongoDB.Database = os.Getenv("MONGODB_DATABASE")
	}
	if os.Getenv("MONGODB_TIMEOUT_MS") != "" {
		timeoutMillis, err := strconv.ParseInt(os.Getenv("MONGODB_TIMEOUT_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing MONGODB_TIMEOUT_MS: ", err.Error())
		} else {
			Config.MongoDB.TimeoutMillis = timeoutMillis
		}
	}

	// ethereum
	if os.Getenv("ETH_RPC_URL") != "" {
		Config.Ethereum.RPCURL = os.Getenv("ETH_RPC_URL")
	}
	if os.Getenv("ETH_CHAIN_ID") != "" {
		Config.Ethereum.ChainID = os.Getenv("ETH_CHAIN_ID")
	}
	if os.Getenv("ETH_RPC_TIMEOUT_MS") != "" {
		timeoutMillis, err := strconv.ParseInt(os.Getenv("ETH_RPC_TIMEOUT_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing ETH_RPC_TIMEOUT_MS: ", err.Error())
		} else {
			Config.Ethereum.RPCTimeoutMillis = timeoutMillis
		}
	}
	if os.Getenv("ETH_CONFIRMATIONS") != "" {
		confirmations, err := strconv.ParseInt(os.Getenv("ETH_CONFIRMATIONS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing ETH_CONFIRMATIONS: ", err.Error())
		} else {
			Config.Ethereum.Confirmations = confirmations
		}
	}
	if os.Getenv("REMIT_HUB_ADDRESS") != "" {
		Config.Ethereum.RemitHubAddress = os.Getenv("REMIT_HUB_ADDRESS")
	}
	if os.Getenv("USDC_ADDRESS") != "" {
		Config.Ethereum.USDCAddress = os.Getenv("USDC_ADDRESS")
	}
	if os.Getenv("SANDBOX_MODE") != "" {
		sandbox, err := strconv.ParseBool(os.Getenv("SANDBOX_MODE"))
		if err != nil {
			log.Warn("[ENV] Error parsing SANDBOX_MODE: ", err.Error())
		} else {
			Config.Ethereum.Sandbox = sandbox
		}
	}

	// api
	if os.Getenv("API_PORT") != "" {
		port, err := strconv.ParseUint(os.Getenv("API_PORT"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing API_PORT: ", err.Error())
		} else {
			Config.API.Port = port
		}
	}
	if os.Getenv("JWT_SECRET") != "" {
		Config.API.JWTSecret = os.Getenv("JWT_SECRET")
	}

	// rates
	if os.Getenv("USE_LIVE_RATES") != "" {
		liveEnabled, err := strconv.ParseBool(os.Getenv("USE_LIVE_RATES"))
		if err != nil {
			log.Warn("[ENV] Error parsing USE_LIVE_RATES: ", err.Error())
		} else {
			Config.Rates.LiveEnabled = liveEnabled
		}
	}
	if os.Getenv("RATES_PROVIDER_URL") != "" {
		Config.Rates.ProviderURL = os.Getenv("RATES_PROVIDER_URL")
	}

	// google secret manager
	if os.Getenv("GOOGLE_SECRET_MANAGER_ENABLED") != "" {
		enabled, err := strconv.ParseBool(os.Getenv("GOOGLE_SECRET_MANAGER_ENABLED"))
		if err != nil {
			log.Warn("[ENV] Error parsing GOOGLE_SECRET_MANAGER_ENABLED: ", err.Error())
		} else {
			Config.GoogleSecretManager.Enabled = enabled
		}
	}
	if os.Getenv("GOOGLE_PROJECT_ID") != "" {
		Config.GoogleSecretManager.ProjectId = os.Getenv("GOOGLE_PROJECT_ID")
	}
	if os.Getenv("GOOGLE_MONGO_SECRET_NAME") != "" {
		Config.GoogleSecretManager.MongoSecretName = os.Getenv("GOOGLE_MONGO_SECRET_NAME")
	}
	if os.Getenv("GOOGLE_JWT_SECRET_NAME") != "" {
		Config.GoogleSecretManager.JWTSecretName = os.Getenv("GOOGLE_JWT_SECRET_NAME")
	}

	// logging
	if Config.Logger.Level == "" {
		logLevel := os.Getenv("LOG_LEVEL")
		if logLevel == "" {
			Config.Logger.Level = "info"
		} else {
			Config.Logger.Level = logLevel
		}
	}
}
