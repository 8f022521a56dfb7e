package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/DrDelphi/LotteryDeployer/data"
	"github.com/DrDelphi/LotteryDeployer/utils"
	"github.com/DrDelphi/LotteryDeployer/wallet"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/joho/godotenv"
)

var log = logger.GetOrCreate("config")

var (
	cfgPath  string
	fileSeed string
)

// Default - returns the configuration used when no file is present:
// the lottery deployment against the Oraichain testnet
func Default() *data.AppConfig {
	cfg := &data.AppConfig{
		Stages: data.NewStageSet(),
		Fee:    data.AutoFee(),
	}
	cfg.Network.RPC = utils.DefaultRPCEndpoint
	cfg.Network.Prefix = utils.DefaultPrefix
	cfg.Network.GasPrice = utils.DefaultGasPrice
	cfg.Network.BroadcastTimeoutSeconds = int(utils.DefaultBroadcastTimeout / time.Second)
	cfg.Network.BroadcastPollSeconds = int(utils.DefaultBroadcastPollInterval / time.Second)
	cfg.Upload.Artifact = utils.DefaultArtifactPath
	cfg.Instantiate.Label = utils.DefaultLabel
	cfg.Instantiate.TicketPrice = data.NewCoin(utils.DefaultTicketPrice, utils.DefaultDenom)
	cfg.Instantiate.RoundDuration = utils.DefaultRoundDuration

	return cfg
}

// NewConfig - reads the application configuration from the provided path
// on top of the defaults. A missing file is not an error.
func NewConfig(configPath string) (*data.AppConfig, error) {
	cfg := Default()
	cfgPath = configPath
	fileSeed = ""

	bytes, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("config file not found, using defaults", "path", configPath)
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(bytes, cfg)
	if err != nil {
		return nil, data.NewConfigurationError(configPath, err.Error())
	}
	fileSeed = cfg.Seedphrase

	return cfg, nil
}

// LoadEnvFile - loads a dotenv file into the process environment, existing
// variables win. A missing file is ignored.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

// ApplyEnv - overlays the secrets and the contract address from the environment
func ApplyEnv(cfg *data.AppConfig) {
	if mnemonic, ok := os.LookupEnv(utils.EnvMnemonic); ok && strings.TrimSpace(mnemonic) != "" {
		cfg.Seedphrase = mnemonic
	}
	if address, ok := os.LookupEnv(utils.EnvContractAddress); ok && strings.TrimSpace(address) != "" {
		cfg.ContractAddress = strings.TrimSpace(address)
	}
}

// Validate - fails fast on anything that would otherwise break mid-workflow
func Validate(cfg *data.AppConfig) error {
	if len(cfg.Stages) == 0 {
		return data.NewConfigurationError("stages", "no stage selected, expected any of upload, instantiate, execute, query")
	}
	if strings.TrimSpace(cfg.Seedphrase) == "" {
		return data.NewCredentialError("mnemonic is not set, define "+utils.EnvMnemonic, nil)
	}
	if cfg.Network.RPC == "" {
		return data.NewConfigurationError("network.rpc", "endpoint is empty")
	}
	if cfg.Network.Prefix == "" {
		return data.NewConfigurationError("network.prefix", "address prefix is empty")
	}
	if _, err := data.ParseGasPrice(cfg.Network.GasPrice); err != nil {
		return data.NewConfigurationError("network.gasPrice", err.Error())
	}
	if err := validateFee(cfg.Fee); err != nil {
		return data.NewConfigurationError("fee", err.Error())
	}

	stages := cfg.Stages
	if stages.Has(data.StageUpload) && cfg.Upload.Artifact == "" {
		return data.NewConfigurationError("upload.artifact", "artifact path is empty")
	}
	if stages.Has(data.StageInstantiate) {
		if !stages.Has(data.StageUpload) && cfg.CodeID == 0 {
			return data.NewConfigurationError("codeId", "instantiate without upload needs an existing code id")
		}
		if cfg.Instantiate.Label == "" {
			return data.NewConfigurationError("instantiate.label", "label is empty")
		}
		if !cfg.Instantiate.TicketPrice.IsValid() {
			return data.NewConfigurationError("instantiate.ticketPrice", "invalid coin "+cfg.Instantiate.TicketPrice.String())
		}
		if err := validateCoins(cfg.Instantiate.Funds); err != nil {
			return data.NewConfigurationError("instantiate.funds", err.Error())
		}
	}

	needsContract := stages.Has(data.StageExecute) || stages.Has(data.StageQuery)
	if needsContract && !stages.Has(data.StageInstantiate) {
		if cfg.ContractAddress == "" {
			return data.NewConfigurationError("contractAddress", "execute and query need a contract, define "+utils.EnvContractAddress)
		}
		if err := wallet.ValidateAddress(cfg.ContractAddress, cfg.Network.Prefix); err != nil {
			return data.NewConfigurationError("contractAddress", err.Error())
		}
	}

	if stages.Has(data.StageExecute) {
		if len(cfg.Execute) == 0 {
			return data.NewConfigurationError("execute", "execute stage selected without messages")
		}
		for _, action := range cfg.Execute {
			if err := action.Msg.Validate(); err != nil {
				return data.NewConfigurationError("execute.msg", err.Error())
			}
			if err := validateCoins(action.Funds); err != nil {
				return data.NewConfigurationError("execute.funds", err.Error())
			}
		}
	}
	if stages.Has(data.StageQuery) {
		if len(cfg.Query) == 0 {
			return data.NewConfigurationError("query", "query stage selected without messages")
		}
		for _, action := range cfg.Query {
			if err := action.Msg.Validate(); err != nil {
				return data.NewConfigurationError("query.msg", err.Error())
			}
		}
	}

	return nil
}

// validateFee accepts an unset fee, an auto fee or a complete explicit fee
func validateFee(fee data.Fee) error {
	if fee.IsZero() {
		return nil
	}
	if fee.Auto {
		if fee.Multiplier < 0 {
			return errors.New("fee multiplier must be positive")
		}
		return nil
	}
	if fee.Gas == 0 {
		return errors.New("explicit fee needs a gas limit")
	}
	if len(fee.Amount) == 0 {
		return errors.New("explicit fee needs an amount")
	}

	return validateCoins(fee.Amount)
}

func validateCoins(coins []data.Coin) error {
	for _, c := range coins {
		if !c.IsValid() {
			return errors.New("invalid coin " + c.String())
		}
	}

	return nil
}

// Save - writes cfg back to the path it was read from. A mnemonic taken
// from the environment is never written to disk.
func Save(cfg *data.AppConfig) error {
	out := *cfg
	out.Seedphrase = fileSeed

	bytes, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(cfgPath, bytes, 0644)
}
