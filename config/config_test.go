package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DrDelphi/LotteryDeployer/data"
	"github.com/DrDelphi/LotteryDeployer/wallet"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func testContractAddress(t *testing.T) string {
	w, err := wallet.NewSecp256k1HdWallet(testMnemonic, "orai", wallet.CosmosHDPath(7))
	require.NoError(t, err)

	return w.GetAccounts()[0].Address
}

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestNewConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := NewConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	require.Equal(t, "https://testnet-rpc.orai.io", cfg.Network.RPC)
	require.Equal(t, "orai", cfg.Network.Prefix)
	require.Equal(t, "0.001orai", cfg.Network.GasPrice)
	require.True(t, cfg.Fee.Auto)
	require.Equal(t, data.NewCoin(1, "orai"), cfg.Instantiate.TicketPrice)
	require.Equal(t, uint64(600), cfg.Instantiate.RoundDuration)
	require.Empty(t, cfg.Stages)
}

func TestNewConfig_File(t *testing.T) {
	path := writeConfig(t, `{
		"stages": ["query", "execute"],
		"fee": {"amount": [{"denom": "orai", "amount": "500"}], "gas": "300000"},
		"network": {"rpc": "http://localhost:26657", "prefix": "orai", "gasPrice": "0.0025orai"},
		"execute": [{"msg": {"buy_ticket": {}}, "memo": "Buying a ticket", "funds": [{"denom": "orai", "amount": "1"}]}],
		"query": [{"msg": {"get_round_winners": {"round_id": 1}}}]
	}`)

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	require.True(t, cfg.Stages.Has(data.StageQuery))
	require.True(t, cfg.Stages.Has(data.StageExecute))
	require.False(t, cfg.Stages.Has(data.StageUpload))
	require.Equal(t, data.ExplicitFee(300000, data.NewCoin(500, "orai")), cfg.Fee)
	require.Equal(t, "http://localhost:26657", cfg.Network.RPC)
	require.Equal(t, "buy_ticket", cfg.Execute[0].Msg.Name())
	require.Equal(t, uint64(1), cfg.Query[0].Msg.GetRoundWinners.RoundID)
	// untouched sections keep their defaults
	require.Equal(t, "lottery_contract", cfg.Instantiate.Label)
}

func TestNewConfig_Invalid(t *testing.T) {
	_, err := NewConfig(writeConfig(t, `{"stages": ["deploy"]}`))

	var cfgErr *data.ConfigurationError
	require.True(t, errors.As(err, &cfgErr), "got %v", err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MNEMONIC", testMnemonic)
	t.Setenv("CONTRACT_ADDRESS", " orai1contract ")

	cfg := Default()
	cfg.Seedphrase = "from file"
	ApplyEnv(cfg)

	require.Equal(t, testMnemonic, cfg.Seedphrase)
	require.Equal(t, "orai1contract", cfg.ContractAddress)
}

func TestLoadEnvFile(t *testing.T) {
	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	t.Setenv("CONTRACT_ADDRESS", "")
	os.Unsetenv("CONTRACT_ADDRESS")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CONTRACT_ADDRESS=orai1fromdotenv\n"), 0600))

	require.NoError(t, LoadEnvFile(path))
	require.Equal(t, "orai1fromdotenv", os.Getenv("CONTRACT_ADDRESS"))
}

func validConfig(t *testing.T, stages ...data.Stage) *data.AppConfig {
	cfg := Default()
	cfg.Seedphrase = testMnemonic
	cfg.Stages = data.NewStageSet(stages...)
	cfg.ContractAddress = testContractAddress(t)
	cfg.Execute = []data.ExecuteAction{{Msg: data.BuyTicket()}}
	cfg.Query = []data.QueryAction{{Msg: data.QueryRoundWinners(1)}}

	return cfg
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(validConfig(t, data.StageQuery)))
	require.NoError(t, Validate(validConfig(t, data.StageUpload, data.StageInstantiate, data.StageExecute, data.StageQuery)))

	cfg := validConfig(t, data.StageInstantiate)
	cfg.CodeID = 12
	require.NoError(t, Validate(cfg))

	// a fresh instance provides the contract address
	cfg = validConfig(t, data.StageUpload, data.StageInstantiate, data.StageQuery)
	cfg.ContractAddress = ""
	require.NoError(t, Validate(cfg))
}

func TestValidate_CredentialError(t *testing.T) {
	cfg := validConfig(t, data.StageQuery)
	cfg.Seedphrase = "  "

	var credErr *data.CredentialError
	require.True(t, errors.As(Validate(cfg), &credErr))
}

func TestValidate_ConfigurationErrors(t *testing.T) {
	cases := map[string]func(cfg *data.AppConfig){
		"no stage":            func(cfg *data.AppConfig) { cfg.Stages = data.NewStageSet() },
		"no contract":         func(cfg *data.AppConfig) { cfg.ContractAddress = "" },
		"foreign prefix":      func(cfg *data.AppConfig) { cfg.Network.Prefix = "cosmos" },
		"bad gas price":       func(cfg *data.AppConfig) { cfg.Network.GasPrice = "cheap" },
		"empty rpc":           func(cfg *data.AppConfig) { cfg.Network.RPC = "" },
		"no queries":          func(cfg *data.AppConfig) { cfg.Query = nil },
		"empty query variant": func(cfg *data.AppConfig) { cfg.Query = []data.QueryAction{{}} },
		"instantiate without code": func(cfg *data.AppConfig) {
			cfg.Stages = data.NewStageSet(data.StageInstantiate)
		},
		"bad ticket price": func(cfg *data.AppConfig) {
			cfg.Stages = data.NewStageSet(data.StageUpload, data.StageInstantiate)
			cfg.Instantiate.TicketPrice = data.Coin{Denom: "orai", Amount: "1.5"}
		},
		"execute without messages": func(cfg *data.AppConfig) {
			cfg.Stages = data.NewStageSet(data.StageExecute)
			cfg.Execute = nil
		},
		"bad funds": func(cfg *data.AppConfig) {
			cfg.Stages = data.NewStageSet(data.StageExecute)
			cfg.Execute[0].Funds = []data.Coin{{Denom: "", Amount: "1"}}
		},
		"zero fee gas": func(cfg *data.AppConfig) {
			cfg.Stages = data.NewStageSet(data.StageExecute)
			require.NoError(t, json.Unmarshal([]byte(`{"amount":[{"denom":"orai","amount":"10"}],"gas":"0"}`), &cfg.Fee))
		},
		"fee without amount": func(cfg *data.AppConfig) {
			cfg.Stages = data.NewStageSet(data.StageExecute)
			require.NoError(t, json.Unmarshal([]byte(`{"amount":[],"gas":"200000"}`), &cfg.Fee))
		},
		"bad fee coin": func(cfg *data.AppConfig) {
			cfg.Fee = data.ExplicitFee(200000, data.Coin{Denom: "orai", Amount: "-1"})
		},
		"negative fee multiplier": func(cfg *data.AppConfig) {
			cfg.Fee = data.Fee{Auto: true, Multiplier: -1}
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig(t, data.StageQuery)
			mutate(cfg)

			var cfgErr *data.ConfigurationError
			err := Validate(cfg)
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
		})
	}
}

func TestValidate_Fee(t *testing.T) {
	cases := map[string]data.Fee{
		"unset":      {},
		"auto":       data.AutoFee(),
		"multiplier": {Auto: true, Multiplier: 1.5},
		"explicit":   data.ExplicitFee(200000, data.NewCoin(200, "orai")),
	}

	for name, fee := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig(t, data.StageExecute)
			cfg.Fee = fee
			require.NoError(t, Validate(cfg))
		})
	}

	cfg := validConfig(t, data.StageExecute)
	cfg.Fee = data.ExplicitFee(0, data.NewCoin(10, "orai"))
	var cfgErr *data.ConfigurationError
	require.True(t, errors.As(Validate(cfg), &cfgErr))
	require.Equal(t, "fee", cfgErr.Field)
}

func TestSave(t *testing.T) {
	path := writeConfig(t, `{"stages": ["upload", "instantiate"]}`)
	cfg, err := NewConfig(path)
	require.NoError(t, err)

	cfg.Seedphrase = testMnemonic
	cfg.CodeID = 31
	cfg.ContractAddress = "orai1lottery"
	require.NoError(t, Save(cfg))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "abandon")

	saved := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &saved))
	require.Equal(t, float64(31), saved["codeId"])
	require.Equal(t, "orai1lottery", saved["contractAddress"])
	require.Equal(t, []interface{}{"upload", "instantiate"}, saved["stages"])

	reloaded, err := NewConfig(path)
	require.NoError(t, err)
	require.Equal(t, uint64(31), reloaded.CodeID)
	require.True(t, reloaded.Fee.Auto)
}
