package utils

import "time"

const (
	DefaultConfigPath = "config.json"
	DefaultEnvPath    = ".env"
	DefaultLogLevel   = "*:INFO"

	DefaultRPCEndpoint = "https://testnet-rpc.orai.io"
	DefaultPrefix      = "orai"
	DefaultGasPrice    = "0.001orai"
	DefaultDenom       = "orai"

	DefaultArtifactPath  = "./artifacts/lottery.wasm"
	DefaultLabel         = "lottery_contract"
	DefaultTicketPrice   = 1
	DefaultRoundDuration = 600 // 10 min

	DefaultBroadcastTimeout      = 60 * time.Second
	DefaultBroadcastPollInterval = 3 * time.Second

	EnvMnemonic        = "MNEMONIC"
	EnvContractAddress = "CONTRACT_ADDRESS"
)
