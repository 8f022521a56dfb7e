package network

import "errors"

var (
	errEmptyResponse        = errors.New("empty response")
	errInvalidResponse      = errors.New("invalid result")
	errClientDisconnected   = errors.New("client is disconnected")
	errUnknownSigner        = errors.New("signer address not found in wallet")
	errMissingEvent         = errors.New("expected event attribute not found")
	errBroadcastTimeout     = errors.New("transaction was submitted but not included in time")
	errEmptyChainID         = errors.New("node reported an empty chain id")
	errInvalidCodeID        = errors.New("code id must be positive")
	errEmptyContractAddr    = errors.New("contract address is empty")
	errEmptyWasmByteCode    = errors.New("wasm byte code is empty")
	errNoGasEstimate        = errors.New("simulation returned no gas estimate")
	errInvalidFeeMultiplier = errors.New("fee multiplier must be positive")
	errInvalidCoin          = errors.New("invalid coin")
)

const (
	websocketEndpoint = "/websocket"

	pathAccount            = "/cosmos.auth.v1beta1.Query/Account"
	pathSimulate           = "/cosmos.tx.v1beta1.Service/Simulate"
	pathSmartContractState = "/cosmwasm.wasm.v1.Query/SmartContractState"
)
