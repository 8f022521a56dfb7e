package network

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/CosmWasm/wasmd/x/wasm/ioutils"
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	"github.com/DrDelphi/LotteryDeployer/data"
	"github.com/DrDelphi/LotteryDeployer/utils"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	rpchttp "github.com/cometbft/cometbft/rpc/client/http"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/pkg/errors"
)

var log = logger.GetOrCreate("network")

// Signer - the wallet side of a client: accounts and raw signatures
type Signer interface {
	GetAccounts() []data.Account
	Sign(address string, signBytes []byte) ([]byte, error)
}

// Options - holds the client tuning knobs
type Options struct {
	GasPrice              data.GasPrice
	BroadcastTimeout      time.Duration
	BroadcastPollInterval time.Duration
}

// Client - a signing CosmWasm client bound to one CometBFT RPC endpoint
type Client struct {
	endpoint string
	chainID  string
	rpc      *rpchttp.HTTP
	registry codectypes.InterfaceRegistry
	signer   Signer
	opts     Options

	disconnected bool
}

// Connect - opens a client to endpoint for signer. The node is contacted
// once to learn its chain id.
func Connect(ctx context.Context, endpoint string, signer Signer, opts Options) (*Client, error) {
	if opts.BroadcastTimeout <= 0 {
		opts.BroadcastTimeout = utils.DefaultBroadcastTimeout
	}
	if opts.BroadcastPollInterval <= 0 {
		opts.BroadcastPollInterval = utils.DefaultBroadcastPollInterval
	}

	remote := endpoint
	if !strings.Contains(remote, "://") {
		remote = "http://" + remote
	}

	rpc, err := rpchttp.New(remote, websocketEndpoint)
	if err != nil {
		log.Error("can not create rpc client", "endpoint", endpoint, "error", err)
		return nil, data.NewConnectionError(endpoint, err)
	}

	status, err := rpc.Status(ctx)
	if err != nil {
		log.Error("can not get node status", "endpoint", endpoint, "error", err)
		return nil, data.NewConnectionError(endpoint, err)
	}
	if status.NodeInfo.Network == "" {
		return nil, data.NewConnectionError(endpoint, errEmptyChainID)
	}

	log.Debug("connected", "endpoint", endpoint, "chainID", status.NodeInfo.Network,
		"height", status.SyncInfo.LatestBlockHeight)

	return &Client{
		endpoint: endpoint,
		chainID:  status.NodeInfo.Network,
		rpc:      rpc,
		registry: newInterfaceRegistry(),
		signer:   signer,
		opts:     opts,
	}, nil
}

// ChainID returns the chain id reported by the node at connect time
func (c *Client) ChainID() string {
	return c.chainID
}

// GetAccounts returns the accounts of the signer bound to the client
func (c *Client) GetAccounts() ([]data.Account, error) {
	if c.disconnected {
		return nil, data.NewConnectionError(c.endpoint, errClientDisconnected)
	}

	return c.signer.GetAccounts(), nil
}

// Upload - stores wasm byte code on chain, the code is gzipped before sending
func (c *Client) Upload(ctx context.Context, sender string, wasmCode []byte, fee data.Fee) (*data.UploadResult, error) {
	if len(wasmCode) == 0 {
		return nil, errEmptyWasmByteCode
	}

	compressed := wasmCode
	if !ioutils.IsGzip(wasmCode) {
		var err error
		if compressed, err = ioutils.GzipIt(wasmCode); err != nil {
			return nil, err
		}
	}

	msg, err := newMsgStoreCode(sender, compressed)
	if err != nil {
		return nil, err
	}
	res, err := c.signAndBroadcast(ctx, "upload", sender, []*codectypes.Any{msg}, fee, "")
	if err != nil {
		return nil, err
	}

	value, ok := findAttribute(res.Events, wasmtypes.EventTypeStoreCode, wasmtypes.AttributeKeyCodeID)
	if !ok {
		log.Error("upload - code id not found", "tx", res.TransactionHash)
		return nil, errors.Wrapf(errMissingEvent, "%s.%s in tx %s", wasmtypes.EventTypeStoreCode, wasmtypes.AttributeKeyCodeID, res.TransactionHash)
	}
	codeID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(errInvalidResponse, "code id %q", value)
	}
	if codeID == 0 {
		return nil, errInvalidCodeID
	}

	return &data.UploadResult{
		TxResult:       *res,
		CodeID:         codeID,
		Checksum:       utils.Checksum(wasmCode),
		OriginalSize:   len(wasmCode),
		CompressedSize: len(compressed),
	}, nil
}

// Instantiate - creates a contract instance of codeID with the JSON encoded msg
func (c *Client) Instantiate(ctx context.Context, sender string, codeID uint64, msg interface{}, label string, fee data.Fee, opts data.InstantiateOptions) (*data.InstantiateResult, error) {
	if codeID == 0 {
		return nil, errInvalidCodeID
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	instantiate, err := newMsgInstantiateContract(sender, opts.Admin, codeID, label, raw, opts.Funds)
	if err != nil {
		return nil, err
	}
	res, err := c.signAndBroadcast(ctx, "instantiate", sender, []*codectypes.Any{instantiate}, fee, opts.Memo)
	if err != nil {
		return nil, err
	}

	address, ok := findAttribute(res.Events, wasmtypes.EventTypeInstantiate, wasmtypes.AttributeKeyContractAddr)
	if !ok || address == "" {
		log.Error("instantiate - contract address not found", "tx", res.TransactionHash)
		return nil, errors.Wrapf(errMissingEvent, "%s.%s in tx %s", wasmtypes.EventTypeInstantiate, wasmtypes.AttributeKeyContractAddr, res.TransactionHash)
	}

	return &data.InstantiateResult{TxResult: *res, ContractAddress: address}, nil
}

// Execute - sends a state changing msg to contract, optionally with funds
func (c *Client) Execute(ctx context.Context, sender, contract string, msg interface{}, fee data.Fee, memo string, funds []data.Coin) (*data.TxResult, error) {
	if contract == "" {
		return nil, errEmptyContractAddr
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	execute, err := newMsgExecuteContract(sender, contract, raw, funds)
	if err != nil {
		return nil, err
	}

	return c.signAndBroadcast(ctx, "execute", sender, []*codectypes.Any{execute}, fee, memo)
}

// QueryContractSmart - runs a read-only query and returns the raw JSON response
func (c *Client) QueryContractSmart(ctx context.Context, contract string, query interface{}) (json.RawMessage, error) {
	if c.disconnected {
		return nil, data.NewConnectionError(c.endpoint, errClientDisconnected)
	}
	if contract == "" {
		return nil, errEmptyContractAddr
	}

	raw, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	req := &wasmtypes.QuerySmartContractStateRequest{Address: contract, QueryData: raw}
	reqBytes, err := req.Marshal()
	if err != nil {
		return nil, err
	}

	res, err := c.rpc.ABCIQuery(ctx, pathSmartContractState, reqBytes)
	if err != nil {
		log.Error("queryContractSmart", "contract", contract, "error", err)
		return nil, data.NewConnectionError(c.endpoint, err)
	}
	if res.Response.Code != 0 {
		return nil, data.NewChainRejectionError("query", "", res.Response.Codespace, res.Response.Code, res.Response.Log)
	}

	resp := &wasmtypes.QuerySmartContractStateResponse{}
	if err = resp.Unmarshal(res.Response.Value); err != nil {
		return nil, errors.Wrap(err, "can not decode smart query response")
	}
	if !json.Valid(resp.Data) {
		return nil, errors.Wrapf(errInvalidResponse, "smart query returned %q", string(resp.Data))
	}

	return json.RawMessage(resp.Data), nil
}

// Disconnect - releases the rpc client. The client is unusable afterwards.
func (c *Client) Disconnect() error {
	if c.disconnected {
		return errClientDisconnected
	}

	c.disconnected = true
	if c.rpc.IsRunning() {
		if err := c.rpc.Stop(); err != nil {
			log.Warn("can not stop rpc client", "endpoint", c.endpoint, "error", err)
			return err
		}
	}
	log.Debug("disconnected", "endpoint", c.endpoint)

	return nil
}
