package network

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	abci "github.com/cometbft/cometbft/abci/types"
	cmttypes "github.com/cometbft/cometbft/types"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdktx "github.com/cosmos/cosmos-sdk/types/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/stretchr/testify/require"
)

// fakeNode is a minimal CometBFT JSON-RPC endpoint backed by a wasm chain in memory
type fakeNode struct {
	t *testing.T

	mu sync.Mutex

	chainID       string
	accountNumber uint64
	sequence      uint64
	accountCode   uint32
	gasUsed       uint64

	smart     map[string]json.RawMessage
	queryCode uint32
	queryLog  string

	checkTxCode uint32
	checkTxLog  string
	deliverCode uint32
	deliverLog  string
	pendingTx   int
	events      []abci.Event

	broadcasts [][]byte
	calls      map[string]int
}

func newFakeNode(t *testing.T) *fakeNode {
	return &fakeNode{
		t:             t,
		chainID:       "Oraichain-testnet",
		accountNumber: 42,
		sequence:      3,
		gasUsed:       100000,
		smart:         make(map[string]json.RawMessage),
		calls:         make(map[string]int),
	}
}

func (fn *fakeNode) start() *httptest.Server {
	srv := httptest.NewServer(fn)
	fn.t.Cleanup(srv.Close)

	return srv
}

func (fn *fakeNode) count(key string) int {
	fn.mu.Lock()
	defer fn.mu.Unlock()

	return fn.calls[key]
}

func (fn *fakeNode) lastBroadcast() []byte {
	fn.mu.Lock()
	defer fn.mu.Unlock()

	require.NotEmpty(fn.t, fn.broadcasts)
	return fn.broadcasts[len(fn.broadcasts)-1]
}

type fakeRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

type fakeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func (fn *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fn.mu.Lock()
	defer fn.mu.Unlock()

	req := fakeRequest{}
	require.NoError(fn.t, json.NewDecoder(r.Body).Decode(&req))
	fn.calls[req.Method]++

	var result interface{}
	var rpcErr *fakeError

	switch req.Method {
	case "status":
		result = map[string]interface{}{
			"node_info": map[string]string{"network": fn.chainID, "version": "0.38.11"},
			"sync_info": map[string]string{"latest_block_height": "1234"},
		}
	case "abci_query":
		result = fn.abciQuery(req.Params)
	case "broadcast_tx_sync":
		var params struct {
			Tx []byte `json:"tx"`
		}
		require.NoError(fn.t, json.Unmarshal(req.Params, &params))
		fn.broadcasts = append(fn.broadcasts, params.Tx)
		result = map[string]interface{}{
			"code":      fn.checkTxCode,
			"log":       fn.checkTxLog,
			"codespace": codespaceOf(fn.checkTxCode),
			"hash":      fmt.Sprintf("%X", cmttypes.Tx(params.Tx).Hash()),
		}
	case "tx":
		var params struct {
			Hash []byte `json:"hash"`
		}
		require.NoError(fn.t, json.Unmarshal(req.Params, &params))
		if fn.pendingTx > 0 {
			fn.pendingTx--
			rpcErr = &fakeError{Code: -32603, Message: "Internal error", Data: fmt.Sprintf("tx (%X) not found", params.Hash)}
			break
		}
		result = map[string]interface{}{
			"hash":   fmt.Sprintf("%X", params.Hash),
			"height": "5678",
			"tx_result": map[string]interface{}{
				"code":       fn.deliverCode,
				"log":        fn.deliverLog,
				"codespace":  codespaceOf(fn.deliverCode),
				"gas_wanted": "130000",
				"gas_used":   "98765",
				"events":     fn.events,
			},
		}
	default:
		rpcErr = &fakeError{Code: -32601, Message: "Method not found"}
	}

	resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
	if rpcErr != nil {
		resp["error"] = rpcErr
	} else {
		resp["result"] = result
	}
	require.NoError(fn.t, json.NewEncoder(w).Encode(resp))
}

func (fn *fakeNode) abciQuery(raw json.RawMessage) interface{} {
	var params struct {
		Path string `json:"path"`
		Data string `json:"data"`
	}
	require.NoError(fn.t, json.Unmarshal(raw, &params))
	fn.calls[params.Path]++

	reqData, err := hex.DecodeString(params.Data)
	require.NoError(fn.t, err)

	var code uint32
	var log string
	var value []byte

	switch params.Path {
	case pathAccount:
		req := &authtypes.QueryAccountRequest{}
		require.NoError(fn.t, req.Unmarshal(reqData))
		if fn.accountCode != 0 {
			code, log = fn.accountCode, "key not found"
			break
		}
		value = accountResponse(fn.t, &authtypes.BaseAccount{
			Address:       req.Address,
			AccountNumber: fn.accountNumber,
			Sequence:      fn.sequence,
		})
	case pathSimulate:
		req := &sdktx.SimulateRequest{}
		require.NoError(fn.t, req.Unmarshal(reqData))
		require.NotEmpty(fn.t, req.TxBytes)
		res := &sdktx.SimulateResponse{GasInfo: &sdk.GasInfo{GasWanted: fn.gasUsed * 2, GasUsed: fn.gasUsed}}
		value, err = res.Marshal()
		require.NoError(fn.t, err)
	case pathSmartContractState:
		req := &wasmtypes.QuerySmartContractStateRequest{}
		require.NoError(fn.t, req.Unmarshal(reqData))
		if fn.queryCode != 0 {
			code, log = fn.queryCode, fn.queryLog
			break
		}
		data, ok := fn.smart[string(req.QueryData)]
		if !ok {
			code, log = 9, "query wasm contract failed: unknown query"
			break
		}
		res := &wasmtypes.QuerySmartContractStateResponse{Data: wasmtypes.RawContractMessage(data)}
		value, err = res.Marshal()
		require.NoError(fn.t, err)
	default:
		code, log = 6, "unknown query path"
	}

	return map[string]interface{}{
		"response": map[string]interface{}{
			"code":      code,
			"log":       log,
			"value":     value,
			"height":    "1234",
			"codespace": codespaceOf(code),
		},
	}
}

func codespaceOf(code uint32) string {
	if code == 0 {
		return ""
	}

	return "wasm"
}

type protoMessage interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

func accountResponse(t *testing.T, acc sdk.AccountI) []byte {
	account, err := codectypes.NewAnyWithValue(acc)
	require.NoError(t, err)

	b, err := (&authtypes.QueryAccountResponse{Account: account}).Marshal()
	require.NoError(t, err)

	return b
}

func event(typ string, kv ...string) abci.Event {
	ev := abci.Event{Type: typ}
	for i := 0; i+1 < len(kv); i += 2 {
		ev.Attributes = append(ev.Attributes, abci.EventAttribute{Key: kv[i], Value: kv[i+1], Index: true})
	}

	return ev
}

type decodedTx struct {
	raw      *sdktx.TxRaw
	body     *sdktx.TxBody
	authInfo *sdktx.AuthInfo
}

func decodeTx(t *testing.T, b []byte) decodedTx {
	tx := decodedTx{raw: &sdktx.TxRaw{}, body: &sdktx.TxBody{}, authInfo: &sdktx.AuthInfo{}}
	require.NoError(t, tx.raw.Unmarshal(b))
	require.NoError(t, tx.body.Unmarshal(tx.raw.BodyBytes))
	require.NoError(t, tx.authInfo.Unmarshal(tx.raw.AuthInfoBytes))

	return tx
}

// firstMsg decodes the first message of a tx body into msg after checking its type url
func firstMsg(t *testing.T, body *sdktx.TxBody, typeURL string, msg protoMessage) {
	require.NotEmpty(t, body.Messages)
	require.Equal(t, typeURL, body.Messages[0].TypeUrl)
	require.NoError(t, msg.Unmarshal(body.Messages[0].Value))
}
