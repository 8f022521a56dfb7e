package network

import (
	sdkmath "cosmossdk.io/math"
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	"github.com/DrDelphi/LotteryDeployer/data"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdktx "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	vestingtypes "github.com/cosmos/cosmos-sdk/x/auth/vesting/types"
	"github.com/pkg/errors"
)

// newInterfaceRegistry knows every account type an auth query may return,
// module and vesting accounts included
func newInterfaceRegistry() codectypes.InterfaceRegistry {
	registry := codectypes.NewInterfaceRegistry()
	cryptocodec.RegisterInterfaces(registry)
	authtypes.RegisterInterfaces(registry)
	vestingtypes.RegisterInterfaces(registry)

	return registry
}

// toCoins converts to sorted, validated sdk coins. Empty input gives nil.
func toCoins(coins []data.Coin) (sdk.Coins, error) {
	if len(coins) == 0 {
		return nil, nil
	}

	res := make(sdk.Coins, 0, len(coins))
	for _, c := range coins {
		amount, ok := sdkmath.NewIntFromString(c.Amount)
		if !ok {
			return nil, errors.Wrap(errInvalidCoin, c.String())
		}
		res = append(res, sdk.Coin{Denom: c.Denom, Amount: amount})
	}

	res = res.Sort()
	if err := res.Validate(); err != nil {
		return nil, errors.Wrap(errInvalidCoin, err.Error())
	}

	return res, nil
}

func newMsgStoreCode(sender string, wasmByteCode []byte) (*codectypes.Any, error) {
	return codectypes.NewAnyWithValue(&wasmtypes.MsgStoreCode{
		Sender:       sender,
		WASMByteCode: wasmByteCode,
	})
}

func newMsgInstantiateContract(sender, admin string, codeID uint64, label string, msg []byte, funds []data.Coin) (*codectypes.Any, error) {
	coins, err := toCoins(funds)
	if err != nil {
		return nil, err
	}

	return codectypes.NewAnyWithValue(&wasmtypes.MsgInstantiateContract{
		Sender: sender,
		Admin:  admin,
		CodeID: codeID,
		Label:  label,
		Msg:    msg,
		Funds:  coins,
	})
}

func newMsgExecuteContract(sender, contract string, msg []byte, funds []data.Coin) (*codectypes.Any, error) {
	coins, err := toCoins(funds)
	if err != nil {
		return nil, err
	}

	return codectypes.NewAnyWithValue(&wasmtypes.MsgExecuteContract{
		Sender:   sender,
		Contract: contract,
		Msg:      msg,
		Funds:    coins,
	})
}

func encodeTxBody(msgs []*codectypes.Any, memo string) ([]byte, error) {
	body := &sdktx.TxBody{Messages: msgs, Memo: memo}
	return body.Marshal()
}

// encodeAuthInfo encodes an AuthInfo with a single signer
func encodeAuthInfo(pub []byte, sequence uint64, mode signing.SignMode, feeAmount sdk.Coins, gasLimit uint64) ([]byte, error) {
	pubKey, err := codectypes.NewAnyWithValue(&secp256k1.PubKey{Key: pub})
	if err != nil {
		return nil, err
	}

	authInfo := &sdktx.AuthInfo{
		SignerInfos: []*sdktx.SignerInfo{{
			PublicKey: pubKey,
			ModeInfo: &sdktx.ModeInfo{
				Sum: &sdktx.ModeInfo_Single_{Single: &sdktx.ModeInfo_Single{Mode: mode}},
			},
			Sequence: sequence,
		}},
		Fee: &sdktx.Fee{Amount: feeAmount, GasLimit: gasLimit},
	}

	return authInfo.Marshal()
}

func encodeSignDoc(body, authInfo []byte, chainID string, accountNumber uint64) ([]byte, error) {
	signDoc := &sdktx.SignDoc{
		BodyBytes:     body,
		AuthInfoBytes: authInfo,
		ChainId:       chainID,
		AccountNumber: accountNumber,
	}

	return signDoc.Marshal()
}

// encodeTxRaw keeps empty signatures, simulation requires one per signer
func encodeTxRaw(body, authInfo []byte, signatures ...[]byte) ([]byte, error) {
	txRaw := &sdktx.TxRaw{
		BodyBytes:     body,
		AuthInfoBytes: authInfo,
		Signatures:    signatures,
	}

	return txRaw.Marshal()
}

func decodeAccount(registry codectypes.InterfaceRegistry, value []byte) (sdk.AccountI, error) {
	res := &authtypes.QueryAccountResponse{}
	if err := res.Unmarshal(value); err != nil {
		return nil, err
	}
	if res.Account == nil {
		return nil, errEmptyResponse
	}

	var acc sdk.AccountI
	if err := registry.UnpackAny(res.Account, &acc); err != nil {
		return nil, errors.Wrap(err, res.Account.TypeUrl)
	}

	return acc, nil
}

func decodeGasUsed(value []byte) (uint64, error) {
	res := &sdktx.SimulateResponse{}
	if err := res.Unmarshal(value); err != nil {
		return 0, err
	}
	if res.GasInfo == nil || res.GasInfo.GasUsed == 0 {
		return 0, errNoGasEstimate
	}

	return res.GasInfo.GasUsed, nil
}
