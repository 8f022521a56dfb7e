package network

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DrDelphi/LotteryDeployer/data"
	cmttypes "github.com/cometbft/cometbft/types"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdktx "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

func (c *Client) signerAccount(address string) (*data.Account, error) {
	for _, acc := range c.signer.GetAccounts() {
		if acc.Address == address {
			acc := acc
			return &acc, nil
		}
	}

	return nil, data.NewCredentialError(address, errUnknownSigner)
}

func (c *Client) getAccount(ctx context.Context, address string) (sdk.AccountI, error) {
	req := &authtypes.QueryAccountRequest{Address: address}
	reqBytes, err := req.Marshal()
	if err != nil {
		return nil, err
	}

	res, err := c.rpc.ABCIQuery(ctx, pathAccount, reqBytes)
	if err != nil {
		log.Error("getAccount", "address", address, "error", err)
		return nil, data.NewConnectionError(c.endpoint, err)
	}
	if res.Response.Code != 0 {
		return nil, data.NewChainRejectionError("account lookup of "+address, "",
			res.Response.Codespace, res.Response.Code,
			"account does not exist on chain, send some tokens there before using it: "+res.Response.Log)
	}

	acc, err := decodeAccount(c.registry, res.Response.Value)
	if err != nil {
		return nil, errors.Wrap(err, "can not decode account")
	}

	return acc, nil
}

func (c *Client) simulate(ctx context.Context, operation string, msgs []*codectypes.Any, memo string, pub []byte, sequence uint64) (uint64, error) {
	body, err := encodeTxBody(msgs, memo)
	if err != nil {
		return 0, err
	}
	authInfo, err := encodeAuthInfo(pub, sequence, signing.SignMode_SIGN_MODE_UNSPECIFIED, nil, 0)
	if err != nil {
		return 0, err
	}
	tx, err := encodeTxRaw(body, authInfo, []byte{})
	if err != nil {
		return 0, err
	}

	req := &sdktx.SimulateRequest{TxBytes: tx}
	reqBytes, err := req.Marshal()
	if err != nil {
		return 0, err
	}

	res, err := c.rpc.ABCIQuery(ctx, pathSimulate, reqBytes)
	if err != nil {
		log.Error("simulate", "operation", operation, "error", err)
		return 0, data.NewConnectionError(c.endpoint, err)
	}
	if res.Response.Code != 0 {
		return 0, data.NewChainRejectionError(operation+" simulation", "", res.Response.Codespace, res.Response.Code, res.Response.Log)
	}

	gasUsed, err := decodeGasUsed(res.Response.Value)
	if err != nil {
		return 0, errors.Wrap(err, "can not decode simulation")
	}

	return gasUsed, nil
}

// resolveFee turns a fee policy into an amount and a gas limit
func (c *Client) resolveFee(ctx context.Context, operation string, fee data.Fee, msgs []*codectypes.Any, memo string, pub []byte, sequence uint64) (sdk.Coins, uint64, error) {
	if fee.IsZero() {
		fee = data.AutoFee()
	}
	if !fee.Auto {
		amount, err := toCoins(fee.Amount)
		return amount, fee.Gas, err
	}

	multiplier := fee.Multiplier
	if multiplier == 0 {
		multiplier = data.DefaultGasMultiplier
	}
	if multiplier < 0 {
		return nil, 0, errInvalidFeeMultiplier
	}

	gasUsed, err := c.simulate(ctx, operation, msgs, memo, pub, sequence)
	if err != nil {
		return nil, 0, err
	}

	gas := uint64(decimal.NewFromInt(int64(gasUsed)).Mul(decimal.NewFromFloat(multiplier)).Ceil().IntPart())
	amount := c.opts.GasPrice.FeeFor(gas)
	log.Debug("fee estimated", "operation", operation, "gasUsed", gasUsed, "gasLimit", gas, "fee", amount.String())

	coins, err := toCoins([]data.Coin{amount})
	if err != nil {
		return nil, 0, err
	}

	return coins, gas, nil
}

func (c *Client) signAndBroadcast(ctx context.Context, operation, sender string, msgs []*codectypes.Any, fee data.Fee, memo string) (*data.TxResult, error) {
	if c.disconnected {
		return nil, data.NewConnectionError(c.endpoint, errClientDisconnected)
	}

	signer, err := c.signerAccount(sender)
	if err != nil {
		return nil, err
	}

	acc, err := c.getAccount(ctx, sender)
	if err != nil {
		return nil, err
	}

	feeAmount, gasLimit, err := c.resolveFee(ctx, operation, fee, msgs, memo, signer.PubKey, acc.GetSequence())
	if err != nil {
		return nil, err
	}

	body, err := encodeTxBody(msgs, memo)
	if err != nil {
		return nil, err
	}
	authInfo, err := encodeAuthInfo(signer.PubKey, acc.GetSequence(), signing.SignMode_SIGN_MODE_DIRECT, feeAmount, gasLimit)
	if err != nil {
		return nil, err
	}
	signDoc, err := encodeSignDoc(body, authInfo, c.chainID, acc.GetAccountNumber())
	if err != nil {
		return nil, err
	}

	signature, err := c.signer.Sign(sender, signDoc)
	if err != nil {
		log.Error("unable to sign transaction", "operation", operation, "error", err)
		return nil, err
	}

	tx, err := encodeTxRaw(body, authInfo, signature)
	if err != nil {
		return nil, err
	}
	hash := cmttypes.Tx(tx).Hash()
	txHash := fmt.Sprintf("%X", hash)

	res, err := c.rpc.BroadcastTxSync(ctx, tx)
	if err != nil {
		log.Error("broadcast failed", "operation", operation, "tx", txHash, "error", err)
		return nil, data.NewConnectionError(c.endpoint, err)
	}
	if res.Code != 0 {
		return nil, data.NewChainRejectionError(operation, txHash, res.Codespace, res.Code, res.Log)
	}

	log.Debug("transaction broadcasted", "operation", operation, "tx", txHash)

	return c.waitForTx(ctx, operation, hash, txHash)
}

// waitForTx polls the node until the transaction is included or the broadcast timeout elapses
func (c *Client) waitForTx(ctx context.Context, operation string, hash []byte, txHash string) (*data.TxResult, error) {
	deadline := time.Now().Add(c.opts.BroadcastTimeout)
	for {
		res, err := c.rpc.Tx(ctx, hash, false)
		if err == nil {
			if res.TxResult.Code != 0 {
				return nil, data.NewChainRejectionError(operation, txHash, res.TxResult.Codespace, res.TxResult.Code, res.TxResult.Log)
			}

			return &data.TxResult{
				TransactionHash: txHash,
				Height:          res.Height,
				GasWanted:       uint64(res.TxResult.GasWanted),
				GasUsed:         uint64(res.TxResult.GasUsed),
				Logs:            res.TxResult.Log,
				Events:          convertEvents(res.TxResult.Events),
			}, nil
		}

		if !isTxNotFound(err) {
			log.Error("can not get transaction", "tx", txHash, "error", err)
			return nil, data.NewConnectionError(c.endpoint, err)
		}

		if time.Now().Add(c.opts.BroadcastPollInterval).After(deadline) {
			return nil, data.NewConnectionError(c.endpoint, errors.Wrapf(errBroadcastTimeout, "tx %s after %v", txHash, c.opts.BroadcastTimeout))
		}

		timer := time.NewTimer(c.opts.BroadcastPollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, data.NewConnectionError(c.endpoint, ctx.Err())
		case <-timer.C:
		}
	}
}

// isTxNotFound matches the rpc error of a transaction not yet in a block
func isTxNotFound(err error) bool {
	return strings.Contains(err.Error(), "not found")
}
