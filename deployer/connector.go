package deployer

import (
	"context"
	"time"

	"github.com/DrDelphi/LotteryDeployer/data"
	"github.com/DrDelphi/LotteryDeployer/network"
	"github.com/DrDelphi/LotteryDeployer/wallet"
)

// NewHdWallet - WalletFactory backed by a secp256k1 HD wallet
func NewHdWallet(mnemonic, prefix string) (Wallet, error) {
	w, err := wallet.NewSecp256k1HdWallet(mnemonic, prefix)
	if err != nil {
		return nil, err
	}

	return w, nil
}

// NewNetworkConnector - Connector backed by the CosmWasm RPC client
func NewNetworkConnector(broadcastTimeout, pollInterval time.Duration) Connector {
	return func(ctx context.Context, endpoint string, w Wallet, gasPrice data.GasPrice) (ChainClient, error) {
		client, err := network.Connect(ctx, endpoint, w, network.Options{
			GasPrice:              gasPrice,
			BroadcastTimeout:      broadcastTimeout,
			BroadcastPollInterval: pollInterval,
		})
		if err != nil {
			return nil, err
		}

		return client, nil
	}
}
