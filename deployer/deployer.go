package deployer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/DrDelphi/LotteryDeployer/data"
	"github.com/DrDelphi/LotteryDeployer/utils"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/google/uuid"
)

var log = logger.GetOrCreate("deployer")

var (
	errNilConfig        = errors.New("nil config")
	errNilWalletFactory = errors.New("nil wallet factory")
	errNilConnector     = errors.New("nil connector")
)

// Wallet - the signing material derived from the mnemonic
type Wallet interface {
	GetAccounts() []data.Account
	Sign(address string, signBytes []byte) ([]byte, error)
}

// WalletFactory - derives a Wallet from a mnemonic and an address prefix
type WalletFactory func(mnemonic, prefix string) (Wallet, error)

// ChainClient - a live, exclusively owned connection to a chain node
type ChainClient interface {
	GetAccounts() ([]data.Account, error)
	Upload(ctx context.Context, sender string, wasmCode []byte, fee data.Fee) (*data.UploadResult, error)
	Instantiate(ctx context.Context, sender string, codeID uint64, msg interface{}, label string, fee data.Fee, opts data.InstantiateOptions) (*data.InstantiateResult, error)
	Execute(ctx context.Context, sender, contract string, msg interface{}, fee data.Fee, memo string, funds []data.Coin) (*data.TxResult, error)
	QueryContractSmart(ctx context.Context, contract string, query interface{}) (json.RawMessage, error)
	Disconnect() error
}

// Connector - opens a ChainClient for a wallet
type Connector func(ctx context.Context, endpoint string, w Wallet, gasPrice data.GasPrice) (ChainClient, error)

// Report - what the enabled stages produced
type Report struct {
	RunID           string                  `json:"runId"`
	Accounts        []data.Account          `json:"accounts"`
	Address         string                  `json:"address"`
	Upload          *data.UploadResult      `json:"upload,omitempty"`
	Instantiate     *data.InstantiateResult `json:"instantiate,omitempty"`
	CodeID          uint64                  `json:"codeId,omitempty"`
	ContractAddress string                  `json:"contractAddress,omitempty"`
	Executions      []data.ExecuteResult    `json:"executions,omitempty"`
	Queries         []data.QueryResult      `json:"queries,omitempty"`
}

// Deployer - runs the selected lifecycle stages against one contract
type Deployer struct {
	cfg       *data.AppConfig
	newWallet WalletFactory
	connect   Connector
}

// NewDeployer - creates a new Deployer object
func NewDeployer(cfg *data.AppConfig, newWallet WalletFactory, connect Connector) (*Deployer, error) {
	if cfg == nil {
		return nil, errNilConfig
	}
	if newWallet == nil {
		return nil, errNilWalletFactory
	}
	if connect == nil {
		return nil, errNilConnector
	}

	return &Deployer{cfg: cfg, newWallet: newWallet, connect: connect}, nil
}

// Run - authenticates, connects and runs the enabled stages in workflow
// order, stopping at the first failure. The client is disconnected exactly
// once whenever Connect succeeded. The report holds whatever completed
// before an error.
func (d *Deployer) Run(ctx context.Context) (report *Report, err error) {
	cfg := d.cfg
	if len(cfg.Stages) == 0 {
		return nil, data.NewConfigurationError("stages", "no stage selected")
	}

	gasPrice, err := data.ParseGasPrice(cfg.Network.GasPrice)
	if err != nil {
		return nil, data.NewConfigurationError("network.gasPrice", err.Error())
	}

	var wasmCode []byte
	if cfg.Stages.Has(data.StageUpload) {
		wasmCode, err = utils.ReadArtifact(cfg.Upload.Artifact)
		if err != nil {
			log.Error("can not read contract artifact", "path", cfg.Upload.Artifact, "error", err)
			return nil, err
		}
	}

	w, err := d.newWallet(cfg.Seedphrase, cfg.Network.Prefix)
	if err != nil {
		log.Error("can not create wallet", "error", err)
		return nil, err
	}

	client, err := d.connect(ctx, cfg.Network.RPC, w, gasPrice)
	if err != nil {
		log.Error("can not connect", "endpoint", cfg.Network.RPC, "error", err)
		return nil, err
	}
	defer func() {
		if errDisconnect := client.Disconnect(); errDisconnect != nil {
			log.Warn("disconnect failed", "error", errDisconnect)
			if err == nil {
				err = errDisconnect
			}
		}
	}()

	accounts, err := client.GetAccounts()
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, data.NewCredentialError("wallet has no account", nil)
	}

	report = &Report{
		RunID:           uuid.New().String(),
		Accounts:        accounts,
		Address:         accounts[0].Address,
		CodeID:          cfg.CodeID,
		ContractAddress: cfg.ContractAddress,
	}
	for _, acc := range accounts {
		log.Info("account", "address", acc.Address, "algo", acc.Algo)
	}
	log.Info("using address", "address", report.Address, "stages", cfg.Stages.String(), "run", report.RunID)

	r := &run{client: client, cfg: cfg, report: report}
	for _, stage := range cfg.Stages.Ordered() {
		switch stage {
		case data.StageUpload:
			err = r.upload(ctx, wasmCode)
		case data.StageInstantiate:
			err = r.instantiate(ctx)
		case data.StageExecute:
			err = r.execute(ctx)
		case data.StageQuery:
			err = r.query(ctx)
		}
		if err != nil {
			log.Error("stage failed", "stage", stage.String(), "error", err)
			return report, err
		}
	}

	return report, nil
}
