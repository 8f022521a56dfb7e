package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DrDelphi/LotteryDeployer/config"
	"github.com/DrDelphi/LotteryDeployer/data"
	"github.com/DrDelphi/LotteryDeployer/deployer"
	"github.com/DrDelphi/LotteryDeployer/utils"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/urfave/cli"
)

var log = logger.GetOrCreate("main")

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to the JSON configuration file",
		Value: utils.DefaultConfigPath,
	}
	envFileFlag = cli.StringFlag{
		Name:  "env-file",
		Usage: "dotenv file providing " + utils.EnvMnemonic + " and " + utils.EnvContractAddress,
		Value: utils.DefaultEnvPath,
	}
	stageFlag = cli.StringSliceFlag{
		Name:  "stage",
		Usage: "stage to run (upload, instantiate, execute, query); repeatable, overrides the configured stages",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "logger pattern, e.g. *:INFO or network:DEBUG",
		Value: utils.DefaultLogLevel,
	}
	saveFlag = cli.BoolFlag{
		Name:  "save",
		Usage: "write the code id and contract address back into the configuration file",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "lottery-deployer"
	app.Usage = "uploads, instantiates and drives a CosmWasm lottery contract"
	app.Flags = []cli.Flag{configFlag, envFileFlag, stageFlag, logLevelFlag, saveFlag}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if err := logger.SetLogLevel(c.String(logLevelFlag.Name)); err != nil {
		return err
	}

	if err := config.LoadEnvFile(c.String(envFileFlag.Name)); err != nil {
		log.Error("can not load env file", "error", err)
		return err
	}

	cfg, err := config.NewConfig(c.String(configFlag.Name))
	if err != nil {
		return err
	}
	config.ApplyEnv(cfg)

	if names := c.StringSlice(stageFlag.Name); len(names) > 0 {
		stages, err := data.ParseStageSet(names)
		if err != nil {
			return data.NewConfigurationError("stage", err.Error())
		}
		cfg.Stages = stages
	}

	if err = config.Validate(cfg); err != nil {
		log.Error("invalid configuration", "error", err)
		return err
	}

	d, err := deployer.NewDeployer(
		cfg,
		deployer.NewHdWallet,
		deployer.NewNetworkConnector(
			time.Duration(cfg.Network.BroadcastTimeoutSeconds)*time.Second,
			time.Duration(cfg.Network.BroadcastPollSeconds)*time.Second,
		),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := d.Run(ctx)
	if err != nil {
		return err
	}

	if c.Bool(saveFlag.Name) {
		cfg.CodeID = report.CodeID
		cfg.ContractAddress = report.ContractAddress
		if err = config.Save(cfg); err != nil {
			log.Error("can not save configuration", "error", err)
			return err
		}
		log.Info("configuration saved", "codeId", cfg.CodeID, "contract", cfg.ContractAddress)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	return nil
}
