package deployer

import (
	"context"

	"github.com/DrDelphi/LotteryDeployer/data"
	"github.com/DrDelphi/LotteryDeployer/utils"
)

// run threads the address, code id and contract reference between stages
type run struct {
	client ChainClient
	cfg    *data.AppConfig
	report *Report
}

func (r *run) upload(ctx context.Context, wasmCode []byte) error {
	res, err := r.client.Upload(ctx, r.report.Address, wasmCode, r.cfg.Fee)
	if err != nil {
		return err
	}

	r.report.Upload = res
	r.report.CodeID = res.CodeID
	log.Info("upload result",
		"codeId", res.CodeID,
		"checksum", res.Checksum,
		"originalSize", res.OriginalSize,
		"compressedSize", res.CompressedSize,
		"tx", res.TransactionHash,
		"height", res.Height,
		"gasUsed", res.GasUsed,
	)

	return nil
}

func (r *run) instantiate(ctx context.Context) error {
	ic := r.cfg.Instantiate
	initMsg := data.InstantiateMsg{
		Admin:         r.report.Address,
		TicketPrice:   ic.TicketPrice,
		RoundDuration: ic.RoundDuration,
	}
	opts := data.InstantiateOptions{Admin: ic.Admin, Memo: ic.Memo, Funds: ic.Funds}

	res, err := r.client.Instantiate(ctx, r.report.Address, r.report.CodeID, initMsg, ic.Label, r.cfg.Fee, opts)
	if err != nil {
		return err
	}

	r.report.Instantiate = res
	r.report.ContractAddress = res.ContractAddress
	log.Info("instantiate result",
		"contract", res.ContractAddress,
		"codeId", r.report.CodeID,
		"label", ic.Label,
		"tx", res.TransactionHash,
		"height", res.Height,
		"gasUsed", res.GasUsed,
	)

	return nil
}

func (r *run) execute(ctx context.Context) error {
	for _, action := range r.cfg.Execute {
		name := action.Msg.Name()
		res, err := r.client.Execute(ctx, r.report.Address, r.report.ContractAddress, action.Msg, r.cfg.Fee, action.Memo, action.Funds)
		if err != nil {
			return err
		}

		r.report.Executions = append(r.report.Executions, data.ExecuteResult{TxResult: *res, Msg: name})
		log.Info("execute result",
			"msg", name,
			"contract", utils.ShortenAddress(r.report.ContractAddress),
			"tx", res.TransactionHash,
			"height", res.Height,
			"gasUsed", res.GasUsed,
		)
	}

	return nil
}

func (r *run) query(ctx context.Context) error {
	for _, action := range r.cfg.Query {
		msg := action.Msg
		if msg.GetTicketID != nil && msg.GetTicketID.Address == "" {
			msg = data.QueryTicketID(r.report.Address)
		}

		res, err := r.client.QueryContractSmart(ctx, r.report.ContractAddress, msg)
		if err != nil {
			return err
		}

		r.report.Queries = append(r.report.Queries, data.QueryResult{Msg: msg.Name(), Response: res})
		r.logQuery(msg, res)
	}

	return nil
}

func (r *run) logQuery(msg data.QueryMsg, res []byte) {
	switch {
	case msg.GetRoundWinners != nil:
		winners, err := data.DecodeRoundWinners(res)
		if err == nil {
			log.Info("round winners", "round", msg.GetRoundWinners.RoundID, "count", len(winners))
			for i, winner := range winners {
				log.Info("winner", "rank", i+1, "address", winner)
			}
			return
		}
	case msg.GetTicketID != nil:
		id, err := data.DecodeTicketID(res)
		if err == nil {
			log.Info("ticket id", "address", msg.GetTicketID.Address, "ticket", id)
			return
		}
	}

	log.Info("query response", "msg", msg.Name(), "response", string(res))
}
