package data

import (
	"encoding/json"
	"errors"
)

var errEmptyMessage = errors.New("message has no variant set")

// Empty is the payload of variants without parameters, encoded as {}
type Empty struct{}

// InstantiateMsg initializes a lottery contract
type InstantiateMsg struct {
	Admin         string `json:"admin,omitempty"`
	TicketPrice   Coin   `json:"ticket_price"`
	RoundDuration uint64 `json:"round_duration"`
}

// ExecuteMsg is the tagged union of the lottery state changing messages.
// Exactly one field must be set.
type ExecuteMsg struct {
	BuyTicket *Empty `json:"buy_ticket,omitempty"`
	EndRound  *Empty `json:"end_round,omitempty"`
	Pause     *Empty `json:"pause,omitempty"`
	Resume    *Empty `json:"resume,omitempty"`
}

// BuyTicket - {"buy_ticket":{}}
func BuyTicket() ExecuteMsg { return ExecuteMsg{BuyTicket: &Empty{}} }

// EndRound - {"end_round":{}}
func EndRound() ExecuteMsg { return ExecuteMsg{EndRound: &Empty{}} }

// Pause - {"pause":{}}
func Pause() ExecuteMsg { return ExecuteMsg{Pause: &Empty{}} }

// Resume - {"resume":{}}
func Resume() ExecuteMsg { return ExecuteMsg{Resume: &Empty{}} }

// Name returns the variant tag
func (m ExecuteMsg) Name() string {
	switch {
	case m.BuyTicket != nil:
		return "buy_ticket"
	case m.EndRound != nil:
		return "end_round"
	case m.Pause != nil:
		return "pause"
	case m.Resume != nil:
		return "resume"
	}

	return ""
}

// Validate checks only the union shape, contract side rules stay remote
func (m ExecuteMsg) Validate() error {
	if m.Name() == "" {
		return errEmptyMessage
	}

	return nil
}

// GetTicketID asks for the ticket of a participant
type GetTicketID struct {
	Address string `json:"address"`
}

// GetRoundWinners asks for the winners of a finished round
type GetRoundWinners struct {
	RoundID uint64 `json:"round_id"`
}

// QueryMsg is the tagged union of the lottery queries
type QueryMsg struct {
	GetTicketID     *GetTicketID     `json:"get_ticket_id,omitempty"`
	GetRoundWinners *GetRoundWinners `json:"get_round_winners,omitempty"`
}

// QueryTicketID - {"get_ticket_id":{"address":...}}
func QueryTicketID(address string) QueryMsg {
	return QueryMsg{GetTicketID: &GetTicketID{Address: address}}
}

// QueryRoundWinners - {"get_round_winners":{"round_id":...}}
func QueryRoundWinners(roundID uint64) QueryMsg {
	return QueryMsg{GetRoundWinners: &GetRoundWinners{RoundID: roundID}}
}

// Name returns the variant tag
func (m QueryMsg) Name() string {
	switch {
	case m.GetTicketID != nil:
		return "get_ticket_id"
	case m.GetRoundWinners != nil:
		return "get_round_winners"
	}

	return ""
}

// Validate checks only the union shape
func (m QueryMsg) Validate() error {
	if m.Name() == "" {
		return errEmptyMessage
	}

	return nil
}

// DecodeRoundWinners - decodes a get_round_winners response, a list of addresses
func DecodeRoundWinners(raw json.RawMessage) ([]string, error) {
	winners := make([]string, 0)
	if err := json.Unmarshal(raw, &winners); err != nil {
		return nil, err
	}

	return winners, nil
}

// DecodeTicketID - decodes a get_ticket_id response, the 1-based ticket number
func DecodeTicketID(raw json.RawMessage) (uint64, error) {
	var id uint64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, err
	}

	return id, nil
}
