package data

// AppConfig holds the application configuration read from config.json
type AppConfig struct {
	Seedphrase      string   `json:"seed,omitempty"`
	ContractAddress string   `json:"contractAddress,omitempty"`
	CodeID          uint64   `json:"codeId,omitempty"`
	Stages          StageSet `json:"stages"`
	Fee             Fee      `json:"fee"`
	Network         struct {
		RPC                     string `json:"rpc"`
		Prefix                  string `json:"prefix"`
		GasPrice                string `json:"gasPrice"`
		BroadcastTimeoutSeconds int    `json:"broadcastTimeoutSeconds"`
		BroadcastPollSeconds    int    `json:"broadcastPollSeconds"`
	} `json:"network"`
	Upload struct {
		Artifact string `json:"artifact"`
	} `json:"upload"`
	Instantiate InstantiateConfig `json:"instantiate"`
	Execute     []ExecuteAction   `json:"execute"`
	Query       []QueryAction     `json:"query"`
}

// InstantiateConfig holds the parameters of a new lottery instance
type InstantiateConfig struct {
	Label         string `json:"label"`
	Admin         string `json:"admin,omitempty"`
	TicketPrice   Coin   `json:"ticketPrice"`
	RoundDuration uint64 `json:"roundDuration"`
	Memo          string `json:"memo,omitempty"`
	Funds         []Coin `json:"funds,omitempty"`
}

// ExecuteAction is one state changing call sent to the lottery contract
type ExecuteAction struct {
	Msg   ExecuteMsg `json:"msg"`
	Memo  string     `json:"memo,omitempty"`
	Funds []Coin     `json:"funds,omitempty"`
}

// QueryAction is one read-only call sent to the lottery contract
type QueryAction struct {
	Msg QueryMsg `json:"msg"`
}
