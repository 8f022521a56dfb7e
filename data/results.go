package data

import "encoding/json"

// Account is one signing account of a wallet
type Account struct {
	Address string `json:"address"`
	Algo    string `json:"algo"`
	PubKey  []byte `json:"pubkey"`
}

// Event is a transaction event with decoded attributes
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

// Attribute is a key/value pair of an Event
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TxResult holds the outcome of an included transaction
type TxResult struct {
	TransactionHash string  `json:"transactionHash"`
	Height          int64   `json:"height"`
	GasWanted       uint64  `json:"gasWanted"`
	GasUsed         uint64  `json:"gasUsed"`
	Logs            string  `json:"logs,omitempty"`
	Events          []Event `json:"events,omitempty"`
}

// UploadResult is returned by a successful store code transaction
type UploadResult struct {
	TxResult
	CodeID         uint64 `json:"codeId"`
	Checksum       string `json:"checksum"`
	OriginalSize   int    `json:"originalSize"`
	CompressedSize int    `json:"compressedSize"`
}

// InstantiateResult is returned by a successful instantiate transaction
type InstantiateResult struct {
	TxResult
	ContractAddress string `json:"contractAddress"`
}

// ExecuteResult is returned by a successful execute transaction
type ExecuteResult struct {
	TxResult
	Msg string `json:"msg"`
}

// QueryResult pairs a query with its decoded response
type QueryResult struct {
	Msg      string          `json:"msg"`
	Response json.RawMessage `json:"response"`
}

// InstantiateOptions are the optional parts of an instantiate transaction
type InstantiateOptions struct {
	Admin string
	Memo  string
	Funds []Coin
}
