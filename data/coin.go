package data

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var gasPriceRegexp = regexp.MustCompile(`^([0-9.]+)([a-zA-Z][a-zA-Z0-9/:._-]{1,127})$`)

// Coin is a denom and amount pair, amount being an integer in base units
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// NewCoin - creates a Coin from an integer amount
func NewCoin(amount uint64, denom string) Coin {
	return Coin{Denom: denom, Amount: fmt.Sprintf("%d", amount)}
}

func (c Coin) String() string {
	return c.Amount + c.Denom
}

// IsValid reports whether the coin has a denom and a non-negative integer amount
func (c Coin) IsValid() bool {
	if c.Denom == "" {
		return false
	}
	amount, err := decimal.NewFromString(c.Amount)
	if err != nil {
		return false
	}

	return amount.Equal(amount.Truncate(0)) && !amount.IsNegative()
}

// GasPrice is the minimum fee paid per unit of gas
type GasPrice struct {
	Amount decimal.Decimal
	Denom  string
}

// ParseGasPrice - parses strings like "0.001orai"
func ParseGasPrice(s string) (GasPrice, error) {
	matches := gasPriceRegexp.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return GasPrice{}, fmt.Errorf("invalid gas price %q", s)
	}

	amount, err := decimal.NewFromString(matches[1])
	if err != nil {
		return GasPrice{}, fmt.Errorf("invalid gas price amount %q: %w", matches[1], err)
	}
	if amount.IsNegative() {
		return GasPrice{}, fmt.Errorf("negative gas price %q", s)
	}

	return GasPrice{Amount: amount, Denom: matches[2]}, nil
}

func (gp GasPrice) String() string {
	return gp.Amount.String() + gp.Denom
}

// FeeFor returns ceil(price * gasLimit) in the gas price denom
func (gp GasPrice) FeeFor(gasLimit uint64) Coin {
	total := gp.Amount.Mul(decimal.NewFromInt(int64(gasLimit))).Ceil()

	return Coin{Denom: gp.Denom, Amount: total.String()}
}
