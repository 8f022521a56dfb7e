package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// DefaultGasMultiplier is applied to the simulated gas usage of an "auto" fee
const DefaultGasMultiplier = 1.3

// Fee is the fee policy of a transaction: automatic estimation through
// simulation (optionally with a custom multiplier) or an explicit amount
type Fee struct {
	Auto       bool
	Multiplier float64
	Amount     []Coin
	Gas        uint64
}

// AutoFee - estimate gas by simulation and pay the configured gas price
func AutoFee() Fee {
	return Fee{Auto: true, Multiplier: DefaultGasMultiplier}
}

// ExplicitFee - pay exactly amount for gas units
func ExplicitFee(gas uint64, amount ...Coin) Fee {
	return Fee{Amount: amount, Gas: gas}
}

// IsZero reports whether no fee policy was configured
func (f Fee) IsZero() bool {
	return !f.Auto && f.Gas == 0 && len(f.Amount) == 0
}

func (f Fee) String() string {
	if f.Auto {
		if f.Multiplier == DefaultGasMultiplier {
			return "auto"
		}
		return strconv.FormatFloat(f.Multiplier, 'f', -1, 64)
	}

	return fmt.Sprintf("%v gas=%d", f.Amount, f.Gas)
}

type explicitFee struct {
	Amount []Coin `json:"amount"`
	Gas    string `json:"gas"`
}

// MarshalJSON encodes "auto", a multiplier or {"amount":[...],"gas":"N"}
func (f Fee) MarshalJSON() ([]byte, error) {
	if f.Auto {
		if f.Multiplier == 0 || f.Multiplier == DefaultGasMultiplier {
			return json.Marshal("auto")
		}
		return json.Marshal(f.Multiplier)
	}
	if f.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(explicitFee{Amount: f.Amount, Gas: strconv.FormatUint(f.Gas, 10)})
}

// UnmarshalJSON accepts the same shapes MarshalJSON produces
func (f *Fee) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = Fee{}
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s != "auto" {
			return fmt.Errorf("invalid fee %q", s)
		}
		*f = AutoFee()
		return nil
	case '{':
		var ef explicitFee
		if err := json.Unmarshal(b, &ef); err != nil {
			return err
		}
		gas, err := strconv.ParseUint(ef.Gas, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid fee gas %q: %w", ef.Gas, err)
		}
		*f = ExplicitFee(gas, ef.Amount...)
		return nil
	default:
		var multiplier float64
		if err := json.Unmarshal(b, &multiplier); err != nil {
			return fmt.Errorf("invalid fee %s: %w", string(b), err)
		}
		if multiplier <= 0 {
			return fmt.Errorf("invalid fee multiplier %v", multiplier)
		}
		*f = Fee{Auto: true, Multiplier: multiplier}
		return nil
	}
}
