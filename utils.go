package dutchauction

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

const (
	MaxDecimals = 18
	ZeroAddress = "0x0000000000000000000000000000000000000000"
)

// FormatUnits renders a native-unit amount as a human-readable decimal
// string. Display only; the pricing math never goes through this path.
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -int32(decimals)).String()
}

// ParseUnits converts a human-readable decimal string into a native-unit
// amount, truncating anything below the token's resolution
func ParseUnits(amount string, decimals uint8) (*big.Int, error) {
	if decimals > MaxDecimals {
		return nil, &InvalidParamError{Message: fmt.Sprintf("decimals must be at most %d, got: %d", MaxDecimals, decimals)}
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, &InvalidParamError{Message: fmt.Sprintf("invalid amount %q: %v", amount, err)}
	}
	if d.Sign() <= 0 {
		return nil, &InvalidParamError{Message: fmt.Sprintf("amount must be positive, got: %s", amount)}
	}

	scaled := d.Shift(int32(decimals)).Truncate(0)
	result := scaled.BigInt()

	if result.Cmp(maxUint256) > 0 {
		return nil, &InvalidParamError{Message: fmt.Sprintf("amount too large for uint256: %s", result.String())}
	}
	if result.Sign() <= 0 {
		return nil, &InvalidParamError{Message: "calculated amount is zero after truncation"}
	}

	return result, nil
}
