package dutchauction

import (
	"fmt"
	"math/big"
)

// maxUint256 bounds every intermediate value; the settlement contract
// recomputes the same formula in 256-bit arithmetic, so anything wider must
// fault here exactly as it would on chain.
var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// LimitPrice is the resolved curve point for one evaluation
type LimitPrice struct {
	// Price is the executable limit, sell token per buy token, scaled by Scale
	Price *big.Int

	// Scale is 10^decimals of the sell-side oracle
	Scale *big.Int

	// CurrentPrice is the live market intercept the decay was applied to
	CurrentPrice *big.Int
}

// EvaluateCurve interpolates the current limit price from the two live
// readings and the static bounds.
//
// The curve's intercept is the live market price, not the configured start
// price: the static bounds only fix the rate and total magnitude of the
// discount, so the schedule tracks market drift while still guaranteeing the
// full configured discount by the end of the window. Truncation in the slope
// accumulates over elapsed steps; the realized discount may run slightly
// under the continuous line, which is an accepted tolerance.
//
// The sell-side feed's decimals are authoritative for scaling both legs.
func EvaluateCurve(sell, buy OracleReading, startPrice, endPrice *big.Int, duration uint32, elapsed uint64) (*LimitPrice, error) {
	if buy.Price == nil || buy.Price.Sign() <= 0 {
		return nil, fmt.Errorf("%w: buy-side oracle reading %v is not positive", ErrOracleFault, buy.Price)
	}
	if sell.Price == nil || sell.Price.Sign() <= 0 {
		return nil, fmt.Errorf("%w: sell-side oracle reading %v is not positive", ErrOracleFault, sell.Price)
	}
	if duration == 0 {
		return nil, &InvalidParamError{Message: "duration must be greater than zero"}
	}

	scale := pow10(sell.Decimals)

	currentPrice, err := mulDiv(sell.Price, scale, buy.Price)
	if err != nil {
		return nil, fmt.Errorf("current price: %w", err)
	}

	normStart, err := mulDiv(startPrice, scale, buy.Price)
	if err != nil {
		return nil, fmt.Errorf("start price: %w", err)
	}
	normEnd, err := mulDiv(endPrice, scale, buy.Price)
	if err != nil {
		return nil, fmt.Errorf("end price: %w", err)
	}

	if normStart.Cmp(normEnd) < 0 {
		return nil, &InvalidParamError{Message: "ascending price schedule: startPrice is below endPrice"}
	}

	slope := new(big.Int).Sub(normStart, normEnd)
	slope.Div(slope, new(big.Int).SetUint64(uint64(duration)))

	decay := new(big.Int).Mul(slope, new(big.Int).SetUint64(elapsed))
	if decay.Cmp(maxUint256) > 0 {
		return nil, fmt.Errorf("%w: decay term exceeds uint256", ErrArithmeticFault)
	}

	limit := new(big.Int).Sub(currentPrice, decay)
	if limit.Sign() < 0 {
		return nil, fmt.Errorf("%w: decay term %s exceeds current price %s", ErrArithmeticFault, decay.String(), currentPrice.String())
	}

	return &LimitPrice{
		Price:        limit,
		Scale:        scale,
		CurrentPrice: currentPrice,
	}, nil
}

// mulDiv computes a*b/c with truncating division, faulting instead of
// wrapping when the product leaves the uint256 range
func mulDiv(a, b, c *big.Int) (*big.Int, error) {
	if a == nil || b == nil || c == nil {
		return nil, &InvalidParamError{Message: "nil operand"}
	}
	if a.Sign() < 0 || b.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative operand", ErrArithmeticFault)
	}
	if c.Sign() == 0 {
		return nil, fmt.Errorf("%w: division by zero", ErrArithmeticFault)
	}

	product := new(big.Int).Mul(a, b)
	if product.Cmp(maxUint256) > 0 {
		return nil, fmt.Errorf("%w: multiplication overflows uint256", ErrArithmeticFault)
	}

	return product.Div(product, c), nil
}

// pow10 returns 10^n as a big.Int
func pow10(n uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
