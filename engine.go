package dutchauction

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// OracleReader is the price-feed capability the engine consumes. Readings
// are assumed fresh; staleness checks are the caller's concern.
type OracleReader interface {
	LatestReading(ctx context.Context, feed common.Address) (OracleReading, error)
}

// Engine evaluates decaying limit orders. It holds no per-order state: every
// evaluation is an independent, deterministic function of the parameters,
// the injected time and the oracle readings, so any number of concurrent
// pollers may share one Engine.
type Engine struct {
	oracles        OracleReader
	log            *zap.Logger
	strictDecimals bool
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger attaches a logger for evaluation tracing
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithStrictDecimals upgrades an oracle decimals mismatch from a warning to
// an ErrOracleFault. The default mirrors the original behavior, where the
// sell-side feed's decimals silently scale both legs.
func WithStrictDecimals() Option {
	return func(e *Engine) {
		e.strictDecimals = true
	}
}

// NewEngine creates an Engine reading prices through the given capability
func NewEngine(oracles OracleReader, opts ...Option) *Engine {
	e := &Engine{
		oracles: oracles,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate computes the currently-executable order for the given parameters
// at time now (epoch seconds). It returns ErrOrderNotValid once the auction
// window has lapsed, ErrOracleFault for unusable feed readings, and
// ErrArithmeticFault when the pricing math leaves the uint256 range. No
// partial order is ever produced on failure.
func (e *Engine) Evaluate(ctx context.Context, params *AuctionParameters, now uint64) (*TradeableOrder, error) {
	if err := validateParameters(params); err != nil {
		return nil, err
	}

	window, err := ComputeWindow(now, params.StartTs, params.Duration, params.TimeStep)
	if err != nil {
		return nil, err
	}

	sell, err := e.oracles.LatestReading(ctx, params.SellTokenPriceOracle)
	if err != nil {
		return nil, fmt.Errorf("sell-side oracle %s: %w", params.SellTokenPriceOracle.Hex(), err)
	}
	buy, err := e.oracles.LatestReading(ctx, params.BuyTokenPriceOracle)
	if err != nil {
		return nil, fmt.Errorf("buy-side oracle %s: %w", params.BuyTokenPriceOracle.Hex(), err)
	}

	if sell.Decimals != buy.Decimals {
		if e.strictDecimals {
			return nil, fmt.Errorf("%w: oracle decimals mismatch: sell=%d buy=%d", ErrOracleFault, sell.Decimals, buy.Decimals)
		}
		e.log.Warn("oracle decimals mismatch, sell-side decimals used for both legs",
			zap.Uint8("sell_decimals", sell.Decimals),
			zap.Uint8("buy_decimals", buy.Decimals),
			zap.String("sell_feed", params.SellTokenPriceOracle.Hex()),
			zap.String("buy_feed", params.BuyTokenPriceOracle.Hex()))
	}

	limit, err := EvaluateCurve(sell, buy, params.StartPrice, params.EndPrice, params.Duration, window.Elapsed)
	if err != nil {
		return nil, err
	}

	order, err := AssembleOrder(params, limit, window)
	if err != nil {
		return nil, err
	}

	e.log.Debug("evaluated auction",
		zap.String("phase", window.Phase.String()),
		zap.Uint64("bucketed_now", window.BucketedNow),
		zap.Uint64("elapsed", window.Elapsed),
		zap.Uint64("valid_to", window.ValidTo),
		zap.String("limit_price", limit.Price.String()),
		zap.String("buy_amount", order.BuyAmount.String()))

	return order, nil
}

// GetTradeableOrder is the wire-shaped entry point consumed by pollers:
// staticInput is the fixed-layout encoding of AuctionParameters and
// offchainInput is accepted but unused by this order type. owner, sender and
// orderID identify the evaluation for tracing only; they do not influence
// the result.
func (e *Engine) GetTradeableOrder(ctx context.Context, owner, sender common.Address, orderID common.Hash, staticInput, offchainInput []byte, now uint64) (*TradeableOrder, error) {
	_ = offchainInput

	params, err := DecodeParameters(staticInput)
	if err != nil {
		return nil, err
	}

	e.log.Debug("polling order",
		zap.String("owner", owner.Hex()),
		zap.String("sender", sender.Hex()),
		zap.String("order_id", orderID.Hex()))

	return e.Evaluate(ctx, params, now)
}

// VerifyOrder recomputes the order from the same static input and time and
// requires the claimed order to match it structurally, and the recomputed
// settlement digest to match the claimed content hash. Determinism of
// Evaluate is what makes this check sound: any two parties with the same
// bucketed time and readings must agree byte for byte.
func (e *Engine) VerifyOrder(ctx context.Context, owner, sender common.Address, orderID common.Hash, staticInput, offchainInput []byte, now uint64, domainSeparator, orderDigest common.Hash, claimed *TradeableOrder) error {
	computed, err := e.GetTradeableOrder(ctx, owner, sender, orderID, staticInput, offchainInput, now)
	if err != nil {
		return err
	}

	if !computed.Equal(claimed) {
		return fmt.Errorf("%w: claimed order does not match recomputation", ErrVerifyMismatch)
	}
	if computed.Digest(domainSeparator) != orderDigest {
		return fmt.Errorf("%w: order digest mismatch", ErrVerifyMismatch)
	}
	return nil
}

func validateParameters(params *AuctionParameters) error {
	if params == nil {
		return &InvalidParamError{Message: "nil parameters"}
	}
	if params.SellAmount == nil || params.SellAmount.Sign() <= 0 {
		return &InvalidParamError{Message: "sellAmount must be positive"}
	}
	if params.StartPrice == nil || params.EndPrice == nil {
		return &InvalidParamError{Message: "startPrice and endPrice are required"}
	}
	if params.StartPrice.Cmp(params.EndPrice) < 0 {
		return &InvalidParamError{Message: "ascending price schedule: startPrice is below endPrice"}
	}
	if params.TimeStep == 0 {
		return &InvalidParamError{Message: "timeStep must be greater than zero"}
	}
	if params.Duration == 0 {
		return &InvalidParamError{Message: "duration must be greater than zero"}
	}
	return nil
}

// StaticOracle is an OracleReader over a fixed set of readings. It backs
// hermetic tests and dry runs of the polling loop.
type StaticOracle struct {
	Readings map[common.Address]OracleReading
}

// LatestReading returns the configured reading for the feed
func (s *StaticOracle) LatestReading(_ context.Context, feed common.Address) (OracleReading, error) {
	reading, ok := s.Readings[feed]
	if !ok {
		return OracleReading{}, fmt.Errorf("%w: no reading configured for feed %s", ErrOracleFault, feed.Hex())
	}
	return reading, nil
}
