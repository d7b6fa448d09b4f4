package dutchauction

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// OrderKind represents the trade direction of a settlement order
type OrderKind = common.Hash

// BalanceLocation represents where a settlement order sources or deposits funds
type BalanceLocation = common.Hash

// Keccak constants used by the settlement contract to tag order fields
var (
	// KindSell is keccak256("sell")
	KindSell OrderKind = crypto.Keccak256Hash([]byte("sell"))

	// KindBuy is keccak256("buy")
	KindBuy OrderKind = crypto.Keccak256Hash([]byte("buy"))

	// BalanceERC20 is keccak256("erc20"): funds move directly against the owner's token balance
	BalanceERC20 BalanceLocation = crypto.Keccak256Hash([]byte("erc20"))

	// BalanceExternal is keccak256("external")
	BalanceExternal BalanceLocation = crypto.Keccak256Hash([]byte("external"))

	// BalanceInternal is keccak256("internal")
	BalanceInternal BalanceLocation = crypto.Keccak256Hash([]byte("internal"))
)

// AuctionParameters holds the immutable configuration of one decaying limit
// order. It is constructed once by the order's creator and supplied whole on
// every evaluation; the engine never mutates it.
type AuctionParameters struct {
	// SellToken is the token being sold
	SellToken common.Address

	// BuyToken is the token being bought
	BuyToken common.Address

	// Receiver receives the buy-side proceeds
	Receiver common.Address

	// SellAmount is the total amount offered, in the sell token's native unit
	SellAmount *big.Int

	// AppData is an opaque metadata tag passed through to the order unmodified
	AppData common.Hash

	// IsPartiallyFillable is passed through to the order unmodified
	IsPartiallyFillable bool

	// SellTokenPriceOracle is the feed quoting the sell token
	SellTokenPriceOracle common.Address

	// BuyTokenPriceOracle is the feed quoting the buy token. Both feeds must
	// report in the same numeraire; that is a configuration contract the
	// engine does not verify.
	BuyTokenPriceOracle common.Address

	// StartPrice and EndPrice bound the decay, expressed in the oracle
	// numeraire as sell-token price over buy-token price. StartPrice must be
	// greater than or equal to EndPrice.
	StartPrice *big.Int
	EndPrice   *big.Int

	// StartTs is the auction activation time, epoch seconds
	StartTs uint32

	// Duration is the total auction length in seconds, on the step grid
	Duration uint32

	// TimeStep is the granularity of price updates in seconds, must be > 0
	TimeStep uint32
}

// OracleReading is one feed observation taken at evaluation time. It is
// ephemeral and never stored.
type OracleReading struct {
	// Price is the latest answer in the feed's own fixed-point representation
	Price *big.Int

	// Decimals is the feed's fixed-point scale
	Decimals uint8

	// UpdatedAt is the feed's report timestamp, epoch seconds. The engine
	// performs no staleness check; this is surfaced for callers that do.
	UpdatedAt uint64
}

// TradeableOrder is the fully-resolved order terms produced by one
// evaluation. Snapshots are never cached or reused across evaluations.
type TradeableOrder struct {
	SellToken         common.Address
	BuyToken          common.Address
	Receiver          common.Address
	SellAmount        *big.Int
	BuyAmount         *big.Int
	ValidTo           uint32
	AppData           common.Hash
	FeeAmount         *big.Int
	Kind              OrderKind
	PartiallyFillable bool
	SellTokenBalance  BalanceLocation
	BuyTokenBalance   BalanceLocation
}

// Equal reports whether two orders are structurally identical field by field.
// The re-verification contract requires exact equality, not equivalence.
func (o *TradeableOrder) Equal(other *TradeableOrder) bool {
	if other == nil {
		return false
	}
	return o.SellToken == other.SellToken &&
		o.BuyToken == other.BuyToken &&
		o.Receiver == other.Receiver &&
		o.SellAmount.Cmp(other.SellAmount) == 0 &&
		o.BuyAmount.Cmp(other.BuyAmount) == 0 &&
		o.ValidTo == other.ValidTo &&
		o.AppData == other.AppData &&
		o.FeeAmount.Cmp(other.FeeAmount) == 0 &&
		o.Kind == other.Kind &&
		o.PartiallyFillable == other.PartiallyFillable &&
		o.SellTokenBalance == other.SellTokenBalance &&
		o.BuyTokenBalance == other.BuyTokenBalance
}
