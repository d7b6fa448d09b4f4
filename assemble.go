package dutchauction

import (
	"fmt"
	"math/big"
)

// AssembleOrder projects the resolved limit price and validity window onto a
// concrete order. Pure; everything not computed here passes through from the
// parameters unchanged. This engine only ever produces zero-fee sell orders
// settled against direct token balances.
func AssembleOrder(params *AuctionParameters, limit *LimitPrice, window *Window) (*TradeableOrder, error) {
	buyAmount, err := mulDiv(params.SellAmount, limit.Price, limit.Scale)
	if err != nil {
		return nil, fmt.Errorf("buy amount: %w", err)
	}

	return &TradeableOrder{
		SellToken:         params.SellToken,
		BuyToken:          params.BuyToken,
		Receiver:          params.Receiver,
		SellAmount:        new(big.Int).Set(params.SellAmount),
		BuyAmount:         buyAmount,
		ValidTo:           uint32(window.ValidTo),
		AppData:           params.AppData,
		FeeAmount:         big.NewInt(0),
		Kind:              KindSell,
		PartiallyFillable: params.IsPartiallyFillable,
		SellTokenBalance:  BalanceERC20,
		BuyTokenBalance:   BalanceERC20,
	}, nil
}
