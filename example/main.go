// Example usage of the Dutch auction SDK: configure an auction, then poll it
// the way a watchtower would, once per time step, until it expires.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	dutchauction "github.com/auctionlabs/dutch-auction-sdk-go"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	sellFeed := common.HexToAddress("0x5f4eC3Df9cbd43714FE2740f5E3616155c5b8419") // ETH / USD
	buyFeed := common.HexToAddress("0x8fFfFfd4AfB6115b954Bd326cbe7B4BA576818f6")  // USDC / USD

	// A fixed oracle keeps the example hermetic. For live evaluation, build
	// the reader with chain.NewOracle(rpcURL) instead.
	oracle := &dutchauction.StaticOracle{
		Readings: map[common.Address]dutchauction.OracleReading{
			sellFeed: {Price: big.NewInt(2000_00000000), Decimals: 8, UpdatedAt: uint64(time.Now().Unix())},
			buyFeed:  {Price: big.NewInt(1_00000000), Decimals: 8, UpdatedAt: uint64(time.Now().Unix())},
		},
	}

	engine := dutchauction.NewEngine(oracle, dutchauction.WithLogger(logger))

	startTs := uint32(time.Now().Unix())
	params := &dutchauction.AuctionParameters{
		SellToken:            common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"), // WETH
		BuyToken:             common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), // USDC
		Receiver:             common.HexToAddress(dutchauction.ZeroAddress),
		SellAmount:           big.NewInt(1_000000000000000000), // 1 WETH
		AppData:              common.HexToHash("0xcafe"),
		IsPartiallyFillable:  false,
		SellTokenPriceOracle: sellFeed,
		BuyTokenPriceOracle:  buyFeed,
		StartPrice:           big.NewInt(2100_00000000), // start 5% above market
		EndPrice:             big.NewInt(1900_00000000), // bounded 10% total discount
		StartTs:              startTs,
		Duration:             600,
		TimeStep:             60,
	}

	staticInput, err := dutchauction.EncodeParameters(params)
	if err != nil {
		log.Fatalf("Failed to encode parameters: %v", err)
	}

	domainSeparator, err := dutchauction.DomainSeparatorForChain(dutchauction.ChainIDEthereumMainnet)
	if err != nil {
		log.Fatalf("Failed to compute domain separator: %v", err)
	}

	ctx := context.Background()
	owner := common.HexToAddress("0x1111111111111111111111111111111111111111")
	orderID := common.HexToHash("0x01")

	// Poll once per step across the whole window. A real watchtower would
	// sleep between iterations; here the evaluation time is advanced
	// directly so the full decay prints at once.
	for now := uint64(startTs); ; now += uint64(params.TimeStep) {
		order, err := engine.GetTradeableOrder(ctx, owner, owner, orderID, staticInput, nil, now)
		if errors.Is(err, dutchauction.ErrOrderNotValid) {
			fmt.Println("Auction ended, no order producible")
			return
		}
		if err != nil {
			log.Fatalf("Evaluation failed: %v", err)
		}

		fmt.Printf("t+%4ds  sell %s WETH -> buy at least %s USDC  (validTo %d, digest %s)\n",
			now-uint64(startTs),
			dutchauction.FormatUnits(order.SellAmount, 18),
			dutchauction.FormatUnits(order.BuyAmount, 18),
			order.ValidTo,
			order.Digest(domainSeparator).Hex(),
		)
	}
}
