// Package chain adapts on-chain price feeds and chain time to the engine's
// capability interfaces. Everything here is read-only.
package chain

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	dutchauction "github.com/auctionlabs/dutch-auction-sdk-go"
)

// Oracle reads aggregator-style price feeds over an RPC connection. It
// implements dutchauction.OracleReader. Feed decimals are immutable on chain
// and cached after the first read.
type Oracle struct {
	client *ethclient.Client

	mu            sync.Mutex
	decimalsCache map[common.Address]uint8
}

// NewOracle connects to an RPC endpoint and returns an Oracle
func NewOracle(rpcURL string) (*Oracle, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	return NewOracleWithClient(client), nil
}

// NewOracleWithClient wraps an existing client
func NewOracleWithClient(client *ethclient.Client) *Oracle {
	return &Oracle{
		client:        client,
		decimalsCache: make(map[common.Address]uint8),
	}
}

// LatestReading fetches the feed's latest answer and decimals. Upstream call
// failures propagate opaquely; no retry, no staleness check.
func (o *Oracle) LatestReading(ctx context.Context, feed common.Address) (dutchauction.OracleReading, error) {
	aggregatorABI := GetAggregatorABI()

	data, err := aggregatorABI.Pack("latestRoundData")
	if err != nil {
		return dutchauction.OracleReading{}, err
	}

	result, err := o.client.CallContract(ctx, ethereum.CallMsg{
		To:   &feed,
		Data: data,
	}, nil)
	if err != nil {
		return dutchauction.OracleReading{}, fmt.Errorf("latestRoundData call failed: %w", err)
	}

	values, err := aggregatorABI.Unpack("latestRoundData", result)
	if err != nil {
		return dutchauction.OracleReading{}, fmt.Errorf("failed to unpack latestRoundData: %w", err)
	}

	answer := values[1].(*big.Int)
	updatedAt := values[3].(*big.Int)

	decimals, err := o.feedDecimals(ctx, feed)
	if err != nil {
		return dutchauction.OracleReading{}, err
	}

	return dutchauction.OracleReading{
		Price:     answer,
		Decimals:  decimals,
		UpdatedAt: updatedAt.Uint64(),
	}, nil
}

// feedDecimals gets feed decimals with caching
func (o *Oracle) feedDecimals(ctx context.Context, feed common.Address) (uint8, error) {
	o.mu.Lock()
	cached, ok := o.decimalsCache[feed]
	o.mu.Unlock()
	if ok {
		return cached, nil
	}

	aggregatorABI := GetAggregatorABI()
	data, err := aggregatorABI.Pack("decimals")
	if err != nil {
		return 0, err
	}

	result, err := o.client.CallContract(ctx, ethereum.CallMsg{
		To:   &feed,
		Data: data,
	}, nil)
	if err != nil {
		return 0, fmt.Errorf("decimals call failed: %w", err)
	}

	var decimals uint8
	if err := aggregatorABI.UnpackIntoInterface(&decimals, "decimals", result); err != nil {
		return 0, fmt.Errorf("failed to unpack decimals: %w", err)
	}

	o.mu.Lock()
	o.decimalsCache[feed] = decimals
	o.mu.Unlock()

	return decimals, nil
}

// BlockTime returns the latest block's timestamp, for callers that evaluate
// against consensus time rather than wall clock
func (o *Oracle) BlockTime(ctx context.Context) (uint64, error) {
	header, err := o.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest header: %w", err)
	}
	return header.Time, nil
}

// Close closes the underlying client connection
func (o *Oracle) Close() {
	if o.client != nil {
		o.client.Close()
	}
}
