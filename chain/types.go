package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Aggregator ABI JSON for latestRoundData and decimals functions
const aggregatorABIJSON = `[
	{
		"constant": true,
		"inputs": [],
		"name": "latestRoundData",
		"outputs": [
			{"name": "roundId", "type": "uint80"},
			{"name": "answer", "type": "int256"},
			{"name": "startedAt", "type": "uint256"},
			{"name": "updatedAt", "type": "uint256"},
			{"name": "answeredInRound", "type": "uint80"}
		],
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [],
		"name": "decimals",
		"outputs": [{"name": "", "type": "uint8"}],
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [],
		"name": "description",
		"outputs": [{"name": "", "type": "string"}],
		"type": "function"
	}
]`

// GetAggregatorABI returns the parsed price-feed aggregator ABI
func GetAggregatorABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(aggregatorABIJSON))
	if err != nil {
		panic("failed to parse aggregator ABI: " + err.Error())
	}
	return parsed
}
