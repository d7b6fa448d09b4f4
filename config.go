package dutchauction

// ChainID represents a blockchain chain ID
type ChainID int64

const (
	ChainIDEthereumMainnet ChainID = 1     // Ethereum mainnet
	ChainIDGnosis          ChainID = 100   // Gnosis Chain
	ChainIDArbitrumOne     ChainID = 42161 // Arbitrum One
)

// SupportedChainIDs lists all supported chain IDs
var SupportedChainIDs = []ChainID{ChainIDEthereumMainnet, ChainIDGnosis, ChainIDArbitrumOne}

// ContractAddresses holds contract addresses for each chain
type ContractAddresses struct {
	Settlement      string
	VaultRelayer    string
	ComposableOrder string
}

// DefaultContractAddresses maps chain IDs to their contract addresses.
// The settlement and relayer contracts are deployed at the same address on
// every supported chain.
var DefaultContractAddresses = map[ChainID]ContractAddresses{
	ChainIDEthereumMainnet: {
		Settlement:      "0x9008D19f58AAbD9eD0D60971565AA8510560ab41",
		VaultRelayer:    "0xC92E8bdf79f0507f65a392b0ab4667716BFE0110",
		ComposableOrder: "0xfdaFc9d1902f4e0b84f65F49f244b32b31013b74",
	},
	ChainIDGnosis: {
		Settlement:      "0x9008D19f58AAbD9eD0D60971565AA8510560ab41",
		VaultRelayer:    "0xC92E8bdf79f0507f65a392b0ab4667716BFE0110",
		ComposableOrder: "0xfdaFc9d1902f4e0b84f65F49f244b32b31013b74",
	},
	ChainIDArbitrumOne: {
		Settlement:      "0x9008D19f58AAbD9eD0D60971565AA8510560ab41",
		VaultRelayer:    "0xC92E8bdf79f0507f65a392b0ab4667716BFE0110",
		ComposableOrder: "0xfdaFc9d1902f4e0b84f65F49f244b32b31013b74",
	},
}
