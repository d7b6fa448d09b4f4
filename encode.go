package dutchauction

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Settlement domain constants
const (
	DomainName    = "Gnosis Protocol"
	DomainVersion = "v2"
)

// Pre-computed type hashes using keccak256
var (
	// EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)
	DomainTypeHash = crypto.Keccak256Hash([]byte(
		"EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)",
	))

	// Order(address sellToken,address buyToken,address receiver,uint256 sellAmount,uint256 buyAmount,uint32 validTo,bytes32 appData,uint256 feeAmount,bytes32 kind,bool partiallyFillable,bytes32 sellTokenBalance,bytes32 buyTokenBalance)
	OrderTypeHash = crypto.Keccak256Hash([]byte(
		"Order(address sellToken,address buyToken,address receiver,uint256 sellAmount,uint256 buyAmount,uint32 validTo,bytes32 appData,uint256 feeAmount,bytes32 kind,bool partiallyFillable,bytes32 sellTokenBalance,bytes32 buyTokenBalance)",
	))
)

// parameterArguments returns the fixed ABI layout of AuctionParameters as it
// appears in the order's static input
func parameterArguments() abi.Arguments {
	addressType, _ := abi.NewType("address", "", nil)
	uint256Type, _ := abi.NewType("uint256", "", nil)
	bytes32Type, _ := abi.NewType("bytes32", "", nil)
	boolType, _ := abi.NewType("bool", "", nil)
	uint32Type, _ := abi.NewType("uint32", "", nil)

	return abi.Arguments{
		{Name: "sellToken", Type: addressType},
		{Name: "buyToken", Type: addressType},
		{Name: "receiver", Type: addressType},
		{Name: "sellAmount", Type: uint256Type},
		{Name: "appData", Type: bytes32Type},
		{Name: "isPartiallyFillable", Type: boolType},
		{Name: "sellTokenPriceOracle", Type: addressType},
		{Name: "buyTokenPriceOracle", Type: addressType},
		{Name: "startPrice", Type: uint256Type},
		{Name: "endPrice", Type: uint256Type},
		{Name: "startTs", Type: uint32Type},
		{Name: "duration", Type: uint32Type},
		{Name: "timeStep", Type: uint32Type},
	}
}

// EncodeParameters serializes AuctionParameters into the fixed-layout static
// input understood by GetTradeableOrder
func EncodeParameters(params *AuctionParameters) ([]byte, error) {
	if err := validateParameters(params); err != nil {
		return nil, err
	}

	encoded, err := parameterArguments().Pack(
		params.SellToken,
		params.BuyToken,
		params.Receiver,
		params.SellAmount,
		[32]byte(params.AppData),
		params.IsPartiallyFillable,
		params.SellTokenPriceOracle,
		params.BuyTokenPriceOracle,
		params.StartPrice,
		params.EndPrice,
		params.StartTs,
		params.Duration,
		params.TimeStep,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to encode auction parameters: %w", err)
	}
	return encoded, nil
}

// DecodeParameters parses the fixed-layout static input back into
// AuctionParameters, rejecting configurations the pricing math cannot serve
func DecodeParameters(data []byte) (*AuctionParameters, error) {
	values, err := parameterArguments().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode auction parameters: %w", err)
	}

	params := &AuctionParameters{
		SellToken:            values[0].(common.Address),
		BuyToken:             values[1].(common.Address),
		Receiver:             values[2].(common.Address),
		SellAmount:           values[3].(*big.Int),
		AppData:              common.Hash(values[4].([32]byte)),
		IsPartiallyFillable:  values[5].(bool),
		SellTokenPriceOracle: values[6].(common.Address),
		BuyTokenPriceOracle:  values[7].(common.Address),
		StartPrice:           values[8].(*big.Int),
		EndPrice:             values[9].(*big.Int),
		StartTs:              values[10].(uint32),
		Duration:             values[11].(uint32),
		TimeStep:             values[12].(uint32),
	}

	if err := validateParameters(params); err != nil {
		return nil, err
	}
	return params, nil
}

// DomainSeparator computes the settlement contract's EIP-712 domain
// separator for a chain
func DomainSeparator(chainID ChainID, verifyingContract common.Address) common.Hash {
	bytes32Type, _ := abi.NewType("bytes32", "", nil)
	uint256Type, _ := abi.NewType("uint256", "", nil)
	addressType, _ := abi.NewType("address", "", nil)

	arguments := abi.Arguments{
		{Type: bytes32Type}, // typeHash
		{Type: bytes32Type}, // nameHash
		{Type: bytes32Type}, // versionHash
		{Type: uint256Type}, // chainId
		{Type: addressType}, // verifyingContract
	}

	encoded, err := arguments.Pack(
		DomainTypeHash,
		crypto.Keccak256Hash([]byte(DomainName)),
		crypto.Keccak256Hash([]byte(DomainVersion)),
		big.NewInt(int64(chainID)),
		verifyingContract,
	)
	if err != nil {
		panic("failed to encode domain separator: " + err.Error())
	}

	return crypto.Keccak256Hash(encoded)
}

// DomainSeparatorForChain computes the domain separator using the default
// settlement deployment for the chain
func DomainSeparatorForChain(chainID ChainID) (common.Hash, error) {
	addrs, ok := DefaultContractAddresses[chainID]
	if !ok {
		return common.Hash{}, &InvalidParamError{Message: fmt.Sprintf("unsupported chain ID: %d", chainID)}
	}
	return DomainSeparator(chainID, common.HexToAddress(addrs.Settlement)), nil
}

// structHash computes the EIP-712 struct hash of the order
func (o *TradeableOrder) structHash() common.Hash {
	addressType, _ := abi.NewType("address", "", nil)
	uint256Type, _ := abi.NewType("uint256", "", nil)
	uint32Type, _ := abi.NewType("uint32", "", nil)
	bytes32Type, _ := abi.NewType("bytes32", "", nil)
	boolType, _ := abi.NewType("bool", "", nil)

	arguments := abi.Arguments{
		{Type: bytes32Type}, // typeHash
		{Type: addressType}, // sellToken
		{Type: addressType}, // buyToken
		{Type: addressType}, // receiver
		{Type: uint256Type}, // sellAmount
		{Type: uint256Type}, // buyAmount
		{Type: uint32Type},  // validTo
		{Type: bytes32Type}, // appData
		{Type: uint256Type}, // feeAmount
		{Type: bytes32Type}, // kind
		{Type: boolType},    // partiallyFillable
		{Type: bytes32Type}, // sellTokenBalance
		{Type: bytes32Type}, // buyTokenBalance
	}

	encoded, err := arguments.Pack(
		OrderTypeHash,
		o.SellToken,
		o.BuyToken,
		o.Receiver,
		o.SellAmount,
		o.BuyAmount,
		o.ValidTo,
		[32]byte(o.AppData),
		o.FeeAmount,
		[32]byte(o.Kind),
		o.PartiallyFillable,
		[32]byte(o.SellTokenBalance),
		[32]byte(o.BuyTokenBalance),
	)
	if err != nil {
		panic("failed to encode order struct: " + err.Error())
	}

	return crypto.Keccak256Hash(encoded)
}

// Digest computes the settlement digest the order is identified by:
// keccak256("\x19\x01" ++ domainSeparator ++ structHash)
func (o *TradeableOrder) Digest(domainSeparator common.Hash) common.Hash {
	data := make([]byte, 0, 2+32+32)
	data = append(data, 0x19, 0x01)
	data = append(data, domainSeparator.Bytes()...)
	data = append(data, o.structHash().Bytes()...)
	return crypto.Keccak256Hash(data)
}
