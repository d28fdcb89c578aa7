package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var RoyaltyEngineABI abi.ABI

var royaltyEngineABI = `[{"type":"function","name":"getRoyaltyView","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"address","name":"tokenAddress"},{"type":"uint256","name":"tokenId"},{"type":"uint256","name":"value"}],"outputs":[{"type":"address[]","name":"recipients"},{"type":"uint256[]","name":"amounts"}]}]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(royaltyEngineABI))
	if err != nil {
		panic("Failed to parse royalty engine abi")
	}
	RoyaltyEngineABI = _abi
}
