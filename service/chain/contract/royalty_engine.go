package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	baseabi "github.com/x-xyz/marketplace/base/abi"
	bCtx "github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/service/chain"
)

type RoyaltyEngineContract interface {
	GetRoyalty(ctx bCtx.Ctx, addr string, collection string, tokenId *big.Int, value *big.Int) ([]string, []*big.Int, error)
}

type RoyaltyEngine struct {
	chainService chain.Client
	abi          ethabi.ABI
}

func NewRoyaltyEngine(chainService chain.Client) RoyaltyEngineContract {
	return &RoyaltyEngine{
		abi:          baseabi.RoyaltyEngineABI,
		chainService: chainService,
	}
}

func (r *RoyaltyEngine) GetRoyalty(ctx bCtx.Ctx, addr string, collection string, tokenId *big.Int, value *big.Int) ([]string, []*big.Int, error) {
	method := "getRoyaltyView"
	unpacked, err := r.chainService.Call(ctx, common.HexToAddress(addr), nil, r.abi, method, common.HexToAddress(collection), tokenId, value)
	if err != nil {
		return nil, nil, err
	}
	recipients := unpacked[0].([]common.Address)
	var recipientAddrs []string
	for _, recipient := range recipients {
		recipientAddrs = append(recipientAddrs, recipient.String())
	}
	return recipientAddrs, unpacked[1].([]*big.Int), nil
}
