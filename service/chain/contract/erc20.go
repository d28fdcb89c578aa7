package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	baseabi "github.com/x-xyz/marketplace/base/abi"
	bCtx "github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/service/chain"
)

type Erc20Contract interface {
	BalanceOf(ctx bCtx.Ctx, addr string, owner string) (*big.Int, error)
	Allowance(ctx bCtx.Ctx, addr string, owner string, spender string) (*big.Int, error)
	Transfer(ctx bCtx.Ctx, addr string, to string, amount *big.Int) (common.Hash, error)
	TransferFrom(ctx bCtx.Ctx, addr string, from string, to string, amount *big.Int) (common.Hash, error)
}

type Erc20 struct {
	chainService chain.Client
	abi          ethabi.ABI
}

func NewErc20(chainService chain.Client) *Erc20 {
	return &Erc20{
		abi:          baseabi.ERC20TokenABI,
		chainService: chainService,
	}
}

func (e *Erc20) BalanceOf(ctx bCtx.Ctx, addr string, owner string) (*big.Int, error) {
	method := "balanceOf"
	unpacked, err := e.chainService.Call(ctx, common.HexToAddress(addr), nil, e.abi, method, common.HexToAddress(owner))
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc20) Allowance(ctx bCtx.Ctx, addr string, owner string, spender string) (*big.Int, error) {
	method := "allowance"
	unpacked, err := e.chainService.Call(ctx, common.HexToAddress(addr), nil, e.abi, method, common.HexToAddress(owner), common.HexToAddress(spender))
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc20) Transfer(ctx bCtx.Ctx, addr string, to string, amount *big.Int) (common.Hash, error) {
	method := "transfer"
	return e.chainService.Send(ctx, common.HexToAddress(addr), nil, e.abi, method, common.HexToAddress(to), amount)
}

func (e *Erc20) TransferFrom(ctx bCtx.Ctx, addr string, from string, to string, amount *big.Int) (common.Hash, error) {
	method := "transferFrom"
	return e.chainService.Send(ctx, common.HexToAddress(addr), nil, e.abi, method, common.HexToAddress(from), common.HexToAddress(to), amount)
}
